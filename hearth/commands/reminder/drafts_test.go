package reminder

import (
	"testing"
	"time"

	domain "github.com/ellavondegurechaff/hearth/internal/domain/reminder"
)

func TestDraftStore(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewDraftStore(10, time.Minute)
	store.now = func() time.Time { return now }

	if _, ok := store.Get(1); ok {
		t.Fatal("expected no draft")
	}

	store.Update(1, func(s *Selection) { s.Timezone = "UTC" })
	sel, _ := store.Get(1)
	if sel.Complete() {
		t.Error("draft with only a timezone should not be complete")
	}

	store.Update(1, func(s *Selection) { s.Recurrence = domain.RecurrenceDaily })
	sel, ok := store.Get(1)
	if !ok || !sel.Complete() || sel.Timezone != "UTC" {
		t.Errorf("unexpected selection %+v", sel)
	}

	if _, ok := store.Get(2); ok {
		t.Error("drafts must be kept per user")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(1); ok {
		t.Error("expected draft to expire")
	}
}

func TestDraftStoreReset(t *testing.T) {
	store := NewDraftStore(10, time.Minute)
	store.Update(5, func(s *Selection) { s.Timezone = "Asia/Tokyo" })
	store.Reset(5)
	if _, ok := store.Get(5); ok {
		t.Error("expected reset to drop the draft")
	}
}
