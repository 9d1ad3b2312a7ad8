package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/internal/domain/reminder"
)

const (
	alice snowflake.ID = 111
	bob   snowflake.ID = 222
)

type recordingSnapshotter struct {
	mu    sync.Mutex
	names []string
	last  []byte
}

func (r *recordingSnapshotter) Snapshot(_ context.Context, name string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	r.last = append([]byte(nil), data...)
	return nil
}

func newStore(t *testing.T, opts ...Option) *ReminderStore {
	t.Helper()
	s, err := NewReminderStore(filepath.Join(t.TempDir(), "data", "reminders.csv"), opts...)
	if err != nil {
		t.Fatalf("NewReminderStore() error = %v", err)
	}
	return s
}

func TestNewReminderStore_CreatesHeader(t *testing.T) {
	s := newStore(t)

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got, want := string(data), strings.Join(Header, ",")+"\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}

	rows, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("GetAll() = %v, want empty", rows)
	}
}

func TestReminderStore_CreateAssignsSequentialIDs(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first := reminder.Reminder{OwnerID: alice, Name: "a", FireAt: time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC), Timezone: "America/New_York", Recurrence: reminder.RecurrenceDaily}
	second := reminder.Reminder{OwnerID: bob, Name: "b, with comma", FireAt: time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC), Timezone: "UTC", Details: "line one\nline two", Recurrence: reminder.RecurrenceNone}

	if err := s.Create(ctx, &first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Create(ctx, &second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}

	rows, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if want := []reminder.Reminder{first, second}; !reflect.DeepEqual(rows, want) {
		t.Errorf("GetAll() = %+v, want %+v", rows, want)
	}
}

func TestReminderStore_DeleteOwned(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	r := reminder.Reminder{OwnerID: alice, Name: "mine", FireAt: time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC), Timezone: "UTC", Recurrence: reminder.RecurrenceNone}
	if err := s.Create(ctx, &r); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := s.DeleteOwned(ctx, bob, r.ID); !errors.Is(err, reminder.ErrNotFound) {
		t.Fatalf("DeleteOwned(other owner) error = %v, want ErrNotFound", err)
	}
	rows, _ := s.GetAll(ctx)
	if len(rows) != 1 {
		t.Fatalf("rows after foreign delete = %d, want 1", len(rows))
	}

	removed, err := s.DeleteOwned(ctx, alice, r.ID)
	if err != nil {
		t.Fatalf("DeleteOwned() error = %v", err)
	}
	if removed.Name != "mine" {
		t.Errorf("removed = %+v", removed)
	}
	rows, _ = s.GetAll(ctx)
	if len(rows) != 0 {
		t.Errorf("rows after delete = %d, want 0", len(rows))
	}
}

func takePending(s *ReminderStore) ([]byte, bool) {
	select {
	case data := <-s.pending:
		return data, true
	default:
		return nil, false
	}
}

func TestReminderStore_UpdateWritesOnlyOnChange(t *testing.T) {
	s := newStore(t, WithSnapshotter(&recordingSnapshotter{}))
	ctx := context.Background()

	r := reminder.Reminder{OwnerID: alice, Name: "x", FireAt: time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC), Timezone: "UTC", Recurrence: reminder.RecurrenceWeekly}
	if err := s.Create(ctx, &r); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, ok := takePending(s); !ok {
		t.Fatal("Create() queued no snapshot")
	}

	if err := s.Update(ctx, func(rows []reminder.Reminder) ([]reminder.Reminder, bool) {
		return rows, false
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if _, ok := takePending(s); ok {
		t.Errorf("unchanged update queued a snapshot")
	}

	if err := s.Update(ctx, func(rows []reminder.Reminder) ([]reminder.Reminder, bool) {
		rows[0].FireAt = rows[0].Recurrence.Next(rows[0].FireAt)
		return rows, true
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	data, ok := takePending(s)
	if !ok || !strings.Contains(string(data), "2025-06-22T13:00:00Z") {
		t.Errorf("snapshot after update = %q", data)
	}

	rows, _ := s.GetAll(ctx)
	if want := time.Date(2025, 6, 22, 13, 0, 0, 0, time.UTC); !rows[0].FireAt.Equal(want) {
		t.Errorf("FireAt = %v, want %v", rows[0].FireAt, want)
	}
}

// blockingSnapshotter holds every upload until release is closed.
type blockingSnapshotter struct {
	recordingSnapshotter
	started chan struct{}
	release chan struct{}
}

func (b *blockingSnapshotter) Snapshot(ctx context.Context, name string, data []byte) error {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-b.release
	return b.recordingSnapshotter.Snapshot(ctx, name, data)
}

func TestReminderStore_SlowSnapshotDoesNotBlock(t *testing.T) {
	snap := &blockingSnapshotter{started: make(chan struct{}, 1), release: make(chan struct{})}
	s := newStore(t, WithSnapshotter(snap))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunSnapshots(ctx)
		close(done)
	}()

	first := reminder.Reminder{OwnerID: alice, Name: "first", FireAt: time.Now().UTC(), Timezone: "UTC", Recurrence: reminder.RecurrenceNone}
	if err := s.Create(ctx, &first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	select {
	case <-snap.started:
	case <-time.After(2 * time.Second):
		t.Fatal("upload never started")
	}

	// the upload is stuck; store operations must still finish promptly
	start := time.Now()
	for _, name := range []string{"second", "third"} {
		r := reminder.Reminder{OwnerID: alice, Name: name, FireAt: time.Now().UTC(), Timezone: "UTC", Recurrence: reminder.RecurrenceNone}
		if err := s.Create(ctx, &r); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}
	rows, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("rows = %d, want 3", len(rows))
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("store operations took %v behind a pending upload", elapsed)
	}

	close(snap.release)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunSnapshots did not return")
	}

	snap.mu.Lock()
	defer snap.mu.Unlock()
	// the two queued copies coalesce into one upload of the newest file
	if len(snap.names) != 2 {
		t.Errorf("uploads = %d, want 2", len(snap.names))
	}
	if !strings.Contains(string(snap.last), "third") {
		t.Errorf("last upload = %q, want newest file", snap.last)
	}
}

func TestReminderStore_RunSnapshotsWithoutSnapshotter(t *testing.T) {
	s := newStore(t)
	done := make(chan struct{})
	go func() {
		s.RunSnapshots(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSnapshots() blocked without a snapshotter")
	}
}

func TestReminderStore_ConcurrentCreates(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := reminder.Reminder{OwnerID: alice, Name: "n", FireAt: time.Now().UTC(), Timezone: "UTC", Recurrence: reminder.RecurrenceNone}
			if err := s.Create(ctx, &r); err != nil {
				t.Errorf("Create() error = %v", err)
			}
		}()
	}
	wg.Wait()

	rows, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(rows) != 20 {
		t.Fatalf("rows = %d, want 20", len(rows))
	}
	seen := make(map[int64]bool)
	for _, r := range rows {
		if seen[r.ID] {
			t.Errorf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestReminderStore_SkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.csv")
	content := "id,user_id,name,remind_utc,tz,details,freq\n" +
		"1,111,ok,2025-06-15T13:00:00+00:00,UTC,,none\n" +
		"two,111,bad id,2025-06-15T13:00:00Z,UTC,,none\n" +
		"3,111,bad time,someday,UTC,,none\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewReminderStore(path)
	if err != nil {
		t.Fatalf("NewReminderStore() error = %v", err)
	}
	rows, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Errorf("GetAll() = %+v, want only id 1", rows)
	}
}
