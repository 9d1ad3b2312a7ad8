package repositories

import (
	"database/sql"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/internal/domain/reminder"
	"github.com/ellavondegurechaff/hearth/internal/gateways/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

func sample(id int64, name string) reminder.Reminder {
	return reminder.Reminder{
		ID:         id,
		OwnerID:    snowflake.ID(111),
		Name:       name,
		FireAt:     time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC),
		Timezone:   "Europe/Berlin",
		Details:    "details",
		Recurrence: reminder.RecurrenceWeekly,
	}
}

func TestDomainRoundTrip(t *testing.T) {
	rem := sample(7, "standup")
	rem.FireAt = time.Date(2025, 6, 15, 15, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	row := fromDomain(rem)
	if row.OwnerID != "111" || row.Recurrence != "weekly" {
		t.Errorf("fromDomain() = %+v", row)
	}
	if row.FireAt.Location() != time.UTC {
		t.Errorf("fromDomain() FireAt location = %v, want UTC", row.FireAt.Location())
	}

	got, err := toDomain(row)
	if err != nil {
		t.Fatalf("toDomain() error = %v", err)
	}
	if !got.FireAt.Equal(rem.FireAt) {
		t.Errorf("FireAt = %v, want %v", got.FireAt, rem.FireAt)
	}
	got.FireAt, rem.FireAt = time.Time{}, time.Time{}
	if got != rem {
		t.Errorf("toDomain(fromDomain()) = %+v, want %+v", got, rem)
	}
}

func TestToDomainList_SkipsUnreadableRows(t *testing.T) {
	good := fromDomain(sample(1, "good"))
	badOwner := fromDomain(sample(2, "bad owner"))
	badOwner.OwnerID = "not-a-snowflake"
	badRecurrence := fromDomain(sample(3, "bad recurrence"))
	badRecurrence.Recurrence = "fortnightly"
	blank := fromDomain(sample(4, "blank recurrence"))
	blank.Recurrence = ""

	got := toDomainList([]*models.Reminder{good, badOwner, badRecurrence, blank})
	if len(got) != 2 {
		t.Fatalf("toDomainList() = %d rows, want 2", len(got))
	}
	if got[0].Name != "good" || got[1].Name != "blank recurrence" {
		t.Errorf("toDomainList() names = %q, %q", got[0].Name, got[1].Name)
	}
	if got[1].Recurrence != reminder.RecurrenceNone {
		t.Errorf("blank recurrence = %q, want none", got[1].Recurrence)
	}
}

func TestDiffReminders(t *testing.T) {
	before := []reminder.Reminder{sample(1, "kept"), sample(2, "moved"), sample(3, "fired"), sample(4, "also fired")}

	moved := sample(2, "moved")
	moved.FireAt = moved.Recurrence.Next(moved.FireAt)
	added := sample(5, "added")
	after := []reminder.Reminder{sample(1, "kept"), moved, added}

	d := diffReminders(before, after)
	if !reflect.DeepEqual(d.inserts, []reminder.Reminder{added}) {
		t.Errorf("inserts = %+v", d.inserts)
	}
	if !reflect.DeepEqual(d.updates, []reminder.Reminder{moved}) {
		t.Errorf("updates = %+v", d.updates)
	}
	if !reflect.DeepEqual(d.deletes, []int64{3, 4}) {
		t.Errorf("deletes = %v, want [3 4]", d.deletes)
	}
	if d.size() != 4 {
		t.Errorf("size() = %d, want 4", d.size())
	}

	if d := diffReminders(before, before); d.size() != 0 {
		t.Errorf("diff of identical lists = %+v, want empty", d)
	}
}

func TestSelectOwned(t *testing.T) {
	// the connector is lazy, so no server is needed to render queries
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN("postgres://hearth@localhost:5432/hearth?sslmode=disable")))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { db.Close() })

	query := selectOwned(db.NewSelect().Model((*models.Reminder)(nil)), snowflake.ID(111), 7).String()
	for _, want := range []string{`"reminders"`, "id = 7 AND owner_id = '111'", "FOR UPDATE"} {
		if !strings.Contains(query, want) {
			t.Errorf("query %q does not contain %q", query, want)
		}
	}
}
