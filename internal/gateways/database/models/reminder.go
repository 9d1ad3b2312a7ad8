package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Reminder struct {
	bun.BaseModel `bun:"table:reminders,alias:rm"`

	ID         int64     `bun:"id,pk"`
	OwnerID    string    `bun:"owner_id,notnull"`
	Name       string    `bun:"name,notnull"`
	FireAt     time.Time `bun:"fire_at,notnull"`
	Timezone   string    `bun:"timezone,notnull"`
	Details    string    `bun:"details,notnull"`
	Recurrence string    `bun:"recurrence,notnull"`
}

// ReminderColumns is the column order used for bulk copies.
var ReminderColumns = []string{"id", "owner_id", "name", "fire_at", "timezone", "details", "recurrence"}
