package reminder

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// DisplayLayout is the layout users type dates in and the layout reminders are shown with.
const DisplayLayout = "2006-01-02 15:04"

type Reminder struct {
	ID         int64
	OwnerID    snowflake.ID
	Name       string
	FireAt     time.Time // always UTC
	Timezone   string
	Details    string
	Recurrence Recurrence
}

// Due reports whether the reminder should fire at now.
func (r Reminder) Due(now time.Time) bool {
	return !r.FireAt.After(now.UTC())
}

// Local returns the fire time in the reminder's own zone. Unknown zones fall back to UTC.
func (r Reminder) Local() time.Time {
	return r.FireAt.In(LoadLocation(r.Timezone))
}

// LocalString formats the fire time for display, e.g. "2025-06-15 09:00".
func (r Reminder) LocalString() string {
	return r.Local().Format(DisplayLayout)
}

// Draft holds what the interaction flow collects before a reminder is created.
type Draft struct {
	OwnerID    snowflake.ID
	Name       string
	When       string
	Timezone   string
	Details    string
	Recurrence Recurrence
}
