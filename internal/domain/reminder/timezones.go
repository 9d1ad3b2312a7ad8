package reminder

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone data for hosts without a system tz database
)

// CommonTimezones are the zones offered by the reminder menu.
var CommonTimezones = []string{
	"UTC",
	"Europe/London",
	"Europe/Paris",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"Asia/Tokyo",
	"Asia/Shanghai",
	"Asia/Kolkata",
	"Australia/Sydney",
}

// LoadLocation resolves an IANA zone name, falling back to UTC for unknown or empty names.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseLocal interprets value (YYYY-MM-DD HH:MM) as wall time in zone and returns it in UTC.
func ParseLocal(value string, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil || zone == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownTimezone, zone)
	}

	local, err := time.ParseInLocation(DisplayLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	return local.UTC(), nil
}
