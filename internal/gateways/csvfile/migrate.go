package csvfile

import (
	"fmt"
	"log/slog"
	"os"
)

const legacyTimeColumn = "remind_time"

// MigrateLegacy rewrites a reminders file that still uses the single remind_time column.
// Times are taken as UTC and the zone defaults to UTC. Files already in the current
// layout are left untouched, so calling it again is a no-op. It returns the number of
// rows converted.
func MigrateLegacy(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open reminders file: %w", err)
	}
	records, err := readRecords(file)
	file.Close()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	cols := columnIndex(records[0])
	if _, legacy := cols[legacyTimeColumn]; !legacy {
		return 0, nil
	}

	migrated := make([][]string, 0, len(records))
	migrated = append(migrated, Header)
	for _, record := range records[1:] {
		freq := field(cols, record, "freq")
		if freq == "" {
			freq = "none"
		}
		migrated = append(migrated, []string{
			field(cols, record, "id"),
			field(cols, record, "user_id"),
			field(cols, record, "name"),
			field(cols, record, legacyTimeColumn),
			"UTC",
			field(cols, record, "details"),
			freq,
		})
	}

	data, err := encodeRecords(migrated)
	if err != nil {
		return 0, err
	}
	if err := replaceFile(path, data); err != nil {
		return 0, err
	}

	slog.Info("Migrated legacy reminders file",
		slog.String("type", "sys"),
		slog.String("path", path),
		slog.Int("rows", len(migrated)-1))
	return len(migrated) - 1, nil
}
