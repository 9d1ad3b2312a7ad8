package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/hearth/internal/domain/reminder"
)

type reminderSource interface {
	GetAll(ctx context.Context) ([]reminder.Reminder, error)
}

type reminderCopier interface {
	CopyReminders(ctx context.Context, rows [][]any) (int64, error)
}

// Importer bulk copies reminders from one store into the PostgreSQL table.
type Importer struct {
	source    reminderSource
	dest      reminderCopier
	batchSize int
}

func NewImporter(source reminderSource, dest reminderCopier) *Importer {
	return &Importer{source: source, dest: dest, batchSize: 1000}
}

// SetBatchSize overrides the number of rows sent per COPY.
func (i *Importer) SetBatchSize(size int) {
	if size > 0 {
		i.batchSize = size
	}
}

func (i *Importer) Run(ctx context.Context) (int64, error) {
	start := time.Now()
	reminders, err := i.source.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read reminders: %w", err)
	}

	var total int64
	for from := 0; from < len(reminders); from += i.batchSize {
		to := min(from+i.batchSize, len(reminders))
		n, err := i.dest.CopyReminders(ctx, ToRows(reminders[from:to]))
		if err != nil {
			return total, fmt.Errorf("failed to copy rows %d-%d: %w", from+1, to, err)
		}
		total += n
	}

	slog.Info("Imported reminders",
		slog.String("type", "db"),
		slog.Int64("rows", total),
		slog.Duration("took", time.Since(start)),
	)
	return total, nil
}

// ToRows maps reminders onto the reminders table columns.
func ToRows(reminders []reminder.Reminder) [][]any {
	rows := make([][]any, 0, len(reminders))
	for _, r := range reminders {
		rows = append(rows, []any{
			r.ID,
			r.OwnerID.String(),
			r.Name,
			r.FireAt.UTC(),
			r.Timezone,
			r.Details,
			string(r.Recurrence),
		})
	}
	return rows
}
