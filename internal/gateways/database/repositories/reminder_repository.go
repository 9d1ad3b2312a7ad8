package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/internal/domain/logger"
	"github.com/ellavondegurechaff/hearth/internal/domain/reminder"
	"github.com/ellavondegurechaff/hearth/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type reminderRepository struct {
	db *bun.DB
}

// NewReminderRepository stores reminders in the PostgreSQL reminders table.
func NewReminderRepository(db *bun.DB) reminder.Repository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) GetAll(ctx context.Context) ([]reminder.Reminder, error) {
	ql := logger.NewQueryLogger("reminders.get_all")
	var rows []*models.Reminder
	if err := r.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, ql.Done(fmt.Errorf("failed to select reminders: %w", err), 0)
	}
	ql.Done(nil, len(rows))
	return toDomainList(rows), nil
}

func (r *reminderRepository) Create(ctx context.Context, rem *reminder.Reminder) error {
	ql := logger.NewQueryLogger("reminders.create", slog.String("owner_id", rem.OwnerID.String()))
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// ids are max+1, so concurrent creators must not read the same max
		if _, err := tx.ExecContext(ctx, "LOCK TABLE reminders IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return fmt.Errorf("failed to lock reminders: %w", err)
		}

		var maxID int64
		if err := tx.NewSelect().
			Model((*models.Reminder)(nil)).
			ColumnExpr("COALESCE(MAX(id), 0)").
			Scan(ctx, &maxID); err != nil {
			return fmt.Errorf("failed to read max reminder id: %w", err)
		}

		rem.ID = maxID + 1
		rem.FireAt = rem.FireAt.UTC()
		if _, err := tx.NewInsert().Model(fromDomain(*rem)).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert reminder: %w", err)
		}
		return nil
	})
	return ql.Done(err, 1)
}

func (r *reminderRepository) DeleteOwned(ctx context.Context, ownerID snowflake.ID, id int64) (reminder.Reminder, error) {
	ql := logger.NewQueryLogger("reminders.delete_owned", slog.Int64("reminder_id", id))
	var removed reminder.Reminder
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := new(models.Reminder)
		err := selectOwned(tx.NewSelect().Model(row), ownerID, id).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return reminder.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to select reminder: %w", err)
		}

		if _, err := tx.NewDelete().Model(row).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete reminder: %w", err)
		}

		removed, err = toDomain(row)
		return err
	})
	if errors.Is(err, reminder.ErrNotFound) {
		ql.Done(nil, 0)
		return removed, err
	}
	return removed, ql.Done(err, 1)
}

func (r *reminderRepository) Update(ctx context.Context, fn reminder.UpdateFunc) error {
	ql := logger.NewQueryLogger("reminders.update")
	var written int
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var rows []*models.Reminder
		if err := tx.NewSelect().Model(&rows).Order("id ASC").For("UPDATE").Scan(ctx); err != nil {
			return fmt.Errorf("failed to select reminders: %w", err)
		}

		current := toDomainList(rows)
		next, changed := fn(current)
		if !changed {
			return nil
		}

		diff := diffReminders(current, next)
		for _, rem := range diff.inserts {
			if _, err := tx.NewInsert().Model(fromDomain(rem)).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert reminder %d: %w", rem.ID, err)
			}
		}
		for _, rem := range diff.updates {
			if _, err := tx.NewUpdate().Model(fromDomain(rem)).WherePK().Exec(ctx); err != nil {
				return fmt.Errorf("failed to update reminder %d: %w", rem.ID, err)
			}
		}
		if len(diff.deletes) > 0 {
			if _, err := tx.NewDelete().
				Model((*models.Reminder)(nil)).
				Where("id IN (?)", bun.In(diff.deletes)).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to delete reminders: %w", err)
			}
		}
		written = diff.size()
		return nil
	})
	return ql.Done(err, written)
}

// selectOwned narrows q to the reminder with id that belongs to ownerID and
// locks it for the rest of the transaction.
func selectOwned(q *bun.SelectQuery, ownerID snowflake.ID, id int64) *bun.SelectQuery {
	return q.Where("id = ? AND owner_id = ?", id, ownerID.String()).For("UPDATE")
}

type reminderDiff struct {
	inserts []reminder.Reminder
	updates []reminder.Reminder
	deletes []int64
}

func (d reminderDiff) size() int {
	return len(d.inserts) + len(d.updates) + len(d.deletes)
}

// diffReminders lists the writes that turn before into after. Deleted ids are
// sorted.
func diffReminders(before, after []reminder.Reminder) reminderDiff {
	remaining := make(map[int64]reminder.Reminder, len(before))
	for _, rem := range before {
		remaining[rem.ID] = rem
	}

	var d reminderDiff
	for _, rem := range after {
		old, existed := remaining[rem.ID]
		delete(remaining, rem.ID)
		switch {
		case !existed:
			d.inserts = append(d.inserts, rem)
		case old != rem:
			d.updates = append(d.updates, rem)
		}
	}
	for id := range remaining {
		d.deletes = append(d.deletes, id)
	}
	slices.Sort(d.deletes)
	return d
}

func fromDomain(rem reminder.Reminder) *models.Reminder {
	return &models.Reminder{
		ID:         rem.ID,
		OwnerID:    rem.OwnerID.String(),
		Name:       rem.Name,
		FireAt:     rem.FireAt.UTC(),
		Timezone:   rem.Timezone,
		Details:    rem.Details,
		Recurrence: string(rem.Recurrence),
	}
}

func toDomain(row *models.Reminder) (reminder.Reminder, error) {
	owner, err := snowflake.Parse(row.OwnerID)
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder %d has invalid owner: %w", row.ID, err)
	}
	recurrence, err := reminder.ParseRecurrence(row.Recurrence)
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder %d: %w", row.ID, err)
	}
	return reminder.Reminder{
		ID:         row.ID,
		OwnerID:    owner,
		Name:       row.Name,
		FireAt:     row.FireAt.UTC(),
		Timezone:   row.Timezone,
		Details:    row.Details,
		Recurrence: recurrence,
	}, nil
}

// toDomainList converts rows and skips the ones that cannot be read, so one
// broken row does not stop the scheduler.
func toDomainList(rows []*models.Reminder) []reminder.Reminder {
	out := make([]reminder.Reminder, 0, len(rows))
	for _, row := range rows {
		rem, err := toDomain(row)
		if err != nil {
			slog.Warn("Skipping unreadable reminder row",
				slog.String("type", "db"),
				slog.Int64("reminder_id", row.ID),
				slog.Any("error", err))
			continue
		}
		out = append(out, rem)
	}
	return out
}
