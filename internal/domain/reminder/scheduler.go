package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultInterval = time.Minute
	deliveryTimeout = 15 * time.Second
)

// Notifier delivers a fired reminder to its owner.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

type TickResult struct {
	Fired       int
	Failed      int
	Removed     int
	Rescheduled int
}

// Scheduler polls the repository and fires due reminders.
type Scheduler struct {
	repository Repository
	notifier   Notifier
	interval   time.Duration
	now        func() time.Time
}

func NewScheduler(repository Repository, notifier Notifier, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		repository: repository,
		notifier:   notifier,
		interval:   interval,
		now:        time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Run ticks once immediately and then on every interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runTick(ctx)
	for {
		select {
		case <-ticker.C:
			s.runTick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runTick(ctx context.Context) {
	result, err := s.Tick(ctx)
	if err != nil {
		slog.Error("Reminder tick failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		return
	}
	if result.Fired+result.Failed > 0 {
		slog.Info("Reminder tick completed",
			slog.String("type", "sys"),
			slog.Int("fired", result.Fired),
			slog.Int("failed", result.Failed),
			slog.Int("removed", result.Removed),
			slog.Int("rescheduled", result.Rescheduled))
	}
}

// Tick fires every due reminder once, then removes one-shot reminders and advances
// recurring ones by a single period from their stored fire time.
func (s *Scheduler) Tick(ctx context.Context) (TickResult, error) {
	var result TickResult

	rows, err := s.repository.GetAll(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load reminders: %w", err)
	}

	now := s.now().UTC()
	fired := make(map[int64]time.Time)
	for _, r := range rows {
		if !r.Due(now) {
			continue
		}
		fired[r.ID] = r.FireAt

		deliverCtx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		err := s.notifier.Notify(deliverCtx, r)
		cancel()
		if err != nil {
			result.Failed++
			slog.Warn("Failed to deliver reminder",
				slog.String("type", "sys"),
				slog.Int64("reminder_id", r.ID),
				slog.String("owner_id", r.OwnerID.String()),
				slog.Any("error", err))
			continue
		}
		result.Fired++
	}

	if len(fired) == 0 {
		return result, nil
	}

	err = s.repository.Update(ctx, func(current []Reminder) ([]Reminder, bool) {
		kept := make([]Reminder, 0, len(current))
		changed := false
		for _, r := range current {
			at, ok := fired[r.ID]
			// a reminder edited or replaced since it was read is left alone
			if !ok || !at.Equal(r.FireAt) {
				kept = append(kept, r)
				continue
			}
			changed = true
			if !r.Recurrence.Repeats() {
				result.Removed++
				continue
			}
			r.FireAt = r.Recurrence.Next(r.FireAt)
			result.Rescheduled++
			kept = append(kept, r)
		}
		return kept, changed
	})
	if err != nil {
		return result, fmt.Errorf("failed to save reminders: %w", err)
	}
	return result, nil
}

// FormatNotification renders the direct message sent when r fires.
func FormatNotification(r Reminder) string {
	return fmt.Sprintf("⏰ **%s**\nWhen: %s (%s)\nDetails: %s", r.Name, r.LocalString(), r.Timezone, r.Details)
}
