package reminder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

const MaxNameLength = 100

type Service struct {
	repository Repository
	now        func() time.Time
}

func NewService(repository Repository) *Service {
	return &Service{
		repository: repository,
		now:        time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates a draft, converts its local time to UTC and stores it.
func (s *Service) Create(ctx context.Context, d Draft) (Reminder, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Reminder{}, ErrEmptyName
	}
	if len([]rune(name)) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}

	recurrence, err := ParseRecurrence(string(d.Recurrence))
	if err != nil {
		return Reminder{}, err
	}

	fireAt, err := ParseLocal(d.When, d.Timezone)
	if err != nil {
		return Reminder{}, err
	}

	r := Reminder{
		OwnerID:    d.OwnerID,
		Name:       name,
		FireAt:     fireAt,
		Timezone:   d.Timezone,
		Details:    strings.TrimSpace(d.Details),
		Recurrence: recurrence,
	}
	if err := s.repository.Create(ctx, &r); err != nil {
		return Reminder{}, fmt.Errorf("failed to store reminder: %w", err)
	}
	return r, nil
}

// Upcoming lists the owner's reminders that have not fired yet, soonest first.
func (s *Service) Upcoming(ctx context.Context, ownerID snowflake.ID) ([]Reminder, error) {
	rows, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	now := s.now().UTC()
	upcoming := make([]Reminder, 0, len(rows))
	for _, r := range rows {
		if r.OwnerID != ownerID || r.FireAt.Before(now) {
			continue
		}
		upcoming = append(upcoming, r)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].FireAt.Before(upcoming[j].FireAt)
	})
	return upcoming, nil
}

// Delete removes a reminder by id, scoped to its owner.
func (s *Service) Delete(ctx context.Context, ownerID snowflake.ID, id int64) (Reminder, error) {
	return s.repository.DeleteOwned(ctx, ownerID, id)
}
