package reminder

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// UpdateFunc receives every stored reminder and returns the new set. The bool reports
// whether anything changed; when false the store is left untouched.
type UpdateFunc func(rows []Reminder) ([]Reminder, bool)

type Repository interface {
	GetAll(ctx context.Context) ([]Reminder, error)
	// Create assigns the next sequential ID (max existing + 1, or 1) and stores r.
	Create(ctx context.Context, r *Reminder) error
	// DeleteOwned removes the reminder only if ownerID owns it, returning ErrNotFound otherwise.
	DeleteOwned(ctx context.Context, ownerID snowflake.ID, id int64) (Reminder, error)
	// Update runs fn as a single read-modify-write.
	Update(ctx context.Context, fn UpdateFunc) error
}

// NextID returns max(id)+1, or 1 for an empty set.
func NextID(rows []Reminder) int64 {
	var maxID int64
	for _, r := range rows {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}
