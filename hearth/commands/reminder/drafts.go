package reminder

import (
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	domain "github.com/ellavondegurechaff/hearth/internal/domain/reminder"
	lru "github.com/hashicorp/golang-lru"
)

// Selection is what a user picked in the add dialog before the form opens.
type Selection struct {
	Timezone   string
	Recurrence domain.Recurrence
	updatedAt  time.Time
}

func (s Selection) Complete() bool {
	return s.Timezone != "" && s.Recurrence != ""
}

// DraftStore keeps the in-progress selections per user in a bounded cache.
// Entries expire after ttl.
type DraftStore struct {
	mu    sync.Mutex
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewDraftStore(size int, ttl time.Duration) *DraftStore {
	cache, _ := lru.New(size)
	return &DraftStore{cache: cache, ttl: ttl, now: time.Now}
}

func (d *DraftStore) Get(userID snowflake.ID) (Selection, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.getLocked(userID)
}

func (d *DraftStore) getLocked(userID snowflake.ID) (Selection, bool) {
	v, ok := d.cache.Get(userID)
	if !ok {
		return Selection{}, false
	}
	sel := v.(Selection)
	if d.now().Sub(sel.updatedAt) > d.ttl {
		d.cache.Remove(userID)
		return Selection{}, false
	}
	return sel, true
}

// Update applies fn to the user's selection, starting from an empty one.
func (d *DraftStore) Update(userID snowflake.ID, fn func(*Selection)) Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel, _ := d.getLocked(userID)
	fn(&sel)
	sel.updatedAt = d.now()
	d.cache.Add(userID, sel)
	return sel
}

func (d *DraftStore) Reset(userID snowflake.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cache.Remove(userID)
}
