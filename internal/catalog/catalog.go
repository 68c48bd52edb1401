// Package catalog keeps the package-name menu used by the bookings and
// packages pages.
package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tourismBooking/models"
)

// Entry is what the menu needs to know about one package.
type Entry struct {
	ID    int64   `json:"package_id"`
	Price float64 `json:"price"`
}

// Snapshot is an immutable copy of the catalog.
type Snapshot struct {
	Names    []string         `json:"names"`
	Packages map[string]Entry `json:"packages"`
	LoadedAt time.Time        `json:"loaded_at"`
}

// LoadFunc reads every tour package from the datastore.
type LoadFunc func(ctx context.Context) ([]models.TourPackage, error)

// Catalog is a thread-safe cache of name -> (id, price). Get serves the
// cached copy while it is younger than the TTL; concurrent refreshes share
// a single load.
type Catalog struct {
	load LoadFunc
	ttl  time.Duration
	now  func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	snap    *Snapshot
	started uint64 // loads begun
	stored  uint64 // sequence of the cached snapshot or of the last Invalidate
}

const flightKey = "packages"

func New(load LoadFunc, ttl time.Duration) *Catalog {
	return &Catalog{load: load, ttl: ttl, now: time.Now}
}

// Refresh reloads the catalog unconditionally. It never joins a load that
// was already running, since that one may have read the table before the
// caller's write committed.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.group.Forget(flightKey)
	_, err := c.refresh(ctx)
	return err
}

// Get returns the current snapshot, reloading it first when it is missing,
// invalidated or older than the TTL. If the reload fails the previous
// snapshot (possibly empty) is returned together with the error.
func (c *Catalog) Get(ctx context.Context) (Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	if snap != nil && (c.ttl <= 0 || c.now().Sub(snap.LoadedAt) < c.ttl) {
		return *snap, nil
	}
	fresh, err := c.refresh(ctx)
	if err != nil {
		if snap != nil {
			return *snap, err
		}
		return Snapshot{Packages: map[string]Entry{}}, err
	}
	return *fresh, nil
}

// Invalidate drops the cached copy; the next Get reloads. Loads already
// running when Invalidate is called are not cached.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.stored = c.started
	c.group.Forget(flightKey)
	c.mu.Unlock()
}

func (c *Catalog) refresh(ctx context.Context) (*Snapshot, error) {
	v, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		c.mu.Lock()
		c.started++
		seq := c.started
		c.mu.Unlock()

		pkgs, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		snap := &Snapshot{
			Names:    make([]string, 0, len(pkgs)),
			Packages: make(map[string]Entry, len(pkgs)),
			LoadedAt: c.now(),
		}
		for _, p := range pkgs {
			if _, dup := snap.Packages[p.Name]; !dup {
				snap.Names = append(snap.Names, p.Name)
			}
			snap.Packages[p.Name] = Entry{ID: p.ID, Price: p.Price}
		}
		// A load that started before a newer one finished, or before an
		// Invalidate, must not overwrite it.
		c.mu.Lock()
		if seq > c.stored {
			c.snap = snap
			c.stored = seq
		}
		c.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}
