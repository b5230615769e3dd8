// Package repo contains all persistence logic for Herdbook.
// The Farm holds the six record collections in memory and writes every one
// of them to the kv store after each mutation. Each resource has its own file
// with an interface and a Farm-backed implementation.
// No business logic lives here, only storage and id/timestamp assignment.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/kvstore"
)

// Store keys, one blob per collection.
const (
	KeyGoats            = "goats"
	KeyFeedingSchedules = "feedingSchedules"
	KeyBreedingRecords  = "breedingRecords"
	KeyEquipment        = "equipment"
	KeyPastures         = "pastures"
	KeyFeedConsumption  = "feedConsumption"
)

// Keys lists every collection key in a stable order.
var Keys = []string{KeyGoats, KeyFeedingSchedules, KeyBreedingRecords, KeyEquipment, KeyPastures, KeyFeedConsumption}

// Snapshot is a point-in-time copy of all collections.
type Snapshot struct {
	Goats            []domain.Goat            `json:"goats"`
	FeedingSchedules []domain.FeedingSchedule `json:"feeding_schedules"`
	BreedingRecords  []domain.BreedingRecord  `json:"breeding_records"`
	Equipment        []domain.Equipment       `json:"equipment"`
	Pastures         []domain.Pasture         `json:"pastures"`
	FeedConsumption  []domain.FeedConsumption `json:"feed_consumption"`
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Goats:            cloneNonNil(s.Goats),
		FeedingSchedules: cloneNonNil(s.FeedingSchedules),
		BreedingRecords:  cloneNonNil(s.BreedingRecords),
		Equipment:        cloneNonNil(s.Equipment),
		Pastures:         cloneNonNil(s.Pastures),
		FeedConsumption:  cloneNonNil(s.FeedConsumption),
	}
}

// SnapshotRepo reads and replaces the whole record set at once.
// *Farm implements it.
type SnapshotRepo interface {
	Snapshot() Snapshot
	Restore(ctx context.Context, s Snapshot) error
}

var _ SnapshotRepo = (*Farm)(nil)

// Farm is the in-memory record set backed by a kvstore.Store.
// A single mutex serializes every read and write.
type Farm struct {
	store kvstore.Store
	log   *slog.Logger
	now   func() time.Time

	mu    sync.Mutex
	state Snapshot
}

// NewFarm returns an empty Farm writing to store. Call Load to read any
// previously saved collections.
func NewFarm(store kvstore.Store, log *slog.Logger) *Farm {
	if log == nil {
		log = slog.Default()
	}
	return &Farm{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		state: Snapshot{}.clone(),
	}
}

// Load reads all six collections from the store. A missing or undecodable
// blob leaves that collection empty; only store failures are returned.
func (f *Farm) Load(ctx context.Context) error {
	var next Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { next.Goats, err = loadCollection[domain.Goat](gctx, f, KeyGoats); return })
	g.Go(func() (err error) {
		next.FeedingSchedules, err = loadCollection[domain.FeedingSchedule](gctx, f, KeyFeedingSchedules)
		return
	})
	g.Go(func() (err error) {
		next.BreedingRecords, err = loadCollection[domain.BreedingRecord](gctx, f, KeyBreedingRecords)
		return
	})
	g.Go(func() (err error) {
		next.Equipment, err = loadCollection[domain.Equipment](gctx, f, KeyEquipment)
		return
	})
	g.Go(func() (err error) { next.Pastures, err = loadCollection[domain.Pasture](gctx, f, KeyPastures); return })
	g.Go(func() (err error) {
		next.FeedConsumption, err = loadCollection[domain.FeedConsumption](gctx, f, KeyFeedConsumption)
		return
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("repo.Farm.Load: %w", err)
	}

	f.mu.Lock()
	f.state = next
	f.mu.Unlock()
	return nil
}

func loadCollection[T any](ctx context.Context, f *Farm, key string) ([]T, error) {
	raw, err := f.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		f.log.WarnContext(ctx, "discarding undecodable collection", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Snapshot returns a copy of every collection.
func (f *Farm) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Restore replaces every collection with s and saves the result.
func (f *Farm) Restore(ctx context.Context, s Snapshot) error {
	return f.mutate(ctx, func(next *Snapshot) error {
		*next = s.clone()
		return nil
	})
}

// read runs fn against the live collections under the lock. fn must not
// retain or modify them.
func (f *Farm) read(fn func(s *Snapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.state)
}

// mutate runs fn against a copy of the collections and, if fn succeeds,
// saves all six and makes the copy live. A failed save leaves memory as it
// was. fn must copy nested slices before changing them.
func (f *Farm) mutate(ctx context.Context, fn func(next *Snapshot) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.state.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := f.save(ctx, next); err != nil {
		return err
	}
	f.state = next
	return nil
}

// save encodes every collection and writes them concurrently.
func (f *Farm) save(ctx context.Context, s Snapshot) error {
	blobs := make(map[string][]byte, len(Keys))
	for key, v := range map[string]any{
		KeyGoats:            s.Goats,
		KeyFeedingSchedules: s.FeedingSchedules,
		KeyBreedingRecords:  s.BreedingRecords,
		KeyEquipment:        s.Equipment,
		KeyPastures:         s.Pastures,
		KeyFeedConsumption:  s.FeedConsumption,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("repo.Farm.save: encode %s: %w", key, err)
		}
		blobs[key] = b
	}

	g, gctx := errgroup.WithContext(ctx)
	for key, b := range blobs {
		g.Go(func() error {
			if err := f.store.Put(gctx, key, b); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("repo.Farm.save: %w", err)
	}
	return nil
}

// newID returns a fresh id and creation time.
func (f *Farm) newID() (uuid.UUID, time.Time) {
	return uuid.New(), f.now()
}

func cloneNonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}

// indexOf returns the position of the item whose id matches, or -1.
func indexOf[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID) int {
	return slices.IndexFunc(items, func(it T) bool { return idOf(it) == id })
}

// without returns a new slice of items whose id differs from id, and
// whether anything was removed. The input is never modified.
func without[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out, len(out) != len(items)
}

// appendCopy appends v to a copy of s so the original backing array is
// never shared with the result.
func appendCopy[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}
