// Package worldclock keeps the pinned timezone list and the per-zone
// render state shown in the world clock view.
package worldclock

import (
	"context"
	"fmt"
	"slices"
)

// Persister writes the pinned list after every change.
type Persister interface {
	Save(ctx context.Context, zones []string) error
}

// Store is an ordered, duplicate-free list of pinned zone identifiers.
// It is not safe for concurrent use.
type Store struct {
	zones     []string
	persister Persister
}

// NewStore creates a Store from a loaded list. Later duplicates are dropped.
func NewStore(zones []string, persister Persister) *Store {
	store := &Store{persister: persister, zones: []string{}}
	for _, zone := range zones {
		if !slices.Contains(store.zones, zone) {
			store.zones = append(store.zones, zone)
		}
	}
	return store
}

// Pin appends zone and persists. Pinning a present zone is a no-op.
// On a persistence failure the list is left as it was.
func (store *Store) Pin(ctx context.Context, zone string) (bool, error) {
	if slices.Contains(store.zones, zone) {
		return false, nil
	}
	previous := store.zones
	store.zones = append(slices.Clone(store.zones), zone)
	if err := store.persist(ctx); err != nil {
		store.zones = previous
		return false, fmt.Errorf("pin %s: %w", zone, err)
	}
	return true, nil
}

// Unpin removes zone and persists. Unpinning an absent zone is a no-op.
// On a persistence failure the list is left as it was.
func (store *Store) Unpin(ctx context.Context, zone string) (bool, error) {
	index := slices.Index(store.zones, zone)
	if index < 0 {
		return false, nil
	}
	previous := store.zones
	store.zones = slices.Delete(slices.Clone(store.zones), index, index+1)
	if err := store.persist(ctx); err != nil {
		store.zones = previous
		return false, fmt.Errorf("unpin %s: %w", zone, err)
	}
	return true, nil
}

// Contains reports whether zone is pinned.
func (store *Store) Contains(zone string) bool {
	return slices.Contains(store.zones, zone)
}

// Zones returns the pinned identifiers in pin order.
func (store *Store) Zones() []string {
	return slices.Clone(store.zones)
}

func (store *Store) persist(ctx context.Context) error {
	if store.persister == nil {
		return nil
	}
	return store.persister.Save(ctx, store.Zones())
}
