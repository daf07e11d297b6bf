// Package store holds the latest derived floor listings. There is no
// persistence: each fetch replaces the snapshot wholesale and a failed
// fetch leaves the previous one in place.
package store

import (
	"sync"
	"time"

	"epiroom-backend/internal/floorplan"
	"epiroom-backend/internal/model"
)

// Snapshot is the mutex-guarded current state of the dashboard.
type Snapshot struct {
	mu        sync.RWMutex
	listings  []model.FloorListing
	fetchedAt time.Time
}

// New creates an empty snapshot. Current returns ok=false until the
// first Replace.
func New() *Snapshot {
	return &Snapshot{}
}

// Replace swaps in freshly aggregated listings. Concurrent replaces are
// not sequenced; the last one wins.
func (s *Snapshot) Replace(listings []model.FloorListing, fetchedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = listings
	s.fetchedAt = fetchedAt
}

// Reclassify patches status and next-reservation in place from the
// reservations already held, without re-fetching.
func (s *Snapshot) Reclassify(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	floorplan.Reclassify(s.listings, now)
}

// Current returns a copy of the latest listings safe to encode outside
// the lock. ok is false before the first successful fetch.
func (s *Snapshot) Current() (listings []model.FloorListing, fetchedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listings == nil {
		return nil, time.Time{}, false
	}
	out := make([]model.FloorListing, len(s.listings))
	for i, fl := range s.listings {
		rooms := make([]model.RoomEntry, len(fl.Rooms))
		copy(rooms, fl.Rooms)
		out[i] = model.FloorListing{Floor: fl.Floor, Rooms: rooms}
	}
	return out, s.fetchedAt, true
}
