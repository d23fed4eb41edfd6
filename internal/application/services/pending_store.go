package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/careroute/referral-agent/internal/domain/entities"
)

type pendingEntry struct {
	recommendation entities.ReferralRecommendation
	storedAt       time.Time
}

// PendingStore holds referral recommendations awaiting confirmation. Entries
// are keyed by recommendation ID and live until confirmed, discarded, or
// expired by the TTL. Take is consume-once: under concurrent confirmation
// attempts exactly one caller receives the recommendation.
type PendingStore struct {
	mu      sync.RWMutex
	entries map[string]pendingEntry
	ttl     time.Duration
}

// NewPendingStore creates an empty store. A zero or negative ttl disables
// expiry.
func NewPendingStore(ttl time.Duration) *PendingStore {
	return &PendingStore{
		entries: make(map[string]pendingEntry),
		ttl:     ttl,
	}
}

// Put registers a recommendation under its ID, replacing any previous entry
// with the same ID.
func (s *PendingStore) Put(rec entities.ReferralRecommendation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[rec.ID] = pendingEntry{recommendation: rec, storedAt: time.Now()}
}

// Take atomically removes and returns the recommendation with the given ID.
// It returns false when the ID is unknown, already consumed, or expired.
func (s *PendingStore) Take(id string) (entities.ReferralRecommendation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return entities.ReferralRecommendation{}, false
	}
	delete(s.entries, id)
	if s.expired(entry, time.Now()) {
		return entities.ReferralRecommendation{}, false
	}
	return entry.recommendation, true
}

// Discard removes the recommendation with the given ID without returning
// it. It reports whether a live entry was removed.
func (s *PendingStore) Discard(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return false
	}
	delete(s.entries, id)
	return !s.expired(entry, time.Now())
}

// Len returns the number of stored entries, including any not yet swept.
func (s *PendingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes expired entries and returns how many were dropped.
func (s *PendingStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, entry := range s.entries {
		if s.expired(entry, now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired entries on the given interval until the
// context is cancelled.
func (s *PendingStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					log.Debug().Int("removed", removed).Msg("Swept expired pending recommendations")
				}
			}
		}
	}()
}

func (s *PendingStore) expired(entry pendingEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.storedAt) > s.ttl
}
