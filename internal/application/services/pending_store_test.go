package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/careroute/referral-agent/internal/domain/entities"
)

func testRecommendation(id string) entities.ReferralRecommendation {
	return entities.ReferralRecommendation{
		ID:          id,
		PatientName: "John Smith",
		Specialty:   entities.SpecialtyCardiology,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPendingStore_PutAndTake(t *testing.T) {
	store := NewPendingStore(time.Minute)

	store.Put(testRecommendation("rec-1"))
	assert.Equal(t, 1, store.Len())

	rec, ok := store.Take("rec-1")
	assert.True(t, ok)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, 0, store.Len())

	// Consumed: a second take must miss.
	_, ok = store.Take("rec-1")
	assert.False(t, ok)
}

func TestPendingStore_TakeUnknownID(t *testing.T) {
	store := NewPendingStore(time.Minute)

	_, ok := store.Take("missing")
	assert.False(t, ok)
}

func TestPendingStore_Discard(t *testing.T) {
	store := NewPendingStore(time.Minute)

	store.Put(testRecommendation("rec-1"))
	assert.True(t, store.Discard("rec-1"))
	assert.False(t, store.Discard("rec-1"))

	_, ok := store.Take("rec-1")
	assert.False(t, ok)
}

// Concurrent confirmation attempts on the same ID: exactly one caller may
// win the recommendation.
func TestPendingStore_TakeIsConsumeOnce(t *testing.T) {
	store := NewPendingStore(time.Minute)
	store.Put(testRecommendation("contested"))

	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := store.Take("contested"); ok {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins)
	assert.Equal(t, 0, store.Len())
}

func TestPendingStore_Expiry(t *testing.T) {
	store := NewPendingStore(10 * time.Millisecond)

	store.Put(testRecommendation("short-lived"))
	time.Sleep(25 * time.Millisecond)

	_, ok := store.Take("short-lived")
	assert.False(t, ok)
}

func TestPendingStore_Sweep(t *testing.T) {
	store := NewPendingStore(10 * time.Millisecond)

	store.Put(testRecommendation("a"))
	store.Put(testRecommendation("b"))
	time.Sleep(25 * time.Millisecond)
	store.Put(testRecommendation("c"))

	removed := store.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())

	_, ok := store.Take("c")
	assert.True(t, ok)
}

func TestPendingStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewPendingStore(0)

	store.Put(testRecommendation("kept"))
	time.Sleep(15 * time.Millisecond)

	assert.Equal(t, 0, store.Sweep())
	_, ok := store.Take("kept")
	assert.True(t, ok)
}
