package workouts

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/2beens/liftlog/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// SeriesCache holds computed e1RM series per user and exercise.
// Every key embeds the user's generation; bumping it after a workout
// mutation makes all of that user's cached series unreachable.
type SeriesCache struct {
	cache          *freecache.Cache
	ttlSeconds     int
	generations    atomic.Uint64
	metricsManager *metrics.Manager
}

func NewSeriesCache(sizeMB, ttlSeconds int, metricsManager *metrics.Manager) *SeriesCache {
	return &SeriesCache{
		cache:          freecache.NewCache(sizeMB * megabyte),
		ttlSeconds:     ttlSeconds,
		metricsManager: metricsManager,
	}
}

func generationKey(userID string) []byte {
	return []byte("gen|" + userID)
}

// generation returns the current generation of the user. An evicted or never
// seen generation is replaced by a fresh process wide one, so stale entries
// can never be matched again.
func (c *SeriesCache) generation(userID string) uint64 {
	if raw, err := c.cache.Get(generationKey(userID)); err == nil && len(raw) == 8 {
		return binary.BigEndian.Uint64(raw)
	}
	return c.setGeneration(userID)
}

func (c *SeriesCache) setGeneration(userID string) uint64 {
	gen := c.generations.Add(1)
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, gen)
	if err := c.cache.Set(generationKey(userID), raw, 0); err != nil {
		log.Errorf("e1rm series cache, set generation: %s", err)
	}
	return gen
}

// Invalidate drops every cached series of the user.
func (c *SeriesCache) Invalidate(userID string) {
	c.setGeneration(userID)
}

func seriesKey(userID string, generation uint64, exercise string) []byte {
	return []byte(fmt.Sprintf("e1rm|%s|%d|%s", userID, generation, exercise))
}

func (c *SeriesCache) observe(result string) {
	if c.metricsManager != nil {
		c.metricsManager.CounterE1RMCache.WithLabelValues(result).Inc()
	}
}

// Get returns the cached series and the generation it was looked up with.
// Put must be given that same generation.
func (c *SeriesCache) Get(userID, exercise string) ([]E1RMPoint, uint64, bool) {
	gen := c.generation(userID)
	raw, err := c.cache.Get(seriesKey(userID, gen, exercise))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("e1rm series cache, get: %s", err)
		}
		c.observe("miss")
		return nil, gen, false
	}

	var points []E1RMPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		log.Errorf("e1rm series cache, unmarshal: %s", err)
		c.observe("miss")
		return nil, gen, false
	}

	c.observe("hit")
	return points, gen, true
}

func (c *SeriesCache) Put(userID string, generation uint64, exercise string, points []E1RMPoint) {
	raw, err := json.Marshal(points)
	if err != nil {
		log.Errorf("e1rm series cache, marshal: %s", err)
		return
	}
	if err := c.cache.Set(seriesKey(userID, generation, exercise), raw, c.ttlSeconds); err != nil {
		log.Errorf("e1rm series cache, set: %s", err)
	}
}
