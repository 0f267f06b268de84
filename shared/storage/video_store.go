package storage

import (
	"sync"

	"history-analyzer/internal/models"
)

// VideoStore keeps one record per video ID in insertion order.
// A store belongs to a single extraction pass and is never merged with another.
type VideoStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]models.VideoRecord
}

func NewVideoStore() *VideoStore {
	return &VideoStore{
		records: make(map[string]models.VideoRecord),
	}
}

// Has reports whether a record with the given ID was already stored.
func (vs *VideoStore) Has(videoID string) bool {
	vs.mu.RLock()
	defer vs.mu.RUnlock()

	_, exists := vs.records[videoID]
	return exists
}

// Set stores a record under videoID. The first record stored for an ID wins;
// later calls with the same ID are ignored.
func (vs *VideoStore) Set(videoID string, record models.VideoRecord) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if _, exists := vs.records[videoID]; exists {
		return
	}
	vs.records[videoID] = record
	vs.order = append(vs.order, videoID)
}

// Values returns a copy of the stored records in insertion order.
func (vs *VideoStore) Values() []models.VideoRecord {
	vs.mu.RLock()
	defer vs.mu.RUnlock()

	values := make([]models.VideoRecord, 0, len(vs.order))
	for _, videoID := range vs.order {
		values = append(values, vs.records[videoID])
	}
	return values
}

func (vs *VideoStore) Len() int {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return len(vs.order)
}
