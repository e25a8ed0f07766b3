package memory

import (
	"context"
	"sync"

	"github.com/taskflow/golang_services/internal/status_tracker_service/domain"
)

// InMemoryStatusRepository is a mutex-guarded map implementation of
// StatusRepository. Suitable for tests and single-process deployments.
type InMemoryStatusRepository struct {
	mu      sync.Mutex
	records map[string]domain.DeliveryStatusRecord
}

// NewInMemoryStatusRepository creates an empty in-memory repository.
func NewInMemoryStatusRepository() *InMemoryStatusRepository {
	return &InMemoryStatusRepository{
		records: make(map[string]domain.DeliveryStatusRecord),
	}
}

// Upsert applies rec unless an existing record has a strictly later ObservedAt.
func (r *InMemoryStatusRepository) Upsert(_ context.Context, rec domain.DeliveryStatusRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[rec.MessageID]
	if ok && existing.ObservedAt.After(rec.ObservedAt) {
		return false, nil
	}
	r.records[rec.MessageID] = rec
	return true, nil
}

// Get returns the stored record for messageID, or (nil, nil) when absent.
func (r *InMemoryStatusRepository) Get(_ context.Context, messageID string) (*domain.DeliveryStatusRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[messageID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}
