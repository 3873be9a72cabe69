package round

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pipsbluff/pipsbluff/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	results []*entities.RoundResult
	mu      sync.RWMutex
}

// NewMemoryRepository creates a new in-memory round repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		results: make([]*entities.RoundResult, 0),
	}
}

// SaveResult records a resolved round
func (r *MemoryRepository) SaveResult(ctx context.Context, result *entities.RoundResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}

	resultCopy := *result
	r.results = append(r.results, &resultCopy)
	return nil
}

// GetPlayerResults retrieves the most recent results for a player
func (r *MemoryRepository) GetPlayerResults(ctx context.Context, username string, limit int) ([]*entities.RoundResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]*entities.RoundResult, 0, limit)
	for i := len(r.results) - 1; i >= 0 && (limit <= 0 || len(filtered) < limit); i-- {
		if r.results[i].Username == username {
			resultCopy := *r.results[i]
			filtered = append(filtered, &resultCopy)
		}
	}
	return filtered, nil
}

// GetAllResults retrieves the most recent results across players
func (r *MemoryRepository) GetAllResults(ctx context.Context, limit int) ([]*entities.RoundResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entities.RoundResult, 0, len(r.results))
	for i := len(r.results) - 1; i >= 0 && (limit <= 0 || len(all) < limit); i-- {
		resultCopy := *r.results[i]
		all = append(all, &resultCopy)
	}
	return all, nil
}
