package round

import (
	"context"

	"github.com/pipsbluff/pipsbluff/pkg/entities"
)

// Repository defines the interface for round-result history operations
type Repository interface {
	// SaveResult records a resolved round
	SaveResult(ctx context.Context, result *entities.RoundResult) error

	// GetPlayerResults retrieves the most recent results for a player
	GetPlayerResults(ctx context.Context, username string, limit int) ([]*entities.RoundResult, error)

	// GetAllResults retrieves the most recent results across players
	GetAllResults(ctx context.Context, limit int) ([]*entities.RoundResult, error)
}
