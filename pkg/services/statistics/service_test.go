package statistics

import (
	"context"
	"testing"

	"github.com/pipsbluff/pipsbluff/pkg/entities"
	roundRepo "github.com/pipsbluff/pipsbluff/pkg/repositories/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seed struct {
	category string
	score    int
}

func save(t *testing.T, repo roundRepo.Repository, username string, rounds []seed) {
	t.Helper()
	for _, r := range rounds {
		err := repo.SaveResult(context.Background(), &entities.RoundResult{
			Username: username,
			Category: r.category,
			Score:    r.score,
		})
		require.NoError(t, err)
	}
}

func TestGetPlayerStats(t *testing.T) {
	repo := roundRepo.NewMemoryRepository()
	service := NewService(repo)

	save(t, repo, "tuco", []seed{
		{"High Card", 10},
		{"Full House", 70},
		{"One Pair", 20},
		{"One Pair", 20},
	})
	save(t, repo, "blondie", []seed{{"Royal Flush", 100}})

	stats, err := service.GetPlayerStats(context.Background(), "tuco")
	require.NoError(t, err)

	assert.Equal(t, "tuco", stats.Username)
	assert.Equal(t, 4, stats.RoundsPlayed)
	assert.Equal(t, 120, stats.TotalScore)
	assert.InDelta(t, 30.0, stats.AverageScore, 0.001)
	assert.Equal(t, "Full House", stats.BestCategory)
	assert.Equal(t, 70, stats.BestScore)
	assert.Equal(t, 2, stats.CategoryCounts["One Pair"])
}

func TestGetPlayerStatsNoHistory(t *testing.T) {
	service := NewService(roundRepo.NewMemoryRepository())

	stats, err := service.GetPlayerStats(context.Background(), "nobody")
	require.NoError(t, err)

	assert.Equal(t, 0, stats.RoundsPlayed)
	assert.Equal(t, 0.0, stats.AverageScore)
}

func TestGetLeaderboard(t *testing.T) {
	repo := roundRepo.NewMemoryRepository()
	service := NewService(repo)

	save(t, repo, "tuco", []seed{{"One Pair", 20}, {"Two Pair", 30}})
	save(t, repo, "blondie", []seed{{"Royal Flush", 100}})
	save(t, repo, "angeleyes", []seed{{"High Card", 10}})

	leaderboard, err := service.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, leaderboard, 3)

	assert.Equal(t, "blondie", leaderboard[0].Username)
	assert.Equal(t, "tuco", leaderboard[1].Username)
	assert.Equal(t, "angeleyes", leaderboard[2].Username)

	// Limit truncates
	top, err := service.GetLeaderboard(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "blondie", top[0].Username)
}
