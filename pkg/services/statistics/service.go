package statistics

import (
	"context"
	"sort"

	roundRepo "github.com/pipsbluff/pipsbluff/pkg/repositories/round"
)

// historyWindow bounds how many recent rounds feed the aggregates.
const historyWindow = 1000

// Service provides methods for retrieving and processing player statistics
type Service struct {
	repository roundRepo.Repository
}

// NewService creates a new statistics service
func NewService(repository roundRepo.Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// PlayerStats aggregates a player's round history
type PlayerStats struct {
	Username       string         `json:"username"`
	RoundsPlayed   int            `json:"rounds_played"`
	TotalScore     int            `json:"total_score"`
	AverageScore   float64        `json:"average_score"`
	BestCategory   string         `json:"best_category"`
	BestScore      int            `json:"best_score"`
	CategoryCounts map[string]int `json:"category_counts"`
}

// GetPlayerStats aggregates the recent rounds of one player
func (s *Service) GetPlayerStats(ctx context.Context, username string) (*PlayerStats, error) {
	results, err := s.repository.GetPlayerResults(ctx, username, historyWindow)
	if err != nil {
		return nil, err
	}

	stats := &PlayerStats{
		Username:       username,
		CategoryCounts: make(map[string]int),
	}

	for _, result := range results {
		stats.RoundsPlayed++
		stats.TotalScore += result.Score
		stats.CategoryCounts[result.Category]++
		if result.Score > stats.BestScore {
			stats.BestScore = result.Score
			stats.BestCategory = result.Category
		}
	}

	if stats.RoundsPlayed > 0 {
		stats.AverageScore = float64(stats.TotalScore) / float64(stats.RoundsPlayed)
	}

	return stats, nil
}

// GetLeaderboard returns per-player aggregates ordered by total score,
// highest first
func (s *Service) GetLeaderboard(ctx context.Context, limit int) ([]*PlayerStats, error) {
	results, err := s.repository.GetAllResults(ctx, historyWindow)
	if err != nil {
		return nil, err
	}

	byPlayer := make(map[string]*PlayerStats)
	for _, result := range results {
		stats, ok := byPlayer[result.Username]
		if !ok {
			stats = &PlayerStats{
				Username:       result.Username,
				CategoryCounts: make(map[string]int),
			}
			byPlayer[result.Username] = stats
		}

		stats.RoundsPlayed++
		stats.TotalScore += result.Score
		stats.CategoryCounts[result.Category]++
		if result.Score > stats.BestScore {
			stats.BestScore = result.Score
			stats.BestCategory = result.Category
		}
	}

	leaderboard := make([]*PlayerStats, 0, len(byPlayer))
	for _, stats := range byPlayer {
		if stats.RoundsPlayed > 0 {
			stats.AverageScore = float64(stats.TotalScore) / float64(stats.RoundsPlayed)
		}
		leaderboard = append(leaderboard, stats)
	}

	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].TotalScore != leaderboard[j].TotalScore {
			return leaderboard[i].TotalScore > leaderboard[j].TotalScore
		}
		return leaderboard[i].Username < leaderboard[j].Username
	})

	if limit > 0 && len(leaderboard) > limit {
		leaderboard = leaderboard[:limit]
	}

	return leaderboard, nil
}
