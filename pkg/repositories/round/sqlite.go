package round

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pipsbluff/pipsbluff/pkg/entities"
)

// SQLite table schemas
const (
	createRoundsTableSQL = `
	CREATE TABLE IF NOT EXISTS rounds (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		category TEXT NOT NULL,
		score INTEGER NOT NULL,
		cards TEXT,
		completed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createRoundIndexesSQL = `
	CREATE INDEX IF NOT EXISTS idx_rounds_username ON rounds(username);
	CREATE INDEX IF NOT EXISTS idx_rounds_completed_at ON rounds(completed_at DESC)
	`
)

// Timestamp layouts SQLite may hand back depending on how the value
// was written.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
	time.RFC3339,
}

func parseTimestamp(value string) (time.Time, error) {
	var parseErr error
	for _, format := range timestampFormats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, fmt.Errorf("error parsing timestamp '%s': %w", value, parseErr)
}

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec(createRoundsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating rounds table: %w", err)
	}

	if _, err := db.Exec(createRoundIndexesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating round indexes: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveResult records a resolved round
func (r *SQLiteRepository) SaveResult(ctx context.Context, result *entities.RoundResult) error {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}

	query := `
		INSERT INTO rounds (id, username, category, score, cards, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.Username,
		result.Category,
		result.Score,
		strings.Join(result.Cards, ","),
		result.CompletedAt.Format("2006-01-02 15:04:05"),
	)

	if err != nil {
		return fmt.Errorf("error saving round result: %w", err)
	}

	return nil
}

// GetPlayerResults retrieves the most recent results for a player. A
// limit of zero or less means no limit.
func (r *SQLiteRepository) GetPlayerResults(ctx context.Context, username string, limit int) ([]*entities.RoundResult, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, username, category, score, cards, completed_at
		FROM rounds
		WHERE username = ?
		ORDER BY completed_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying round results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// GetAllResults retrieves the most recent results across players. A
// limit of zero or less means no limit.
func (r *SQLiteRepository) GetAllResults(ctx context.Context, limit int) ([]*entities.RoundResult, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, username, category, score, cards, completed_at
		FROM rounds
		ORDER BY completed_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying round results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]*entities.RoundResult, error) {
	var results []*entities.RoundResult

	for rows.Next() {
		var result entities.RoundResult
		var cardList string
		var completedAt string

		err := rows.Scan(
			&result.ID,
			&result.Username,
			&result.Category,
			&result.Score,
			&cardList,
			&completedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning round row: %w", err)
		}

		if cardList != "" {
			result.Cards = strings.Split(cardList, ",")
		}

		result.CompletedAt, err = parseTimestamp(completedAt)
		if err != nil {
			return nil, err
		}

		results = append(results, &result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating round rows: %w", err)
	}

	return results, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
