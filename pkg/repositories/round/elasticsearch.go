package round

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pipsbluff/pipsbluff/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch archive
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "pipsbluff",
	}
}

// esRoundResult is the round document shape in Elasticsearch
type esRoundResult struct {
	RoundID     string    `json:"round_id"`
	Username    string    `json:"username"`
	Category    string    `json:"category"`
	Score       int       `json:"score"`
	Cards       []string  `json:"cards"`
	CompletedAt time.Time `json:"completed_at"`
}

// ElasticsearchRepository decorates a base Repository, mirroring every
// saved round into an Elasticsearch index for long-term history. Reads
// are served by the base repository.
type ElasticsearchRepository struct {
	baseRepo Repository
	client   *elasticsearch.Client
	config   *ElasticsearchConfig
}

// NewElasticsearchRepository creates a new Elasticsearch archive around baseRepo
func NewElasticsearchRepository(baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "pipsbluff"
	}

	repo := &ElasticsearchRepository{
		baseRepo: baseRepo,
		client:   client,
		config:   config,
	}

	if err := repo.initIndices(context.Background()); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// initIndices creates the rounds index if it doesn't exist
func (r *ElasticsearchRepository) initIndices(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.roundsIndex()})
	if err != nil {
		return fmt.Errorf("error checking if rounds index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		roundMapping := `{
			"mappings": {
				"properties": {
					"round_id": { "type": "keyword" },
					"username": { "type": "keyword" },
					"category": { "type": "keyword" },
					"score": { "type": "integer" },
					"cards": { "type": "keyword" },
					"completed_at": { "type": "date" }
				}
			}
		}`

		req := esapi.IndicesCreateRequest{
			Index: r.roundsIndex(),
			Body:  bytes.NewReader([]byte(roundMapping)),
		}

		res, err := req.Do(ctx, r.client)
		if err != nil {
			return fmt.Errorf("error creating rounds index: %w", err)
		}
		defer res.Body.Close()

		if res.IsError() {
			return fmt.Errorf("error creating rounds index: %s", res.String())
		}
	}

	return nil
}

func (r *ElasticsearchRepository) roundsIndex() string {
	return r.config.IndexPrefix + "_rounds"
}

// SaveResult records a resolved round in the base repository and
// mirrors it into the archive index
func (r *ElasticsearchRepository) SaveResult(ctx context.Context, result *entities.RoundResult) error {
	if err := r.baseRepo.SaveResult(ctx, result); err != nil {
		return err
	}
	return r.index(ctx, result)
}

// GetPlayerResults retrieves the most recent results for a player
func (r *ElasticsearchRepository) GetPlayerResults(ctx context.Context, username string, limit int) ([]*entities.RoundResult, error) {
	return r.baseRepo.GetPlayerResults(ctx, username, limit)
}

// GetAllResults retrieves the most recent results across players
func (r *ElasticsearchRepository) GetAllResults(ctx context.Context, limit int) ([]*entities.RoundResult, error) {
	return r.baseRepo.GetAllResults(ctx, limit)
}

// Archive re-indexes the most recent results from the base repository.
// Run periodically, it repairs any rounds that were saved while the
// cluster was unreachable.
func (r *ElasticsearchRepository) Archive(ctx context.Context, limit int) error {
	results, err := r.baseRepo.GetAllResults(ctx, limit)
	if err != nil {
		return fmt.Errorf("error loading results to archive: %w", err)
	}

	for _, result := range results {
		if err := r.index(ctx, result); err != nil {
			return err
		}
	}
	return nil
}

// index writes one round document, keyed by round ID so re-indexing is
// idempotent
func (r *ElasticsearchRepository) index(ctx context.Context, result *entities.RoundResult) error {
	doc := esRoundResult{
		RoundID:     result.ID,
		Username:    result.Username,
		Category:    result.Category,
		Score:       result.Score,
		Cards:       result.Cards,
		CompletedAt: result.CompletedAt,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling round document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      r.roundsIndex(),
		DocumentID: result.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error indexing round document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing round document: %s", res.String())
	}

	return nil
}
