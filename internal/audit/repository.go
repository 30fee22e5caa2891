// Package audit persists completed analyses to Postgres so every
// recommendation can be traced back to the exact reports and configuration
// that produced it.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/quickscope/internal/analyzer"
	"github.com/wonny/quickscope/internal/contracts"
)

// Repository handles audit data persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new audit repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record is one stored analysis run.
type Record struct {
	ID          int64                             `json:"id"`
	Ticker      string                            `json:"ticker"`
	GeneratedAt time.Time                         `json:"generated_at"`
	ConfigHash  string                            `json:"config_hash"`
	Action      contracts.TradeAction             `json:"action"`
	Fundamental *contracts.FundamentalReport      `json:"fundamental"`
	Sentiment   *contracts.SentimentReport        `json:"sentiment"`
	Strategy    *contracts.StrategyRecommendation `json:"strategy"`
	CreatedAt   time.Time                         `json:"created_at"`
}

// RecordAnalysis stores one completed analysis. Reports go in as JSONB so the
// schema survives report shape changes.
func (r *Repository) RecordAnalysis(ctx context.Context, a *analyzer.Analysis) error {
	fundamentalJSON, err := json.Marshal(a.Fundamental)
	if err != nil {
		return fmt.Errorf("failed to marshal fundamental report: %w", err)
	}
	sentimentJSON, err := json.Marshal(a.Sentiment)
	if err != nil {
		return fmt.Errorf("failed to marshal sentiment report: %w", err)
	}
	strategyJSON, err := json.Marshal(a.Recommendation)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	query := `
		INSERT INTO audit.analyses (
			ticker, generated_at, config_hash, action, fundamental, sentiment, strategy
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		a.Ticker, a.GeneratedAt, a.ConfigHash, string(a.Recommendation.Action),
		fundamentalJSON, sentimentJSON, strategyJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to record analysis: %w", err)
	}

	return nil
}

// LatestForTicker retrieves the most recent stored analysis for a ticker.
func (r *Repository) LatestForTicker(ctx context.Context, ticker string) (*Record, error) {
	query := `
		SELECT id, ticker, generated_at, config_hash, action,
		       fundamental, sentiment, strategy, created_at
		FROM audit.analyses
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, ticker))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("no analysis recorded for ticker %s", ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return rec, nil
}

// History retrieves stored analyses for a ticker over a date range.
func (r *Repository) History(ctx context.Context, ticker string, from, to time.Time) ([]Record, error) {
	query := `
		SELECT id, ticker, generated_at, config_hash, action,
		       fundamental, sentiment, strategy, created_at
		FROM audit.analyses
		WHERE ticker = $1 AND generated_at BETWEEN $2 AND $3
		ORDER BY generated_at ASC
	`

	rows, err := r.pool.Query(ctx, query, ticker, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec                                          Record
		action                                       string
		fundamentalJSON, sentimentJSON, strategyJSON []byte
	)

	err := row.Scan(
		&rec.ID, &rec.Ticker, &rec.GeneratedAt, &rec.ConfigHash, &action,
		&fundamentalJSON, &sentimentJSON, &strategyJSON, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Action = contracts.TradeAction(action)

	if err := json.Unmarshal(fundamentalJSON, &rec.Fundamental); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fundamental report: %w", err)
	}
	if err := json.Unmarshal(sentimentJSON, &rec.Sentiment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sentiment report: %w", err)
	}
	if err := json.Unmarshal(strategyJSON, &rec.Strategy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation: %w", err)
	}

	return &rec, nil
}
