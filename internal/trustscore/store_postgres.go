package trustscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"trustbridge/internal/domain"
)

// PostgresStore persists trust scores with the history arrays as JSONB. Merge
// locks the user's row for the duration of the read-modify-write so the
// composite derivation stays atomic per user.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (domain.TrustScore, error) {
	query := `
		SELECT current, identity_score, financial_score,
		       identity_history, financial_history, updated_at
		FROM trust_scores
		WHERE user_id = $1
	`
	score, err := scanTrustScore(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TrustScore{}, ErrNotFound
		}
		return domain.TrustScore{}, fmt.Errorf("query trust score: %w", err)
	}
	return score, nil
}

func (s *PostgresStore) Merge(ctx context.Context, userID string, update domain.TrustScoreUpdate) (domain.TrustScore, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.TrustScore{}, fmt.Errorf("begin merge: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `
		SELECT current, identity_score, financial_score,
		       identity_history, financial_history, updated_at
		FROM trust_scores
		WHERE user_id = $1
		FOR UPDATE
	`
	current, err := scanTrustScore(tx.QueryRowContext(ctx, query, userID))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.TrustScore{}, fmt.Errorf("lock trust score: %w", err)
	}

	merged := update.ApplyTo(current)

	identityHistory, err := json.Marshal(merged.IdentityHistory)
	if err != nil {
		return domain.TrustScore{}, fmt.Errorf("marshal identity history: %w", err)
	}
	financialHistory, err := json.Marshal(merged.FinancialHistory)
	if err != nil {
		return domain.TrustScore{}, fmt.Errorf("marshal financial history: %w", err)
	}

	upsert := `
		INSERT INTO trust_scores (
			user_id, current, identity_score, financial_score,
			identity_history, financial_history, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			current = EXCLUDED.current,
			identity_score = EXCLUDED.identity_score,
			financial_score = EXCLUDED.financial_score,
			identity_history = EXCLUDED.identity_history,
			financial_history = EXCLUDED.financial_history,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := tx.ExecContext(ctx, upsert,
		userID,
		merged.Current,
		merged.IdentityScore,
		merged.FinancialScore,
		identityHistory,
		financialHistory,
		merged.UpdatedAt,
	); err != nil {
		return domain.TrustScore{}, fmt.Errorf("upsert trust score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.TrustScore{}, fmt.Errorf("commit merge: %w", err)
	}
	return merged, nil
}

func scanTrustScore(row *sql.Row) (domain.TrustScore, error) {
	var (
		score            domain.TrustScore
		identityHistory  []byte
		financialHistory []byte
	)
	err := row.Scan(
		&score.Current,
		&score.IdentityScore,
		&score.FinancialScore,
		&identityHistory,
		&financialHistory,
		&score.UpdatedAt,
	)
	if err != nil {
		return domain.TrustScore{}, err
	}
	if err := json.Unmarshal(identityHistory, &score.IdentityHistory); err != nil {
		return domain.TrustScore{}, fmt.Errorf("unmarshal identity history: %w", err)
	}
	if err := json.Unmarshal(financialHistory, &score.FinancialHistory); err != nil {
		return domain.TrustScore{}, fmt.Errorf("unmarshal financial history: %w", err)
	}
	return score, nil
}
