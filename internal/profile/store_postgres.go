package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trustbridge/internal/domain"
)

// PostgresStore persists profiles in the profiles table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (domain.Profile, error) {
	query := `
		SELECT name, email, phone, role, wallet
		FROM profiles
		WHERE user_id = $1
	`
	var p domain.Profile
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&p.Name, &p.Email, &p.Phone, &p.Role, &p.Wallet)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, ErrNotFound
		}
		return domain.Profile{}, fmt.Errorf("query profile: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Merge(ctx context.Context, userID string, update domain.Profile) (domain.Profile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("begin profile merge: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var base domain.Profile
	err = tx.QueryRowContext(ctx,
		`SELECT name, email, phone, role, wallet FROM profiles WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&base.Name, &base.Email, &base.Phone, &base.Role, &base.Wallet)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("lock profile: %w", err)
	}

	merged := MergeProfiles(base, update)

	upsert := `
		INSERT INTO profiles (user_id, name, email, phone, role, wallet)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			role = EXCLUDED.role,
			wallet = EXCLUDED.wallet
	`
	if _, err := tx.ExecContext(ctx, upsert,
		userID, merged.Name, merged.Email, merged.Phone, merged.Role, merged.Wallet,
	); err != nil {
		return domain.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Profile{}, fmt.Errorf("commit profile merge: %w", err)
	}
	return merged, nil
}

func (s *PostgresStore) ListByRole(ctx context.Context, role string) ([]Entry, error) {
	query := `
		SELECT user_id, name, email, phone, role, wallet
		FROM profiles
		WHERE role = $1
		ORDER BY user_id
	`
	rows, err := s.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.Profile.Name, &e.Profile.Email, &e.Profile.Phone, &e.Profile.Role, &e.Profile.Wallet); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
