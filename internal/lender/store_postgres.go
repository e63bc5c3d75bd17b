package lender

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trustbridge/internal/domain"
)

// PostgresStore persists lenders and offers.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SaveLender(ctx context.Context, lender domain.Lender) error {
	query := `
		INSERT INTO lenders (user_id, name, email, phone, wallet, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			wallet = EXCLUDED.wallet
	`
	_, err := s.db.ExecContext(ctx, query,
		lender.UserID, lender.Name, lender.Email, lender.Phone, lender.Wallet, lender.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("upsert lender: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetLender(ctx context.Context, lenderID string) (domain.Lender, error) {
	query := `
		SELECT user_id, name, email, phone, wallet, registered_at
		FROM lenders
		WHERE user_id = $1
	`
	var lender domain.Lender
	err := s.db.QueryRowContext(ctx, query, lenderID).Scan(
		&lender.UserID, &lender.Name, &lender.Email, &lender.Phone, &lender.Wallet, &lender.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Lender{}, ErrNotFound
		}
		return domain.Lender{}, fmt.Errorf("query lender: %w", err)
	}
	return lender, nil
}

func (s *PostgresStore) AddOffer(ctx context.Context, offer domain.LenderOffer) error {
	query := `
		INSERT INTO lender_offers (id, lender_id, amount, interest_rate, wallet, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		offer.ID, offer.LenderID, offer.Amount, offer.InterestRate, offer.Wallet, offer.PostedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lender offer: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListOffers(ctx context.Context, lenderID string) ([]domain.LenderOffer, error) {
	query := `
		SELECT id, lender_id, amount, interest_rate, wallet, posted_at
		FROM lender_offers
		WHERE lender_id = $1
		ORDER BY posted_at
	`
	rows, err := s.db.QueryContext(ctx, query, lenderID)
	if err != nil {
		return nil, fmt.Errorf("list lender offers: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var offers []domain.LenderOffer
	for rows.Next() {
		var offer domain.LenderOffer
		if err := rows.Scan(&offer.ID, &offer.LenderID, &offer.Amount, &offer.InterestRate, &offer.Wallet, &offer.PostedAt); err != nil {
			return nil, fmt.Errorf("scan lender offer: %w", err)
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}
