package govregistry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trustbridge/internal/domain"
)

// PostgresStore reads government records from the gov_records table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByPAN(ctx context.Context, panNumber string) (domain.GovernmentRecord, error) {
	query := `
		SELECT pan_number, name, phone, verified
		FROM gov_records
		WHERE pan_number = $1
	`

	var record domain.GovernmentRecord
	err := s.db.QueryRowContext(ctx, query, panNumber).Scan(
		&record.PANNumber,
		&record.Name,
		&record.Phone,
		&record.Verified,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.GovernmentRecord{}, ErrNotFound
		}
		return domain.GovernmentRecord{}, fmt.Errorf("query government record: %w", err)
	}
	return record, nil
}
