package loan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trustbridge/internal/domain"
)

// PostgresStore persists loans in the loans table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, record domain.LoanRecord) error {
	query := `
		INSERT INTO loans (id, user_id, amount, purpose, wallet, issue_date, due_date, status, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.Amount,
		record.Purpose,
		record.Wallet,
		record.IssueDate,
		record.DueDate,
		record.Status.String(),
		record.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID, loanID string) (domain.LoanRecord, error) {
	query := `
		SELECT id, user_id, amount, purpose, wallet, issue_date, due_date, status, settled_at
		FROM loans
		WHERE user_id = $1 AND id = $2
	`
	record, err := scanLoan(s.db.QueryRowContext(ctx, query, userID, loanID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LoanRecord{}, ErrNotFound
		}
		return domain.LoanRecord{}, fmt.Errorf("query loan: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]domain.LoanRecord, error) {
	query := `
		SELECT id, user_id, amount, purpose, wallet, issue_date, due_date, status, settled_at
		FROM loans
		WHERE user_id = $1
		ORDER BY issue_date
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var records []domain.LoanRecord
	for rows.Next() {
		var (
			record    domain.LoanRecord
			status    string
			settledAt sql.NullTime
		)
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Amount,
			&record.Purpose,
			&record.Wallet,
			&record.IssueDate,
			&record.DueDate,
			&status,
			&settledAt,
		); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		record.Status = domain.LoanStatus(status)
		if settledAt.Valid {
			record.SettledAt = &settledAt.Time
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, userID, loanID string, status domain.LoanStatus) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE loans SET status = $1 WHERE user_id = $2 AND id = $3`,
		status.String(), userID, loanID,
	)
	if err != nil {
		return fmt.Errorf("update loan status: %w", err)
	}
	return requireRow(result)
}

func (s *PostgresStore) MarkSettled(ctx context.Context, userID, loanID string, settledAt time.Time) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE loans SET settled_at = $1 WHERE user_id = $2 AND id = $3`,
		settledAt, userID, loanID,
	)
	if err != nil {
		return fmt.Errorf("mark loan settled: %w", err)
	}
	return requireRow(result)
}

func scanLoan(row *sql.Row) (domain.LoanRecord, error) {
	var (
		record    domain.LoanRecord
		status    string
		settledAt sql.NullTime
	)
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.Amount,
		&record.Purpose,
		&record.Wallet,
		&record.IssueDate,
		&record.DueDate,
		&status,
		&settledAt,
	)
	if err != nil {
		return domain.LoanRecord{}, err
	}
	record.Status = domain.LoanStatus(status)
	if settledAt.Valid {
		record.SettledAt = &settledAt.Time
	}
	return record, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// PostgresEscrowStore persists escrow documents in the escrow_documents table.
type PostgresEscrowStore struct {
	db *sql.DB
}

func NewPostgresEscrowStore(db *sql.DB) *PostgresEscrowStore {
	return &PostgresEscrowStore{db: db}
}

func (s *PostgresEscrowStore) Add(ctx context.Context, doc domain.EscrowDocument) error {
	query := `
		INSERT INTO escrow_documents (id, loan_id, user_id, name, url, released, released_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		doc.ID, doc.LoanID, doc.UserID, doc.Name, doc.URL, doc.Released, doc.ReleasedAt,
	)
	if err != nil {
		return fmt.Errorf("insert escrow document: %w", err)
	}
	return nil
}

func (s *PostgresEscrowStore) ListByLoan(ctx context.Context, userID, loanID string) ([]domain.EscrowDocument, error) {
	query := `
		SELECT id, loan_id, user_id, name, url, released, released_at
		FROM escrow_documents
		WHERE user_id = $1 AND loan_id = $2
		ORDER BY id
	`
	return s.queryDocs(ctx, query, userID, loanID)
}

func (s *PostgresEscrowStore) Release(ctx context.Context, userID, loanID string, releasedAt time.Time) ([]domain.EscrowDocument, bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE escrow_documents SET released = TRUE, released_at = $1
		 WHERE user_id = $2 AND loan_id = $3 AND released = FALSE`,
		releasedAt, userID, loanID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("release escrow documents: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	docs, err := s.ListByLoan(ctx, userID, loanID)
	if err != nil {
		return nil, false, err
	}
	return docs, affected > 0, nil
}

func (s *PostgresEscrowStore) queryDocs(ctx context.Context, query string, args ...any) ([]domain.EscrowDocument, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list escrow documents: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var docs []domain.EscrowDocument
	for rows.Next() {
		var (
			doc        domain.EscrowDocument
			releasedAt sql.NullTime
		)
		if err := rows.Scan(&doc.ID, &doc.LoanID, &doc.UserID, &doc.Name, &doc.URL, &doc.Released, &releasedAt); err != nil {
			return nil, fmt.Errorf("scan escrow document: %w", err)
		}
		if releasedAt.Valid {
			doc.ReleasedAt = &releasedAt.Time
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
