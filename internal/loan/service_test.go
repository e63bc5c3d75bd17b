package loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"trustbridge/internal/domain"
	"trustbridge/internal/platform/config"
	dErrors "trustbridge/pkg/domain-errors"
	"trustbridge/pkg/requestcontext"
)

const borrowerID = "borrower-1"

type LoanServiceSuite struct {
	suite.Suite

	loans   *InMemoryStore
	escrow  *InMemoryEscrowStore
	service *Service
}

func TestLoanServiceSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceSuite))
}

func (s *LoanServiceSuite) SetupTest() {
	s.loans = NewInMemoryStore()
	s.escrow = NewInMemoryEscrowStore()
	s.service = NewService(s.loans, s.escrow, config.LoanConfig{
		TermDays:         30,
		DailyPenaltyRate: 0.002,
	})
}

func (s *LoanServiceSuite) ctxAt(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func (s *LoanServiceSuite) requestLoan(issuedAt time.Time) domain.LoanRecord {
	record, err := s.service.Request(s.ctxAt(issuedAt), borrowerID, RequestInput{
		Amount:  1000,
		Purpose: "equipment",
		Wallet:  "0xabc",
	})
	s.Require().NoError(err)
	return record
}

func (s *LoanServiceSuite) TestRequest() {
	s.Run("creates a pending loan due after the term", func() {
		s.SetupTest()
		issued := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

		record := s.requestLoan(issued)

		s.Equal(domain.LoanStatusPending, record.Status)
		s.Equal(issued, record.IssueDate)
		s.Equal(issued.AddDate(0, 0, 30), record.DueDate)
		s.NotEmpty(record.ID)
	})

	s.Run("rejects non-positive amounts", func() {
		s.SetupTest()

		_, err := s.service.Request(context.Background(), borrowerID, RequestInput{
			Amount: 0, Purpose: "equipment", Wallet: "0xabc",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = s.service.Request(context.Background(), borrowerID, RequestInput{
			Amount: -50, Purpose: "equipment", Wallet: "0xabc",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects missing fields", func() {
		s.SetupTest()

		_, err := s.service.Request(context.Background(), borrowerID, RequestInput{Amount: 100})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *LoanServiceSuite) TestDecide() {
	s.Run("approves a pending loan", func() {
		s.SetupTest()
		record := s.requestLoan(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		status, err := s.service.Decide(context.Background(), borrowerID, record.ID, "approved")
		s.Require().NoError(err)
		s.Equal(domain.LoanStatusApproved, status)
	})

	s.Run("decisions are terminal", func() {
		s.SetupTest()
		record := s.requestLoan(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		_, err := s.service.Decide(context.Background(), borrowerID, record.ID, "approved")
		s.Require().NoError(err)

		_, err = s.service.Decide(context.Background(), borrowerID, record.ID, "rejected")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		got, err := s.loans.Get(context.Background(), borrowerID, record.ID)
		s.Require().NoError(err)
		s.Equal(domain.LoanStatusApproved, got.Status)
	})

	s.Run("invalid decision is rejected", func() {
		s.SetupTest()
		record := s.requestLoan(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		_, err := s.service.Decide(context.Background(), borrowerID, record.ID, "maybe")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("unknown loan is not found", func() {
		s.SetupTest()

		_, err := s.service.Decide(context.Background(), borrowerID, "missing", "approved")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *LoanServiceSuite) TestStatus() {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Run("no penalty while current", func() {
		s.SetupTest()
		record := s.requestLoan(issued)

		result, err := s.service.Status(s.ctxAt(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)), borrowerID, record.ID)
		s.Require().NoError(err)

		s.Equal(1000.0, result.TotalDue)
		s.Equal("2024-01-31", result.DueDate)
		s.Equal("2024-01-15", result.CurrentDate)
	})

	s.Run("penalty accrues past due", func() {
		s.SetupTest()
		record := s.requestLoan(issued)

		result, err := s.service.Status(s.ctxAt(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)), borrowerID, record.ID)
		s.Require().NoError(err)

		s.Greater(result.TotalDue, result.Principal)
		s.InDelta(1030.0, result.TotalDue, 0.001)
	})

	s.Run("releases documents while current and stays released", func() {
		s.SetupTest()
		record := s.requestLoan(issued)
		s.Require().NoError(s.escrow.Add(context.Background(), domain.EscrowDocument{
			ID: "doc-1", LoanID: record.ID, UserID: borrowerID, Name: "land deed",
		}))

		result, err := s.service.Status(s.ctxAt(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)), borrowerID, record.ID)
		s.Require().NoError(err)
		s.Require().Len(result.DocumentsReleased, 1)
		s.True(result.DocumentsReleased[0].Released)

		// Repeat query is a no-op returning the same released list.
		again, err := s.service.Status(s.ctxAt(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)), borrowerID, record.ID)
		s.Require().NoError(err)
		s.Len(again.DocumentsReleased, 1)
		s.Equal(result.DocumentsReleased[0].ReleasedAt, again.DocumentsReleased[0].ReleasedAt)
	})

	s.Run("withholds documents overdue without settlement", func() {
		s.SetupTest()
		record := s.requestLoan(issued)
		s.Require().NoError(s.escrow.Add(context.Background(), domain.EscrowDocument{
			ID: "doc-1", LoanID: record.ID, UserID: borrowerID, Name: "land deed",
		}))

		result, err := s.service.Status(s.ctxAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), borrowerID, record.ID)
		s.Require().NoError(err)
		s.Empty(result.DocumentsReleased)
	})

	s.Run("settlement unlocks release after due date", func() {
		s.SetupTest()
		record := s.requestLoan(issued)
		s.Require().NoError(s.escrow.Add(context.Background(), domain.EscrowDocument{
			ID: "doc-1", LoanID: record.ID, UserID: borrowerID, Name: "land deed",
		}))

		_, err := s.service.Decide(context.Background(), borrowerID, record.ID, "approved")
		s.Require().NoError(err)
		s.Require().NoError(s.service.Settle(s.ctxAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), borrowerID, record.ID))

		result, err := s.service.Status(s.ctxAt(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)), borrowerID, record.ID)
		s.Require().NoError(err)
		s.Len(result.DocumentsReleased, 1)
	})
}

func (s *LoanServiceSuite) TestSettle() {
	s.Run("only approved loans settle", func() {
		s.SetupTest()
		record := s.requestLoan(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		err := s.service.Settle(context.Background(), borrowerID, record.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("settling twice is a no-op", func() {
		s.SetupTest()
		record := s.requestLoan(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		_, err := s.service.Decide(context.Background(), borrowerID, record.ID, "approved")
		s.Require().NoError(err)

		at := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		s.Require().NoError(s.service.Settle(s.ctxAt(at), borrowerID, record.ID))
		s.Require().NoError(s.service.Settle(s.ctxAt(at.AddDate(0, 0, 5)), borrowerID, record.ID))

		got, err := s.loans.Get(context.Background(), borrowerID, record.ID)
		s.Require().NoError(err)
		s.Require().NotNil(got.SettledAt)
		s.Equal(at, *got.SettledAt)
	})
}
