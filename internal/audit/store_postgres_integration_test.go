//go:build integration

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustbridge/pkg/testutil/containers"
)

const auditEventsSchema = `
	CREATE TABLE IF NOT EXISTS audit_events (
		id          UUID PRIMARY KEY,
		occurred_at TIMESTAMPTZ NOT NULL,
		user_id     TEXT NOT NULL,
		action      TEXT NOT NULL,
		subject     TEXT NOT NULL DEFAULT '',
		decision    TEXT NOT NULL DEFAULT '',
		reason      TEXT NOT NULL DEFAULT '',
		request_id  TEXT NOT NULL DEFAULT ''
	)
`

func TestPostgresStoreAppendAndList(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.MustExec(t, auditEventsSchema)
	store := NewPostgresStore(pg.DB)

	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, action := range []Action{ActionLoanRequested, ActionLoanDecided} {
		require.NoError(t, store.Append(ctx, Event{
			ID:        uuid.New(),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			UserID:    "borrower-1",
			Action:    action,
			Subject:   "loan-1",
		}))
	}
	require.NoError(t, store.Append(ctx, Event{
		ID:        uuid.New(),
		Timestamp: base,
		UserID:    "borrower-2",
		Action:    ActionOTPSent,
		Subject:   "b2@example.com",
	}))

	events, err := store.ListByUser(ctx, "borrower-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionLoanRequested, events[0].Action)
	assert.Equal(t, ActionLoanDecided, events[1].Action)
	assert.Equal(t, "loan-1", events[0].Subject)

	events, err = store.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, events)
}
