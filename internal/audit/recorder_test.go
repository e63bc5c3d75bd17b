package audit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderDrainsToSinks(t *testing.T) {
	store := NewInMemoryStore()
	recorder := NewRecorder(slog.Default(), store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go recorder.Run(ctx) //nolint:errcheck

	recorder.Emit(ctx, Event{
		UserID: "user-1",
		Action: ActionIdentityScored,
		Reason: "PAN Verified (+8)",
	})

	require.Eventually(t, func() bool {
		events, err := store.ListByUser(context.Background(), "user-1")
		return err == nil && len(events) == 1
	}, time.Second, 10*time.Millisecond)

	events, err := store.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, ActionIdentityScored, events[0].Action)
	assert.NotZero(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestRecorderDropsWhenBufferFull(t *testing.T) {
	recorder := NewRecorder(slog.Default(), NewInMemoryStore())

	// Worker never runs, so the buffer eventually fills. Emit must not block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 512; i++ {
			recorder.Emit(context.Background(), Event{UserID: "u", Action: ActionOTPSent})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked on a full buffer")
	}
}
