package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "trustbridge/pkg/domain-errors"
)

type captureSender struct {
	email string
	code  string
	err   error
}

func (c *captureSender) Send(_ context.Context, email, code string) error {
	if c.err != nil {
		return c.err
	}
	c.email = email
	c.code = code
	return nil
}

func TestSendAndVerify(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	sender := &captureSender{}
	service := NewService(store, sender, 5*time.Minute)

	require.NoError(t, service.Send(ctx, "user@example.com"))
	require.Len(t, sender.code, 6)
	assert.Equal(t, "user@example.com", sender.email)

	// The stored value is a hash, never the plaintext code.
	hash, err := store.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, []byte(sender.code), hash)

	require.NoError(t, service.Verify(ctx, "user@example.com", sender.code))
}

func TestVerifyIsSingleUse(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	sender := &captureSender{}
	service := NewService(store, sender, 5*time.Minute)

	require.NoError(t, service.Send(ctx, "user@example.com"))
	require.NoError(t, service.Verify(ctx, "user@example.com", sender.code))

	err := service.Verify(ctx, "user@example.com", sender.code)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestVerifyWrongCode(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	sender := &captureSender{}
	service := NewService(store, sender, 5*time.Minute)

	require.NoError(t, service.Send(ctx, "user@example.com"))

	err := service.Verify(ctx, "user@example.com", "000000")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	// A wrong attempt does not consume the pending code.
	require.NoError(t, service.Verify(ctx, "user@example.com", sender.code))
}

func TestExpiredCodeIsRejected(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return now }
	sender := &captureSender{}
	service := NewService(store, sender, 5*time.Minute)

	require.NoError(t, service.Send(ctx, "user@example.com"))

	now = now.Add(6 * time.Minute)
	err := service.Verify(ctx, "user@example.com", sender.code)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestSendDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	service := NewService(NewInMemoryStore(), &captureSender{err: errors.New("smtp down")}, 5*time.Minute)

	err := service.Send(ctx, "user@example.com")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestSendRequiresEmail(t *testing.T) {
	service := NewService(NewInMemoryStore(), &captureSender{}, 5*time.Minute)

	err := service.Send(context.Background(), "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
