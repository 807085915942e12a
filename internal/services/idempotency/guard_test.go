package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndReserve(t *testing.T) {
	t.Run("first request reserves the key", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectSetNX("idempotency:key-1", "processing", 24*time.Hour).SetVal(true)

		g := NewGuard(client, 24*time.Hour)
		require.NoError(t, g.CheckAndReserve(context.Background(), "key-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay is rejected", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectSetNX("idempotency:key-1", "processing", 24*time.Hour).SetVal(false)

		g := NewGuard(client, 24*time.Hour)
		err := g.CheckAndReserve(context.Background(), "key-1")
		assert.ErrorIs(t, err, ErrDuplicateRequest)
	})
}

func TestMarkCompleted(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectSet("idempotency:key-1", "TXN-20260831-ABCD1234", 24*time.Hour).SetVal("OK")

	g := NewGuard(client, 24*time.Hour)
	require.NoError(t, g.MarkCompleted(context.Background(), "key-1", "TXN-20260831-ABCD1234"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailedPermitsRetry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectDel("idempotency:key-1").SetVal(1)
	mock.ExpectSetNX("idempotency:key-1", "processing", 24*time.Hour).SetVal(true)

	g := NewGuard(client, 24*time.Hour)
	require.NoError(t, g.MarkFailed(context.Background(), "key-1"))
	require.NoError(t, g.CheckAndReserve(context.Background(), "key-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookup(t *testing.T) {
	t.Run("completed key returns the ref", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("idempotency:key-1").SetVal("TXN-20260831-ABCD1234")

		g := NewGuard(client, 24*time.Hour)
		ref, err := g.Lookup(context.Background(), "key-1")
		require.NoError(t, err)
		assert.Equal(t, "TXN-20260831-ABCD1234", ref)
	})

	t.Run("in-flight key returns empty", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("idempotency:key-1").SetVal("processing")

		g := NewGuard(client, 24*time.Hour)
		ref, err := g.Lookup(context.Background(), "key-1")
		require.NoError(t, err)
		assert.Empty(t, ref)
	})

	t.Run("absent key returns empty", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("idempotency:key-1").RedisNil()

		g := NewGuard(client, 24*time.Hour)
		ref, err := g.Lookup(context.Background(), "key-1")
		require.NoError(t, err)
		assert.Empty(t, ref)
	})
}
