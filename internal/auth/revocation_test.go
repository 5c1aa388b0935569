package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/liftlog/internal/auth"
)

func TestRevocationStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := auth.NewRevocationStore(db)
	ctx := context.Background()

	mock.ExpectSet("liftlog-revoked-token||jti-1", 1, time.Hour).SetVal("OK")
	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))

	// expired tokens are not stored
	require.NoError(t, store.Revoke(ctx, "jti-2", -time.Second))
	assert.Error(t, store.Revoke(ctx, "", time.Hour))

	mock.ExpectExists("liftlog-revoked-token||jti-1").SetVal(1)
	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mock.ExpectExists("liftlog-revoked-token||jti-3").SetVal(0)
	revoked, err = store.IsRevoked(ctx, "jti-3")
	require.NoError(t, err)
	assert.False(t, revoked)

	mock.ExpectExists("liftlog-revoked-token||jti-4").SetErr(errors.New("conn refused"))
	_, err = store.IsRevoked(ctx, "jti-4")
	assert.EqualError(t, err, "conn refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}
