package session_test

import (
	"context"
	"testing"
	"time"

	"gigup_backend/internal/models"
	"gigup_backend/internal/session"
	"gigup_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(id string) *models.User {
	u := &models.User{Role: models.UserRoleUser}
	u.ID = id
	return u
}

func TestManager_EstablishAndResolve(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	m := session.NewManager(rdb, "secret", time.Hour)
	ctx := context.Background()

	token, sess, err := m.Establish(ctx, testUser("user-1"))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, resolved.ID)
	assert.Equal(t, "user-1", resolved.UserID)
	assert.Equal(t, models.UserRoleUser, resolved.Role)
}

func TestManager_ResolveRejectsForeignSignature(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	ctx := context.Background()

	token, _, err := session.NewManager(rdb, "other-secret", time.Hour).Establish(ctx, testUser("user-1"))
	require.NoError(t, err)

	_, err = session.NewManager(rdb, "secret", time.Hour).Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrInvalidToken)

	_, err = session.NewManager(rdb, "secret", time.Hour).Resolve(ctx, "garbage")
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestManager_DestroyMakesTokenAnonymous(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	m := session.NewManager(rdb, "secret", time.Hour)
	ctx := context.Background()

	token, sess, err := m.Establish(ctx, testUser("user-1"))
	require.NoError(t, err)
	require.NoError(t, m.Destroy(ctx, sess))

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrNoSession)

	// повторное удаление безопасно
	assert.NoError(t, m.Destroy(ctx, sess))
}

func TestManager_ExpiresWithTTL(t *testing.T) {
	mr, rdb := testutil.NewTestRedis(t)
	m := session.NewManager(rdb, "secret", time.Minute)
	ctx := context.Background()

	token, _, err := m.Establish(ctx, testUser("user-1"))
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestManager_DestroyAllForUser(t *testing.T) {
	_, rdb := testutil.NewTestRedis(t)
	m := session.NewManager(rdb, "secret", time.Hour)
	ctx := context.Background()

	t1, _, err := m.Establish(ctx, testUser("user-1"))
	require.NoError(t, err)
	t2, _, err := m.Establish(ctx, testUser("user-1"))
	require.NoError(t, err)
	other, _, err := m.Establish(ctx, testUser("user-2"))
	require.NoError(t, err)

	require.NoError(t, m.DestroyAllForUser(ctx, "user-1"))

	_, err = m.Resolve(ctx, t1)
	assert.ErrorIs(t, err, session.ErrNoSession)
	_, err = m.Resolve(ctx, t2)
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, err = m.Resolve(ctx, other)
	assert.NoError(t, err)
}
