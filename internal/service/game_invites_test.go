package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/service"
	"github.com/shelterplus/shelterplus-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_CreateInvite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)

	invite, err := env.Services.Game.CreateInvite(ctx, game.ID, domain.InviteRoleCoHost)
	require.NoError(t, err)
	assert.Len(t, invite.Code, 8)
	assert.Regexp(t, "^[0-9a-f]{8}$", invite.Code)
	assert.WithinDuration(t, time.Now().Add(domain.InviteTTL), invite.ExpiresAt, 5*time.Second)
	assert.Nil(t, invite.UsedByUserID)

	_, err = env.Services.Game.CreateInvite(ctx, game.ID, domain.InviteRole("ADMIN"))
	assert.ErrorIs(t, err, service.ErrUnsupportedInviteRole)
}

func TestGameService_AcceptInvite_CoHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	invite, err := env.Services.Game.CreateInvite(ctx, game.ID, domain.InviteRoleCoHost)
	require.NoError(t, err)

	userID := uuid.New()
	result, err := env.Services.Game.AcceptInvite(ctx, invite.Code, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.InviteRoleCoHost, result.Role)
	assert.Equal(t, game.ID, result.GameID)
	assert.Nil(t, result.PlayerID)

	admin, err := env.Repos.GameAdmin.GetByGameAndUser(ctx, game.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.GameAdminRoleCoHost, admin.Role)

	// Same user again: idempotent
	_, err = env.Services.Game.AcceptInvite(ctx, invite.Code, userID)
	require.NoError(t, err)

	// A different user gets a conflict
	_, err = env.Services.Game.AcceptInvite(ctx, invite.Code, uuid.New())
	assert.ErrorIs(t, err, service.ErrInviteConflict)
}

func TestGameService_AcceptInvite_Spectator(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	invite, err := env.Services.Game.CreateInvite(ctx, game.ID, domain.InviteRoleSpectator)
	require.NoError(t, err)

	userID := uuid.New()
	result, err := env.Services.Game.AcceptInvite(ctx, invite.Code, userID)
	require.NoError(t, err)
	require.NotNil(t, result.PlayerID)

	spectator, err := env.Repos.Player.GetByID(ctx, *result.PlayerID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlayerRoleSpectator, spectator.Role)
	assert.Equal(t, domain.SpectatorNumberOffset+1, spectator.Number)
	require.NotNil(t, spectator.UserID)
	assert.Equal(t, userID, *spectator.UserID)

	// The same user re-accepting keeps their seat
	again, err := env.Services.Game.AcceptInvite(ctx, invite.Code, userID)
	require.NoError(t, err)
	assert.Equal(t, *result.PlayerID, *again.PlayerID)
}

func TestGameService_AcceptInvite_SpectatorsDisabled(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	invite, err := env.Services.Game.CreateInvite(ctx, game.ID, domain.InviteRoleSpectator)
	require.NoError(t, err)

	_, err = env.Services.Game.SetSpectatorsEnabled(ctx, game.ID, false)
	require.NoError(t, err)

	_, err = env.Services.Game.AcceptInvite(ctx, invite.Code, uuid.New())
	assert.ErrorIs(t, err, service.ErrSpectatorsDisabled)
}

func TestGameService_AcceptInvite_Expired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	invite, err := env.Services.Game.CreateInvite(ctx, game.ID, domain.InviteRoleCoHost)
	require.NoError(t, err)

	// Age the invite past its window
	err = env.DB.DB.Model(&domain.Invite{}).
		Where("id = ?", invite.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	_, err = env.Services.Game.AcceptInvite(ctx, invite.Code, uuid.New())
	assert.ErrorIs(t, err, service.ErrInviteExpired)
}

func TestGameService_AcceptInvite_UnknownCode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)

	_, err := env.Services.Game.AcceptInvite(context.Background(), "deadbeef", uuid.New())
	assert.ErrorIs(t, err, service.ErrInviteNotFound)
}
