package service_test

import (
	"context"
	"testing"

	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/service"
	"github.com/shelterplus/shelterplus-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_CastVote_Upsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	voter := game.Players[0]
	first := game.Players[1]
	second := game.Players[2]

	_, err := env.Services.Game.CastVote(ctx, game.ID, 1, voter.ID, first.ID, domain.VoteSourceWeb)
	require.NoError(t, err)

	// Re-voting replaces the target, not the row
	_, err = env.Services.Game.CastVote(ctx, game.ID, 1, voter.ID, second.ID, domain.VoteSourceDiscord)
	require.NoError(t, err)

	votes, err := env.Repos.Vote.GetByGameAndRound(ctx, game.ID, 1)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	require.NotNil(t, votes[0].TargetPlayerID)
	assert.Equal(t, second.ID, *votes[0].TargetPlayerID)
	assert.Equal(t, domain.VoteSourceDiscord, votes[0].Source)
}

func TestGameService_Revote_PreservesRows(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	target := game.Players[2]

	for _, voter := range game.Players[:2] {
		_, err := env.Services.Game.CastVote(ctx, game.ID, 1, voter.ID, target.ID, domain.VoteSourceWeb)
		require.NoError(t, err)
	}

	require.NoError(t, env.Services.Game.Revote(ctx, game.ID, 1))

	votes, err := env.Repos.Vote.GetByGameAndRound(ctx, game.ID, 1)
	require.NoError(t, err)
	require.Len(t, votes, 2, "revote clears targets, never deletes rows")
	for _, vote := range votes {
		assert.Nil(t, vote.TargetPlayerID)
	}

	tally, err := env.Services.Game.VoteTally(ctx, game.ID)
	require.NoError(t, err)
	assert.Empty(t, tally)
}

func TestGameService_VoteTally_Lifetime(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)
	target := game.Players[3]

	_, err := env.Services.Game.StartRound(ctx, game.ID, 1)
	require.NoError(t, err)
	_, err = env.Services.Game.CastVote(ctx, game.ID, 1, game.Players[0].ID, target.ID, domain.VoteSourceWeb)
	require.NoError(t, err)

	_, err = env.Services.Game.StartRound(ctx, game.ID, 2)
	require.NoError(t, err)
	_, err = env.Services.Game.CastVote(ctx, game.ID, 2, game.Players[1].ID, target.ID, domain.VoteSourceWeb)
	require.NoError(t, err)

	// The tally spans rounds
	tally, err := env.Services.Game.VoteTally(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, tally[target.ID])
}

func TestGameService_Voting_EmitsStats(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, game := testutil.StartedGame(t, env, nil)

	require.NoError(t, env.Services.Game.StartVoting(ctx, game.ID, 1))
	_, err := env.Services.Game.CastVote(ctx, game.ID, 1, game.Players[0].ID, game.Players[1].ID, domain.VoteSourceWeb)
	require.NoError(t, err)
	require.NoError(t, env.Services.Game.StopVoting(ctx, game.ID, 1))

	assert.GreaterOrEqual(t, env.Broadcaster.CountEvent(service.RealtimeVoteStats), 3)
}
