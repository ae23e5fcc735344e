package client

import (
	"context"
	"homeworlds/communication/server"
	"homeworlds/game"
	"homeworlds/gamemaster"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	ctx := context.Background()
	master, err := gamemaster.NewGameMaster(2)
	require.NoError(t, err)
	ts := httptest.NewServer(server.NewServer(master).Handler())
	defer ts.Close()
	c := NewClient(ts.URL+"/", nil)

	t.Run("reads the game", func(t *testing.T) {
		snap, err := c.State(ctx)
		require.NoError(t, err)
		require.Equal(t, master.ID(), snap.GameID)

		moves, err := c.Moves(ctx)
		require.NoError(t, err)
		require.Equal(t, game.North, moves.Seat)
		require.Len(t, moves.Moves, 36)
	})

	t.Run("surfaces rule errors", func(t *testing.T) {
		err := c.Probe(ctx, "homeworld g3 b2")
		require.Equal(t, game.CodeOf(master.Probe("homeworld g3 b2")), game.CodeOf(err))
		require.NotEmpty(t, game.CodeOf(err))

		_, err = c.Play(ctx, game.North, "jump")
		require.ErrorIs(t, err, game.ErrUnrecognizedCommand)
		require.Equal(t, "jump", err.(*game.RuleError).Get("command"))

		_, err = c.Play(ctx, game.South, "pass")
		require.ErrorIs(t, err, gamemaster.ErrNotYourTurn)
	})

	t.Run("plays moves", func(t *testing.T) {
		require.NoError(t, c.Probe(ctx, "homeworld g3 b2 y3"))
		entry, err := c.Play(ctx, game.North, "homeworld g3 b2 y3")
		require.NoError(t, err)
		require.Equal(t, "homeworld g3 b2 y3", entry.Move)
		require.Equal(t, game.South, master.State().Current)
	})
}

func TestClientRateLimited(t *testing.T) {
	master, err := gamemaster.NewGameMaster(2)
	require.NoError(t, err)
	ts := httptest.NewServer(server.NewServer(master, server.WithRateLimit(0.001, 1)).Handler())
	defer ts.Close()
	c := NewClient(ts.URL, nil)

	_, err = c.State(context.Background())
	require.NoError(t, err)
	_, err = c.State(context.Background())
	require.ErrorIs(t, err, ErrRateLimited)
}
