package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig returns a deterministic config with the full catalogs offered,
// so any effect or modification a test needs is in the market.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.MarketEffects = len(effectCatalog)
	cfg.MarketModifications = len(modificationCatalog)
	return cfg
}

// newTestGame creates a two-player game with the deterministic test config.
func newTestGame(t *testing.T, mutate ...func(*Config)) *Game {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	g, err := NewGame([]string{"Ada", "Grace"}, cfg)
	require.NoError(t, err)
	return g
}

// setPool replaces a player's pool with specific rolled dice and retakes the
// turn-start snapshot, so tests control exactly what undo rewinds to.
func setPool(p *Player, specs ...[2]int) []uuid.UUID {
	p.Dice = makeDice(specs...)
	p.Exhausted = make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, len(p.Dice))
	for i, d := range p.Dice {
		ids[i] = d.ID
	}
	p.captureTurnStart()
	return ids
}

func TestNewGameRequiresTwoPlayers(t *testing.T) {
	_, err := NewGame([]string{"Solo"}, testConfig())
	require.Error(t, err)
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Variant = "ragtime"
	_, err := NewGame([]string{"Ada", "Grace"}, cfg)
	require.Error(t, err)

	cfg = testConfig()
	cfg.CollapseDice = []int{4, 7}
	_, err = NewGame([]string{"Ada", "Grace"}, cfg)
	require.Error(t, err)
}

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, PhasePlaying, g.Phase)
	assert.Equal(t, 1, g.Round)
	assert.Equal(t, 1, g.TurnCounter)
	assert.False(t, g.CollapseStarted)
	assert.Len(t, g.AvailableEffects, len(effectCatalog))
	assert.Len(t, g.AvailableModifications, len(modificationCatalog))

	for _, p := range g.Players {
		assert.Len(t, p.Dice, DefaultDiceFloor, "pool starts at the dice floor")
		for _, d := range p.Dice {
			assert.True(t, d.Rolled(), "initial dice auto-roll")
			assert.Equal(t, MinDieSides, d.Sides)
		}
		assert.Equal(t, 0, p.FreePips)
		assert.Equal(t, 0, p.Score)
	}
}

// TestNewGameDeterministic verifies that the same seed reproduces the same
// opening rolls and market, the property replay relies on.
func TestNewGameDeterministic(t *testing.T) {
	a := newTestGame(t)
	b := newTestGame(t)

	assert.Equal(t, a.AvailableEffects, b.AvailableEffects)
	assert.Equal(t, a.AvailableModifications, b.AvailableModifications)
	for i := range a.Players {
		require.Equal(t, len(a.Players[i].Dice), len(b.Players[i].Dice))
		for j := range a.Players[i].Dice {
			assert.Equal(t, a.Players[i].Dice[j].Value, b.Players[i].Dice[j].Value)
		}
	}
}

func TestActingPlayerGating(t *testing.T) {
	g := newTestGame(t)
	ada := g.Players[0]

	r := g.SetPlayerReady(uuid.New())
	assert.False(t, r.Success)
	assert.Contains(t, r.Error, "not found")

	require.True(t, g.SetPlayerReady(ada.ID).Success)
	r = g.RerollDie(ada.ID, ada.Dice[0].ID)
	assert.False(t, r.Success, "a ready player cannot act")

	g.Phase = PhaseComplete
	r = g.SetPlayerReady(g.Players[1].ID)
	assert.False(t, r.Success, "no actions in a completed game")
}

func TestFailedActionLeavesStateUntouched(t *testing.T) {
	g := newTestGame(t)
	ada := g.Players[0]
	setPool(ada, [2]int{6, 3}, [2]int{6, 4}, [2]int{6, 6})
	ada.FreePips = 5

	before := g.GetGameState()
	r := g.ScoreStraight(ada.ID, []uuid.UUID{ada.Dice[0].ID, ada.Dice[1].ID, ada.Dice[2].ID})
	require.False(t, r.Success, "3-4-6 is not a straight")
	assert.Equal(t, before, g.GetGameState())
}

func TestGetPendingPlayers(t *testing.T) {
	g := newTestGame(t)
	ada, grace := g.Players[0], g.Players[1]

	pending := g.GetPendingPlayers()
	assert.ElementsMatch(t, []uuid.UUID{ada.ID, grace.ID}, pending)
	assert.True(t, g.IsPlayerTurn(ada.ID))

	require.True(t, g.SetPlayerReady(ada.ID).Success)
	pending = g.GetPendingPlayers()
	assert.Equal(t, []uuid.UUID{grace.ID}, pending)
	assert.False(t, g.IsPlayerTurn(ada.ID))
}
