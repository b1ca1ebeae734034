package engine

import (
	"github.com/google/uuid"
)

// View projections. GetGameState is the unredacted snapshot for logging,
// replay, and trusted observers; GetPlayerView redacts the parts of the
// state a player is not entitled to see: other players' factory hands and
// every sealed bid amount.

// PlayerState is one player's slice of a view.
type PlayerState struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Dice      []*Die    `json:"dice"`
	DiceFloor int       `json:"diceFloor"`
	FreePips  int       `json:"freePips"`
	Score     int       `json:"score"`
	Fled      bool      `json:"fled"`
	Ready     bool      `json:"ready"`

	Effects       []string `json:"effects"`
	Modifications []string `json:"modifications"`

	// HandSize is always populated; Hand only for the viewing player (and in
	// the unredacted state).
	HandSize int      `json:"handSize"`
	Hand     []string `json:"hand,omitempty"`

	// ExhaustedDice lists the dice spent this turn, populated under the same
	// visibility rule as Hand.
	ExhaustedDice []uuid.UUID `json:"exhaustedDice,omitempty"`

	TurnActions []ActionRecord `json:"turnActions,omitempty"`
}

// AuctionState is one outstanding reservation in a view. Bidder identities
// are public; sealed amounts appear only in the unredacted state.
type AuctionState struct {
	ModificationID string      `json:"modificationId"`
	Bidders        []uuid.UUID `json:"bidders"`
	Bids           []Bid       `json:"bids,omitempty"`
}

// GameState is a complete point-in-time projection of a game.
type GameState struct {
	GameID          uuid.UUID `json:"gameId"`
	Variant         Variant   `json:"variant"`
	Phase           Phase     `json:"phase"`
	Round           int       `json:"round"`
	TurnCounter     int       `json:"turnCounter"`
	CollapseStarted bool      `json:"collapseStarted"`
	CollapseDice    []int     `json:"collapseDice"`
	WinnerID        uuid.UUID `json:"winnerId,omitempty"`

	AvailableEffects       []string `json:"availableEffects"`
	AvailableModifications []string `json:"availableModifications"`

	Auctions []AuctionState `json:"auctions,omitempty"`
	Players  []PlayerState  `json:"players"`
	GameLog  []LogEntry     `json:"gameLog"`
}

// GetGameState returns the full, unredacted projection.
func (g *Game) GetGameState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buildView(uuid.Nil, true)
}

// GetPlayerView returns the projection as seen by one player: their own hand
// and exhausted dice in full, other hands as counts, and auction bids
// reduced to bidder presence.
func (g *Game) GetPlayerView(playerID uuid.UUID) GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buildView(playerID, false)
}

// buildView assembles a projection. Assumes the game lock is held.
func (g *Game) buildView(forPlayer uuid.UUID, unredacted bool) GameState {
	state := GameState{
		GameID:                 g.ID,
		Variant:                g.cfg.Variant,
		Phase:                  g.Phase,
		Round:                  g.Round,
		TurnCounter:            g.TurnCounter,
		CollapseStarted:        g.CollapseStarted,
		CollapseDice:           append([]int(nil), g.CollapseDice...),
		WinnerID:               g.WinnerID,
		AvailableEffects:       append([]string(nil), g.AvailableEffects...),
		AvailableModifications: append([]string(nil), g.AvailableModifications...),
		GameLog:                append([]LogEntry(nil), g.GameLog...),
	}

	for _, a := range g.Auctions {
		as := AuctionState{ModificationID: a.ModificationID}
		for _, b := range a.Bids {
			as.Bidders = append(as.Bidders, b.PlayerID)
		}
		if unredacted {
			as.Bids = append([]Bid(nil), a.Bids...)
		}
		state.Auctions = append(state.Auctions, as)
	}

	state.Players = make([]PlayerState, len(g.Players))
	for i, p := range g.Players {
		isSelf := unredacted || p.ID == forPlayer

		ps := PlayerState{
			ID:            p.ID,
			Name:          p.Name,
			Dice:          cloneDice(p.Dice),
			DiceFloor:     p.DiceFloor,
			FreePips:      p.FreePips,
			Score:         p.Score,
			Fled:          p.Fled,
			Ready:         p.Ready,
			Effects:       append([]string(nil), p.Effects...),
			Modifications: append([]string(nil), p.Modifications...),
			HandSize:      len(p.Hand),
		}
		if isSelf {
			ps.Hand = append([]string(nil), p.Hand...)
			ps.ExhaustedDice = p.exhaustedIDs()
			ps.TurnActions = append([]ActionRecord(nil), p.TurnActions...)
		}
		state.Players[i] = ps
	}

	return state
}
