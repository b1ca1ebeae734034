package engine

import (
	"github.com/google/uuid"
)

// ActionRecord is one entry in a player's per-turn action log.
type ActionRecord struct {
	Type   string `json:"type"`
	Detail string `json:"detail,omitempty"`
}

// Player holds one participant's complete state for the game's duration.
// Fleeing sets Fled; players are never removed from the game.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Dice      []*Die    `json:"dice"`
	DiceFloor int       `json:"diceFloor"`
	FreePips  int       `json:"freePips"`
	Score     int       `json:"score"`
	Fled      bool      `json:"fled"`
	Ready     bool      `json:"ready"`

	// Exhausted tracks dice already spent this turn. Cleared exactly once per
	// turn boundary, at the start of the player's new turn.
	Exhausted map[uuid.UUID]bool `json:"-"`

	// TurnActions logs the actions taken this turn, cleared at turn start.
	TurnActions []ActionRecord `json:"turnActions"`

	// Effects are one-time effects already played (so lifecycle hooks cannot
	// fire them twice). Modifications are permanent upgrades, looked up by ID
	// whenever a formula or cost needs to check for them. Hand holds effects
	// purchased but not yet played.
	Effects       []string `json:"effects"`
	Modifications []string `json:"modifications"`
	Hand          []string `json:"factoryHand"`

	// escrow holds pips committed to outstanding modification bids, keyed by
	// modification ID. Returned on auction loss or tie.
	escrow map[string]int

	turnStart *turnSnapshot
	history   []*actionSnapshot // bounded at MaxActionSnapshots
}

// newPlayer creates a player with an empty pool at the default dice floor.
func newPlayer(name string) *Player {
	return &Player{
		ID:        uuid.New(),
		Name:      name,
		DiceFloor: DefaultDiceFloor,
		Exhausted: make(map[uuid.UUID]bool),
		escrow:    make(map[string]int),
	}
}

// HasModification reports whether the player owns the given modification.
func (p *Player) HasModification(id string) bool {
	for _, m := range p.Modifications {
		if m == id {
			return true
		}
	}
	return false
}

// handIndex returns the position of the effect in the factory hand, or -1.
func (p *Player) handIndex(id string) int {
	for i, e := range p.Hand {
		if e == id {
			return i
		}
	}
	return -1
}

// minPips is the floor FreePips may not cross: 0, or -20 with a credit line.
func (p *Player) minPips() int {
	if p.HasModification(ModCreditLine) {
		return CreditLineFloor
	}
	return MinFreePips
}

// canAfford reports whether spending cost pips keeps FreePips at or above
// the player's floor.
func (p *Player) canAfford(cost int) bool {
	return p.FreePips-cost >= p.minPips()
}

// exhaust marks the dice as spent for the rest of the turn.
func (p *Player) exhaust(dice ...*Die) {
	for _, d := range dice {
		p.Exhausted[d.ID] = true
	}
}

// anyExhausted returns the first exhausted die among the given dice, or nil.
func (p *Player) anyExhausted(dice []*Die) *Die {
	for _, d := range dice {
		if p.Exhausted[d.ID] {
			return d
		}
	}
	return nil
}

// exhaustedIDs returns the IDs of this turn's exhausted dice still in the pool.
func (p *Player) exhaustedIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, d := range p.Dice {
		if p.Exhausted[d.ID] {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// active reports whether the player is still in the running (has not fled).
func (p *Player) active() bool { return !p.Fled }

// recordAction appends to the player's per-turn action log.
func (p *Player) recordAction(actionType, detail string) {
	p.TurnActions = append(p.TurnActions, ActionRecord{Type: actionType, Detail: detail})
}
