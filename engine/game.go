// Package engine implements the Dice Factory rules: per-player dice pools,
// a shared collapse clock, a market of one-time effects and permanent
// modifications with blind-auction resolution, and turn sequencing with
// bounded undo.
//
// The engine performs no networking, no persistence, and no rendering. An
// external transport submits player intents through the one-method-per-action
// API and reads state back through GetGameState / GetPlayerView. Bots are
// ordinary callers of the same API.
package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Phase is the game lifecycle phase.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseComplete Phase = "complete"
)

// Result is the uniform return value of every player-facing action.
// A failed action leaves game state completely unchanged.
type Result struct {
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	Message    string        `json:"message,omitempty"`
	Points     int           `json:"points,omitempty"`
	PipsGained int           `json:"pipsGained,omitempty"`
	NewDice    []*Die        `json:"newDice,omitempty"`
	Preview    *ScorePreview `json:"preview,omitempty"`
}

func failure(format string, args ...interface{}) Result {
	return Result{Error: fmt.Sprintf(format, args...)}
}

// Game is the orchestrator owning one game instance's complete state.
// All subsystem logic runs as methods on Game against this shared state;
// the mutex serializes actions arriving from the transport boundary.
type Game struct {
	ID  uuid.UUID
	cfg Config

	Phase           Phase
	Round           int
	TurnCounter     int
	CollapseStarted bool
	CollapseDice    []int
	WinnerID        uuid.UUID

	Players []*Player

	AvailableEffects       []string
	AvailableModifications []string

	// Auctions holds the outstanding modification reservations for the
	// current turn, keyed by modification ID. Resolved at end of turn.
	Auctions map[string]*Auction

	// One-time global trick bonuses, independent of which player claims them.
	firstStraightClaimed bool
	firstSetClaimed      bool

	GameLog []LogEntry

	rng *rand.Rand
	log *logrus.Entry
	mu  sync.Mutex
}

// Option configures a Game at construction time.
type Option func(*Game)

// WithLogger attaches a structured logger; the engine logs actions at Debug
// and lifecycle transitions at Info, tagged with the game ID.
func WithLogger(l *logrus.Logger) Option {
	return func(g *Game) { g.log = logrus.NewEntry(l) }
}

// NewGame creates a game from a roster of player names: seeds the market,
// fills every pool to the dice floor, auto-rolls every initial die, and takes
// each player's first turn-start snapshot.
func NewGame(names []string, cfg Config, opts ...Option) (*Game, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(names))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Game{
		ID:           uuid.New(),
		cfg:          cfg,
		Phase:        PhasePlaying,
		Round:        1,
		TurnCounter:  1,
		CollapseDice: append([]int(nil), cfg.CollapseDice...),
		Auctions:     make(map[string]*Auction),
		rng:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:          newDiscardLogger(),
	}
	for _, o := range opts {
		o(g)
	}
	g.log = g.log.WithField("game", g.ID)

	for _, name := range names {
		g.Players = append(g.Players, newPlayer(name))
	}

	g.seedMarket()

	for _, p := range g.Players {
		g.enforceDiceFloor(p)
		for _, d := range p.Dice {
			d.Roll(g.rng)
		}
		p.captureTurnStart()
	}

	g.appendLog(nil, fmt.Sprintf("The factory opens with %d workers (%s variant).", len(g.Players), cfg.Variant))
	g.log.WithField("players", len(g.Players)).Info("game created")
	return g, nil
}

// seedMarket draws this game's market offerings from the catalogs.
func (g *Game) seedMarket() {
	effects := g.rng.Perm(len(effectCatalog))
	for _, i := range effects[:g.cfg.MarketEffects] {
		g.AvailableEffects = append(g.AvailableEffects, effectCatalog[i].ID)
	}
	mods := g.rng.Perm(len(modificationCatalog))
	for _, i := range mods[:g.cfg.MarketModifications] {
		g.AvailableModifications = append(g.AvailableModifications, modificationCatalog[i].ID)
	}
}

// playerByID finds a player, or nil.
func (g *Game) playerByID(id uuid.UUID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// actingPlayer gates an action request: the player must exist, the game must
// be in the playing phase, and the player must be neither fled nor ready.
func (g *Game) actingPlayer(playerID uuid.UUID) (*Player, Result) {
	p := g.playerByID(playerID)
	if p == nil {
		return nil, failure("player %s not found", playerID)
	}
	if g.Phase != PhasePlaying {
		return nil, failure("game is not in the playing phase")
	}
	if p.Fled {
		return nil, failure("%s has fled the factory", p.Name)
	}
	if p.Ready {
		return nil, failure("%s has already ended their turn", p.Name)
	}
	return p, Result{}
}

// ---------------------------------------------------------------------------
// Action facade: one method per player action. Every mutating method locks,
// gates via actingPlayer, delegates to the owning subsystem, and (for
// undoable actions) pushes the pre-action snapshot on success.
// ---------------------------------------------------------------------------

// RecruitDice spends qualifying rolled dice to add new dice to the pool.
func (g *Game) RecruitDice(playerID uuid.UUID, dieIDs []uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.undoable(p, func() Result { return g.recruitDice(p, dieIDs) })
}

// PromoteDice consumes maxed-out dice, producing one die of the next size up
// for each.
func (g *Game) PromoteDice(playerID uuid.UUID, dieIDs []uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.undoable(p, func() Result { return g.promoteDice(p, dieIDs) })
}

// ProcessDice discards valued dice for pips at the processing multiplier.
func (g *Game) ProcessDice(playerID uuid.UUID, dieIDs []uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.undoable(p, func() Result { return g.processDice(p, dieIDs) })
}

// ModifyDieValue shifts a die's shown value by ±1 for a pip cost.
func (g *Game) ModifyDieValue(playerID, dieID uuid.UUID, delta int) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.undoable(p, func() Result { return g.modifyDieValue(p, dieID, delta) })
}

// RerollDie rerolls one die for a pip cost.
func (g *Game) RerollDie(playerID, dieID uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.undoable(p, func() Result { return g.rerollDie(p, dieID, 0) })
}

// ScoreStraight claims a straight from the identified dice.
func (g *Game) ScoreStraight(playerID uuid.UUID, dieIDs []uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.undoable(p, func() Result { return g.scoreTrick(p, dieIDs, trickStraight) })
}

// ScoreSet claims a set from the identified dice.
func (g *Game) ScoreSet(playerID uuid.UUID, dieIDs []uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.undoable(p, func() Result { return g.scoreTrick(p, dieIDs, trickSet) })
}

// CalculateScorePreview reports what the identified dice could score without
// charging or mutating anything.
func (g *Game) CalculateScorePreview(playerID uuid.UUID, dieIDs []uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.playerByID(playerID)
	if p == nil {
		return failure("player %s not found", playerID)
	}
	return g.scorePreview(p, dieIDs)
}

// BuyFactoryEffect purchases a market effect into the player's hand.
// Factory actions are excluded from the incremental undo stack; UndoTurn
// rolls them back.
func (g *Game) BuyFactoryEffect(playerID uuid.UUID, effectID string) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.buyEffect(p, effectID)
}

// PlayFactoryEffect plays an effect from the player's hand. Some effects
// target a die; pass uuid.Nil otherwise.
func (g *Game) PlayFactoryEffect(playerID uuid.UUID, effectID string, targetDieID uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.playEffect(p, effectID, targetDieID)
}

// BuyFactoryModification reserves a market modification with a sealed default
// bid of the card's cost. Reservations resolve at end of turn: a sole
// reserver wins at cost, competing reservers go to blind auction.
func (g *Game) BuyFactoryModification(playerID uuid.UUID, modificationID string) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.reserveModification(p, modificationID)
}

// PlaceAuctionBid revises the player's sealed bid on a modification they
// have reserved this turn.
func (g *Game) PlaceAuctionBid(playerID uuid.UUID, modificationID string, amount int) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	return g.placeBid(p, modificationID, amount)
}

// SetPlayerReady ends the player's turn: unused rolled dice convert to pips
// and the player is locked until the next turn. When every active player is
// ready, end-of-turn processing runs.
func (g *Game) SetPlayerReady(playerID uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	r := g.setReady(p)
	if r.Success {
		g.maybeProcessEndOfTurn()
	}
	return r
}

// FleeFactory locks in the player's score and exits the collapse risk,
// removing one collapse die.
func (g *Game) FleeFactory(playerID uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	r := g.flee(p)
	if r.Success {
		g.maybeProcessEndOfTurn()
	}
	return r
}

// UndoLastAction pops the most recent retained snapshot and restores the
// player's dice, pips, score, and exhausted set from it. Once the bounded
// stack is exhausted it falls back to the turn-start snapshot.
func (g *Game) UndoLastAction(playerID uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	s := p.popSnapshot()
	if s == nil {
		return failure("no undo history available")
	}
	p.restoreAction(s)
	p.recordAction("undo_action", "")
	g.appendLog(p, fmt.Sprintf("%s undoes their last action.", p.Name))
	return Result{Success: true, Message: "last action undone"}
}

// UndoTurn rewinds the player to the snapshot taken at the start of their
// current turn, including effects, modifications, hand, and dice floor.
func (g *Game) UndoTurn(playerID uuid.UUID) Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, res := g.actingPlayer(playerID)
	if p == nil {
		return res
	}
	if !p.restoreTurnStart() {
		return failure("no turn snapshot available")
	}
	g.releaseReservations(p)
	g.appendLog(p, fmt.Sprintf("%s rewinds their whole turn.", p.Name))
	return Result{Success: true, Message: "turn undone"}
}

// undoable runs an action and, on success, retains the pre-action snapshot.
func (g *Game) undoable(p *Player, fn func() Result) Result {
	snap := p.captureAction()
	r := fn()
	if r.Success {
		p.pushSnapshot(snap)
	}
	return r
}

// ---------------------------------------------------------------------------
// Transport conveniences
// ---------------------------------------------------------------------------

// IsPlayerTurn reports whether the player can currently act. Turns are
// simultaneous: every active player acts until they ready.
func (g *Game) IsPlayerTurn(playerID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, _ := g.actingPlayer(playerID)
	return p != nil
}

// GetPendingPlayers lists the players who still have actions pending this
// turn. Bot drivers poll this to find work.
func (g *Game) GetPendingPlayers() []uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var ids []uuid.UUID
	if g.Phase != PhasePlaying {
		return ids
	}
	for _, p := range g.Players {
		if p.active() && !p.Ready {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
