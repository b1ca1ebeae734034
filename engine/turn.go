package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Turn subsystem: readiness, end-of-turn sequencing, the collapse clock, and
// turn advancement. Turns are simultaneous: every active player acts until
// they ready, then the whole table advances together.

// setReady ends the player's turn: unexhausted rolled dice convert to pips
// at 1× face value and the player locks until the next turn. Undo is no
// longer available once readied.
func (g *Game) setReady(p *Player) Result {
	converted := g.convertUnusedToPips(p)
	p.Ready = true

	p.recordAction("ready", "")
	g.appendLog(p, fmt.Sprintf("%s ends their turn.", p.Name))
	return Result{Success: true, Message: "ready", PipsGained: converted}
}

// flee locks in the player's score and removes them from the collapse risk.
// Leaving takes one collapse die with them, the largest remaining, which
// tightens the trigger check for everyone who stays.
func (g *Game) flee(p *Player) Result {
	if g.cfg.Variant != VariantStandard {
		return failure("there is no collapse to flee in the %s variant", g.cfg.Variant)
	}
	if !g.CollapseStarted {
		return failure("the factory is not collapsing yet")
	}

	g.refundReservations(p)
	p.Fled = true
	p.Ready = true

	removed := g.removeLargestCollapseDie()
	p.recordAction("flee", "")
	if removed > 0 {
		g.appendLog(p, fmt.Sprintf("%s flees the factory with %d points, taking a d%d from the collapse pool.", p.Name, p.Score, removed))
	} else {
		g.appendLog(p, fmt.Sprintf("%s flees the factory with %d points.", p.Name, p.Score))
	}
	g.log.WithField("player", p.Name).Info("player fled")
	return Result{Success: true, Message: fmt.Sprintf("fled with %d points", p.Score)}
}

// removeLargestCollapseDie pops the largest die size from the collapse pool,
// returning it (0 when the pool is empty).
func (g *Game) removeLargestCollapseDie() int {
	best := -1
	for i, s := range g.CollapseDice {
		if best < 0 || s > g.CollapseDice[best] {
			best = i
		}
	}
	if best < 0 {
		return 0
	}
	removed := g.CollapseDice[best]
	g.CollapseDice = append(g.CollapseDice[:best], g.CollapseDice[best+1:]...)
	return removed
}

// activePlayers returns the players who have not fled.
func (g *Game) activePlayers() []*Player {
	var active []*Player
	for _, p := range g.Players {
		if p.active() {
			active = append(active, p)
		}
	}
	return active
}

// maybeProcessEndOfTurn runs end-of-turn processing once every active player
// is ready. Sequencing: auctions resolve first, then the collapse check,
// then turn_end triggers, then end conditions; if the game survives, the
// table advances to the next turn.
func (g *Game) maybeProcessEndOfTurn() {
	if g.Phase != PhasePlaying {
		return
	}
	for _, p := range g.activePlayers() {
		if !p.Ready {
			return
		}
	}

	g.resolveAuctions()

	if g.cfg.Variant == VariantStandard && g.checkCollapse() {
		return // collapse crushed the factory and ended the game
	}

	for _, p := range g.activePlayers() {
		g.processTriggers(TriggerTurnEnd, p)
	}

	if g.checkEndConditions() {
		return
	}

	g.advanceTurn()
}

// checkCollapse rolls the collapse pool and advances the risk clock.
// Before collapse starts, a roll below the turn counter starts it. Once
// started, each roll subtracts from the turn counter; at zero or below the
// factory crushes everyone still inside. Returns true when the game ended.
func (g *Game) checkCollapse() bool {
	roll := 0
	for _, sides := range g.CollapseDice {
		roll += 1 + g.rng.IntN(sides)
	}

	if !g.CollapseStarted {
		if roll < g.TurnCounter {
			g.CollapseStarted = true
			g.appendLog(nil, fmt.Sprintf("The factory shudders; collapse has begun (rolled %d against turn %d).", roll, g.TurnCounter))
			g.log.WithField("roll", roll).Info("collapse started")
		}
		return false
	}

	g.TurnCounter -= roll
	g.appendLog(nil, fmt.Sprintf("The collapse advances by %d; the clock stands at %d.", roll, g.TurnCounter))
	if g.TurnCounter > 0 {
		return false
	}

	// The factory comes down. Everyone still inside loses everything; the
	// best-scoring escapee takes the game.
	for _, p := range g.Players {
		if !p.Fled {
			p.Score = 0
		}
	}
	g.appendLog(nil, "The factory collapses, crushing everyone still inside.")
	g.endGame()
	return true
}

// checkEndConditions ends the game when one or zero active players remain,
// or when an experimental-variant game reaches its round limit. Returns true
// when the game ended.
func (g *Game) checkEndConditions() bool {
	if len(g.activePlayers()) <= 1 {
		g.endGame()
		return true
	}
	if g.cfg.Variant == VariantExperimental && g.Round >= g.cfg.MaxRounds {
		g.appendLog(nil, fmt.Sprintf("The factory closes after %d rounds.", g.Round))
		g.endGame()
		return true
	}
	return false
}

// advanceTurn moves the whole table to the next turn: per active player,
// readiness and per-turn bookkeeping reset, the dice floor is restored with
// blank d4s, turn_start triggers fire, every die auto-rolls, and the
// turn-start undo snapshot is taken.
func (g *Game) advanceTurn() {
	g.Round++
	g.TurnCounter++

	for _, p := range g.activePlayers() {
		p.Ready = false
		p.TurnActions = nil
		p.Exhausted = make(map[uuid.UUID]bool)

		g.enforceDiceFloor(p)
		for _, d := range p.Dice {
			d.Roll(g.rng)
		}
		g.processTriggers(TriggerTurnStart, p)

		p.captureTurnStart()
	}

	g.appendLog(nil, fmt.Sprintf("Round %d begins.", g.Round))
}

// endGame completes the game and determines the winner: highest score wins,
// ties broken by join order.
func (g *Game) endGame() {
	if g.Phase == PhaseComplete {
		return
	}
	g.Phase = PhaseComplete

	// After a crush only escapees are eligible; everyone else was zeroed.
	crushed := g.CollapseStarted && g.TurnCounter <= 0

	var winner *Player
	for _, p := range g.Players {
		if crushed && !p.Fled {
			continue
		}
		if winner == nil || p.Score > winner.Score {
			winner = p
		}
	}
	if winner == nil {
		g.appendLog(nil, "No one escaped; there is no winner.")
		g.log.Info("game complete, no winner")
		return
	}

	g.WinnerID = winner.ID
	g.appendLog(nil, fmt.Sprintf("%s wins with %d points.", winner.Name, winner.Score))
	g.log.WithField("winner", winner.Name).Info("game complete")
}
