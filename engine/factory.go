package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Factory subsystem: the market of one-time effects and permanent
// modifications. Effects are bought into a player's hand and played later;
// modifications are contested through reservations resolved at end of turn
// (see auction.go). Passive modifications are read directly off the owning
// player's modification list by the other subsystems; only triggered
// modifications run through processTriggers.

// effectOffered reports whether the effect is in this game's market.
func (g *Game) effectOffered(id string) bool {
	for _, e := range g.AvailableEffects {
		if e == id {
			return true
		}
	}
	return false
}

// modificationOffered reports whether the modification is in this game's market.
func (g *Game) modificationOffered(id string) bool {
	for _, m := range g.AvailableModifications {
		if m == id {
			return true
		}
	}
	return false
}

// removeModificationOffer takes a modification card out of the market.
func (g *Game) removeModificationOffer(id string) {
	for i, m := range g.AvailableModifications {
		if m == id {
			g.AvailableModifications = append(g.AvailableModifications[:i], g.AvailableModifications[i+1:]...)
			return
		}
	}
}

// buyEffect moves a market effect into the player's factory hand.
func (g *Game) buyEffect(p *Player, effectID string) Result {
	if !g.effectOffered(effectID) {
		return failure("effect %q is not available in this game's market", effectID)
	}
	def, _ := EffectByID(effectID)
	if !p.canAfford(def.Cost) {
		return failure("not enough pips: need %d, have %d", def.Cost, p.FreePips)
	}

	p.FreePips -= def.Cost
	p.Hand = append(p.Hand, effectID)

	p.recordAction("buy_effect", effectID)
	g.appendLog(p, fmt.Sprintf("%s buys %s (%d pips).", p.Name, def.Name, def.Cost))
	return Result{Success: true, Message: fmt.Sprintf("%s added to hand", def.Name)}
}

// playEffect consumes an effect from the player's hand and applies it.
// The effect moves to the played list so it can never apply twice.
func (g *Game) playEffect(p *Player, effectID string, targetDieID uuid.UUID) Result {
	idx := p.handIndex(effectID)
	if idx < 0 {
		return failure("effect %q is not in %s's hand", effectID, p.Name)
	}
	def, _ := EffectByID(effectID)

	r := g.applyEffect(p, effectID, targetDieID)
	if !r.Success {
		return r
	}

	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	p.Effects = append(p.Effects, effectID)

	p.recordAction("play_effect", effectID)
	g.appendLog(p, fmt.Sprintf("%s plays %s.", p.Name, def.Name))
	return r
}

// applyEffect performs one effect's one-time change. Failures here leave all
// state untouched so the effect stays in hand.
func (g *Game) applyEffect(p *Player, effectID string, targetDieID uuid.UUID) Result {
	switch effectID {
	case EffectQualityControl:
		rerolled := 0
		for _, d := range p.Dice {
			if d.Rolled() && !p.Exhausted[d.ID] {
				d.Roll(g.rng)
				rerolled++
			}
		}
		return Result{Success: true, Message: fmt.Sprintf("rerolled %d dice", rerolled)}

	case EffectRushOrder:
		d := NewDie(6)
		d.Roll(g.rng)
		p.Dice = append(p.Dice, d)
		return Result{Success: true, Message: "a d6 joins the pool", NewDice: []*Die{d}}

	case EffectOvertime:
		gained := len(p.Dice)
		p.FreePips += gained
		return Result{Success: true, Message: fmt.Sprintf("gained %d pips", gained), PipsGained: gained}

	case EffectChromePlating, EffectPrismCoating:
		d := findDie(p.Dice, targetDieID)
		if d == nil {
			return failure("target die %s not found in pool", targetDieID)
		}
		if effectID == EffectChromePlating {
			d.Shiny = true
			return Result{Success: true, Message: "die is now shiny"}
		}
		d.Rainbow = true
		return Result{Success: true, Message: "die is now rainbow"}

	case EffectShoreUp:
		if g.cfg.Variant != VariantStandard {
			return failure("the %s variant has no collapse pool", g.cfg.Variant)
		}
		g.CollapseDice = append(g.CollapseDice, 6)
		return Result{Success: true, Message: "a d6 is added to the collapse pool"}

	default:
		return failure("unknown effect %q", effectID)
	}
}

// processTriggers runs every owned modification whose trigger matches the
// lifecycle event for the given player.
func (g *Game) processTriggers(trigger Trigger, p *Player) {
	for _, id := range p.Modifications {
		def, ok := ModificationByID(id)
		if !ok || def.Trigger != trigger {
			continue
		}
		switch id {
		case ModNightShift:
			rerolled := 0
			for _, d := range p.Dice {
				if d.Value == 1 {
					d.Roll(g.rng)
					rerolled++
				}
			}
			if rerolled > 0 {
				g.appendLog(p, fmt.Sprintf("Night Shift rerolls %d of %s's dice.", rerolled, p.Name))
			}
		case ModScrapRecovery:
			gained := len(p.Exhausted)
			if gained > 0 {
				p.FreePips += gained
				g.appendLog(p, fmt.Sprintf("Scrap Recovery pays %s %d pips.", p.Name, gained))
			}
		}
	}
}
