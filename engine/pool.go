package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Dice subsystem: recruit / promote / process / modify / reroll operations on
// a player's pool. Every operation resolves the referenced dice by identity,
// defers legality to the validation predicates, and only then mutates the
// pool and FreePips, appending exactly one game-log entry.

// resolveUsable resolves dieIDs against the pool and rejects exhausted dice.
func (p *Player) resolveUsable(dieIDs []uuid.UUID) ([]*Die, Result) {
	dice, err := findDice(p.Dice, dieIDs)
	if err != nil {
		return nil, failure("%v", err)
	}
	if d := p.anyExhausted(dice); d != nil {
		return nil, failure("die %s is exhausted until next turn", d.ID)
	}
	return dice, Result{}
}

// recruitDice spends qualifying rolled dice to add new unset dice per the
// reward cascade. The recruiting dice are exhausted, not removed.
func (g *Game) recruitDice(p *Player, dieIDs []uuid.UUID) Result {
	dice, res := p.resolveUsable(dieIDs)
	if dice == nil {
		return res
	}
	v := ValidateRecruitment(dice)
	if !v.Valid {
		return failure("%s", v.Reason)
	}

	recruits := make([]*Die, 0, len(v.Rewards))
	for _, sides := range v.Rewards {
		d := NewDie(sides)
		recruits = append(recruits, d)
		p.Dice = append(p.Dice, d)
	}
	p.exhaust(dice...)

	p.recordAction("recruit", describeDice(dice))
	g.appendLog(p, fmt.Sprintf("%s recruits %d new dice with %s.", p.Name, len(recruits), describeDice(dice)))
	return Result{
		Success: true,
		Message: fmt.Sprintf("recruited %d dice", len(recruits)),
		NewDice: recruits,
	}
}

// promoteDice consumes maxed-out dice and inserts one unset die of the next
// size up for each. Promoted dice arrive exhausted.
func (g *Game) promoteDice(p *Player, dieIDs []uuid.UUID) Result {
	dice, res := p.resolveUsable(dieIDs)
	if dice == nil {
		return res
	}
	v := ValidatePromotion(dice)
	if !v.Valid {
		return failure("%s", v.Reason)
	}

	promoted := make([]*Die, 0, len(v.Rewards))
	p.Dice = removeDice(p.Dice, dieIDs)
	for i, sides := range v.Rewards {
		d := NewDie(sides)
		d.Shiny = dice[i].Shiny
		d.Rainbow = dice[i].Rainbow
		promoted = append(promoted, d)
		p.Dice = append(p.Dice, d)
	}
	p.exhaust(promoted...)

	p.recordAction("promote", describeDice(dice))
	g.appendLog(p, fmt.Sprintf("%s promotes %s.", p.Name, describeDice(dice)))
	return Result{
		Success: true,
		Message: fmt.Sprintf("promoted %d dice", len(promoted)),
		NewDice: promoted,
	}
}

// processDice removes valued dice from the pool, converting them to pips at
// the processing multiplier.
func (g *Game) processDice(p *Player, dieIDs []uuid.UUID) Result {
	dice, res := p.resolveUsable(dieIDs)
	if dice == nil {
		return res
	}
	v := ValidateProcessing(dice)
	if !v.Valid {
		return failure("%s", v.Reason)
	}

	p.Dice = removeDice(p.Dice, dieIDs)
	p.FreePips += v.Pips

	p.recordAction("process", describeDice(dice))
	g.appendLog(p, fmt.Sprintf("%s processes %s for %d pips.", p.Name, describeDice(dice), v.Pips))
	return Result{
		Success:    true,
		Message:    fmt.Sprintf("processed %d dice", len(dice)),
		PipsGained: v.Pips,
	}
}

// modifyDieValue shifts one die's value by ±1, charging the pip cost.
func (g *Game) modifyDieValue(p *Player, dieID uuid.UUID, delta int) Result {
	if delta != 1 && delta != -1 {
		return failure("value delta must be +1 or -1, got %d", delta)
	}
	dice, res := p.resolveUsable([]uuid.UUID{dieID})
	if dice == nil {
		return res
	}
	d := dice[0]

	cost := CostIncreaseValue
	verb := "increases"
	if delta < 0 {
		cost = CostDecreaseValue
		verb = "decreases"
	}
	if !p.canAfford(cost) {
		return failure("not enough pips: need %d, have %d", cost, p.FreePips)
	}
	v := ValidateValueModification(d, delta)
	if !v.Valid {
		return failure("%s", v.Reason)
	}

	d.Value += delta
	p.FreePips -= cost

	p.recordAction("modify_value", d.String())
	g.appendLog(p, fmt.Sprintf("%s %s a d%d to %d (%d pips).", p.Name, verb, d.Sides, d.Value, cost))
	return Result{Success: true, Message: fmt.Sprintf("die now shows %d", d.Value)}
}

// rerollDie rerolls one die for the reroll cost. A non-zero forced value is
// applied instead of rolling, so an undone reroll replays deterministically.
func (g *Game) rerollDie(p *Player, dieID uuid.UUID, forced int) Result {
	dice, res := p.resolveUsable([]uuid.UUID{dieID})
	if dice == nil {
		return res
	}
	d := dice[0]
	if !d.Rolled() {
		return failure("die %s has not been rolled", d.ID)
	}

	cost := CostReroll
	if p.HasModification(ModLubricatedGears) {
		cost = 1
	}
	if !p.canAfford(cost) {
		return failure("not enough pips: need %d, have %d", cost, p.FreePips)
	}
	if forced != 0 {
		if forced < 1 || forced > d.Sides {
			return failure("forced value %d is outside [1, %d]", forced, d.Sides)
		}
		d.Value = forced
	} else {
		d.Roll(g.rng)
	}
	p.FreePips -= cost

	p.recordAction("reroll", d.String())
	g.appendLog(p, fmt.Sprintf("%s rerolls a d%d, now showing %d (%d pips).", p.Name, d.Sides, d.Value, cost))
	return Result{Success: true, Message: fmt.Sprintf("die now shows %d", d.Value)}
}

// enforceDiceFloor tops the pool up to the player's dice floor with blank
// d4s, returning how many were added. Run at turn boundaries.
func (g *Game) enforceDiceFloor(p *Player) int {
	added := 0
	for len(p.Dice) < p.DiceFloor {
		p.Dice = append(p.Dice, NewDie(MinDieSides))
		added++
	}
	if added > 0 {
		g.appendLog(p, fmt.Sprintf("%s's pool is restocked with %d blank d4s.", p.Name, added))
	}
	return added
}

// convertUnusedToPips converts every unexhausted rolled die to pips at 1×
// face value. The dice stay in the pool; their values are superseded by the
// next turn's auto-roll.
func (g *Game) convertUnusedToPips(p *Player) int {
	total := 0
	for _, d := range p.Dice {
		if d.Rolled() && !p.Exhausted[d.ID] {
			total += d.Value
		}
	}
	if total > 0 {
		p.FreePips += total
		g.appendLog(p, fmt.Sprintf("%s converts unused dice into %d pips.", p.Name, total))
	}
	return total
}

// describeDice renders a compact list such as "d6=2, d8=3".
func describeDice(dice []*Die) string {
	parts := make([]string, len(dice))
	for i, d := range dice {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}
