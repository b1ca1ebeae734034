package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Scoring subsystem: resolves straight and set claims, applies the owned
// modifications that change the formulas, awards the one-time first-trick
// bonuses, and removes spent dice.

type trickKind int

const (
	trickStraight trickKind = iota
	trickSet
)

// ScorePreview is the non-mutating answer of CalculateScorePreview.
type ScorePreview struct {
	Type   string `json:"type"` // "straight", "set", or "none"
	Dice   int    `json:"dice"`
	Points int    `json:"points"`
}

// straightMinimum is the fewest dice a straight needs for this player.
func straightMinimum(p *Player) int {
	if p.HasModification(ModShortRun) {
		return 2
	}
	return MinStraightDice
}

// setMinimum is the fewest dice a set needs for this player.
func setMinimum(p *Player) int {
	if p.HasModification(ModMatchedTooling) {
		return 3
	}
	return MinSetDice
}

// trickPoints applies the player's formula modifiers on top of the base
// validation yield. Assembly Line adds one effective die; the point delta
// differs per trick because the underlying formulas differ.
func trickPoints(p *Player, kind trickKind, dice []*Die) int {
	count := len(dice)
	if p.HasModification(ModAssemblyLine) {
		count++
	}
	switch kind {
	case trickStraight:
		high := 0
		for _, d := range dice {
			if d.Value > high {
				high = d.Value
			}
		}
		return high * count
	default:
		return dice[0].Value * (count + 1)
	}
}

// scoreTrick resolves a straight or set claim.
func (g *Game) scoreTrick(p *Player, dieIDs []uuid.UUID, kind trickKind) Result {
	dice, res := p.resolveUsable(dieIDs)
	if dice == nil {
		return res
	}

	var v ValidationResult
	label := "straight"
	switch kind {
	case trickStraight:
		v = ValidateStraight(dice, straightMinimum(p))
	case trickSet:
		v = ValidateSet(dice, setMinimum(p))
		label = "set"
	}
	if !v.Valid {
		return failure("%s", v.Reason)
	}

	points := trickPoints(p, kind, dice)

	// First straight / first set of the game pays a one-time bonus, tracked
	// globally regardless of which player triggers it.
	bonus := 0
	if kind == trickStraight && !g.firstStraightClaimed {
		g.firstStraightClaimed = true
		bonus = FirstTrickBonus
	}
	if kind == trickSet && !g.firstSetClaimed {
		g.firstSetClaimed = true
		bonus = FirstTrickBonus
	}
	points += bonus

	// Spent dice leave the pool. A salvage hook preserves the single
	// highest-value die from the scored group, exhausted for the turn.
	var kept *Die
	if p.HasModification(ModSalvageHook) {
		for _, d := range dice {
			if kept == nil || d.Value > kept.Value {
				kept = d
			}
		}
	}
	removed := make([]uuid.UUID, 0, len(dice))
	for _, d := range dice {
		if d != kept {
			removed = append(removed, d.ID)
		}
	}
	p.Dice = removeDice(p.Dice, removed)
	if kept != nil {
		p.exhaust(kept)
	}

	p.Score += points

	p.recordAction("score_"+label, describeDice(dice))
	msg := fmt.Sprintf("%s scores a %s (%s) for %d points.", p.Name, label, describeDice(dice), points)
	if bonus > 0 {
		msg = fmt.Sprintf("%s scores the first %s of the game (%s) for %d points.", p.Name, label, describeDice(dice), points)
	}
	g.appendLog(p, msg)
	return Result{
		Success: true,
		Message: fmt.Sprintf("%s scored", label),
		Points:  points,
	}
}

// scorePreview runs trick detection over the identified dice without
// charging or mutating anything: the longest consecutive run of at least 3
// distinct values, or a group of at least 3 equal values, whichever scores
// higher under the player's formulas.
func (g *Game) scorePreview(p *Player, dieIDs []uuid.UUID) Result {
	dice, err := findDice(p.Dice, dieIDs)
	if err != nil {
		return failure("%v", err)
	}

	preview := &ScorePreview{Type: "none"}

	rolled := make([]*Die, 0, len(dice))
	for _, d := range dice {
		if d.Rolled() {
			rolled = append(rolled, d)
		}
	}

	if run := longestRun(rolled); len(run) >= straightMinimum(p) {
		pts := trickPoints(p, trickStraight, run)
		if pts > preview.Points {
			*preview = ScorePreview{Type: "straight", Dice: len(run), Points: pts}
		}
	}
	if group := largestGroup(rolled); len(group) >= setMinimum(p) {
		pts := trickPoints(p, trickSet, group)
		if pts > preview.Points {
			*preview = ScorePreview{Type: "set", Dice: len(group), Points: pts}
		}
	}

	return Result{Success: true, Preview: preview}
}

// longestRun returns the dice forming the longest run of distinct
// consecutive values, one die per value.
func longestRun(dice []*Die) []*Die {
	byValue := make(map[int]*Die)
	for _, d := range dice {
		if byValue[d.Value] == nil {
			byValue[d.Value] = d
		}
	}
	values := make([]int, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Ints(values)

	var best, current []*Die
	for i, v := range values {
		if i > 0 && v == values[i-1]+1 {
			current = append(current, byValue[v])
		} else {
			current = []*Die{byValue[v]}
		}
		if len(current) > len(best) {
			best = append([]*Die(nil), current...)
		}
	}
	return best
}

// largestGroup returns the largest group of dice showing the same value.
func largestGroup(dice []*Die) []*Die {
	groups := make(map[int][]*Die)
	for _, d := range dice {
		groups[d.Value] = append(groups[d.Value], d)
	}
	var best []*Die
	for _, group := range groups {
		if len(group) > len(best) {
			best = group
		}
	}
	return best
}
