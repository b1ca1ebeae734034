package engine

// Die size constants. Dice progress d4 → d6 → d8 → d10 → d12.
const (
	MinDieSides = 4
	MaxDieSides = 12
)

// DiceProgression lists the legal die sizes, smallest to largest.
var DiceProgression = [5]int{4, 6, 8, 10, 12}

// RecruitmentTable maps a die size to the rolled values that qualify that die
// to recruit. A d4 recruits only on a 1, a d12 on anything up to 5.
var RecruitmentTable = map[int][]int{
	4:  {1},
	6:  {1, 2},
	8:  {1, 2, 3},
	10: {1, 2, 3, 4},
	12: {1, 2, 3, 4, 5},
}

// Pip costs for the standard factory actions.
const (
	CostIncreaseValue = 4
	CostDecreaseValue = 3
	CostReroll        = 2
	CostEffect        = 7
	CostModification  = 9
)

// Scoring minimums and bonuses.
const (
	MinStraightDice = 3
	MinSetDice      = 4
	FirstTrickBonus = 5 // one-time bonus for the first straight / first set of the game
)

// ProcessPipMultiplier is the pip yield per point of face value when
// processing dice. End-of-turn conversion of unused dice pays 1×, which is
// why processing before readying is worth doing.
const ProcessPipMultiplier = 2

// Pool and resource floors.
const (
	DefaultDiceFloor = 4   // minimum pool size restored at turn boundaries
	MinFreePips      = 0   // pips may not go below this...
	CreditLineFloor  = -20 // ...unless the player owns the credit_line modification
)

// MaxActionSnapshots bounds the per-player incremental undo stack.
const MaxActionSnapshots = 10

// IsValidDieSize reports whether sides is one of the legal die sizes.
func IsValidDieSize(sides int) bool {
	for _, s := range DiceProgression {
		if s == sides {
			return true
		}
	}
	return false
}

// NextDieSize returns the die size one step up the progression.
// ok is false when sides is already the largest size (or not a legal size).
func NextDieSize(sides int) (next int, ok bool) {
	for i, s := range DiceProgression {
		if s == sides && i+1 < len(DiceProgression) {
			return DiceProgression[i+1], true
		}
	}
	return 0, false
}

// RecruitmentRewards returns the sizes of the new dice granted when a die of
// the given size recruits: one die of every size from that size down to 4.
// A qualifying d8 yields a d8, a d6, and a d4.
func RecruitmentRewards(sides int) []int {
	var rewards []int
	for i := len(DiceProgression) - 1; i >= 0; i-- {
		if DiceProgression[i] <= sides {
			rewards = append(rewards, DiceProgression[i])
		}
	}
	return rewards
}

// QualifiesForRecruitment reports whether a die of the given size showing the
// given value appears in the recruitment table.
func QualifiesForRecruitment(sides, value int) bool {
	for _, v := range RecruitmentTable[sides] {
		if v == value {
			return true
		}
	}
	return false
}
