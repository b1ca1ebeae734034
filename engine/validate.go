package engine

import (
	"fmt"
	"sort"
)

// ValidationResult is the uniform answer of every legality predicate.
// Predicates never mutate their inputs; they are the single source of truth
// for action legality and yield computation.
type ValidationResult struct {
	Valid   bool
	Reason  string
	Points  int   // straight / set point yield
	Pips    int   // processing pip yield
	Rewards []int // recruitment reward die sizes
}

func invalid(format string, args ...interface{}) ValidationResult {
	return ValidationResult{Reason: fmt.Sprintf(format, args...)}
}

// ValidateStraight checks that the dice form a straight: at least minDice
// dice, all rolled, all values distinct and consecutive.
// Points = highest value × dice count.
func ValidateStraight(dice []*Die, minDice int) ValidationResult {
	if len(dice) < minDice {
		return invalid("a straight requires at least %d dice, got %d", minDice, len(dice))
	}
	vals, err := rolledValues(dice)
	if err != nil {
		return invalid("%v", err)
	}
	sort.Ints(vals)
	for i := 1; i < len(vals); i++ {
		if vals[i] != vals[i-1]+1 {
			return invalid("dice values %v are not distinct consecutive", vals)
		}
	}
	high := vals[len(vals)-1]
	return ValidationResult{Valid: true, Points: high * len(dice)}
}

// ValidateSet checks that the dice form a set: at least minDice dice, all
// rolled, all showing the same value.
// Points = value × (dice count + 1).
func ValidateSet(dice []*Die, minDice int) ValidationResult {
	if len(dice) < minDice {
		return invalid("a set requires at least %d dice, got %d", minDice, len(dice))
	}
	vals, err := rolledValues(dice)
	if err != nil {
		return invalid("%v", err)
	}
	for _, v := range vals[1:] {
		if v != vals[0] {
			return invalid("dice values %v are not all equal", vals)
		}
	}
	return ValidationResult{Valid: true, Points: vals[0] * (len(vals) + 1)}
}

// ValidateRecruitment checks that every die shows a value in its size's
// recruitment table. Rewards aggregates the new die sizes granted by the
// reward cascade for all recruiting dice.
func ValidateRecruitment(dice []*Die) ValidationResult {
	if len(dice) == 0 {
		return invalid("no dice selected for recruitment")
	}
	var rewards []int
	for _, d := range dice {
		if !d.Rolled() {
			return invalid("die %s has not been rolled", d.ID)
		}
		if !QualifiesForRecruitment(d.Sides, d.Value) {
			return invalid("a d%d showing %d cannot recruit", d.Sides, d.Value)
		}
		rewards = append(rewards, RecruitmentRewards(d.Sides)...)
	}
	return ValidationResult{Valid: true, Rewards: rewards}
}

// ValidatePromotion checks that every die shows its maximum face and is not
// already the largest size. Rewards holds the promoted die sizes.
func ValidatePromotion(dice []*Die) ValidationResult {
	if len(dice) == 0 {
		return invalid("no dice selected for promotion")
	}
	var rewards []int
	for _, d := range dice {
		if !d.AtMax() {
			return invalid("die %s must show its maximum face (%d) to promote", d.ID, d.Sides)
		}
		next, ok := NextDieSize(d.Sides)
		if !ok {
			return invalid("a d%d is already the largest die size", d.Sides)
		}
		rewards = append(rewards, next)
	}
	return ValidationResult{Valid: true, Rewards: rewards}
}

// ValidateProcessing checks that every die is rolled.
// Pips = ProcessPipMultiplier × total face value.
func ValidateProcessing(dice []*Die) ValidationResult {
	if len(dice) == 0 {
		return invalid("no dice selected for processing")
	}
	vals, err := rolledValues(dice)
	if err != nil {
		return invalid("%v", err)
	}
	total := 0
	for _, v := range vals {
		total += v
	}
	return ValidationResult{Valid: true, Pips: total * ProcessPipMultiplier}
}

// ValidateValueModification checks that shifting the die's value by delta
// stays within [1, sides].
func ValidateValueModification(d *Die, delta int) ValidationResult {
	if !d.Rolled() {
		return invalid("die %s has not been rolled", d.ID)
	}
	next := d.Value + delta
	if next < 1 || next > d.Sides {
		return invalid("value %d is outside [1, %d]", next, d.Sides)
	}
	return ValidationResult{Valid: true}
}

// rolledValues extracts values from dice, failing if any die is unset.
func rolledValues(dice []*Die) ([]int, error) {
	vals := make([]int, len(dice))
	for i, d := range dice {
		if !d.Rolled() {
			return nil, fmt.Errorf("die %s has not been rolled", d.ID)
		}
		vals[i] = d.Value
	}
	return vals, nil
}
