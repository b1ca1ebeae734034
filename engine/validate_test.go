package engine

import (
	"reflect"
	"testing"
)

// helper: build rolled dice from (sides, value) pairs.
func makeDice(specs ...[2]int) []*Die {
	dice := make([]*Die, len(specs))
	for i, s := range specs {
		d := NewDie(s[0])
		d.Value = s[1]
		dice[i] = d
	}
	return dice
}

func TestValidateStraightBasic(t *testing.T) {
	dice := makeDice([2]int{6, 3}, [2]int{6, 4}, [2]int{8, 5})
	v := ValidateStraight(dice, MinStraightDice)
	if !v.Valid {
		t.Fatalf("3-4-5 should be a valid straight: %s", v.Reason)
	}
	// highest value 5 × 3 dice = 15
	if v.Points != 15 {
		t.Errorf("expected 15 points, got %d", v.Points)
	}
}

func TestValidateStraightOrderIndependent(t *testing.T) {
	dice := makeDice([2]int{8, 5}, [2]int{6, 3}, [2]int{6, 4})
	if v := ValidateStraight(dice, MinStraightDice); !v.Valid {
		t.Errorf("straight validation should not depend on selection order: %s", v.Reason)
	}
}

func TestValidateStraightRejections(t *testing.T) {
	// Too few dice.
	if v := ValidateStraight(makeDice([2]int{6, 3}, [2]int{6, 4}), MinStraightDice); v.Valid {
		t.Error("2 dice should not form a straight at the default minimum")
	}
	// Gap.
	if v := ValidateStraight(makeDice([2]int{6, 3}, [2]int{6, 4}, [2]int{6, 6}), MinStraightDice); v.Valid {
		t.Error("3-4-6 should not be a straight")
	}
	// Duplicate value.
	if v := ValidateStraight(makeDice([2]int{6, 3}, [2]int{6, 3}, [2]int{6, 4}), MinStraightDice); v.Valid {
		t.Error("3-3-4 should not be a straight")
	}
	// Unset die.
	dice := makeDice([2]int{6, 3}, [2]int{6, 4})
	dice = append(dice, NewDie(6))
	if v := ValidateStraight(dice, MinStraightDice); v.Valid {
		t.Error("an unset die can never be part of a straight")
	}
}

func TestValidateStraightLoweredMinimum(t *testing.T) {
	dice := makeDice([2]int{6, 3}, [2]int{6, 4})
	v := ValidateStraight(dice, 2)
	if !v.Valid {
		t.Fatalf("2-dice straight should be valid at minimum 2: %s", v.Reason)
	}
	if v.Points != 8 {
		t.Errorf("expected 4 × 2 = 8 points, got %d", v.Points)
	}
}

func TestValidateSetBasic(t *testing.T) {
	dice := makeDice([2]int{6, 6}, [2]int{8, 6}, [2]int{8, 6}, [2]int{12, 6})
	v := ValidateSet(dice, MinSetDice)
	if !v.Valid {
		t.Fatalf("four 6s should be a valid set: %s", v.Reason)
	}
	// value 6 × (4 dice + 1) = 30
	if v.Points != 30 {
		t.Errorf("expected 30 points, got %d", v.Points)
	}
}

func TestValidateSetRejections(t *testing.T) {
	if v := ValidateSet(makeDice([2]int{6, 2}, [2]int{6, 2}, [2]int{6, 2}), MinSetDice); v.Valid {
		t.Error("3 dice should not form a set at the default minimum")
	}
	if v := ValidateSet(makeDice([2]int{6, 2}, [2]int{6, 2}, [2]int{6, 2}, [2]int{6, 3}), MinSetDice); v.Valid {
		t.Error("mismatched values should not form a set")
	}
}

func TestValidateSetLoweredMinimum(t *testing.T) {
	dice := makeDice([2]int{6, 5}, [2]int{8, 5}, [2]int{8, 5})
	v := ValidateSet(dice, 3)
	if !v.Valid {
		t.Fatalf("3-dice set should be valid at minimum 3: %s", v.Reason)
	}
	if v.Points != 20 {
		t.Errorf("expected 5 × 4 = 20 points, got %d", v.Points)
	}
}

func TestValidateRecruitment(t *testing.T) {
	v := ValidateRecruitment(makeDice([2]int{8, 2}))
	if !v.Valid {
		t.Fatalf("a d8 showing 2 should recruit: %s", v.Reason)
	}
	if want := []int{8, 6, 4}; !reflect.DeepEqual(v.Rewards, want) {
		t.Errorf("rewards = %v, want %v", v.Rewards, want)
	}

	// Two recruiting dice aggregate their cascades.
	v = ValidateRecruitment(makeDice([2]int{4, 1}, [2]int{6, 2}))
	if !v.Valid {
		t.Fatalf("both dice qualify: %s", v.Reason)
	}
	if want := []int{4, 6, 4}; !reflect.DeepEqual(v.Rewards, want) {
		t.Errorf("rewards = %v, want %v", v.Rewards, want)
	}

	if v := ValidateRecruitment(makeDice([2]int{4, 2})); v.Valid {
		t.Error("a d4 showing 2 should not recruit")
	}
	if v := ValidateRecruitment(nil); v.Valid {
		t.Error("empty selection should not recruit")
	}
}

func TestValidatePromotion(t *testing.T) {
	v := ValidatePromotion(makeDice([2]int{6, 6}, [2]int{10, 10}))
	if !v.Valid {
		t.Fatalf("maxed dice should promote: %s", v.Reason)
	}
	if want := []int{8, 12}; !reflect.DeepEqual(v.Rewards, want) {
		t.Errorf("rewards = %v, want %v", v.Rewards, want)
	}

	if v := ValidatePromotion(makeDice([2]int{6, 5})); v.Valid {
		t.Error("a d6 showing 5 should not promote")
	}
	if v := ValidatePromotion(makeDice([2]int{12, 12})); v.Valid {
		t.Error("a d12 has nowhere to promote")
	}
}

func TestValidateProcessing(t *testing.T) {
	v := ValidateProcessing(makeDice([2]int{6, 4}, [2]int{8, 5}))
	if !v.Valid {
		t.Fatalf("rolled dice should process: %s", v.Reason)
	}
	if want := (4 + 5) * ProcessPipMultiplier; v.Pips != want {
		t.Errorf("pips = %d, want %d", v.Pips, want)
	}

	if v := ValidateProcessing([]*Die{NewDie(6)}); v.Valid {
		t.Error("an unset die should not process")
	}
}

func TestValidateValueModification(t *testing.T) {
	d := makeDice([2]int{6, 6})[0]
	if v := ValidateValueModification(d, 1); v.Valid {
		t.Error("cannot increase past the die's maximum")
	}
	if v := ValidateValueModification(d, -1); !v.Valid {
		t.Errorf("decreasing from the maximum should be legal: %s", v.Reason)
	}

	d.Value = 1
	if v := ValidateValueModification(d, -1); v.Valid {
		t.Error("cannot decrease below 1")
	}
	if v := ValidateValueModification(d, 1); !v.Valid {
		t.Errorf("increasing from 1 should be legal: %s", v.Reason)
	}
}
