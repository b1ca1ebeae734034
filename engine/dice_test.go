package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
)

func TestDieRollRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	d := NewDie(8)
	if d.Rolled() {
		t.Fatal("a new die must be unset")
	}
	for i := 0; i < 200; i++ {
		v := d.Roll(rng)
		if v < 1 || v > 8 {
			t.Fatalf("roll %d outside [1, 8]", v)
		}
		if v != d.Value {
			t.Fatalf("Roll returned %d but die shows %d", v, d.Value)
		}
	}
}

func TestDieString(t *testing.T) {
	d := NewDie(8)
	if got := d.String(); got != "d8=?" {
		t.Errorf("unset die renders %q, want \"d8=?\"", got)
	}
	d.Value = 3
	if got := d.String(); got != "d8=3" {
		t.Errorf("rolled die renders %q, want \"d8=3\"", got)
	}
}

func TestFindDicePreservesOrder(t *testing.T) {
	pool := makeDice([2]int{4, 1}, [2]int{6, 2}, [2]int{8, 3})
	got, err := findDice(pool, []uuid.UUID{pool[2].ID, pool[0].ID})
	if err != nil {
		t.Fatalf("findDice: %v", err)
	}
	if len(got) != 2 || got[0] != pool[2] || got[1] != pool[0] {
		t.Error("findDice should return dice in the requested order")
	}
}

func TestFindDiceMissing(t *testing.T) {
	pool := makeDice([2]int{4, 1})
	if _, err := findDice(pool, []uuid.UUID{pool[0].ID, uuid.New()}); err == nil {
		t.Error("findDice should fail on an unknown ID")
	}
}

func TestRemoveDice(t *testing.T) {
	pool := makeDice([2]int{4, 1}, [2]int{6, 2}, [2]int{8, 3})
	out := removeDice(pool, []uuid.UUID{pool[1].ID})
	if len(out) != 2 {
		t.Fatalf("expected 2 dice after removal, got %d", len(out))
	}
	if out[0].Sides != 4 || out[1].Sides != 8 {
		t.Error("removeDice should preserve the order of the survivors")
	}
}

func TestCloneDiceIsDeep(t *testing.T) {
	pool := makeDice([2]int{6, 2})
	clone := cloneDice(pool)
	clone[0].Value = 5
	if pool[0].Value != 2 {
		t.Error("mutating a clone must not touch the original")
	}
	if clone[0].ID != pool[0].ID {
		t.Error("clones keep the original die's ID")
	}
}
