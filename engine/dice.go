package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Die is a single factory die. A die is created unset (Value 0) and only
// shows a value once rolled. Shiny and Rainbow are persistent finish markers
// applied by factory effects; they survive promotion.
//
// A die's ID is unique for the die's lifetime. Dice are never mutated across
// ownership boundaries: promotion and recruitment remove dice from one
// collection and insert freshly created dice into another.
type Die struct {
	ID      uuid.UUID `json:"id"`
	Sides   int       `json:"sides"`
	Value   int       `json:"value"` // 0 = unset
	Shiny   bool      `json:"shiny,omitempty"`
	Rainbow bool      `json:"rainbow,omitempty"`
}

// NewDie creates an unset die of the given size.
func NewDie(sides int) *Die {
	return &Die{ID: uuid.New(), Sides: sides}
}

// Roll assigns the die a uniform random value in [1, Sides] and returns it.
func (d *Die) Roll(rng *rand.Rand) int {
	d.Value = 1 + rng.IntN(d.Sides)
	return d.Value
}

// Rolled reports whether the die currently shows a value.
func (d *Die) Rolled() bool { return d.Value > 0 }

// AtMax reports whether the die shows its maximum face.
func (d *Die) AtMax() bool { return d.Rolled() && d.Value == d.Sides }

// Clone returns a value copy of the die with the same ID.
func (d *Die) Clone() *Die {
	c := *d
	return &c
}

// String renders the die as e.g. "d8=3" or "d8=?" when unset.
func (d *Die) String() string {
	if !d.Rolled() {
		return fmt.Sprintf("d%d=?", d.Sides)
	}
	return fmt.Sprintf("d%d=%d", d.Sides, d.Value)
}

// ---------------------------------------------------------------------------
// Pool helpers: stateless searches and edits by die identity.
// ---------------------------------------------------------------------------

// findDie returns the die with the given ID, or nil.
func findDie(pool []*Die, id uuid.UUID) *Die {
	for _, d := range pool {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// findDice resolves every referenced ID against the pool, preserving the
// requested order. Fails on the first missing ID.
func findDice(pool []*Die, ids []uuid.UUID) ([]*Die, error) {
	dice := make([]*Die, 0, len(ids))
	for _, id := range ids {
		d := findDie(pool, id)
		if d == nil {
			return nil, fmt.Errorf("die %s not found in pool", id)
		}
		dice = append(dice, d)
	}
	return dice, nil
}

// removeDice returns the pool with the identified dice removed.
func removeDice(pool []*Die, ids []uuid.UUID) []*Die {
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := pool[:0]
	for _, d := range pool {
		if !drop[d.ID] {
			out = append(out, d)
		}
	}
	return out
}

// cloneDice deep-copies a pool, keeping die IDs.
func cloneDice(pool []*Die) []*Die {
	out := make([]*Die, len(pool))
	for i, d := range pool {
		out[i] = d.Clone()
	}
	return out
}
