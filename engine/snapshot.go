package engine

import "github.com/google/uuid"

// actionSnapshot captures the undoable slice of a player's state before one
// action: dice pool, pips, score, and the exhausted-dice set. Modifications,
// effects, and the factory hand are deliberately excluded; factory purchases
// are not action-undoable.
type actionSnapshot struct {
	dice      []*Die
	freePips  int
	score     int
	exhausted map[uuid.UUID]bool
}

// turnSnapshot additionally captures market ownership and the dice floor.
// It is taken once per turn boundary and restored only by a full-turn undo.
type turnSnapshot struct {
	actionSnapshot
	effects       []string
	modifications []string
	hand          []string
	diceFloor     int
}

// captureAction deep-copies the undoable slice of the player's state.
func (p *Player) captureAction() *actionSnapshot {
	ex := make(map[uuid.UUID]bool, len(p.Exhausted))
	for id, v := range p.Exhausted {
		ex[id] = v
	}
	return &actionSnapshot{
		dice:      cloneDice(p.Dice),
		freePips:  p.FreePips,
		score:     p.Score,
		exhausted: ex,
	}
}

// restoreAction replaces the undoable slice of the player's state.
func (p *Player) restoreAction(s *actionSnapshot) {
	p.Dice = cloneDice(s.dice)
	p.FreePips = s.freePips
	p.Score = s.score
	p.Exhausted = make(map[uuid.UUID]bool, len(s.exhausted))
	for id, v := range s.exhausted {
		p.Exhausted[id] = v
	}
}

// captureTurnStart records the player's full turn-boundary state and resets
// the incremental undo stack.
func (p *Player) captureTurnStart() {
	p.turnStart = &turnSnapshot{
		actionSnapshot: *p.captureAction(),
		effects:        append([]string(nil), p.Effects...),
		modifications:  append([]string(nil), p.Modifications...),
		hand:           append([]string(nil), p.Hand...),
		diceFloor:      p.DiceFloor,
	}
	p.history = nil
}

// pushSnapshot appends an incremental snapshot, dropping the oldest entry
// once the stack is full.
func (p *Player) pushSnapshot(s *actionSnapshot) {
	if len(p.history) >= MaxActionSnapshots {
		p.history = p.history[1:]
	}
	p.history = append(p.history, s)
}

// popSnapshot removes and returns the most recent incremental snapshot.
// When the stack is exhausted it falls back to the turn-start snapshot,
// which stays in place so repeated undos keep landing there.
func (p *Player) popSnapshot() *actionSnapshot {
	if n := len(p.history); n > 0 {
		s := p.history[n-1]
		p.history = p.history[:n-1]
		return s
	}
	if p.turnStart != nil {
		return &p.turnStart.actionSnapshot
	}
	return nil
}

// restoreTurnStart rewinds the player to the turn-boundary snapshot,
// discarding all of the turn's incremental snapshots. Returns false when no
// turn snapshot exists.
func (p *Player) restoreTurnStart() bool {
	if p.turnStart == nil {
		return false
	}
	s := p.turnStart
	p.restoreAction(&s.actionSnapshot)
	p.Effects = append([]string(nil), s.effects...)
	p.Modifications = append([]string(nil), s.modifications...)
	p.Hand = append([]string(nil), s.hand...)
	p.DiceFloor = s.diceFloor
	p.TurnActions = nil
	p.history = nil
	return true
}
