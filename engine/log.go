package engine

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogEntry is one line of the append-only game log, the player-visible
// record of everything that happened. PlayerID is Nil for game-level events.
type LogEntry struct {
	Seq      int       `json:"seq"`
	Round    int       `json:"round"`
	PlayerID uuid.UUID `json:"playerId,omitempty"`
	Player   string    `json:"player,omitempty"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// appendLog adds a game-log entry and mirrors it to the structured logger.
func (g *Game) appendLog(p *Player, message string) {
	entry := LogEntry{
		Seq:     len(g.GameLog) + 1,
		Round:   g.Round,
		Message: message,
		Time:    time.Now(),
	}
	fields := logrus.Fields{"round": g.Round}
	if p != nil {
		entry.PlayerID = p.ID
		entry.Player = p.Name
		fields["player"] = p.Name
	}
	g.GameLog = append(g.GameLog, entry)
	g.log.WithFields(fields).Debug(message)
}

// newDiscardLogger returns a logger that writes nowhere. The host wires a
// real logger in via WithLogger.
func newDiscardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
