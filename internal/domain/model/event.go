// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/copystructure"
)

// StartTimeLive marks an event that is in progress. The upstream card does
// not publish a start time while the event is live.
const StartTimeLive = "LIVE"

// Sentinel kinds for malformed snapshots.
var (
	ErrInvalidEvent = errors.New("invalid event")
	ErrInvalidStart = errors.New("invalid start time")
)

// Event is an immutable snapshot of an event card as served upstream.
// A refetch produces a new Event; existing values are never edited.
type Event struct {
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	StartTime string  `json:"start_time"` // RFC3339 or StartTimeLive
	Fights    []Fight `json:"fights"`
}

// Fight is a single matchup on the card.
type Fight struct {
	Fighters []string `json:"fighters"`
	Winner   string   `json:"winner,omitempty"` // set once the bout is decided
}

// IsLive reports whether the event is currently running.
func (e *Event) IsLive() bool {
	return e.StartTime == StartTimeLive
}

// StartAt parses the scheduled start. It fails for live events.
func (e *Event) StartAt() (time.Time, error) {
	if e.IsLive() {
		return time.Time{}, fmt.Errorf("%w: event is live", ErrInvalidStart)
	}
	t, err := time.Parse(time.RFC3339, e.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidStart, err)
	}
	return t, nil
}

// IsFinished reports whether every fight on the card has a winner.
func (e *Event) IsFinished() bool {
	if len(e.Fights) == 0 {
		return false
	}
	for _, f := range e.Fights {
		if f.Winner == "" {
			return false
		}
	}
	return true
}

// FightOf returns the index of the fight the fighter is booked in.
func (e *Event) FightOf(fighter string) (int, bool) {
	for i, f := range e.Fights {
		for _, name := range f.Fighters {
			if name == fighter {
				return i, true
			}
		}
	}
	return -1, false
}

// Opponent returns the other fighter in the fighter's bout.
func (e *Event) Opponent(fighter string) (string, bool) {
	i, ok := e.FightOf(fighter)
	if !ok {
		return "", false
	}
	f := e.Fights[i]
	if f.Fighters[0] == fighter {
		return f.Fighters[1], true
	}
	return f.Fighters[0], true
}

// Validate checks the card shape: exactly two distinct fighters per fight,
// each name booked once, and a winner (if any) drawn from the pair.
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	if e.StartTime == "" {
		return fmt.Errorf("%w: missing start_time", ErrInvalidEvent)
	}
	seen := make(map[string]int, len(e.Fights)*2)
	for i, f := range e.Fights {
		if len(f.Fighters) != 2 {
			return fmt.Errorf("%w: fight %d has %d fighters", ErrInvalidEvent, i, len(f.Fighters))
		}
		a, b := f.Fighters[0], f.Fighters[1]
		if a == "" || b == "" || a == b {
			return fmt.Errorf("%w: fight %d fighters must be two distinct names", ErrInvalidEvent, i)
		}
		for _, name := range f.Fighters {
			if prev, dup := seen[name]; dup {
				return fmt.Errorf("%w: %q booked in fights %d and %d", ErrInvalidEvent, name, prev, i)
			}
			seen[name] = i
		}
		if f.Winner != "" && f.Winner != a && f.Winner != b {
			return fmt.Errorf("%w: fight %d winner %q is not on the bout", ErrInvalidEvent, i, f.Winner)
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c, err := copystructure.Copy(e)
	if err != nil {
		// Event holds only strings and slices; copystructure cannot fail on it.
		panic(fmt.Sprintf("model: clone event: %v", err))
	}
	return c.(*Event)
}
