package model

import (
	"fmt"
	"slices"

	"github.com/mitchellh/copystructure"
)

// Picks is the server-authoritative record of a user's winners for an event.
// Score stays nil until the server has graded the card.
type Picks struct {
	EventID string   `json:"event_id,omitempty"`
	Winners []string `json:"winners"`
	Score   *int     `json:"score,omitempty"`
}

// IsEmpty reports whether p carries neither winners nor a score.
func (p *Picks) IsEmpty() bool {
	return p == nil || (len(p.Winners) == 0 && p.Score == nil)
}

// SortedWinners returns a sorted copy of the winners.
func (p *Picks) SortedWinners() []string {
	if p == nil {
		return []string{}
	}
	out := slices.Clone(p.Winners)
	if out == nil {
		out = []string{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Equal compares two server values structurally. Winners compare as sets.
// A nil Picks equals an empty, unscored one.
func (p *Picks) Equal(o *Picks) bool {
	if p.IsEmpty() || o.IsEmpty() {
		return p.IsEmpty() && o.IsEmpty()
	}
	if (p.Score == nil) != (o.Score == nil) {
		return false
	}
	if p.Score != nil && *p.Score != *o.Score {
		return false
	}
	return slices.Equal(p.SortedWinners(), o.SortedWinners())
}

// Clone returns a deep copy.
func (p *Picks) Clone() *Picks {
	if p == nil {
		return nil
	}
	c, err := copystructure.Copy(p)
	if err != nil {
		panic(fmt.Sprintf("model: clone picks: %v", err))
	}
	return c.(*Picks)
}
