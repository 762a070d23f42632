// Package pickset holds the user's in-progress winner selections.
//
// A PickSet is the local draft. It is seeded from the last server Picks and
// diverges under Toggle until it is saved or reverted. Every mutation goes
// through the eligibility guard first.
package pickset

import (
	"fmt"
	"slices"
	"time"

	"github.com/okian/fightpicks/internal/domain/eligibility"
	"github.com/okian/fightpicks/internal/domain/model"
)

// Outcome describes what a Toggle did to the draft.
type Outcome string

const (
	OutcomeSelected   Outcome = "selected"
	OutcomeDeselected Outcome = "deselected"
	OutcomeRejected   Outcome = "rejected"
)

// PickSet is a set of selected fighter names. The zero value is not usable;
// construct with New.
type PickSet struct {
	winners map[string]struct{}
}

// New builds a draft holding winners. Duplicates collapse.
func New(winners ...string) *PickSet {
	p := &PickSet{winners: make(map[string]struct{}, len(winners))}
	for _, w := range winners {
		if w != "" {
			p.winners[w] = struct{}{}
		}
	}
	return p
}

// FromPicks seeds a draft from a server value. A nil value yields an empty draft.
func FromPicks(picks *model.Picks) *PickSet {
	if picks == nil {
		return New()
	}
	return New(picks.Winners...)
}

// Contains reports whether fighter is selected.
func (p *PickSet) Contains(fighter string) bool {
	_, ok := p.winners[fighter]
	return ok
}

// Len returns the number of selections.
func (p *PickSet) Len() int { return len(p.winners) }

// IsEmpty reports whether nothing is selected.
func (p *PickSet) IsEmpty() bool { return len(p.winners) == 0 }

// Winners returns the selections in sorted order.
func (p *PickSet) Winners() []string {
	out := make([]string, 0, len(p.winners))
	for w := range p.winners {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy.
func (p *PickSet) Clone() *PickSet {
	return New(p.Winners()...)
}

// Toggle flips fighter in the draft.
//
// A selected fighter is withdrawn. Otherwise fighter is added unless its
// opponent already holds the bout, in which case the draft is left alone and
// ErrConflictingPick is returned. Nothing changes once the event is locked.
func (p *PickSet) Toggle(event *model.Event, now time.Time, fighter, opponent string) (Outcome, error) {
	if eligibility.IsLocked(event, now) {
		return OutcomeRejected, ErrLocked
	}
	if p.Contains(fighter) {
		delete(p.winners, fighter)
		return OutcomeDeselected, nil
	}

	actual, ok := event.Opponent(fighter)
	if !ok {
		return OutcomeRejected, fmt.Errorf("%w: %q", ErrUnknownFighter, fighter)
	}
	if opponent != actual {
		return OutcomeRejected, fmt.Errorf("%w: %q fights %q, not %q", ErrOpponentMismatch, fighter, actual, opponent)
	}
	if p.Contains(opponent) {
		return OutcomeRejected, fmt.Errorf("%w: %q already picked over %q", ErrConflictingPick, opponent, fighter)
	}

	p.winners[fighter] = struct{}{}
	return OutcomeSelected, nil
}

// Validate checks the draft against the card the way the server does on save:
// no more picks than fights, every pick on the card, one pick per fight.
func (p *PickSet) Validate(event *model.Event) error {
	if p.Len() > len(event.Fights) {
		return fmt.Errorf("%w: %d picks for %d fights", ErrInvalidPicks, p.Len(), len(event.Fights))
	}
	picked := make(map[int]string, p.Len())
	for _, w := range p.Winners() {
		i, ok := event.FightOf(w)
		if !ok {
			return fmt.Errorf("%w: unknown fighter %q", ErrInvalidPicks, w)
		}
		if other, dup := picked[i]; dup {
			return fmt.Errorf("%w: both %q and %q picked", ErrInvalidPicks, other, w)
		}
		picked[i] = w
	}
	return nil
}
