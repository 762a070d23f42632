package reconcile

import (
	"github.com/okian/fightpicks/internal/domain/pickset"
)

// IsDirty reports whether the draft differs from the anchor winners as a set.
func IsDirty(draft *pickset.PickSet, anchorWinners []string) bool {
	anchor := pickset.New(anchorWinners...)
	if draft == nil {
		return !anchor.IsEmpty()
	}
	if draft.Len() != anchor.Len() {
		return true
	}
	for _, w := range anchorWinners {
		if !draft.Contains(w) {
			return true
		}
	}
	return false
}
