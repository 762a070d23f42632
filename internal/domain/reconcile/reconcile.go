// Package reconcile merges freshly fetched server picks into a local draft.
package reconcile

import (
	"github.com/okian/fightpicks/internal/domain/model"
	"github.com/okian/fightpicks/internal/domain/pickset"
)

// Decision names the branch Reconcile took.
type Decision string

const (
	// DecisionUnchanged: the fresh value matches the anchor, nothing moves.
	DecisionUnchanged Decision = "unchanged"
	// DecisionAdopted: the draft was empty and now mirrors the server.
	DecisionAdopted Decision = "adopted"
	// DecisionKeptDraft: the anchor advanced but the draft has edits that win.
	DecisionKeptDraft Decision = "kept_draft"
)

// Result is the output of Reconcile.
type Result struct {
	Draft    *pickset.PickSet
	Anchor   *model.Picks
	Decision Decision
}

// Reconcile folds fresh into the draft relative to anchor. Inputs are not
// modified. The returned anchor is always fresh; the returned draft is a new
// set seeded from fresh only when the current draft is empty, otherwise a
// copy of the current one.
func Reconcile(draft *pickset.PickSet, anchor, fresh *model.Picks) Result {
	if draft == nil {
		draft = pickset.New()
	}
	if fresh.Equal(anchor) {
		return Result{Draft: draft.Clone(), Anchor: fresh.Clone(), Decision: DecisionUnchanged}
	}
	if draft.IsEmpty() {
		return Result{Draft: pickset.FromPicks(fresh), Anchor: fresh.Clone(), Decision: DecisionAdopted}
	}
	return Result{Draft: draft.Clone(), Anchor: fresh.Clone(), Decision: DecisionKeptDraft}
}
