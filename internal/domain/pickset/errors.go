package pickset

import "errors"

// Sentinel kinds for rejected draft edits.
var (
	ErrLocked           = errors.New("picks are locked")
	ErrConflictingPick  = errors.New("cannot pick both fighters in a fight")
	ErrUnknownFighter   = errors.New("fighter is not on the card")
	ErrOpponentMismatch = errors.New("opponent does not match the card")
	ErrInvalidPicks     = errors.New("invalid picks")
)
