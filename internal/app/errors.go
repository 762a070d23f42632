package service

import "errors"

var (
	// ErrNotReady is returned for edits before the event card has loaded.
	ErrNotReady = errors.New("event is still loading")
	// ErrSaveInProgress is returned when a save is requested while another
	// save for the same event is in flight.
	ErrSaveInProgress = errors.New("a save is already in progress")
	// ErrEventNotFound is terminal for a view.
	ErrEventNotFound = errors.New("event not found")
	// ErrSaveFailed wraps the client error of a failed save.
	ErrSaveFailed = errors.New("saving picks failed")
)
