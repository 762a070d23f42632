package client

import "errors"

// Sentinel kinds returned by the picks server client.
var (
	ErrNotFound        = errors.New("event not found")
	ErrNoPicksYet      = errors.New("no picks for this event yet")
	ErrUnauthenticated = errors.New("not signed in")
	ErrSaveRejected    = errors.New("server rejected picks")
	ErrDecode          = errors.New("malformed server response")
	ErrUnexpected      = errors.New("unexpected server response")
)
