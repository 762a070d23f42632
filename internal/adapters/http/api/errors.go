package api

import (
	"errors"
	"net/http"

	"github.com/okian/fightpicks/internal/adapters/http/client"
	service "github.com/okian/fightpicks/internal/app"
	"github.com/okian/fightpicks/internal/domain/pickset"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNoView     = errors.New("no open view for event")
)

// classify maps a controller error to an HTTP status and a stable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNoView):
		return http.StatusNotFound, "no_view"
	case errors.Is(err, service.ErrEventNotFound):
		return http.StatusNotFound, "event_not_found"
	case errors.Is(err, pickset.ErrLocked):
		return http.StatusConflict, "locked"
	case errors.Is(err, pickset.ErrConflictingPick):
		return http.StatusConflict, "conflicting_pick"
	case errors.Is(err, service.ErrSaveInProgress):
		return http.StatusConflict, "save_in_progress"
	case errors.Is(err, service.ErrNotReady):
		return http.StatusConflict, "not_ready"
	case errors.Is(err, pickset.ErrUnknownFighter):
		return http.StatusUnprocessableEntity, "unknown_fighter"
	case errors.Is(err, pickset.ErrOpponentMismatch):
		return http.StatusUnprocessableEntity, "opponent_mismatch"
	case errors.Is(err, pickset.ErrInvalidPicks):
		return http.StatusUnprocessableEntity, "invalid_picks"
	case errors.Is(err, client.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, service.ErrSaveFailed):
		return http.StatusBadGateway, "save_failed"
	default:
		return http.StatusBadGateway, "upstream_error"
	}
}
