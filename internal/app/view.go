package service

import "github.com/okian/fightpicks/internal/domain/model"

// State is the lifecycle position of a controller.
type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateEditing    State = "editing"
	StateSaving     State = "saving"
	StateSaveFailed State = "save_failed"
	StateNotFound   State = "not_found"
)

// View is a point-in-time snapshot of a controller for the display layer.
// It shares no memory with the controller.
type View struct {
	EventID       string       `json:"event_id"`
	Event         *model.Event `json:"event,omitempty"`
	Winners       []string     `json:"winners"`
	Score         *int         `json:"score,omitempty"`
	Dirty         bool         `json:"dirty"`
	Locked        bool         `json:"locked"`
	Saving        bool         `json:"saving"`
	Authenticated bool         `json:"authenticated"`
	State         State        `json:"state"`
	SaveError     string       `json:"save_error,omitempty"`
	LoadError     string       `json:"load_error,omitempty"`
}
