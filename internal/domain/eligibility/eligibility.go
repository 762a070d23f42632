// Package eligibility decides whether picks for an event may still change.
package eligibility

import (
	"time"

	"github.com/okian/fightpicks/internal/domain/model"
)

// IsLocked reports whether picks for event are frozen at now. Live events
// are locked, as is anything past its start. A start time that cannot be
// parsed locks the event as well; the server would refuse the save anyway.
func IsLocked(event *model.Event, now time.Time) bool {
	if event == nil {
		return true
	}
	if event.IsLive() {
		return true
	}
	start, err := event.StartAt()
	if err != nil {
		return true
	}
	return now.After(start)
}
