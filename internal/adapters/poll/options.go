package poll

import (
	"time"

	"github.com/okian/fightpicks/pkg/logger"
)

// Option applies a configuration option to the Poller.
type Option func(*Poller)

// WithInterval sets the refresh cadence. Zero disables polling.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d >= 0 {
			p.interval = d
		}
	}
}

// WithLogger sets a custom logger for the poller.
func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}
