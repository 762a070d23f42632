package service

import (
	"time"

	"github.com/okian/fightpicks/pkg/logger"
)

// Option applies a configuration option to a Controller.
type Option func(*Controller)

// WithLogger sets a custom logger for the controller.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock replaces time.Now for lock checks.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}
