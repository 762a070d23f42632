// Package poll refreshes open event views on a fixed cadence so scores and
// results show up without user action.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	service "github.com/okian/fightpicks/internal/app"
	"github.com/okian/fightpicks/pkg/logger"
)

const defaultInterval = 30 * time.Second

// Views is the set of controllers the poller keeps fresh.
type Views interface {
	Each(fn func(*service.Controller))
	UpdateGauges()
}

// Poller refreshes every unsettled view once per interval.
type Poller struct {
	views    Views
	interval time.Duration

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New creates a poller over views.
func New(views Views, opts ...Option) *Poller {
	p := &Poller{
		views:    views,
		interval: defaultInterval,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get()
	}
	p.logger = p.logger.Named("poll")
	return p
}

// Run ticks until ctx is canceled or Shutdown is called. With a zero
// interval it returns at once.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)

	if p.interval == 0 {
		p.logger.Info(ctx, "polling disabled")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick refreshes every view that can still change and republishes gauges.
func (p *Poller) Tick(ctx context.Context) {
	start := time.Now()
	refreshed, skipped := 0, 0
	p.views.Each(func(c *service.Controller) {
		if c.Settled() {
			skipped++
			return
		}
		refreshed++
		if err := c.Refresh(ctx); err != nil && !errors.Is(err, service.ErrEventNotFound) {
			p.logger.Warn(ctx, "refresh failed",
				logger.String("event_id", c.EventID()),
				logger.Error(err),
			)
		}
	})
	p.views.UpdateGauges()
	p.logger.Debug(ctx, "poll tick",
		logger.Int("refreshed", refreshed),
		logger.Int("skipped", skipped),
		logger.Duration("elapsed", time.Since(start)),
	)
}

// Shutdown stops Run and waits for it to return.
func (p *Poller) Shutdown(ctx context.Context) error {
	select {
	case <-p.shutdown:
	default:
		close(p.shutdown)
	}

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
