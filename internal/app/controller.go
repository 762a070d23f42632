// Package service owns the per-event sync controllers that sit between the
// display layer and the picks server.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/fightpicks/internal/adapters/http/client"
	"github.com/okian/fightpicks/internal/domain/eligibility"
	"github.com/okian/fightpicks/internal/domain/model"
	"github.com/okian/fightpicks/internal/domain/pickset"
	"github.com/okian/fightpicks/internal/domain/reconcile"
	"github.com/okian/fightpicks/pkg/logger"
	"github.com/okian/fightpicks/pkg/metrics"
)

// Client is the persistence collaborator. The http client package provides
// the production implementation.
type Client interface {
	FetchEvent(ctx context.Context, eventID string) (*model.Event, error)
	FetchPicks(ctx context.Context, eventID string) (*model.Picks, error)
	SavePicks(ctx context.Context, eventID string, winners []string) error
}

// fetchResult is one completed event+picks round trip.
type fetchResult struct {
	seq           uint64
	event         *model.Event
	picks         *model.Picks
	authenticated bool
	notFound      bool
	err           error
}

// Controller drives one event view: fetch, reconcile, edit, save, revert.
//
// All state sits behind mu, which is never held across a client call.
// Fetch results carry a sequence number and are applied only when newer than
// the last applied one. While a save is in flight fetch results are parked
// and settled when the save completes.
type Controller struct {
	mu sync.Mutex

	requestedID string
	client      Client
	now         func() time.Time
	logger      logger.Logger
	refreshes   singleflight.Group

	event         *model.Event
	draft         *pickset.PickSet
	anchor        *model.Picks
	authenticated bool
	loaded        bool
	notFound      bool
	loadErr       error

	saving  bool
	saveErr error
	parked  *fetchResult

	issued  uint64
	applied uint64
}

// New constructs a controller for eventID. Nothing is fetched until Load.
func New(eventID string, c Client, opts ...Option) *Controller {
	ctl := &Controller{
		requestedID: eventID,
		client:      c,
		now:         time.Now,
		draft:       pickset.New(),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	if ctl.logger == nil {
		ctl.logger = logger.Get()
	}
	ctl.logger = ctl.logger.With(logger.String("event_id", eventID))
	return ctl
}

// EventID returns the id the controller was opened with, which may be an
// alias such as "latest".
func (c *Controller) EventID() string { return c.requestedID }

// Load performs the initial fetch. It is Refresh under another name and may
// be called again to retry after a failed load.
func (c *Controller) Load(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh fetches the event and picks and reconciles them into the draft.
// Concurrent callers share one round trip. The shared fetch outlives any
// single caller; ctx only bounds how long this caller waits for it.
func (c *Controller) Refresh(ctx context.Context) error {
	ch := c.refreshes.DoChan("refresh", func() (any, error) {
		return nil, c.refresh(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.notFound {
		c.mu.Unlock()
		return ErrEventNotFound
	}
	c.issued++
	seq := c.issued
	id := c.fetchIDLocked()
	c.mu.Unlock()

	res := c.fetch(ctx, id)
	res.seq = seq

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving {
		if c.parked == nil || c.parked.seq < res.seq {
			c.parked = &res
		}
		c.logger.Debug(ctx, "fetch parked behind save", logger.Int("seq", int(seq)))
		return nil
	}
	return c.applyLocked(ctx, res)
}

// fetchIDLocked pins refreshes to the resolved event once the card is known,
// so an alias rolling over does not swap the event under the draft.
func (c *Controller) fetchIDLocked() string {
	if c.event != nil {
		return c.event.ID
	}
	return c.requestedID
}

func (c *Controller) fetch(ctx context.Context, id string) fetchResult {
	ev, err := c.client.FetchEvent(ctx, id)
	switch {
	case errors.Is(err, client.ErrNotFound):
		return fetchResult{notFound: true}
	case err != nil:
		return fetchResult{err: fmt.Errorf("fetch event %s: %w", id, err)}
	}

	res := fetchResult{event: ev, authenticated: true}
	picks, err := c.client.FetchPicks(ctx, ev.ID)
	switch {
	case errors.Is(err, client.ErrUnauthenticated):
		res.authenticated = false
	case errors.Is(err, client.ErrNoPicksYet):
	case err != nil:
		return fetchResult{err: fmt.Errorf("fetch picks %s: %w", ev.ID, err)}
	default:
		res.picks = picks
	}
	return res
}

func (c *Controller) applyLocked(ctx context.Context, res fetchResult) error {
	if res.seq <= c.applied {
		metrics.RecordStaleFetch()
		c.logger.Debug(ctx, "dropping stale fetch",
			logger.Int("seq", int(res.seq)),
			logger.Int("applied", int(c.applied)),
		)
		return nil
	}
	if res.err != nil {
		if !c.loaded {
			c.loadErr = res.err
		}
		c.logger.Warn(ctx, "refresh failed", logger.Error(res.err))
		return res.err
	}

	c.applied = res.seq
	if res.notFound {
		c.notFound = true
		c.logger.Info(ctx, "event not found")
		return ErrEventNotFound
	}

	c.event = res.event
	c.authenticated = res.authenticated
	r := reconcile.Reconcile(c.draft, c.anchor, res.picks)
	c.draft = r.Draft
	c.anchor = r.Anchor
	c.loaded = true
	c.loadErr = nil
	metrics.RecordReconcile(string(r.Decision))
	c.logger.Debug(ctx, "reconciled",
		logger.String("decision", string(r.Decision)),
		logger.Strings("draft", c.draft.Winners()),
		logger.Bool("authenticated", c.authenticated),
	)
	return nil
}

// Toggle selects or withdraws fighter. opponent must be fighter's opponent
// on the loaded card.
func (c *Controller) Toggle(fighter, opponent string) (pickset.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.readyLocked(); err != nil {
		return pickset.OutcomeRejected, err
	}
	outcome, err := c.draft.Toggle(c.event, c.now(), fighter, opponent)
	metrics.RecordToggle(string(outcome))
	if err == nil {
		c.saveErr = nil
	}
	return outcome, err
}

// Revert discards local edits, resetting the draft to the last server picks.
func (c *Controller) Revert() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.readyLocked(); err != nil {
		return err
	}
	c.draft = pickset.FromPicks(c.anchor)
	c.saveErr = nil
	return nil
}

// Save pushes the draft to the server. On success the pushed winners become
// the anchor and a refetch picks up the score. On failure the draft is kept
// and the error wraps ErrSaveFailed.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if err := c.readyLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInProgress
	}
	if eligibility.IsLocked(c.event, c.now()) {
		c.mu.Unlock()
		return pickset.ErrLocked
	}
	if err := c.draft.Validate(c.event); err != nil {
		c.mu.Unlock()
		return err
	}
	id := c.event.ID
	winners := c.draft.Winners()
	c.saving = true
	c.saveErr = nil
	c.mu.Unlock()

	start := time.Now()
	err := c.client.SavePicks(ctx, id, winners)
	metrics.RecordSaveLatency(float64(time.Since(start).Nanoseconds()) / 1e6)

	c.mu.Lock()
	c.saving = false
	parked := c.parked
	c.parked = nil
	if err != nil {
		c.saveErr = err
		metrics.RecordSave("failure")
		c.logger.Warn(ctx, "save failed", logger.Error(err))
		if parked != nil {
			_ = c.applyLocked(ctx, *parked)
		}
		c.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	c.anchor = &model.Picks{EventID: id, Winners: winners}
	c.applied = c.issued
	metrics.RecordSave("success")
	c.logger.Info(ctx, "picks saved", logger.Strings("winners", winners))
	c.mu.Unlock()

	if err := c.refresh(ctx); err != nil {
		c.logger.Warn(ctx, "refetch after save failed", logger.Error(err))
	}
	return nil
}

func (c *Controller) readyLocked() error {
	switch {
	case c.notFound:
		return ErrEventNotFound
	case !c.loaded:
		return ErrNotReady
	}
	return nil
}

// IsDirty reports whether the draft has unsaved edits.
func (c *Controller) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirtyLocked()
}

func (c *Controller) dirtyLocked() bool {
	return reconcile.IsDirty(c.draft, c.anchor.SortedWinners())
}

// Settled reports whether further refreshes can no longer change the view:
// the event is gone, or every fight is decided and the score is in. The
// server only scores saved winners, so a signed-out caller or one who never
// picked has no score to wait for.
func (c *Controller) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notFound {
		return true
	}
	if !c.loaded || !c.event.IsFinished() {
		return false
	}
	if !c.authenticated || c.anchor == nil || len(c.anchor.Winners) == 0 {
		return true
	}
	return c.anchor.Score != nil
}

// View returns a snapshot for rendering.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		EventID:       c.requestedID,
		Event:         c.event.Clone(),
		Winners:       c.draft.Winners(),
		Dirty:         c.loaded && c.dirtyLocked(),
		Locked:        eligibility.IsLocked(c.event, c.now()),
		Saving:        c.saving,
		Authenticated: c.authenticated,
		State:         c.stateLocked(),
	}
	if c.anchor != nil && c.anchor.Score != nil {
		score := *c.anchor.Score
		v.Score = &score
	}
	if c.saveErr != nil {
		v.SaveError = c.saveErr.Error()
	}
	if c.loadErr != nil {
		v.LoadError = c.loadErr.Error()
	}
	return v
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	switch {
	case c.notFound:
		return StateNotFound
	case !c.loaded:
		return StateLoading
	case c.saving:
		return StateSaving
	case c.saveErr != nil:
		return StateSaveFailed
	case c.dirtyLocked():
		return StateEditing
	default:
		return StateReady
	}
}
