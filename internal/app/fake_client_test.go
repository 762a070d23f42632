package service_test

import (
	"context"
	"slices"
	"sync"

	"github.com/okian/fightpicks/internal/adapters/http/client"
	"github.com/okian/fightpicks/internal/domain/model"
)

// fakeClient is an in-memory picks server. Gates let a test hold a call open.
type fakeClient struct {
	mu sync.Mutex

	event    *model.Event
	eventErr error
	picks    *model.Picks
	picksErr error
	saveErr  error

	// After a successful save the server reports the saved winners with this score.
	scoreAfterSave *int

	// holdNextFetch blocks the next FetchPicks (only) until closed. The picks
	// it returns are read before blocking.
	holdNextFetch chan struct{}
	fetchHeld     chan struct{}

	// saveGate holds the next SavePicks (only) until closed.
	saveGate    chan struct{}
	saveEntered chan struct{}

	fetchCalls int
	eventIDs   []string
	saveIDs    []string
	saved      [][]string
}

func newFakeClient(ev *model.Event) *fakeClient {
	return &fakeClient{event: ev}
}

func (f *fakeClient) FetchEvent(_ context.Context, id string) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventIDs = append(f.eventIDs, id)
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	if f.event == nil {
		return nil, client.ErrNotFound
	}
	return f.event.Clone(), nil
}

func (f *fakeClient) FetchPicks(ctx context.Context, _ string) (*model.Picks, error) {
	f.mu.Lock()
	f.fetchCalls++
	picks, err := f.picks.Clone(), f.picksErr
	hold, held := f.holdNextFetch, f.fetchHeld
	f.holdNextFetch = nil
	f.mu.Unlock()

	if hold != nil {
		close(held)
		<-hold
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	if picks.IsEmpty() {
		return nil, client.ErrNoPicksYet
	}
	return picks, nil
}

func (f *fakeClient) SavePicks(_ context.Context, id string, winners []string) error {
	f.mu.Lock()
	f.saveIDs = append(f.saveIDs, id)
	gate, entered := f.saveGate, f.saveEntered
	f.saveGate, f.saveEntered = nil, nil
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, slices.Clone(winners))
	f.picks = &model.Picks{Winners: slices.Clone(winners), Score: f.scoreAfterSave}
	return nil
}

func (f *fakeClient) setPicks(p *model.Picks) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.picks = p
}

func (f *fakeClient) setEvent(ev *model.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.event = ev
}

func (f *fakeClient) holdFetch() (release chan struct{}, held chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holdNextFetch = make(chan struct{})
	f.fetchHeld = make(chan struct{})
	return f.holdNextFetch, f.fetchHeld
}

func (f *fakeClient) holdSave() (release chan struct{}, entered chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveGate = make(chan struct{})
	f.saveEntered = make(chan struct{})
	return f.saveGate, f.saveEntered
}

func (f *fakeClient) fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

func (f *fakeClient) savedWinners() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.saved)
}

func (f *fakeClient) requestedEvents() (fetched, saved []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.eventIDs), slices.Clone(f.saveIDs)
}
