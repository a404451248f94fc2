package event

import (
	"context"
	"sync"

	"github.com/ecobirla/ecopoints/core"
)

type repositoryMock struct {
	mutex  sync.RWMutex
	events map[string]*Event
	rsvps  []RSVP
}

func NewRepositoryMock(rsvps ...RSVP) *repositoryMock {
	return &repositoryMock{events: make(map[string]*Event), rsvps: rsvps}
}

func (repo *repositoryMock) CreateEvent(ctx context.Context, evt Event) (Event, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	repo.events[evt.ID] = &evt
	return evt, nil
}

func (repo *repositoryMock) QueryAllEvents(ctx context.Context, ordering ...core.DBOrdering) ([]Event, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	events := make([]Event, 0, len(repo.events))
	for _, evt := range repo.events {
		events = append(events, *evt)
	}
	return events, nil
}

func (repo *repositoryMock) GetEventByID(ctx context.Context, id string) (Event, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	if evt, ok := repo.events[id]; ok {
		return *evt, nil
	}
	return Event{}, ErrNotFound
}

func (repo *repositoryMock) UpdateEvent(ctx context.Context, evt Event) (Event, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	if _, ok := repo.events[evt.ID]; !ok {
		return Event{}, ErrNotFound
	}
	repo.events[evt.ID] = &evt
	return evt, nil
}

func (repo *repositoryMock) DeleteEventsByID(ctx context.Context, ids ...string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	for _, id := range ids {
		delete(repo.events, id)
	}
	return nil
}

func (repo *repositoryMock) GetRSVPsByEventID(ctx context.Context, eventID string) ([]RSVP, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	rsvps := make([]RSVP, 0)
	for _, r := range repo.rsvps {
		if r.EventID == eventID {
			rsvps = append(rsvps, r)
		}
	}
	return rsvps, nil
}

func (repo *repositoryMock) CountRSVPs(ctx context.Context) (map[string]int, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	counts := make(map[string]int)
	for _, r := range repo.rsvps {
		counts[r.EventID]++
	}
	return counts, nil
}
