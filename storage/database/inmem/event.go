package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/event"
)

type eventRepository struct {
	db *DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *DB) *eventRepository {
	return &eventRepository{db: db}
}

// AddRSVP seeds a sign-up; tests use it in place of the student app.
func (repo *eventRepository) AddRSVP(eventID, studentID string, createdAt time.Time) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.rsvps = append(repo.db.rsvps, event.RSVP{
		EventID:   eventID,
		StudentID: studentID,
		CreatedAt: createdAt,
	})
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.events[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context, ordering ...core.DBOrdering) ([]event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]event.Event, 0, len(repo.db.events))
	for _, evt := range repo.db.events {
		events = append(events, *evt)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })
	return events, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if evt, ok := repo.db.events[id]; ok {
		return *evt, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.events[evt.ID]; !ok {
		return event.Event{}, event.ErrNotFound
	}
	repo.db.events[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) DeleteEventsByID(ctx context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.events, id)
	}
	return nil
}

func (repo *eventRepository) GetRSVPsByEventID(ctx context.Context, eventID string) ([]event.RSVP, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rsvps := make([]event.RSVP, 0)
	for _, r := range repo.db.rsvps {
		if r.EventID != eventID {
			continue
		}
		if std, ok := repo.db.students[r.StudentID]; ok {
			r.StudentName = std.Name
			r.StudentEmail = std.Email
			r.Course = std.Course
		}
		rsvps = append(rsvps, r)
	}
	sort.Slice(rsvps, func(i, j int) bool { return rsvps[i].StudentName < rsvps[j].StudentName })
	return rsvps, nil
}

func (repo *eventRepository) CountRSVPs(ctx context.Context) (map[string]int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	counts := make(map[string]int)
	for _, r := range repo.db.rsvps {
		counts[r.EventID]++
	}
	return counts, nil
}
