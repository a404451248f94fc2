package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/points"
)

var (
	ErrNotFound = errors.New("event not found")
	ErrNoRSVPs  = errors.New("event has no sign-ups")
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, evt Event) (Event, error)
		QueryAllEvents(ctx context.Context, ordering ...core.DBOrdering) ([]Event, error)
		GetEventByID(ctx context.Context, id string) (Event, error)
		UpdateEvent(ctx context.Context, evt Event) (Event, error)
		DeleteEventsByID(ctx context.Context, ids ...string) error
		GetRSVPsByEventID(ctx context.Context, eventID string) ([]RSVP, error)
		// CountRSVPs returns the number of sign-ups per event ID.
		CountRSVPs(ctx context.Context) (map[string]int, error)
	}

	// Awarder grants ledger points; satisfied by points.Service.
	Awarder interface {
		Award(ctx context.Context, studentIDs []string, pointsChange int, description, typ string) ([]points.Entry, error)
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Event, error)
		GetByID(ctx context.Context, id string) (Event, error)
		Create(ctx context.Context, ne NewEvent) (Event, error)
		Update(ctx context.Context, id string, ue UpdateEvent) (Event, error)
		Delete(ctx context.Context, ids ...string) error
		RSVPs(ctx context.Context, eventID string) ([]RSVP, error)
		RSVPCounts(ctx context.Context) (map[string]int, error)
		// AwardAttendance credits the event's reward to every listed student,
		// one ledger entry each.
		AwardAttendance(ctx context.Context, eventID string, studentIDs []string) ([]points.Entry, error)
	}

	service struct {
		repo    Repository
		awarder Awarder
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, awarder Awarder) *service {
	return &service{repo: repo, awarder: awarder}
}

func (svc *service) QueryAll(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryAllEvents(ctx, core.DBOrdering{Field: "date"})
}

func (svc *service) GetByID(ctx context.Context, id string) (Event, error) {
	return svc.repo.GetEventByID(ctx, id)
}

func (svc *service) Create(ctx context.Context, ne NewEvent) (Event, error) {
	now := time.Now().UTC()
	evt := Event{
		ID:           uuid.New().String(),
		Title:        ne.Title,
		Description:  ne.Description,
		Date:         ne.Date,
		Location:     ne.Location,
		PointsReward: ne.PointsReward,
		ImageURL:     ne.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateEvent(ctx, evt)
}

func (svc *service) Update(ctx context.Context, id string, ue UpdateEvent) (Event, error) {
	evt, err := svc.repo.GetEventByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	evt.Title = ue.Title
	evt.Description = ue.Description
	evt.Date = *ue.Date
	evt.Location = ue.Location
	evt.PointsReward = *ue.PointsReward
	evt.ImageURL = ue.ImageURL
	evt.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateEvent(ctx, evt)
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteEventsByID(ctx, ids...)
}

func (svc *service) RSVPs(ctx context.Context, eventID string) ([]RSVP, error) {
	return svc.repo.GetRSVPsByEventID(ctx, eventID)
}

func (svc *service) RSVPCounts(ctx context.Context) (map[string]int, error) {
	return svc.repo.CountRSVPs(ctx)
}

func (svc *service) AwardAttendance(ctx context.Context, eventID string, studentIDs []string) ([]points.Entry, error) {
	evt, err := svc.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return svc.awarder.Award(ctx, studentIDs, evt.PointsReward, "Attended: "+evt.Title, points.TypeEvent)
}
