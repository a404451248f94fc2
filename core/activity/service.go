package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	feedLimit       = 50
	perStudentLimit = 100
)

type (
	Repository interface {
		CreateEntry(ctx context.Context, entry Entry) (Entry, error)
		// QueryEntries returns entries recorded at or after since, newest first,
		// capped at limit. A zero since or limit disables that bound.
		QueryEntries(ctx context.Context, since time.Time, limit int) ([]Entry, error)
		GetEntriesByStudentID(ctx context.Context, studentID string, limit int) ([]Entry, error)
	}

	Service interface {
		// Log records a student action; the timestamp and ID are assigned here.
		Log(ctx context.Context, studentID, activityType string, details map[string]interface{}) (Entry, error)
		// Feed returns the most recent entries across all students.
		Feed(ctx context.Context) ([]Entry, error)
		ForStudent(ctx context.Context, studentID string) ([]Entry, error)
		PageViewSeries(ctx context.Context, r Range) (TimeSeries, error)
		PageViewsByPage(ctx context.Context, r Range) (PageViews, error)
	}

	service struct {
		repo Repository
		loc  *time.Location
	}
)

var _ Service = (*service)(nil)

var ErrInvalidRange = errors.New("invalid analytics range")

// NewService builds the activity service. Analytics buckets are computed in
// loc; pass the campus timezone so "today" matches what admins expect.
func NewService(repo Repository, loc *time.Location) *service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, loc: loc}
}

func (svc *service) Log(ctx context.Context, studentID, activityType string, details map[string]interface{}) (Entry, error) {
	entry := Entry{
		ID:           uuid.New().String(),
		StudentID:    studentID,
		ActivityType: activityType,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateEntry(ctx, entry)
}

func (svc *service) Feed(ctx context.Context) ([]Entry, error) {
	return svc.repo.QueryEntries(ctx, time.Time{}, feedLimit)
}

func (svc *service) ForStudent(ctx context.Context, studentID string) ([]Entry, error) {
	return svc.repo.GetEntriesByStudentID(ctx, studentID, perStudentLimit)
}

func (svc *service) PageViewSeries(ctx context.Context, r Range) (TimeSeries, error) {
	entries, now, err := svc.rangeEntries(ctx, r)
	if err != nil {
		return TimeSeries{}, err
	}
	return PageViewSeries(entries, r, now), nil
}

func (svc *service) PageViewsByPage(ctx context.Context, r Range) (PageViews, error) {
	entries, now, err := svc.rangeEntries(ctx, r)
	if err != nil {
		return PageViews{}, err
	}
	return PageViewsByPage(entries, r, now), nil
}

func (svc *service) rangeEntries(ctx context.Context, r Range) ([]Entry, time.Time, error) {
	if !r.IsValid() {
		return nil, time.Time{}, ErrInvalidRange
	}
	now := time.Now().In(svc.loc)
	start, _ := Window(r, now)
	entries, err := svc.repo.QueryEntries(ctx, start, 0)
	if err != nil {
		return nil, time.Time{}, errors.Wrap(err, "querying activity")
	}
	return entries, now, nil
}
