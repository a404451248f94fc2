package points

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
)

var ErrNoRecipients = errors.New("no students to award points to")

type (
	Repository interface {
		// CreateEntries inserts all entries and applies their point changes to
		// the owning students' current and lifetime balances, atomically.
		CreateEntries(ctx context.Context, entries []Entry) ([]Entry, error)
		QueryAllEntries(ctx context.Context) ([]Entry, error)
		GetEntriesByStudentID(ctx context.Context, studentID string, ordering ...core.DBOrdering) ([]Entry, error)
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Entry, error)
		ForStudent(ctx context.Context, studentID string) ([]Entry, error)
		// Award inserts one ledger entry per student ID, all with the same
		// change and description.
		Award(ctx context.Context, studentIDs []string, pointsChange int, description, typ string) ([]Entry, error)
		Summary(ctx context.Context) (Summary, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) QueryAll(ctx context.Context) ([]Entry, error) {
	return svc.repo.QueryAllEntries(ctx)
}

func (svc *service) ForStudent(ctx context.Context, studentID string) ([]Entry, error) {
	return svc.repo.GetEntriesByStudentID(ctx, studentID, core.DBOrdering{Field: "created_at"})
}

func (svc *service) Award(ctx context.Context, studentIDs []string, pointsChange int, description, typ string) ([]Entry, error) {
	if len(studentIDs) == 0 {
		return nil, ErrNoRecipients
	}

	now := time.Now().UTC()
	entries := make([]Entry, 0, len(studentIDs))
	for _, id := range studentIDs {
		entries = append(entries, Entry{
			ID:           uuid.New().String(),
			StudentID:    id,
			PointsChange: pointsChange,
			Description:  description,
			Type:         typ,
			CreatedAt:    now,
		})
	}
	return svc.repo.CreateEntries(ctx, entries)
}

func (svc *service) Summary(ctx context.Context) (Summary, error) {
	entries, err := svc.repo.QueryAllEntries(ctx)
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying ledger")
	}
	return Summarize(entries), nil
}
