package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrLevelNotFound     = errors.New("level not found")
	ErrLevelExists       = errors.New("a level with this number already exists")
)

type (
	Repository interface {
		CreateChallenge(ctx context.Context, ch Challenge) (Challenge, error)
		QueryAllChallenges(ctx context.Context, ordering ...core.DBOrdering) ([]Challenge, error)
		GetChallengeByID(ctx context.Context, id string) (Challenge, error)
		UpdateChallenge(ctx context.Context, ch Challenge) (Challenge, error)
		DeleteChallengesByID(ctx context.Context, ids ...string) error

		CreateLevel(ctx context.Context, lvl Level) (Level, error)
		QueryAllLevels(ctx context.Context) ([]Level, error)
		GetLevelByNumber(ctx context.Context, number int) (Level, error)
		UpdateLevel(ctx context.Context, lvl Level) (Level, error)
		DeleteLevelsByNumber(ctx context.Context, numbers ...int) error
	}

	Service interface {
		QueryAllChallenges(ctx context.Context) ([]Challenge, error)
		GetChallenge(ctx context.Context, id string) (Challenge, error)
		CreateChallenge(ctx context.Context, nc NewChallenge) (Challenge, error)
		UpdateChallenge(ctx context.Context, id string, uc UpdateChallenge) (Challenge, error)
		DeleteChallenges(ctx context.Context, ids ...string) error

		QueryAllLevels(ctx context.Context) ([]Level, error)
		GetLevel(ctx context.Context, number int) (Level, error)
		CreateLevel(ctx context.Context, nl NewLevel) (Level, error)
		UpdateLevel(ctx context.Context, number int, ul UpdateLevel) (Level, error)
		DeleteLevels(ctx context.Context, numbers ...int) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) QueryAllChallenges(ctx context.Context) ([]Challenge, error) {
	return svc.repo.QueryAllChallenges(ctx, core.DBOrdering{Field: "created_at"})
}

func (svc *service) GetChallenge(ctx context.Context, id string) (Challenge, error) {
	return svc.repo.GetChallengeByID(ctx, id)
}

func (svc *service) CreateChallenge(ctx context.Context, nc NewChallenge) (Challenge, error) {
	now := time.Now().UTC()
	ch := Challenge{
		ID:           uuid.New().String(),
		Title:        nc.Title,
		Description:  nc.Description,
		PointsReward: nc.PointsReward,
		Icon:         nc.Icon,
		IsDaily:      nc.IsDaily,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateChallenge(ctx, ch)
}

func (svc *service) UpdateChallenge(ctx context.Context, id string, uc UpdateChallenge) (Challenge, error) {
	ch, err := svc.repo.GetChallengeByID(ctx, id)
	if err != nil {
		return Challenge{}, err
	}
	ch.Title = uc.Title
	ch.Description = uc.Description
	ch.PointsReward = *uc.PointsReward
	ch.Icon = uc.Icon
	ch.IsDaily = *uc.IsDaily
	ch.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateChallenge(ctx, ch)
}

func (svc *service) DeleteChallenges(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteChallengesByID(ctx, ids...)
}

func (svc *service) QueryAllLevels(ctx context.Context) ([]Level, error) {
	return svc.repo.QueryAllLevels(ctx)
}

func (svc *service) GetLevel(ctx context.Context, number int) (Level, error) {
	return svc.repo.GetLevelByNumber(ctx, number)
}

func (svc *service) CreateLevel(ctx context.Context, nl NewLevel) (Level, error) {
	if _, err := svc.repo.GetLevelByNumber(ctx, nl.LevelNumber); err == nil {
		return Level{}, ErrLevelExists
	}
	now := time.Now().UTC()
	lvl := Level{
		LevelNumber: nl.LevelNumber,
		Title:       nl.Title,
		MinPoints:   nl.MinPoints,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateLevel(ctx, lvl)
}

func (svc *service) UpdateLevel(ctx context.Context, number int, ul UpdateLevel) (Level, error) {
	lvl, err := svc.repo.GetLevelByNumber(ctx, number)
	if err != nil {
		return Level{}, err
	}
	lvl.Title = ul.Title
	lvl.MinPoints = *ul.MinPoints
	lvl.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateLevel(ctx, lvl)
}

func (svc *service) DeleteLevels(ctx context.Context, numbers ...int) error {
	return svc.repo.DeleteLevelsByNumber(ctx, numbers...)
}
