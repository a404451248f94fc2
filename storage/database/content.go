package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/content"
)

const (
	challengeColumns = "id, title, description, points_reward, icon, is_daily, created_at, updated_at"
	levelColumns     = "level_number, title, min_points, created_at, updated_at"
)

type contentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*contentRepository)(nil)

func NewContentRepository(db *sqlx.DB) *contentRepository {
	return &contentRepository{db: db}
}

func (repo *contentRepository) CreateChallenge(ctx context.Context, ch content.Challenge) (content.Challenge, error) {
	query, args, err := psql.
		Insert("challenges").
		Columns("id", "title", "description", "points_reward", "icon", "is_daily", "created_at", "updated_at").
		Values(ch.ID, ch.Title, ch.Description, ch.PointsReward, ch.Icon, ch.IsDaily, ch.CreatedAt, ch.UpdatedAt).
		ToSql()
	if err != nil {
		return content.Challenge{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return content.Challenge{}, errors.Wrap(err, "creating challenge")
	}
	return ch, nil
}

func (repo *contentRepository) QueryAllChallenges(ctx context.Context, ordering ...core.DBOrdering) ([]content.Challenge, error) {
	qb := psql.Select(challengeColumns).From("challenges")

	if len(ordering) > 0 {
		for _, ord := range ordering {
			qb = qb.OrderBy(ord.String())
		}
	} else {
		qb = qb.OrderBy("created_at ASC")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	challenges := make([]content.Challenge, 0)
	if err = repo.db.SelectContext(ctx, &challenges, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying challenges")
	}
	return challenges, nil
}

func (repo *contentRepository) GetChallengeByID(ctx context.Context, id string) (content.Challenge, error) {
	query, args, err := psql.Select(challengeColumns).From("challenges").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return content.Challenge{}, errors.Wrap(err, "building query")
	}
	var ch content.Challenge
	if err = repo.db.GetContext(ctx, &ch, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return content.Challenge{}, content.ErrChallengeNotFound
		}
		return content.Challenge{}, errors.Wrap(err, "getting challenge")
	}
	return ch, nil
}

func (repo *contentRepository) UpdateChallenge(ctx context.Context, ch content.Challenge) (content.Challenge, error) {
	query, args, err := psql.
		Update("challenges").
		Set("title", ch.Title).
		Set("description", ch.Description).
		Set("points_reward", ch.PointsReward).
		Set("icon", ch.Icon).
		Set("is_daily", ch.IsDaily).
		Set("updated_at", ch.UpdatedAt).
		Where(sq.Eq{"id": ch.ID}).
		ToSql()
	if err != nil {
		return content.Challenge{}, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return content.Challenge{}, errors.Wrap(err, "updating challenge")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return content.Challenge{}, content.ErrChallengeNotFound
	}
	return ch, nil
}

func (repo *contentRepository) DeleteChallengesByID(ctx context.Context, ids ...string) error {
	query, args, err := psql.Delete("challenges").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "deleting challenges")
	}
	return nil
}

func (repo *contentRepository) CreateLevel(ctx context.Context, lvl content.Level) (content.Level, error) {
	query, args, err := psql.
		Insert("levels").
		Columns("level_number", "title", "min_points", "created_at", "updated_at").
		Values(lvl.LevelNumber, lvl.Title, lvl.MinPoints, lvl.CreatedAt, lvl.UpdatedAt).
		ToSql()
	if err != nil {
		return content.Level{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return content.Level{}, errors.Wrap(err, "creating level")
	}
	return lvl, nil
}

func (repo *contentRepository) QueryAllLevels(ctx context.Context) ([]content.Level, error) {
	query, args, err := psql.Select(levelColumns).From("levels").OrderBy("level_number ASC").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	levels := make([]content.Level, 0)
	if err = repo.db.SelectContext(ctx, &levels, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying levels")
	}
	return levels, nil
}

func (repo *contentRepository) GetLevelByNumber(ctx context.Context, number int) (content.Level, error) {
	query, args, err := psql.Select(levelColumns).From("levels").Where(sq.Eq{"level_number": number}).ToSql()
	if err != nil {
		return content.Level{}, errors.Wrap(err, "building query")
	}
	var lvl content.Level
	if err = repo.db.GetContext(ctx, &lvl, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return content.Level{}, content.ErrLevelNotFound
		}
		return content.Level{}, errors.Wrap(err, "getting level")
	}
	return lvl, nil
}

func (repo *contentRepository) UpdateLevel(ctx context.Context, lvl content.Level) (content.Level, error) {
	query, args, err := psql.
		Update("levels").
		Set("title", lvl.Title).
		Set("min_points", lvl.MinPoints).
		Set("updated_at", lvl.UpdatedAt).
		Where(sq.Eq{"level_number": lvl.LevelNumber}).
		ToSql()
	if err != nil {
		return content.Level{}, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return content.Level{}, errors.Wrap(err, "updating level")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return content.Level{}, content.ErrLevelNotFound
	}
	return lvl, nil
}

func (repo *contentRepository) DeleteLevelsByNumber(ctx context.Context, numbers ...int) error {
	query, args, err := psql.Delete("levels").Where(sq.Eq{"level_number": numbers}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "deleting levels")
	}
	return nil
}
