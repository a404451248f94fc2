package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core/reward"
)

type rewardRepository struct {
	db *sqlx.DB
}

var _ reward.Repository = (*rewardRepository)(nil)

func NewRewardRepository(db *sqlx.DB) *rewardRepository {
	return &rewardRepository{db: db}
}

func (repo *rewardRepository) GetRewardsByStudentID(ctx context.Context, studentID string) ([]reward.UserReward, error) {
	query, args, err := psql.
		Select("id, student_id, product, purchase_date, status, used_date").
		From("user_rewards").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("purchase_date DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	rewards := make([]reward.UserReward, 0)
	if err = repo.db.SelectContext(ctx, &rewards, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying rewards")
	}
	return rewards, nil
}
