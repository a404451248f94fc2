package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/points"
)

const pointsColumns = "id, student_id, points_change, description, type, created_at"

type pointsRepository struct {
	db *sqlx.DB
}

var _ points.Repository = (*pointsRepository)(nil)

func NewPointsRepository(db *sqlx.DB) *pointsRepository {
	return &pointsRepository{db: db}
}

// CreateEntries inserts the entries and applies their changes to the owning
// students' balances in one transaction.
func (repo *pointsRepository) CreateEntries(ctx context.Context, entries []points.Entry) ([]points.Entry, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer tx.Rollback()

	for _, e := range entries {
		query, args, err := psql.
			Insert("points_history").
			Columns("id", "student_id", "points_change", "description", "type", "created_at").
			Values(e.ID, e.StudentID, e.PointsChange, e.Description, e.Type, e.CreatedAt).
			ToSql()
		if err != nil {
			return nil, errors.Wrap(err, "building query")
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return nil, errors.Wrap(err, "inserting ledger entry")
		}

		// lifetime points only ever grow
		query, args, err = psql.
			Update("students").
			Set("current_points", sq.Expr("current_points + ?", e.PointsChange)).
			Set("lifetime_points", sq.Expr("lifetime_points + GREATEST(?, 0)", e.PointsChange)).
			Where(sq.Eq{"student_id": e.StudentID}).
			ToSql()
		if err != nil {
			return nil, errors.Wrap(err, "building query")
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return nil, errors.Wrap(err, "applying points change")
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing transaction")
	}
	return entries, nil
}

func (repo *pointsRepository) QueryAllEntries(ctx context.Context) ([]points.Entry, error) {
	return repo.selectEntries(ctx, psql.
		Select(pointsColumns).
		From("points_history").
		OrderBy("created_at DESC"))
}

func (repo *pointsRepository) GetEntriesByStudentID(ctx context.Context, studentID string, ordering ...core.DBOrdering) ([]points.Entry, error) {
	qb := psql.
		Select(pointsColumns).
		From("points_history").
		Where(sq.Eq{"student_id": studentID})

	if len(ordering) > 0 {
		for _, ord := range ordering {
			qb = qb.OrderBy(ord.String())
		}
	} else {
		qb = qb.OrderBy("created_at DESC")
	}
	return repo.selectEntries(ctx, qb)
}

func (repo *pointsRepository) selectEntries(ctx context.Context, qb sq.SelectBuilder) ([]points.Entry, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	entries := make([]points.Entry, 0)
	if err = repo.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying ledger")
	}
	return entries, nil
}
