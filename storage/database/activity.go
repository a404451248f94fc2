package database

import (
	"context"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core/activity"
)

type activityRepository struct {
	db *sqlx.DB
}

var _ activity.Repository = (*activityRepository)(nil)

func NewActivityRepository(db *sqlx.DB) *activityRepository {
	return &activityRepository{db: db}
}

// activityRow maps the JSONB details column.
type activityRow struct {
	ID           string    `db:"id"`
	StudentID    string    `db:"student_id"`
	ActivityType string    `db:"activity_type"`
	Details      []byte    `db:"details"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r activityRow) toEntry() (activity.Entry, error) {
	e := activity.Entry{
		ID:           r.ID,
		StudentID:    r.StudentID,
		ActivityType: r.ActivityType,
		CreatedAt:    r.CreatedAt,
	}
	if len(r.Details) > 0 {
		if err := json.Unmarshal(r.Details, &e.Details); err != nil {
			return activity.Entry{}, errors.Wrap(err, "decoding activity details")
		}
	}
	return e, nil
}

func (repo *activityRepository) CreateEntry(ctx context.Context, entry activity.Entry) (activity.Entry, error) {
	details := entry.Details
	if details == nil {
		details = make(map[string]interface{})
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return activity.Entry{}, errors.Wrap(err, "encoding activity details")
	}

	query, args, err := psql.
		Insert("activity_logs").
		Columns("id", "student_id", "activity_type", "details", "created_at").
		Values(entry.ID, entry.StudentID, entry.ActivityType, detailsJSON, entry.CreatedAt).
		ToSql()
	if err != nil {
		return activity.Entry{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return activity.Entry{}, errors.Wrap(err, "creating activity entry")
	}
	return entry, nil
}

func (repo *activityRepository) QueryEntries(ctx context.Context, since time.Time, limit int) ([]activity.Entry, error) {
	qb := psql.
		Select("id, student_id, activity_type, details, created_at").
		From("activity_logs").
		OrderBy("created_at DESC")

	if !since.IsZero() {
		qb = qb.Where(sq.GtOrEq{"created_at": since})
	}
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	return repo.selectEntries(ctx, qb)
}

func (repo *activityRepository) GetEntriesByStudentID(ctx context.Context, studentID string, limit int) ([]activity.Entry, error) {
	qb := psql.
		Select("id, student_id, activity_type, details, created_at").
		From("activity_logs").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	return repo.selectEntries(ctx, qb)
}

func (repo *activityRepository) selectEntries(ctx context.Context, qb sq.SelectBuilder) ([]activity.Entry, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	rows := make([]activityRow, 0)
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying activity")
	}

	entries := make([]activity.Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
