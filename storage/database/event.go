package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/event"
)

const eventColumns = "id, title, description, date, location, points_reward, image_url, created_at, updated_at"

type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	query, args, err := psql.
		Insert("events").
		Columns("id", "title", "description", "date", "location", "points_reward", "image_url",
			"created_at", "updated_at").
		Values(evt.ID, evt.Title, evt.Description, evt.Date, evt.Location, evt.PointsReward,
			evt.ImageURL, evt.CreatedAt, evt.UpdatedAt).
		ToSql()
	if err != nil {
		return event.Event{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return event.Event{}, errors.Wrap(err, "creating event")
	}
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context, ordering ...core.DBOrdering) ([]event.Event, error) {
	qb := psql.Select(eventColumns).From("events")

	if len(ordering) > 0 {
		for _, ord := range ordering {
			qb = qb.OrderBy(ord.String())
		}
	} else {
		qb = qb.OrderBy("date DESC")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	events := make([]event.Event, 0)
	if err = repo.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	return events, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, id string) (event.Event, error) {
	query, args, err := psql.Select(eventColumns).From("events").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return event.Event{}, errors.Wrap(err, "building query")
	}
	var evt event.Event
	if err = repo.db.GetContext(ctx, &evt, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, errors.Wrap(err, "getting event")
	}
	return evt, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	query, args, err := psql.
		Update("events").
		Set("title", evt.Title).
		Set("description", evt.Description).
		Set("date", evt.Date).
		Set("location", evt.Location).
		Set("points_reward", evt.PointsReward).
		Set("image_url", evt.ImageURL).
		Set("updated_at", evt.UpdatedAt).
		Where(sq.Eq{"id": evt.ID}).
		ToSql()
	if err != nil {
		return event.Event{}, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "updating event")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return evt, nil
}

func (repo *eventRepository) DeleteEventsByID(ctx context.Context, ids ...string) error {
	query, args, err := psql.Delete("events").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "deleting events")
	}
	return nil
}

func (repo *eventRepository) GetRSVPsByEventID(ctx context.Context, eventID string) ([]event.RSVP, error) {
	query, args, err := psql.
		Select("r.event_id, r.student_id, r.created_at, s.name AS student_name, s.email AS student_email, s.course").
		From("rsvps r").
		Join("students s ON s.student_id = r.student_id").
		Where(sq.Eq{"r.event_id": eventID}).
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	rsvps := make([]event.RSVP, 0)
	if err = repo.db.SelectContext(ctx, &rsvps, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying rsvps")
	}
	return rsvps, nil
}

func (repo *eventRepository) CountRSVPs(ctx context.Context) (map[string]int, error) {
	query, args, err := psql.
		Select("event_id, COUNT(*) AS count").
		From("rsvps").
		GroupBy("event_id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	rows := make([]struct {
		EventID string `db:"event_id"`
		Count   int    `db:"count"`
	}, 0)
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "counting rsvps")
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.EventID] = r.Count
	}
	return counts, nil
}
