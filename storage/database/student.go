package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/student"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const studentColumns = "student_id, name, email, course, mobile, current_points, lifetime_points, " +
	"is_admin, avatar_url, password_hash, joined_at, updated_at, last_login"

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	query, args, err := psql.
		Insert("students").
		Columns("student_id", "name", "email", "course", "mobile", "current_points", "lifetime_points",
			"is_admin", "avatar_url", "password_hash", "joined_at", "updated_at").
		Values(std.StudentID, std.Name, std.Email, std.Course, std.Mobile, std.CurrentPoints,
			std.LifetimePoints, std.IsAdmin, std.AvatarURL, std.PasswordHash, std.JoinedAt, std.UpdatedAt).
		ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	return repo.selectStudents(ctx, psql.
		Select(studentColumns).
		From("students").
		OrderBy("lifetime_points DESC"))
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, studentID string) (student.Student, error) {
	return repo.getStudent(ctx, sq.Eq{"LOWER(student_id)": studentID})
}

func (repo *studentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	return repo.getStudent(ctx, sq.Eq{"LOWER(email)": email})
}

func (repo *studentRepository) GetStudentByIDOrEmail(ctx context.Context, idOrEmail string) (student.Student, error) {
	return repo.getStudent(ctx, sq.Or{
		sq.Eq{"LOWER(student_id)": idOrEmail},
		sq.Eq{"LOWER(email)": idOrEmail},
	})
}

func (repo *studentRepository) FilterStudents(ctx context.Context, filter student.QueryFilter, ordering ...core.DBOrdering) ([]student.Student, error) {
	qb := psql.Select(studentColumns).From("students")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"student_id": pattern},
		})
	}
	if filter.IsAdmin != nil {
		qb = qb.Where(sq.Eq{"is_admin": *filter.IsAdmin})
	}

	if len(ordering) > 0 {
		for _, ord := range ordering {
			qb = qb.OrderBy(ord.String())
		}
	} else {
		qb = qb.OrderBy("lifetime_points DESC")
	}
	return repo.selectStudents(ctx, qb)
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student, isAdmin *bool) (student.Student, error) {
	qb := psql.
		Update("students").
		Set("name", std.Name).
		Set("course", std.Course).
		Set("mobile", std.Mobile).
		Set("avatar_url", std.AvatarURL).
		Set("current_points", std.CurrentPoints).
		Set("lifetime_points", std.LifetimePoints).
		Set("updated_at", std.UpdatedAt).
		Where(sq.Eq{"student_id": std.StudentID})

	// only save set fields
	if std.PasswordHash != nil {
		qb = qb.Set("password_hash", std.PasswordHash)
	}
	if !std.LastLogin.IsZero() {
		qb = qb.Set("last_login", std.LastLogin)
	}
	if isAdmin != nil {
		qb = qb.Set("is_admin", *isAdmin)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.getStudent(ctx, sq.Eq{"student_id": std.StudentID})
}

func (repo *studentRepository) UpdateOrCreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	if _, err := repo.getStudent(ctx, sq.Eq{"student_id": std.StudentID}); err != nil {
		if err == student.ErrNotFound {
			return repo.CreateStudent(ctx, std)
		}
		return student.Student{}, err
	}
	return repo.UpdateStudent(ctx, std, &std.IsAdmin)
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	query, args, err := psql.Delete("students").Where(sq.Eq{"student_id": ids}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}

func (repo *studentRepository) getStudent(ctx context.Context, pred interface{}) (student.Student, error) {
	query, args, err := psql.Select(studentColumns).From("students").Where(pred).ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building query")
	}
	var std student.Student
	if err = repo.db.GetContext(ctx, &std, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return std, nil
}

func (repo *studentRepository) selectStudents(ctx context.Context, qb sq.SelectBuilder) ([]student.Student, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	students := make([]student.Student, 0)
	if err = repo.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}
