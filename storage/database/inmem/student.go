package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.students))
	for _, std := range repo.db.students {
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].LifetimePoints > students[j].LifetimePoints })
	return students
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.students[std.StudentID] = &std
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, studentID string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, std := range repo.db.students {
		if strings.EqualFold(std.StudentID, studentID) {
			return *std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, std := range repo.db.students {
		if strings.EqualFold(std.Email, email) {
			return *std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByIDOrEmail(ctx context.Context, idOrEmail string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, std := range repo.db.students {
		if strings.EqualFold(std.StudentID, idOrEmail) || strings.EqualFold(std.Email, idOrEmail) {
			return *std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) FilterStudents(ctx context.Context, filter student.QueryFilter, ordering ...core.DBOrdering) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	search := strings.ToLower(filter.Search)
	students := make([]student.Student, 0)
	for _, std := range repo.query() {
		if search != "" &&
			!strings.Contains(strings.ToLower(std.Name), search) &&
			!strings.Contains(strings.ToLower(std.StudentID), search) {
			continue
		}
		if filter.IsAdmin != nil && std.IsAdmin != *filter.IsAdmin {
			continue
		}
		students = append(students, std)
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student, isAdmin *bool) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	origStd, ok := repo.db.students[std.StudentID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	if std.PasswordHash != nil {
		origStd.PasswordHash = std.PasswordHash
	}
	if !std.LastLogin.IsZero() {
		origStd.LastLogin = std.LastLogin
	}
	if isAdmin != nil {
		origStd.IsAdmin = *isAdmin
	}
	origStd.Name = std.Name
	origStd.Course = std.Course
	origStd.Mobile = std.Mobile
	origStd.AvatarURL = std.AvatarURL
	origStd.CurrentPoints = std.CurrentPoints
	origStd.LifetimePoints = std.LifetimePoints
	origStd.UpdatedAt = std.UpdatedAt

	repo.db.students[std.StudentID] = origStd
	return *origStd, nil
}

func (repo *studentRepository) UpdateOrCreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	if _, err := repo.GetStudentByID(ctx, std.StudentID); err != nil {
		if err == student.ErrNotFound {
			return repo.CreateStudent(ctx, std)
		}
		return student.Student{}, err
	}
	return repo.UpdateStudent(ctx, std, &std.IsAdmin)
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.students, id)
	}
	return nil
}
