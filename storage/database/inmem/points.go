package inmemdb

import (
	"context"
	"sort"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/points"
	"github.com/ecobirla/ecopoints/core/student"
)

type pointsRepository struct {
	db *DB
}

var _ points.Repository = (*pointsRepository)(nil)

func NewPointsRepository(db *DB) *pointsRepository {
	return &pointsRepository{db: db}
}

func (repo *pointsRepository) CreateEntries(ctx context.Context, entries []points.Entry) ([]points.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// all-or-nothing, like the transactional repository
	for _, e := range entries {
		if _, ok := repo.db.students[e.StudentID]; !ok {
			return nil, student.ErrNotFound
		}
	}
	for _, e := range entries {
		std := repo.db.students[e.StudentID]
		std.CurrentPoints += e.PointsChange
		if e.PointsChange > 0 { // lifetime points only ever grow
			std.LifetimePoints += e.PointsChange
		}
	}
	repo.db.points = append(repo.db.points, entries...)
	return entries, nil
}

func (repo *pointsRepository) QueryAllEntries(ctx context.Context) ([]points.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]points.Entry, len(repo.db.points))
	copy(entries, repo.db.points)
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries, nil
}

func (repo *pointsRepository) GetEntriesByStudentID(ctx context.Context, studentID string, ordering ...core.DBOrdering) ([]points.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]points.Entry, 0)
	for _, e := range repo.db.points {
		if e.StudentID == studentID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
