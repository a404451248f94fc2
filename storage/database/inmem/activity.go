package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/ecobirla/ecopoints/core/activity"
)

type activityRepository struct {
	db *DB
}

var _ activity.Repository = (*activityRepository)(nil)

func NewActivityRepository(db *DB) *activityRepository {
	return &activityRepository{db: db}
}

func (repo *activityRepository) CreateEntry(ctx context.Context, entry activity.Entry) (activity.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.activity = append(repo.db.activity, entry)
	return entry, nil
}

func (repo *activityRepository) QueryEntries(ctx context.Context, since time.Time, limit int) ([]activity.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]activity.Entry, 0)
	for _, e := range repo.db.activity {
		if !since.IsZero() && e.CreatedAt.Before(since) {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (repo *activityRepository) GetEntriesByStudentID(ctx context.Context, studentID string, limit int) ([]activity.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]activity.Entry, 0)
	for _, e := range repo.db.activity {
		if e.StudentID == studentID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
