package points

import (
	"context"
	"sync"

	"github.com/ecobirla/ecopoints/core"
)

// repositoryMock is an in-memory Repository for tests. Balance application is
// out of scope here; entries are simply appended.
type repositoryMock struct {
	mutex   sync.RWMutex
	entries []Entry
}

func NewRepositoryMock(entries ...Entry) *repositoryMock {
	return &repositoryMock{entries: entries}
}

func (repo *repositoryMock) CreateEntries(ctx context.Context, entries []Entry) ([]Entry, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	repo.entries = append(repo.entries, entries...)
	return entries, nil
}

func (repo *repositoryMock) QueryAllEntries(ctx context.Context) ([]Entry, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	entries := make([]Entry, len(repo.entries))
	copy(entries, repo.entries)
	return entries, nil
}

func (repo *repositoryMock) GetEntriesByStudentID(ctx context.Context, studentID string, ordering ...core.DBOrdering) ([]Entry, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	entries := make([]Entry, 0)
	for _, e := range repo.entries {
		if e.StudentID == studentID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
