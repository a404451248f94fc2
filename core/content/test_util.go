package content

import (
	"context"
	"sort"
	"sync"

	"github.com/ecobirla/ecopoints/core"
)

type repositoryMock struct {
	mutex      sync.RWMutex
	challenges map[string]*Challenge
	levels     map[int]*Level
}

func NewRepositoryMock() *repositoryMock {
	return &repositoryMock{
		challenges: make(map[string]*Challenge),
		levels:     make(map[int]*Level),
	}
}

func (repo *repositoryMock) CreateChallenge(ctx context.Context, ch Challenge) (Challenge, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	repo.challenges[ch.ID] = &ch
	return ch, nil
}

func (repo *repositoryMock) QueryAllChallenges(ctx context.Context, ordering ...core.DBOrdering) ([]Challenge, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	challenges := make([]Challenge, 0, len(repo.challenges))
	for _, ch := range repo.challenges {
		challenges = append(challenges, *ch)
	}
	return challenges, nil
}

func (repo *repositoryMock) GetChallengeByID(ctx context.Context, id string) (Challenge, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	if ch, ok := repo.challenges[id]; ok {
		return *ch, nil
	}
	return Challenge{}, ErrChallengeNotFound
}

func (repo *repositoryMock) UpdateChallenge(ctx context.Context, ch Challenge) (Challenge, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	if _, ok := repo.challenges[ch.ID]; !ok {
		return Challenge{}, ErrChallengeNotFound
	}
	repo.challenges[ch.ID] = &ch
	return ch, nil
}

func (repo *repositoryMock) DeleteChallengesByID(ctx context.Context, ids ...string) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	for _, id := range ids {
		delete(repo.challenges, id)
	}
	return nil
}

func (repo *repositoryMock) CreateLevel(ctx context.Context, lvl Level) (Level, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	repo.levels[lvl.LevelNumber] = &lvl
	return lvl, nil
}

func (repo *repositoryMock) QueryAllLevels(ctx context.Context) ([]Level, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	levels := make([]Level, 0, len(repo.levels))
	for _, lvl := range repo.levels {
		levels = append(levels, *lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].LevelNumber < levels[j].LevelNumber })
	return levels, nil
}

func (repo *repositoryMock) GetLevelByNumber(ctx context.Context, number int) (Level, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	if lvl, ok := repo.levels[number]; ok {
		return *lvl, nil
	}
	return Level{}, ErrLevelNotFound
}

func (repo *repositoryMock) UpdateLevel(ctx context.Context, lvl Level) (Level, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	if _, ok := repo.levels[lvl.LevelNumber]; !ok {
		return Level{}, ErrLevelNotFound
	}
	repo.levels[lvl.LevelNumber] = &lvl
	return lvl, nil
}

func (repo *repositoryMock) DeleteLevelsByNumber(ctx context.Context, numbers ...int) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()
	for _, number := range numbers {
		delete(repo.levels, number)
	}
	return nil
}
