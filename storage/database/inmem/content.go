package inmemdb

import (
	"context"
	"sort"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/content"
)

type contentRepository struct {
	db *DB
}

var _ content.Repository = (*contentRepository)(nil)

func NewContentRepository(db *DB) *contentRepository {
	return &contentRepository{db: db}
}

func (repo *contentRepository) CreateChallenge(ctx context.Context, ch content.Challenge) (content.Challenge, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.challenges[ch.ID] = &ch
	return ch, nil
}

func (repo *contentRepository) QueryAllChallenges(ctx context.Context, ordering ...core.DBOrdering) ([]content.Challenge, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	challenges := make([]content.Challenge, 0, len(repo.db.challenges))
	for _, ch := range repo.db.challenges {
		challenges = append(challenges, *ch)
	}
	sort.Slice(challenges, func(i, j int) bool { return challenges[i].CreatedAt.Before(challenges[j].CreatedAt) })
	return challenges, nil
}

func (repo *contentRepository) GetChallengeByID(ctx context.Context, id string) (content.Challenge, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if ch, ok := repo.db.challenges[id]; ok {
		return *ch, nil
	}
	return content.Challenge{}, content.ErrChallengeNotFound
}

func (repo *contentRepository) UpdateChallenge(ctx context.Context, ch content.Challenge) (content.Challenge, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.challenges[ch.ID]; !ok {
		return content.Challenge{}, content.ErrChallengeNotFound
	}
	repo.db.challenges[ch.ID] = &ch
	return ch, nil
}

func (repo *contentRepository) DeleteChallengesByID(ctx context.Context, ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.challenges, id)
	}
	return nil
}

func (repo *contentRepository) CreateLevel(ctx context.Context, lvl content.Level) (content.Level, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.levels[lvl.LevelNumber] = &lvl
	return lvl, nil
}

func (repo *contentRepository) QueryAllLevels(ctx context.Context) ([]content.Level, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	levels := make([]content.Level, 0, len(repo.db.levels))
	for _, lvl := range repo.db.levels {
		levels = append(levels, *lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].LevelNumber < levels[j].LevelNumber })
	return levels, nil
}

func (repo *contentRepository) GetLevelByNumber(ctx context.Context, number int) (content.Level, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if lvl, ok := repo.db.levels[number]; ok {
		return *lvl, nil
	}
	return content.Level{}, content.ErrLevelNotFound
}

func (repo *contentRepository) UpdateLevel(ctx context.Context, lvl content.Level) (content.Level, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.levels[lvl.LevelNumber]; !ok {
		return content.Level{}, content.ErrLevelNotFound
	}
	repo.db.levels[lvl.LevelNumber] = &lvl
	return lvl, nil
}

func (repo *contentRepository) DeleteLevelsByNumber(ctx context.Context, numbers ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, number := range numbers {
		delete(repo.db.levels, number)
	}
	return nil
}
