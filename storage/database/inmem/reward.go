package inmemdb

import (
	"context"

	"github.com/ecobirla/ecopoints/core/reward"
)

type rewardRepository struct {
	db *DB
}

var _ reward.Repository = (*rewardRepository)(nil)

func NewRewardRepository(db *DB) *rewardRepository {
	return &rewardRepository{db: db}
}

// AddReward seeds a redeemed reward; tests use it in place of the student app.
func (repo *rewardRepository) AddReward(rwd reward.UserReward) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.rewards = append(repo.db.rewards, rwd)
}

func (repo *rewardRepository) GetRewardsByStudentID(ctx context.Context, studentID string) ([]reward.UserReward, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rewards := make([]reward.UserReward, 0)
	for _, rwd := range repo.db.rewards {
		if rwd.StudentID == studentID {
			rewards = append(rewards, rwd)
		}
	}
	return rewards, nil
}
