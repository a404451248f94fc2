// Package reward exposes students' redeemed rewards. The rows are written by
// the student-facing app; this service only ever reads them.
package reward

import (
	"context"
	"time"
)

type UserReward struct {
	ID           string     `json:"id" db:"id"`
	StudentID    string     `json:"student_id" db:"student_id"`
	Product      string     `json:"product" db:"product"`
	PurchaseDate time.Time  `json:"purchase_date" db:"purchase_date"`
	Status       string     `json:"status" db:"status"`
	UsedDate     *time.Time `json:"used_date" db:"used_date"`
}

type (
	Repository interface {
		GetRewardsByStudentID(ctx context.Context, studentID string) ([]UserReward, error)
	}

	Service interface {
		ForStudent(ctx context.Context, studentID string) ([]UserReward, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) ForStudent(ctx context.Context, studentID string) ([]UserReward, error) {
	return svc.repo.GetRewardsByStudentID(ctx, studentID)
}
