package content

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ecobirla/ecopoints/core"
)

type Challenge struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	PointsReward int       `json:"points_reward" db:"points_reward"`
	Icon         string    `json:"icon" db:"icon"`
	IsDaily      bool      `json:"is_daily" db:"is_daily"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Level is a rank of the rewards ladder, keyed by its number rather than a
// surrogate ID.
type Level struct {
	LevelNumber int       `json:"level_number" db:"level_number"`
	Title       string    `json:"title" db:"title"`
	MinPoints   int       `json:"min_points" db:"min_points"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type NewChallenge struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	PointsReward int    `json:"points_reward" validate:"gte=0"`
	Icon         string `json:"icon"`
	IsDaily      bool   `json:"is_daily"`
}

func (nc *NewChallenge) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	return validate.Struct(nc)
}

type UpdateChallenge struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	PointsReward *int   `json:"points_reward" validate:"omitempty,gte=0"`
	Icon         string `json:"icon"`
	IsDaily      *bool  `json:"is_daily"`
}

func (uc *UpdateChallenge) Validate(origCh Challenge, validate *validator.Validate) error {
	uc.Title = core.CleanString(uc.Title)

	if uc.Title == "" {
		uc.Title = origCh.Title
	}
	if uc.Description == "" {
		uc.Description = origCh.Description
	}
	if uc.PointsReward == nil {
		uc.PointsReward = &origCh.PointsReward
	}
	if uc.Icon == "" {
		uc.Icon = origCh.Icon
	}
	if uc.IsDaily == nil {
		uc.IsDaily = &origCh.IsDaily
	}
	return validate.Struct(uc)
}

type NewLevel struct {
	LevelNumber int    `json:"level_number" validate:"gte=1"`
	Title       string `json:"title" validate:"required"`
	MinPoints   int    `json:"min_points" validate:"gte=0"`
}

func (nl *NewLevel) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	return validate.Struct(nl)
}

type UpdateLevel struct {
	Title     string `json:"title"`
	MinPoints *int   `json:"min_points" validate:"omitempty,gte=0"`
}

func (ul *UpdateLevel) Validate(origLvl Level, validate *validator.Validate) error {
	ul.Title = core.CleanString(ul.Title)

	if ul.Title == "" {
		ul.Title = origLvl.Title
	}
	if ul.MinPoints == nil {
		ul.MinPoints = &origLvl.MinPoints
	}
	return validate.Struct(ul)
}
