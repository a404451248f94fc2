package event

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ecobirla/ecopoints/core"
)

type Event struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Date         time.Time `json:"date" db:"date"`
	Location     string    `json:"location" db:"location"`
	PointsReward int       `json:"points_reward" db:"points_reward"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RSVP is a student's sign-up for an event, joined with the student columns
// the attendance sheet needs.
type RSVP struct {
	EventID      string    `json:"event_id" db:"event_id"`
	StudentID    string    `json:"student_id" db:"student_id"`
	StudentName  string    `json:"student_name" db:"student_name"`
	StudentEmail string    `json:"student_email" db:"student_email"`
	Course       string    `json:"course" db:"course"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type NewEvent struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date" validate:"required"`
	Location     string    `json:"location"`
	PointsReward int       `json:"points_reward" validate:"gte=0"`
	ImageURL     string    `json:"image_url"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Location = core.CleanString(ne.Location)
	return validate.Struct(ne)
}

// UpdateEvent only updates set fields; empty values fall back to the stored
// event.
type UpdateEvent struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Date         *time.Time `json:"date"`
	Location     string     `json:"location"`
	PointsReward *int       `json:"points_reward" validate:"omitempty,gte=0"`
	ImageURL     string     `json:"image_url"`
}

func (ue *UpdateEvent) Validate(origEvt Event, validate *validator.Validate) error {
	ue.Title = core.CleanString(ue.Title)
	ue.Location = core.CleanString(ue.Location)

	if ue.Title == "" {
		ue.Title = origEvt.Title
	}
	if ue.Description == "" {
		ue.Description = origEvt.Description
	}
	if ue.Date == nil {
		ue.Date = &origEvt.Date
	}
	if ue.Location == "" {
		ue.Location = origEvt.Location
	}
	if ue.PointsReward == nil {
		ue.PointsReward = &origEvt.PointsReward
	}
	if ue.ImageURL == "" {
		ue.ImageURL = origEvt.ImageURL
	}
	return validate.Struct(ue)
}
