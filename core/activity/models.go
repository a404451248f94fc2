package activity

import (
	"time"
)

// Activity types
const (
	TypePageView = "page_view"
	TypeLogin    = "login"
	TypeRedeem   = "redeem"
	TypeRSVP     = "rsvp"
)

// Entry is one recorded student action. Details carries free-form context,
// e.g. {"page": "dashboard"} for page views.
type Entry struct {
	ID           string                 `json:"id" db:"id"`
	StudentID    string                 `json:"student_id" db:"student_id"`
	ActivityType string                 `json:"activity_type" db:"activity_type"`
	Details      map[string]interface{} `json:"details" db:"details"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
}

// Range selects the reporting window of the analytics charts.
type Range string

const (
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

func (r Range) IsValid() bool {
	switch r {
	case RangeDay, RangeWeek, RangeMonth, RangeYear:
		return true
	}
	return false
}

// TimeSeries is a dense chart axis; Counts[i] belongs to Labels[i] and
// zero-count buckets are kept.
type TimeSeries struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// PageViews groups page-view counts per visited page.
type PageViews struct {
	Pages  []string `json:"pages"`
	Counts []int    `json:"counts"`
}
