package points

import (
	"math"
	"strings"
	"time"
)

// Entry types
const (
	TypeEvent     = "event"
	TypeChallenge = "challenge"
	TypePurchase  = "purchase"
	TypeManual    = "manual"
)

// Entry is one immutable row of the EcoPoints ledger. Entries are only ever
// inserted and read, never updated or deleted.
type Entry struct {
	ID           string    `json:"id" db:"id"`
	StudentID    string    `json:"student_id" db:"student_id"`
	PointsChange int       `json:"points_change" db:"points_change"`
	Description  string    `json:"description" db:"description"`
	Type         string    `json:"type" db:"type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
}

// Summary holds the dashboard stat cards derived from the ledger.
type Summary struct {
	TotalDistributed int `json:"total_distributed"`
	TotalRedeemed    int `json:"total_redeemed"`
	CurrentBalance   int `json:"current_balance"`
	CO2SavedKg       int `json:"co2_saved_kg"`
	ItemsRecycled    int `json:"items_recycled"`
	EventsAttended   int `json:"events_attended"`
}

// Summarize reduces a ledger to its dashboard stats.
//
// Distributed is the sum of all positive changes, redeemed the absolute sum of
// all negative ones; balance is distributed minus redeemed. The impact stats
// count entries whose description mentions a submission or an attendance.
func Summarize(entries []Entry) Summary {
	var sum Summary
	for _, e := range entries {
		if e.PointsChange > 0 {
			sum.TotalDistributed += e.PointsChange
		} else {
			sum.TotalRedeemed += -e.PointsChange
		}

		desc := strings.ToLower(e.Description)
		if strings.Contains(desc, "submitted") {
			sum.ItemsRecycled++
		}
		if strings.Contains(desc, "attended") {
			sum.EventsAttended++
		}
	}
	sum.CurrentBalance = sum.TotalDistributed - sum.TotalRedeemed
	sum.CO2SavedKg = int(math.Floor(float64(sum.TotalDistributed) * 0.8))
	return sum
}
