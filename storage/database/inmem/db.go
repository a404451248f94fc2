// Package inmemdb provides in-memory repositories backing API and service
// tests without a running database.
package inmemdb

import (
	"sync"

	"github.com/ecobirla/ecopoints/core/activity"
	"github.com/ecobirla/ecopoints/core/catalog"
	"github.com/ecobirla/ecopoints/core/content"
	"github.com/ecobirla/ecopoints/core/event"
	"github.com/ecobirla/ecopoints/core/points"
	"github.com/ecobirla/ecopoints/core/reward"
	"github.com/ecobirla/ecopoints/core/student"
)

type DB struct {
	mutex sync.RWMutex

	students   map[string]*student.Student
	points     []points.Entry
	activity   []activity.Entry
	events     map[string]*event.Event
	rsvps      []event.RSVP // student columns joined on read
	stores     map[string]*catalog.Store
	products   map[string]*catalog.Product
	challenges map[string]*content.Challenge
	levels     map[int]*content.Level
	rewards    []reward.UserReward
}

func Open() (*DB, error) {
	db := &DB{
		students:   make(map[string]*student.Student),
		points:     make([]points.Entry, 0),
		activity:   make([]activity.Entry, 0),
		events:     make(map[string]*event.Event),
		rsvps:      make([]event.RSVP, 0),
		stores:     make(map[string]*catalog.Store),
		products:   make(map[string]*catalog.Product),
		challenges: make(map[string]*content.Challenge),
		levels:     make(map[int]*content.Level),
		rewards:    make([]reward.UserReward, 0),
	}
	return db, nil
}
