package event

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/points"
)

var (
	ctx      = context.Background()
	validate = newTestValidate()
)

func newTestValidate() *validator.Validate {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate
}

func TestServiceCRUD(t *testing.T) {
	repo := NewRepositoryMock()
	svc := NewService(repo, points.NewService(points.NewRepositoryMock()))

	date := time.Date(2021, time.April, 22, 9, 0, 0, 0, time.UTC)
	evt, err := svc.Create(ctx, NewEvent{
		Title:        "Campus Cleanup Drive",
		Description:  "Bring gloves.",
		Date:         date,
		Location:     "Main Lawn",
		PointsReward: 25,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, "Campus Cleanup Drive", evt.Title)
	assert.Equal(t, 25, evt.PointsReward)

	t.Run("update keeps unset fields", func(t *testing.T) {
		ue := UpdateEvent{Location: "Amphitheatre"}
		require.NoError(t, ue.Validate(evt, validate))

		updated, err := svc.Update(ctx, evt.ID, ue)
		require.NoError(t, err)
		assert.Equal(t, "Amphitheatre", updated.Location)
		assert.Equal(t, evt.Title, updated.Title)
		assert.Equal(t, evt.PointsReward, updated.PointsReward)
		assert.True(t, updated.Date.Equal(date))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, evt.ID))
		_, err := svc.GetByID(ctx, evt.ID)
		assert.Equal(t, ErrNotFound, err)
	})
}

func TestServiceAwardAttendance(t *testing.T) {
	repo := NewRepositoryMock()
	pointsSvc := points.NewService(points.NewRepositoryMock())
	svc := NewService(repo, pointsSvc)

	evt, err := svc.Create(ctx, NewEvent{
		Title:        "Tree Plantation",
		Date:         time.Now().UTC(),
		PointsReward: 20,
	})
	require.NoError(t, err)

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.AwardAttendance(ctx, "nope", []string{"2021A7PS0001"})
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("one entry per attendee", func(t *testing.T) {
		ids := []string{"2021A7PS0001", "2021A7PS0002", "2021A7PS0003"}
		entries, err := svc.AwardAttendance(ctx, evt.ID, ids)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for i, e := range entries {
			assert.Equal(t, ids[i], e.StudentID)
			assert.Equal(t, 20, e.PointsChange)
			assert.Equal(t, "Attended: Tree Plantation", e.Description)
			assert.Equal(t, points.TypeEvent, e.Type)
		}
	})
}

func TestServiceRSVPs(t *testing.T) {
	repo := NewRepositoryMock(
		RSVP{EventID: "evt1", StudentID: "2021A7PS0001", StudentName: "Asha", Course: "CS"},
		RSVP{EventID: "evt1", StudentID: "2021A7PS0002", StudentName: "Ravi", Course: "EEE"},
		RSVP{EventID: "evt2", StudentID: "2021A7PS0001", StudentName: "Asha", Course: "CS"},
	)
	svc := NewService(repo, points.NewService(points.NewRepositoryMock()))

	rsvps, err := svc.RSVPs(ctx, "evt1")
	require.NoError(t, err)
	assert.Len(t, rsvps, 2)

	counts, err := svc.RSVPCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"evt1": 2, "evt2": 1}, counts)
}
