package content

import (
	"context"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobirla/ecopoints/core"
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

func TestServiceChallenges(t *testing.T) {
	svc := NewService(NewRepositoryMock())

	ch, err := svc.CreateChallenge(ctx, NewChallenge{
		Title:        "No-Plastic Week",
		PointsReward: 40,
		Icon:         "recycle",
		IsDaily:      true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ch.ID)

	t.Run("update keeps unset fields", func(t *testing.T) {
		pts := 50
		uc := UpdateChallenge{PointsReward: &pts}
		require.NoError(t, uc.Validate(ch, validate))

		updated, err := svc.UpdateChallenge(ctx, ch.ID, uc)
		require.NoError(t, err)
		assert.Equal(t, 50, updated.PointsReward)
		assert.Equal(t, "No-Plastic Week", updated.Title)
		assert.Equal(t, "recycle", updated.Icon)
		assert.True(t, updated.IsDaily)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteChallenges(ctx, ch.ID))
		_, err := svc.GetChallenge(ctx, ch.ID)
		assert.Equal(t, ErrChallengeNotFound, err)
	})
}

func TestServiceLevels(t *testing.T) {
	svc := NewService(NewRepositoryMock())

	lvl, err := svc.CreateLevel(ctx, NewLevel{LevelNumber: 1, Title: "Seedling", MinPoints: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, lvl.LevelNumber)

	t.Run("duplicate number rejected", func(t *testing.T) {
		_, err := svc.CreateLevel(ctx, NewLevel{LevelNumber: 1, Title: "Sprout"})
		assert.Equal(t, ErrLevelExists, err)
	})

	t.Run("update keyed by number", func(t *testing.T) {
		pts := 100
		ul := UpdateLevel{MinPoints: &pts}
		require.NoError(t, ul.Validate(lvl, validate))

		updated, err := svc.UpdateLevel(ctx, 1, ul)
		require.NoError(t, err)
		assert.Equal(t, 100, updated.MinPoints)
		assert.Equal(t, "Seedling", updated.Title)
	})

	t.Run("levels sorted by number", func(t *testing.T) {
		_, err := svc.CreateLevel(ctx, NewLevel{LevelNumber: 3, Title: "Tree"})
		require.NoError(t, err)
		_, err = svc.CreateLevel(ctx, NewLevel{LevelNumber: 2, Title: "Sapling"})
		require.NoError(t, err)

		levels, err := svc.QueryAllLevels(ctx)
		require.NoError(t, err)
		require.Len(t, levels, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{levels[0].LevelNumber, levels[1].LevelNumber, levels[2].LevelNumber})
	})
}
