package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/content"
)

type contentApi struct {
	svc      content.Service
	validate *validator.Validate
}

func registerContentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := contentApi{
		svc:      deps.ContentSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/challenges", jwt, adminMiddleware())
	cg.GET("", api.queryChallenges)
	cg.POST("", api.createChallenge)
	cg.GET("/:id", api.retrieveChallenge)
	cg.PUT("/:id", api.updateChallenge)
	cg.DELETE("/:id", api.destroyChallenge)

	lg := g.Group("/levels", jwt, adminMiddleware())
	lg.GET("", api.queryLevels)
	lg.POST("", api.createLevel)
	lg.GET("/:number", api.retrieveLevel)
	lg.PUT("/:number", api.updateLevel)
	lg.DELETE("/:number", api.destroyLevel)
}

// Challenge handlers

func (api *contentApi) queryChallenges(ctx echo.Context) error {
	challenges, err := api.svc.QueryAllChallenges(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying challenges")
	}
	if challenges == nil {
		challenges = []content.Challenge{}
	}
	return ctx.JSON(http.StatusOK, challenges)
}

func (api *contentApi) createChallenge(ctx echo.Context) error {
	var data content.NewChallenge
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChallenge")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ch, err := api.svc.CreateChallenge(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating challenge")
	}
	return ctx.JSON(http.StatusCreated, ch)
}

func (api *contentApi) retrieveChallenge(ctx echo.Context) error {
	ch, err := api.getChallenge(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ch)
}

func (api *contentApi) updateChallenge(ctx echo.Context) error {
	ch, err := api.getChallenge(ctx)
	if err != nil {
		return err
	}

	var data content.UpdateChallenge
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateChallenge")
	}
	if err := data.Validate(ch, api.validate); err != nil {
		return err
	}

	ch, err = api.svc.UpdateChallenge(ctx.Request().Context(), ch.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating challenge")
	}
	return ctx.JSON(http.StatusOK, ch)
}

func (api *contentApi) destroyChallenge(ctx echo.Context) error {
	if err := api.svc.DeleteChallenges(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting challenge")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Level handlers

func (api *contentApi) queryLevels(ctx echo.Context) error {
	levels, err := api.svc.QueryAllLevels(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying levels")
	}
	if levels == nil {
		levels = []content.Level{}
	}
	return ctx.JSON(http.StatusOK, levels)
}

func (api *contentApi) createLevel(ctx echo.Context) error {
	var data content.NewLevel
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLevel")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lvl, err := api.svc.CreateLevel(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == content.ErrLevelExists {
			return core.NewValidationError(nil, core.FieldError{Field: "level_number", Error: err.Error()})
		}
		return errors.Wrap(err, "creating level")
	}
	return ctx.JSON(http.StatusCreated, lvl)
}

func (api *contentApi) retrieveLevel(ctx echo.Context) error {
	lvl, err := api.getLevel(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, lvl)
}

func (api *contentApi) updateLevel(ctx echo.Context) error {
	lvl, err := api.getLevel(ctx)
	if err != nil {
		return err
	}

	var data content.UpdateLevel
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLevel")
	}
	if err := data.Validate(lvl, api.validate); err != nil {
		return err
	}

	lvl, err = api.svc.UpdateLevel(ctx.Request().Context(), lvl.LevelNumber, data)
	if err != nil {
		return errors.Wrap(err, "updating level")
	}
	return ctx.JSON(http.StatusOK, lvl)
}

func (api *contentApi) destroyLevel(ctx echo.Context) error {
	number, err := bindLevelNumber(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteLevels(ctx.Request().Context(), number); err != nil {
		return errors.Wrap(err, "deleting level")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contentApi) getChallenge(ctx echo.Context) (content.Challenge, error) {
	ch, err := api.svc.GetChallenge(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == content.ErrChallengeNotFound {
			return content.Challenge{}, errHttpNotFound
		}
		return content.Challenge{}, errors.Wrap(err, "finding challenge by ID")
	}
	return ch, nil
}

func (api *contentApi) getLevel(ctx echo.Context) (content.Level, error) {
	number, err := bindLevelNumber(ctx)
	if err != nil {
		return content.Level{}, err
	}
	lvl, err := api.svc.GetLevel(ctx.Request().Context(), number)
	if err != nil {
		if errors.Cause(err) == content.ErrLevelNotFound {
			return content.Level{}, errHttpNotFound
		}
		return content.Level{}, errors.Wrap(err, "finding level by number")
	}
	return lvl, nil
}

func bindLevelNumber(ctx echo.Context) (int, error) {
	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "level_number", Error: "must be an integer"})
	}
	return number, nil
}
