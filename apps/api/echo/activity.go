package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core/activity"
)

type activityApi struct {
	svc      activity.Service
	validate *validator.Validate
}

func registerActivityAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := activityApi{
		svc:      deps.ActivitySvc,
		validate: deps.Validate,
	}

	ag := g.Group("/activity", jwt)
	ag.POST("", api.create)
	ag.GET("", api.list, adminMiddleware())
}

// Handlers

func (api *activityApi) list(ctx echo.Context) error {
	entries, err := api.svc.Feed(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying activity")
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *activityApi) create(ctx echo.Context) error {
	var data NewEntryRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntryRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	entry, err := api.svc.Log(ctx.Request().Context(), data.StudentID, data.ActivityType, data.Details)
	if err != nil {
		return errors.Wrap(err, "logging activity")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

type NewEntryRequest struct {
	StudentID    string                 `json:"student_id" validate:"required"`
	ActivityType string                 `json:"activity_type" validate:"required"`
	Details      map[string]interface{} `json:"details"`
}
