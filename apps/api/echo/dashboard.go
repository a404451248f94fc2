package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/activity"
	"github.com/ecobirla/ecopoints/core/points"
)

type dashboardApi struct {
	pointsSvc   points.Service
	activitySvc activity.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := dashboardApi{
		pointsSvc:   deps.PointsSvc,
		activitySvc: deps.ActivitySvc,
	}

	dg := g.Group("/dashboard", jwt, adminMiddleware())
	dg.GET("/summary", api.summary)
	dg.GET("/feed", api.feed)
	dg.GET("/analytics/page-views", api.pageViewSeries)
	dg.GET("/analytics/pages", api.pageViewsByPage)
}

// Handlers

func (api *dashboardApi) summary(ctx echo.Context) error {
	summary, err := api.pointsSvc.Summary(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing summary")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *dashboardApi) feed(ctx echo.Context) error {
	entries, err := api.activitySvc.Feed(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying activity feed")
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *dashboardApi) pageViewSeries(ctx echo.Context) error {
	series, err := api.activitySvc.PageViewSeries(ctx.Request().Context(), bindRange(ctx))
	if err != nil {
		if errors.Cause(err) == activity.ErrInvalidRange {
			return core.NewValidationError(nil, core.FieldError{Field: "range", Error: err.Error()})
		}
		return errors.Wrap(err, "computing page-view series")
	}
	return ctx.JSON(http.StatusOK, series)
}

func (api *dashboardApi) pageViewsByPage(ctx echo.Context) error {
	views, err := api.activitySvc.PageViewsByPage(ctx.Request().Context(), bindRange(ctx))
	if err != nil {
		if errors.Cause(err) == activity.ErrInvalidRange {
			return core.NewValidationError(nil, core.FieldError{Field: "range", Error: err.Error()})
		}
		return errors.Wrap(err, "computing page views by page")
	}
	return ctx.JSON(http.StatusOK, views)
}

func bindRange(ctx echo.Context) activity.Range {
	r := activity.Range(ctx.QueryParam("range"))
	if r == "" {
		r = activity.RangeWeek
	}
	return r
}
