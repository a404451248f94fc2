package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/event"
	"github.com/ecobirla/ecopoints/core/points"
)

type eventApi struct {
	svc       event.Service
	exportSvc ExportService
	validate  *validator.Validate
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := eventApi{
		svc:       deps.EventSvc,
		exportSvc: deps.ExportSvc,
		validate:  deps.Validate,
	}

	eg := g.Group("/events", jwt, adminMiddleware())
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.DELETE("", api.destroyMultiple)
	eg.GET("/rsvp-counts", api.rsvpCounts)

	dg := eg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/rsvps", api.rsvps)
	dg.POST("/award", api.awardAttendance)
	dg.GET("/export", api.export)
}

// Handlers

func (api *eventApi) query(ctx echo.Context) error {
	events, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	evt, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, evt)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	evt, err := api.getEvent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) update(ctx echo.Context) error {
	evt, err := api.getEvent(ctx)
	if err != nil {
		return err
	}

	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(evt, api.validate); err != nil {
		return err
	}

	evt, err = api.svc.Update(ctx.Request().Context(), evt.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *eventApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting events")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *eventApi) rsvps(ctx echo.Context) error {
	evt, err := api.getEvent(ctx)
	if err != nil {
		return err
	}

	rsvps, err := api.svc.RSVPs(ctx.Request().Context(), evt.ID)
	if err != nil {
		return errors.Wrap(err, "querying sign-ups")
	}
	if rsvps == nil {
		rsvps = []event.RSVP{}
	}
	return ctx.JSON(http.StatusOK, rsvps)
}

func (api *eventApi) rsvpCounts(ctx echo.Context) error {
	counts, err := api.svc.RSVPCounts(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "counting sign-ups")
	}
	return ctx.JSON(http.StatusOK, counts)
}

func (api *eventApi) awardAttendance(ctx echo.Context) error {
	var data AwardAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AwardAttendanceRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	entries, err := api.svc.AwardAttendance(ctx.Request().Context(), ctx.Param("id"), data.StudentIDs)
	if err != nil {
		switch errors.Cause(err) {
		case event.ErrNotFound:
			return errHttpNotFound
		case points.ErrNoRecipients:
			return core.NewValidationError(err)
		}
		return errors.Wrap(err, "awarding attendance")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *eventApi) export(ctx echo.Context) error {
	kind := ctx.QueryParam("kind")
	if kind == "" {
		kind = "rsvp"
	}
	if !(kind == "rsvp" || kind == "attendance") {
		return core.NewValidationError(nil, core.FieldError{Field: "kind", Error: "must be one of: rsvp, attendance"})
	}

	evt, err := api.getEvent(ctx)
	if err != nil {
		return err
	}
	rsvps, err := api.svc.RSVPs(ctx.Request().Context(), evt.ID)
	if err != nil {
		return errors.Wrap(err, "querying sign-ups")
	}
	if len(rsvps) == 0 {
		return core.NewValidationError(event.ErrNoRSVPs)
	}

	data, err := api.exportSvc.EventList(kind, evt, rsvps)
	if err != nil {
		return errors.Wrap(err, "rendering sheet")
	}

	ctx.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", api.exportSvc.Filename(kind, evt.ID)),
	)
	return ctx.Blob(http.StatusOK, "application/pdf", data)
}

func (api *eventApi) getEvent(ctx echo.Context) (event.Event, error) {
	evt, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return event.Event{}, errHttpNotFound
		}
		return event.Event{}, errors.Wrap(err, "finding event by ID")
	}
	return evt, nil
}

type AwardAttendanceRequest struct {
	StudentIDs []string `json:"student_ids" validate:"required,min=1"`
}
