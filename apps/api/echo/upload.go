package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
)

type uploadApi struct {
	svc UploadService
}

func registerUploadAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := uploadApi{svc: deps.UploadSvc}

	ug := g.Group("/uploads", jwt, adminMiddleware())
	ug.POST("", api.create)
}

// Handlers

func (api *uploadApi) create(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "this field is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer src.Close()

	url, err := api.svc.Upload(ctx.Request().Context(), fh.Filename, src)
	if err != nil {
		return errors.Wrap(err, "uploading image")
	}
	return ctx.JSON(http.StatusCreated, UploadResponse{URL: url})
}

type UploadResponse struct {
	URL string `json:"url"`
}
