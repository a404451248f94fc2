package echoapi

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/activity"
	"github.com/ecobirla/ecopoints/core/catalog"
	"github.com/ecobirla/ecopoints/core/content"
	"github.com/ecobirla/ecopoints/core/event"
	"github.com/ecobirla/ecopoints/core/points"
	"github.com/ecobirla/ecopoints/core/reward"
	"github.com/ecobirla/ecopoints/core/student"
)

type (
	// ExportService renders event sign-up and attendance sheets.
	ExportService interface {
		Filename(kind, eventID string) string
		EventList(kind string, evt event.Event, rsvps []event.RSVP) ([]byte, error)
	}

	// UploadService pushes an image to the hosted media service and returns
	// its public URL.
	UploadService interface {
		Upload(ctx context.Context, filename string, file io.Reader) (string, error)
	}

	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool

		StudentSvc  student.Service
		PointsSvc   points.Service
		ActivitySvc activity.Service
		EventSvc    event.Service
		CatalogSvc  catalog.Service
		ContentSvc  content.Service
		RewardSvc   reward.Service
		ExportSvc   ExportService
		UploadSvc   UploadService
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps         ServerDeps
		app          *echo.Echo
		errChan      chan error
		shutdownChan chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:         deps,
		app:          echo.New(),
		errChan:      make(chan error, 1),
		shutdownChan: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownChan, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newAppJWTConfig(conf))

	registerStudentAPI(v1, jwt, s.deps)
	registerDashboardAPI(v1, jwt, s.deps)
	registerActivityAPI(v1, jwt, s.deps)
	registerEventAPI(v1, jwt, s.deps)
	registerCatalogAPI(v1, jwt, s.deps)
	registerContentAPI(v1, jwt, s.deps)
	registerUploadAPI(v1, jwt, s.deps)
}

func (s *server) Start() {
	s.errChan <- s.app.Start(s.deps.Conf.Server.Addr())
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errChan
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownChan
}

// signalShutdown feeds the shutdown channel so the main goroutine unwinds the
// way it does on SIGTERM.
func (s *server) signalShutdown() {
	s.shutdownChan <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to EcoPoints API!")
}
