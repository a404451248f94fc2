package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/ecobirla/ecopoints/apps/api/echo"
	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/activity"
	"github.com/ecobirla/ecopoints/core/catalog"
	"github.com/ecobirla/ecopoints/core/content"
	"github.com/ecobirla/ecopoints/core/event"
	"github.com/ecobirla/ecopoints/core/points"
	"github.com/ecobirla/ecopoints/core/reward"
	"github.com/ecobirla/ecopoints/core/student"
	appfs "github.com/ecobirla/ecopoints/fs"
	emailsvc "github.com/ecobirla/ecopoints/services/email"
	exportsvc "github.com/ecobirla/ecopoints/services/export"
	logsvc "github.com/ecobirla/ecopoints/services/logger"
	uploadsvc "github.com/ecobirla/ecopoints/services/upload"
	"github.com/ecobirla/ecopoints/storage/database"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	stdSvc := student.NewService(database.NewStudentRepository(db), mailSvc, conf)
	ptsSvc := points.NewService(database.NewPointsRepository(db))
	actSvc := activity.NewService(database.NewActivityRepository(db), time.Local)
	evtSvc := event.NewService(database.NewEventRepository(db), ptsSvc)
	catSvc := catalog.NewService(database.NewCatalogRepository(db))
	cntSvc := content.NewService(database.NewContentRepository(db))
	rwdSvc := reward.NewService(database.NewRewardRepository(db))
	expSvc := exportsvc.NewPDFService(conf.AppName)
	uplSvc := uploadsvc.NewCloudinaryService(conf)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)

	if err = core.ParseEmailTemplates(appfs.FS, conf); err != nil {
		logger.Fatal(fmt.Sprintf("parsing email templates: %v", err), err)
	}

	student.LoadCommonPasswords(appfs.FS, logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			Validate:    validate,
			Translator:  translator,
			StudentSvc:  stdSvc,
			PointsSvc:   ptsSvc,
			ActivitySvc: actSvc,
			EventSvc:    evtSvc,
			CatalogSvc:  catSvc,
			ContentSvc:  cntSvc,
			RewardSvc:   rwdSvc,
			ExportSvc:   expSvc,
			UploadSvc:   uplSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
