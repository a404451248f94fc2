package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

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
	inmemdb "github.com/ecobirla/ecopoints/storage/database/inmem"
)

var (
	ctx = context.Background()

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

// rewardFor seeds a redeemed reward row the way the student-facing app writes it.
func rewardFor(studentID string) reward.UserReward {
	return reward.UserReward{
		ID:           "rwd-" + studentID,
		StudentID:    studentID,
		Product:      "Steel Water Bottle",
		PurchaseDate: time.Now().UTC(),
		Status:       "active",
	}
}

func setup(t *testing.T, confMods ...func(*core.Config)) (*inmemdb.DB, echoapi.Server, *core.Config) {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	for _, mod := range confMods {
		mod(conf)
	}

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	ptsSvc := points.NewService(inmemdb.NewPointsRepository(db))

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	if err = core.ParseEmailTemplates(appfs.FS, conf); err != nil {
		t.Fatalf("core.ParseEmailTemplates(): %v", err)
	}

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
			StudentSvc:     student.NewServiceMock(inmemdb.NewStudentRepository(db), mailSvc, conf),
			PointsSvc:      ptsSvc,
			ActivitySvc:    activity.NewService(inmemdb.NewActivityRepository(db), nil),
			EventSvc:       event.NewService(inmemdb.NewEventRepository(db), ptsSvc),
			CatalogSvc:     catalog.NewService(inmemdb.NewCatalogRepository(db)),
			ContentSvc:     content.NewService(inmemdb.NewContentRepository(db)),
			RewardSvc:      reward.NewService(inmemdb.NewRewardRepository(db)),
			ExportSvc:      exportsvc.NewPDFService(conf.AppName),
			UploadSvc:      uploadsvc.NewCloudinaryService(conf),
		},
	)
	return db, server, conf
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, std student.Student) string {
	claims := echoapi.GetStudentClaims(conf, std)
	token, err := echoapi.GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
