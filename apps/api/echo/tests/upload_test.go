package tests

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobirla/ecopoints/core"
	inmemdb "github.com/ecobirla/ecopoints/storage/database/inmem"
	testutil "github.com/ecobirla/ecopoints/tests"
)

func TestUploadAPI(t *testing.T) {
	// hosted media service stub
	var gotPreset string
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotPreset = r.FormValue("upload_preset")
		if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url": "https://res.test/image/banner.png"}`))
	}))
	defer media.Close()

	db, server, conf := setup(t, func(c *core.Config) { c.Upload.URL = media.URL })
	stdRepo := inmemdb.NewStudentRepository(db)

	admin := testutil.CreateStudent(t, stdRepo, "Warden", "admin001", "warden@test.edu", "", "S3cretPass!", true)
	asha := testutil.CreateStudent(t, stdRepo, "Asha Rao", "bt21cs042", "asha@test.edu", "CSE", "S3cretPass!", false)
	adminToken := getToken(t, conf, admin)
	ashaToken := getToken(t, conf, asha)

	newUploadRequest := func(t *testing.T, token, field string) (*http.Request, *httptest.ResponseRecorder) {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		part, err := w.CreateFormFile(field, "banner.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("not really a png"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/uploads", &body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req, httptest.NewRecorder()
	}

	t.Run("no token", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		req, rec := newUploadRequest(t, "", "file")
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("not an admin", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		req, rec := newUploadRequest(t, ashaToken, "file")
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("missing file part", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"file": "this field is required"}),
		}
		req, rec := newUploadRequest(t, adminToken, "avatar")
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("upload", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, map[string]string{"url": "https://res.test/image/banner.png"}),
		}
		req, rec := newUploadRequest(t, adminToken, "file")
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
		assert.Equal(t, conf.Upload.Preset, gotPreset)
	})
}
