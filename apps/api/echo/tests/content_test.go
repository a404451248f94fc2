package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobirla/ecopoints/core/content"
	inmemdb "github.com/ecobirla/ecopoints/storage/database/inmem"
	testutil "github.com/ecobirla/ecopoints/tests"
)

func TestChallengeAPI(t *testing.T) {
	db, server, conf := setup(t)
	stdRepo := inmemdb.NewStudentRepository(db)

	admin := testutil.CreateStudent(t, stdRepo, "Warden", "admin001", "warden@test.edu", "", "S3cretPass!", true)
	asha := testutil.CreateStudent(t, stdRepo, "Asha Rao", "bt21cs042", "asha@test.edu", "CSE", "S3cretPass!", false)
	adminToken := getToken(t, conf, admin)
	ashaToken := getToken(t, conf, asha)

	tests := []httpTest{
		{
			name: "no token", method: http.MethodGet, path: "/v1/challenges",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "not an admin", method: http.MethodGet, path: "/v1/challenges", token: ashaToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "empty list", method: http.MethodGet, path: "/v1/challenges", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, []content.Challenge{}),
		},
		{
			name: "create: missing title", method: http.MethodPost, path: "/v1/challenges", token: adminToken,
			body:     marchallObj(t, map[string]interface{}{"points_reward": 10}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name: "unknown ID", method: http.MethodGet, path: "/v1/challenges/nope", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	var ch content.Challenge
	t.Run("create", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{
			"title":         "Bottle Return",
			"description":   "Return 5 plastic bottles to the collection point",
			"points_reward": 10,
			"icon":          "recycle",
			"is_daily":      true,
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/challenges", adminToken, body)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ch))
		assert.NotEmpty(t, ch.ID)
		assert.Equal(t, "Bottle Return", ch.Title)
		assert.True(t, ch.IsDaily)
	})

	t.Run("update keeps unset fields", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"points_reward": 15})
		req, rec := newAuthRequest(http.MethodPut, "/v1/challenges/"+ch.ID, adminToken, body)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated content.Challenge
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, 15, updated.PointsReward)
		assert.Equal(t, ch.Title, updated.Title)
		assert.Equal(t, ch.Description, updated.Description)
		assert.True(t, updated.IsDaily)
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/challenges/"+ch.ID, adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/challenges/"+ch.ID, adminToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLevelAPI(t *testing.T) {
	db, server, conf := setup(t)
	stdRepo := inmemdb.NewStudentRepository(db)

	admin := testutil.CreateStudent(t, stdRepo, "Warden", "admin001", "warden@test.edu", "", "S3cretPass!", true)
	adminToken := getToken(t, conf, admin)

	tests := []httpTest{
		{
			name: "create: missing title", method: http.MethodPost, path: "/v1/levels", token: adminToken,
			body:     marchallObj(t, map[string]interface{}{"level_number": 1}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name: "non-integer number", method: http.MethodGet, path: "/v1/levels/gold", token: adminToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"level_number": "must be an integer"}),
		},
		{
			name: "unknown number", method: http.MethodGet, path: "/v1/levels/9", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("create", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"level_number": 1, "title": "Seedling", "min_points": 0})
		req, rec := newAuthRequest(http.MethodPost, "/v1/levels", adminToken, body)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var lvl content.Level
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lvl))
		assert.Equal(t, 1, lvl.LevelNumber)
		assert.Equal(t, "Seedling", lvl.Title)
	})

	t.Run("duplicate number", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"level_number": "a level with this number already exists"}),
		}
		body := marchallObj(t, map[string]interface{}{"level_number": 1, "title": "Sapling", "min_points": 100})
		req, rec := newAuthRequest(http.MethodPost, "/v1/levels", adminToken, body)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("update keeps unset fields", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"min_points": 50})
		req, rec := newAuthRequest(http.MethodPut, "/v1/levels/1", adminToken, body)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var lvl content.Level
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lvl))
		assert.Equal(t, 50, lvl.MinPoints)
		assert.Equal(t, "Seedling", lvl.Title)
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/levels/1", adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/levels/1", adminToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
