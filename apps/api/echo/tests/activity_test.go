package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobirla/ecopoints/core/activity"
	inmemdb "github.com/ecobirla/ecopoints/storage/database/inmem"
	testutil "github.com/ecobirla/ecopoints/tests"
)

func TestActivityAPI(t *testing.T) {
	db, server, conf := setup(t)
	stdRepo := inmemdb.NewStudentRepository(db)

	admin := testutil.CreateStudent(t, stdRepo, "Warden", "admin001", "warden@test.edu", "", "S3cretPass!", true)
	asha := testutil.CreateStudent(t, stdRepo, "Asha Rao", "bt21cs042", "asha@test.edu", "CSE", "S3cretPass!", false)
	adminToken := getToken(t, conf, admin)
	ashaToken := getToken(t, conf, asha)

	tests := []httpTest{
		{
			name: "no token", method: http.MethodPost, path: "/v1/activity",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "list: not an admin", method: http.MethodGet, path: "/v1/activity", token: ashaToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "missing fields", method: http.MethodPost, path: "/v1/activity", token: ashaToken,
			body:     marchallObj(t, map[string]interface{}{"details": map[string]string{"page": "events"}}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"student_id":    "this field is required",
				"activity_type": "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// page views are logged by any signed-in student, not just admins
	t.Run("log page view", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{
			"student_id":    asha.StudentID,
			"activity_type": activity.TypePageView,
			"details":       map[string]string{"page": "rewards"},
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/activity", ashaToken, body)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var entry activity.Entry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, asha.StudentID, entry.StudentID)
		assert.Equal(t, activity.TypePageView, entry.ActivityType)
		assert.Equal(t, "rewards", entry.Details["page"])
		assert.False(t, entry.CreatedAt.IsZero())

		entries, err := inmemdb.NewActivityRepository(db).GetEntriesByStudentID(ctx, asha.StudentID, 0)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("list", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/activity", adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var entries []activity.Entry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, activity.TypePageView, entries[0].ActivityType)
	})
}
