package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobirla/ecopoints/core/activity"
	"github.com/ecobirla/ecopoints/core/points"
	inmemdb "github.com/ecobirla/ecopoints/storage/database/inmem"
	testutil "github.com/ecobirla/ecopoints/tests"
)

func TestDashboardAPI(t *testing.T) {
	db, server, conf := setup(t)
	stdRepo := inmemdb.NewStudentRepository(db)
	ptsRepo := inmemdb.NewPointsRepository(db)
	actRepo := inmemdb.NewActivityRepository(db)

	admin := testutil.CreateStudent(t, stdRepo, "Warden", "admin001", "warden@test.edu", "", "S3cretPass!", true)
	asha := testutil.CreateStudent(t, stdRepo, "Asha Rao", "bt21cs042", "asha@test.edu", "CSE", "S3cretPass!", false)
	adminToken := getToken(t, conf, admin)

	now := time.Now().UTC()
	_, err := ptsRepo.CreateEntries(ctx, []points.Entry{
		{ID: "e1", StudentID: asha.StudentID, PointsChange: 50, Description: "Submitted 5 bottles", Type: points.TypeChallenge, CreatedAt: now},
		{ID: "e2", StudentID: asha.StudentID, PointsChange: 20, Description: "Attended: Tree Plantation", Type: points.TypeEvent, CreatedAt: now},
		{ID: "e3", StudentID: asha.StudentID, PointsChange: -30, Description: "Redeemed: Steel Water Bottle", Type: points.TypePurchase, CreatedAt: now},
	})
	require.NoError(t, err)

	t.Run("summary", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]int{
				"total_distributed": 70,
				"total_redeemed":    30,
				"current_balance":   40,
				"co2_saved_kg":      56,
				"items_recycled":    1,
				"events_attended":   1,
			}),
		}
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard/summary", adminToken)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	// seed page views: two today, one eight days ago (outside the week window)
	for _, e := range []activity.Entry{
		{ID: "a1", StudentID: asha.StudentID, ActivityType: activity.TypePageView, Details: map[string]interface{}{"page": "dashboard"}, CreatedAt: now.Add(-time.Hour)},
		{ID: "a2", StudentID: asha.StudentID, ActivityType: activity.TypePageView, Details: map[string]interface{}{"page": "events"}, CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "a3", StudentID: asha.StudentID, ActivityType: activity.TypePageView, Details: map[string]interface{}{"page": "dashboard"}, CreatedAt: now.AddDate(0, 0, -8)},
		{ID: "a4", StudentID: asha.StudentID, ActivityType: activity.TypeLogin, CreatedAt: now},
	} {
		_, err := actRepo.CreateEntry(ctx, e)
		require.NoError(t, err)
	}

	t.Run("feed", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard/feed", adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var entries []activity.Entry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 4)
		// newest first
		assert.Equal(t, "a4", entries[0].ID)
	})

	t.Run("page-view series over a week", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard/analytics/page-views?range=week", adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var series activity.TimeSeries
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
		require.Len(t, series.Labels, 7)
		require.Len(t, series.Counts, 7)

		var total int
		for _, c := range series.Counts {
			total += c
		}
		assert.Equal(t, 2, total) // a3 is outside the window, a4 is not a page view
	})

	t.Run("page views by page", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard/analytics/pages?range=week", adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var views activity.PageViews
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		assert.ElementsMatch(t, []string{"dashboard", "events"}, views.Pages)
	})

	t.Run("invalid range", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"range": "invalid analytics range"}),
		}
		req, rec := newAuthRequest(http.MethodGet, "/v1/dashboard/analytics/page-views?range=decade", adminToken)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("requires auth", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		req, rec := newRequest(http.MethodGet, "/v1/dashboard/summary")
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
