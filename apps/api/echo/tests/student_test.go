package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobirla/ecopoints/core/points"
	"github.com/ecobirla/ecopoints/core/student"
	emailsvc "github.com/ecobirla/ecopoints/services/email"
	inmemdb "github.com/ecobirla/ecopoints/storage/database/inmem"
	testutil "github.com/ecobirla/ecopoints/tests"
)

func TestLoginAPI(t *testing.T) {
	db, server, conf := setup(t)
	stdRepo := inmemdb.NewStudentRepository(db)

	testutil.CreateStudent(t, stdRepo, "Warden", "admin001", "warden@test.edu", "", "S3cretPass!", true)
	testutil.CreateStudent(t, stdRepo, "Asha Rao", "bt21cs042", "asha@test.edu", "CSE", "S3cretPass!", false)

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"login": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown account", body: []byte(`{"login": "ghost", "password": "S3cretPass!"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: []byte(`{"login": "admin001", "password": "nope"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "non-admin account", body: []byte(`{"login": "bt21cs042", "password": "S3cretPass!"}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account has no dashboard access"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/students/login", tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("admin login by ID and by email", func(t *testing.T) {
		for _, login := range []string{"admin001", "Warden@test.edu"} {
			body := []byte(fmt.Sprintf(`{"login": %q, "password": "S3cretPass!"}`, login))
			req, rec := newRequest(http.MethodPost, "/v1/students/login", body)
			server.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var res struct {
				Token string `json:"token"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.NotEmpty(t, res.Token)
		}

		// lastLogin is stamped on successful login
		std, err := stdRepo.GetStudentByID(ctx, "admin001")
		require.NoError(t, err)
		assert.False(t, std.LastLogin.IsZero())
	})

	t.Run("token refresh", func(t *testing.T) {
		admin, err := stdRepo.GetStudentByID(ctx, "admin001")
		require.NoError(t, err)

		req, rec := newAuthRequest(http.MethodPost, "/v1/students/token-refresh", getToken(t, conf, admin))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.NotEmpty(t, res.Token)
	})
}

func TestPasswordResetAPI(t *testing.T) {
	db, server, conf := setup(t)
	stdRepo := inmemdb.NewStudentRepository(db)

	std := testutil.CreateStudent(t, stdRepo, "Warden", "admin001", "warden@test.edu", "", "S3cretPass!", true)

	t.Run("request is always acknowledged", func(t *testing.T) {
		sent := len(emailsvc.SentMessages)

		for _, email := range []string{"warden@test.edu", "ghost@test.edu"} {
			body := []byte(fmt.Sprintf(`{"email": %q}`, email))
			req, rec := newRequest(http.MethodPost, "/v1/students/password-reset", body)
			server.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		}

		// only the existing account got an email
		require.Len(t, emailsvc.SentMessages, sent+1)
		msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
		assert.Equal(t, "Password Reset", msg.Subject)
		assert.Contains(t, msg.TextContent, conf.FrontendBaseURL+"/password-reset/")

		linkRe := regexp.MustCompile(`/password-reset/([^/\s]+)/([^/\s]+)`)
		assert.NotNil(t, linkRe.FindStringSubmatch(msg.TextContent))
	})

	t.Run("confirm resets the password", func(t *testing.T) {
		token, err := student.MakeToken(conf, std)
		require.NoError(t, err)

		body := marchallObj(t, map[string]string{
			"uid":              student.EncodeUID(std),
			"token":            token,
			"password":         "N3w!Passw0rd",
			"password_confirm": "N3w!Passw0rd",
		})
		req, rec := newRequest(http.MethodPost, "/v1/students/password-reset-confirm", body)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		refreshed, err := stdRepo.GetStudentByID(ctx, std.StudentID)
		require.NoError(t, err)
		assert.NoError(t, refreshed.CheckPassword("N3w!Passw0rd"))
	})

	t.Run("confirm rejects the password policy violations", func(t *testing.T) {
		token, err := student.MakeToken(conf, std)
		require.NoError(t, err)

		body := marchallObj(t, map[string]string{
			"uid":              student.EncodeUID(std),
			"token":            token,
			"password":         "short",
			"password_confirm": "short",
		})
		req, rec := newRequest(http.MethodPost, "/v1/students/password-reset-confirm", body)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})
}

func TestStudentAPI(t *testing.T) {
	db, server, conf := setup(t)
	stdRepo := inmemdb.NewStudentRepository(db)
	ptsRepo := inmemdb.NewPointsRepository(db)
	rwdRepo := inmemdb.NewRewardRepository(db)

	admin := testutil.CreateStudent(t, stdRepo, "Warden", "admin001", "warden@test.edu", "", "S3cretPass!", true)
	asha := testutil.CreateStudent(t, stdRepo, "Asha Rao", "bt21cs042", "asha@test.edu", "CSE", "S3cretPass!", false)
	vikram := testutil.CreateStudent(t, stdRepo, "Vikram Joshi", "bt21me007", "vikram@test.edu", "ME", "S3cretPass!", false)

	adminToken := getToken(t, conf, admin)
	studentToken := getToken(t, conf, asha)

	t.Run("permissions", func(t *testing.T) {
		tests := []httpTest{
			{name: "list requires auth", method: http.MethodGet, path: "/v1/students",
				wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
			{name: "list requires admin", method: http.MethodGet, path: "/v1/students", token: studentToken,
				wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})},
			{name: "detail requires admin", method: http.MethodGet, path: "/v1/students/bt21me007", token: studentToken,
				wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req, rec := newAuthRequest(tt.method, tt.path, tt.token)
				server.ServeHTTP(rec, req)
				checkCodeAndData(t, tt, rec)
			})
		}
	})

	t.Run("list and search", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students", adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var students []student.Student
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
		assert.Len(t, students, 3)

		req, rec = newAuthRequest(http.MethodGet, "/v1/students?search=asha", adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
		require.Len(t, students, 1)
		assert.Equal(t, "bt21cs042", students[0].StudentID)

		req, rec = newAuthRequest(http.MethodGet, "/v1/students?is_admin=true", adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
		require.Len(t, students, 1)
		assert.Equal(t, "admin001", students[0].StudentID)
	})

	t.Run("detail bundles history, rewards and activity", func(t *testing.T) {
		_, err := ptsRepo.CreateEntries(ctx, []points.Entry{
			{ID: "e1", StudentID: asha.StudentID, PointsChange: 50, Description: "Submitted 5 bottles", Type: points.TypeChallenge},
		})
		require.NoError(t, err)
		rwdRepo.AddReward(rewardFor(asha.StudentID))

		req, rec := newAuthRequest(http.MethodGet, "/v1/students/bt21cs042", adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var detail struct {
			Student        student.Student          `json:"student"`
			PointsHistory  []points.Entry           `json:"points_history"`
			Rewards        []map[string]interface{} `json:"rewards"`
			RecentActivity []map[string]interface{} `json:"recent_activity"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.Equal(t, "bt21cs042", detail.Student.StudentID)
		assert.Equal(t, 50, detail.Student.CurrentPoints)
		require.Len(t, detail.PointsHistory, 1)
		assert.Len(t, detail.Rewards, 1)
		assert.NotNil(t, detail.RecentActivity)
	})

	t.Run("unknown student is 404", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/ghost", adminToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	})

	t.Run("update keeps unset fields", func(t *testing.T) {
		body := []byte(`{"course": "CSE-AI", "is_admin": false}`)
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/bt21cs042", adminToken, body)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated student.Student
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "CSE-AI", updated.Course)
		assert.Equal(t, "Asha Rao", updated.Name)
		assert.Equal(t, 50, updated.CurrentPoints)
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/students/admin001", adminToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

		req, rec = newAuthRequest(http.MethodDelete, "/v1/students?id=bt21cs042&id=admin001", adminToken)
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/students/"+vikram.StudentID, adminToken)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		_, err := stdRepo.GetStudentByID(ctx, vikram.StudentID)
		assert.Equal(t, student.ErrNotFound, err)
	})
}
