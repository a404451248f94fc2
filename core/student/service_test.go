package student_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/student"
	appfs "github.com/ecobirla/ecopoints/fs"
	emailsvc "github.com/ecobirla/ecopoints/services/email"
	inmemdb "github.com/ecobirla/ecopoints/storage/database/inmem"
	testutil "github.com/ecobirla/ecopoints/tests"
)

var ctx = context.Background()

func setup(t *testing.T) (student.Repository, student.Service, *core.Config) {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	repo := inmemdb.NewStudentRepository(db)

	if err = core.ParseEmailTemplates(appfs.FS, conf); err != nil {
		t.Fatalf("core.ParseEmailTemplates(): %v", err)
	}

	svc := student.NewServiceMock(repo, emailsvc.NewConsoleServiceMock(conf), conf)
	return repo, svc, conf
}

func TestService_Lookups(t *testing.T) {
	repo, svc, _ := setup(t)

	std := testutil.CreateStudent(t, repo, "Asha Rao", "bt21cs042", "asha@test.edu", "CSE", "S3cretPass!", false)
	testutil.CreateStudent(t, repo, "Warden", "admin001", "warden@test.edu", "", "S3cretPass!", true)

	email, err := svc.EmailForStudentID(ctx, "BT21CS042") // case-insensitive
	require.NoError(t, err)
	assert.Equal(t, std.Email, email)

	_, err = svc.EmailForStudentID(ctx, "nope")
	assert.Equal(t, student.ErrNotFound, err)

	isAdmin, err := svc.IsAdmin(ctx, std.StudentID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isAdmin, err = svc.IsAdmin(ctx, "admin001")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	got, err := svc.GetByIDOrEmail(ctx, "Asha@test.edu")
	require.NoError(t, err)
	assert.Equal(t, std.StudentID, got.StudentID)
}

func TestService_Update(t *testing.T) {
	repo, svc, _ := setup(t)

	std := testutil.CreateStudent(t, repo, "Asha Rao", "bt21cs042", "asha@test.edu", "CSE", "S3cretPass!", false)
	std.CurrentPoints, std.LifetimePoints = 50, 120
	std, err := repo.UpdateOrCreateStudent(ctx, std)
	require.NoError(t, err)

	t.Run("partial update keeps balances", func(t *testing.T) {
		updated, err := svc.Update(ctx, std.StudentID, student.UpdateStudent{
			Name:   std.Name,
			Course: "ECE",
			Mobile: std.Mobile,
		})
		require.NoError(t, err)
		assert.Equal(t, "ECE", updated.Course)
		assert.Equal(t, "Asha Rao", updated.Name)
		assert.Equal(t, 50, updated.CurrentPoints)
		assert.Equal(t, 120, updated.LifetimePoints)
		assert.False(t, updated.IsAdmin)
	})

	t.Run("balance adjustment", func(t *testing.T) {
		pts := 75
		updated, err := svc.Update(ctx, std.StudentID, student.UpdateStudent{
			Name:          std.Name,
			Course:        "ECE",
			CurrentPoints: &pts,
		})
		require.NoError(t, err)
		assert.Equal(t, 75, updated.CurrentPoints)
		assert.Equal(t, 120, updated.LifetimePoints)
	})

	t.Run("admin grant", func(t *testing.T) {
		isAdmin := true
		updated, err := svc.Update(ctx, std.StudentID, student.UpdateStudent{
			Name:    std.Name,
			Course:  "ECE",
			IsAdmin: &isAdmin,
		})
		require.NoError(t, err)
		assert.True(t, updated.IsAdmin)
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.Update(ctx, "nope", student.UpdateStudent{Name: "X"})
		assert.Equal(t, student.ErrNotFound, err)
	})
}

func TestService_PasswordReset(t *testing.T) {
	repo, svc, conf := setup(t)

	std := testutil.CreateStudent(t, repo, "Asha Rao", "bt21cs042", "asha@test.edu", "CSE", "0ldPassw0rd!", false)

	t.Run("unknown email", func(t *testing.T) {
		err := svc.RequestPasswordReset(ctx, "nope@test.edu")
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("reset email sent", func(t *testing.T) {
		sent := len(emailsvc.SentMessages)
		require.NoError(t, svc.RequestPasswordReset(ctx, std.Email))
		require.Len(t, emailsvc.SentMessages, sent+1)

		msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
		assert.Equal(t, "Password Reset", msg.Subject)
		require.Len(t, msg.To, 1)
		assert.Equal(t, std.Email, msg.To[0].Address)
	})

	t.Run("round trip", func(t *testing.T) {
		token, err := student.MakeToken(conf, std)
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword(ctx, student.ResetStudentPassword{
			Token:           token,
			UID:             student.EncodeUID(std),
			Password:        "N3w!Passw0rd",
			PasswordConfirm: "N3w!Passw0rd",
		}))

		refreshed, err := repo.GetStudentByID(ctx, std.StudentID)
		require.NoError(t, err)
		assert.NoError(t, refreshed.CheckPassword("N3w!Passw0rd"))
	})

	t.Run("token no longer valid after use", func(t *testing.T) {
		// the hash is part of the token signature, so a used token dies
		token, err := student.MakeToken(conf, std)
		require.NoError(t, err)

		err = svc.ResetPassword(ctx, student.ResetStudentPassword{
			Token:           token,
			UID:             student.EncodeUID(std),
			Password:        "An0ther!Passw0rd",
			PasswordConfirm: "An0ther!Passw0rd",
		})
		require.Error(t, err)
		assert.IsType(t, &core.ValidationError{}, err)
	})

	t.Run("garbage uid", func(t *testing.T) {
		err := svc.ResetPassword(ctx, student.ResetStudentPassword{
			Token:    "lol",
			UID:      "%%%",
			Password: "N3w!Passw0rd",
		})
		require.Error(t, err)
		assert.IsType(t, &core.ValidationError{}, err)
	})
}
