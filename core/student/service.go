package student

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, studentID string) (Student, error)
		GetStudentByEmail(ctx context.Context, email string) (Student, error)
		GetStudentByIDOrEmail(ctx context.Context, idOrEmail string) (Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields.
		FilterStudents(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Student, error)
		UpdateStudent(ctx context.Context, std Student, isAdmin *bool) (Student, error)
		UpdateOrCreateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...string) error
	}

	Service interface {
		QueryAll(ctx context.Context) ([]Student, error)
		Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Student, error)
		GetByID(ctx context.Context, studentID string) (Student, error)
		GetByEmail(ctx context.Context, email string) (Student, error)
		GetByIDOrEmail(ctx context.Context, idOrEmail string) (Student, error)
		// EmailForStudentID maps a campus student ID to the account email,
		// for the student-ID login flow.
		EmailForStudentID(ctx context.Context, studentID string) (string, error)
		// IsAdmin reports whether the account holds administrator privilege.
		IsAdmin(ctx context.Context, studentID string) (bool, error)
		Update(ctx context.Context, studentID string, us UpdateStudent) (Student, error)
		Delete(ctx context.Context, ids ...string) error
		SetLastLogin(ctx context.Context, std Student) (Student, error)
		RequestPasswordReset(ctx context.Context, email string) error
		ResetPassword(ctx context.Context, rp ResetStudentPassword) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *service) Filter(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Student, error) {
	filter.Clean()
	return svc.repo.FilterStudents(ctx, *filter, ordering...)
}

func (svc *service) GetByID(ctx context.Context, studentID string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, core.CleanString(studentID, true /* lower */))
}

func (svc *service) GetByEmail(ctx context.Context, email string) (Student, error) {
	return svc.repo.GetStudentByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *service) GetByIDOrEmail(ctx context.Context, idOrEmail string) (Student, error) {
	return svc.repo.GetStudentByIDOrEmail(ctx, core.CleanString(idOrEmail, true /* lower */))
}

func (svc *service) EmailForStudentID(ctx context.Context, studentID string) (string, error) {
	std, err := svc.GetByID(ctx, studentID)
	if err != nil {
		return "", err
	}
	return std.Email, nil
}

func (svc *service) IsAdmin(ctx context.Context, studentID string) (bool, error) {
	std, err := svc.GetByID(ctx, studentID)
	if err != nil {
		return false, err
	}
	return std.IsAdmin, nil
}

func (svc *service) Update(ctx context.Context, studentID string, us UpdateStudent) (Student, error) {
	std, err := svc.GetByID(ctx, studentID)
	if err != nil {
		return Student{}, err
	}
	std.Name = us.Name
	std.Course = us.Course
	std.Mobile = us.Mobile
	if us.AvatarURL != "" {
		std.AvatarURL = us.AvatarURL
	}
	if us.CurrentPoints != nil {
		std.CurrentPoints = *us.CurrentPoints
	}
	if us.LifetimePoints != nil {
		std.LifetimePoints = *us.LifetimePoints
	}
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std, us.IsAdmin)
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}

func (svc *service) SetLastLogin(ctx context.Context, std Student) (Student, error) {
	std.LastLogin = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std, nil)
}

func (svc *service) RequestPasswordReset(ctx context.Context, email string) error {
	std, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	go svc.sendPasswordResetMail(std)
	return nil
}

func (svc *service) sendPasswordResetMail(std Student) {
	token, err := MakeToken(svc.conf, std)
	if err != nil {
		return
	}

	msg := core.NewEmailMessage(svc.conf)
	msg.To = []mail.Address{{Name: std.Name, Address: std.Email}}
	msg.Subject = "Password Reset"
	msg.TemplateName = "password-reset"
	msg.TemplateData = struct {
		Name, UID, Token string
	}{std.Name, EncodeUID(std), token}
	svc.mailSvc.SendMessages(msg)
}

func (svc *service) ResetPassword(ctx context.Context, rp ResetStudentPassword) error {
	uid, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(fmt.Errorf("invalid uid"))
	}
	std, err := svc.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	if err = verifyToken(svc.conf, std, rp.Token); err != nil {
		return core.NewValidationError(err)
	}
	if err = std.SetPassword(rp.Password); err != nil {
		return err
	}
	std.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateStudent(ctx, std, nil)
	return err
}
