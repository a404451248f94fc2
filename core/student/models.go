package student

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecobirla/ecopoints/core"
)

// Student is a member of the EcoPoints program. Accounts are created by the
// sign-up flow of the student-facing app; the admin dashboard only edits them.
type Student struct {
	StudentID      string    `json:"student_id" db:"student_id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Course         string    `json:"course" db:"course"`
	Mobile         string    `json:"mobile" db:"mobile"`
	CurrentPoints  int       `json:"current_points" db:"current_points"`
	LifetimePoints int       `json:"lifetime_points" db:"lifetime_points"`
	IsAdmin        bool      `json:"is_admin" db:"is_admin"`
	AvatarURL      string    `json:"avatar_url" db:"avatar_url"`
	PasswordHash   []byte    `json:"-" db:"password_hash"`
	JoinedAt       time.Time `json:"joined_at" db:"joined_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
	LastLogin      time.Time `json:"last_login" db:"last_login"`
}

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

// UpdateStudent defines what information an admin may modify on an existing Student.
type UpdateStudent struct {
	Name           string `json:"name"`
	Course         string `json:"course"`
	Mobile         string `json:"mobile"`
	CurrentPoints  *int   `json:"current_points" validate:"omitempty,min=0"`
	LifetimePoints *int   `json:"lifetime_points" validate:"omitempty,min=0"`
	IsAdmin        *bool  `json:"is_admin"`
	AvatarURL      string `json:"avatar_url" validate:"omitempty,url"`
}

func (us *UpdateStudent) Validate(origStd Student, validate *validator.Validate) error {
	name := core.CleanString(us.Name)
	if name != "" {
		us.Name = name
	} else {
		us.Name = origStd.Name
	}

	course := core.CleanString(us.Course)
	if course != "" {
		us.Course = course
	} else {
		us.Course = origStd.Course
	}

	mobile := core.CleanString(us.Mobile)
	if mobile != "" {
		us.Mobile = mobile
	} else {
		us.Mobile = origStd.Mobile
	}

	return validate.Struct(us)
}

type ResetStudentPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetStudentPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}

type QueryFilter struct {
	// Search does a case-insensitive match on Student.Name or Student.StudentID.
	Search  string `query:"search"`
	IsAdmin *bool  `query:"is_admin"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.IsAdmin == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
