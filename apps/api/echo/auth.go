package echoapi

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/student"
)

const (
	contextTokenKey   = "studentToken"
	contextStudentKey = "student"
)

// newAppJWTConfig returns the JWT auth middleware config.
func newAppJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    conf.SecretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	IsAdmin      bool   `json:"is_admin,omitempty"`
}

func GetStudentClaims(conf *core.Config, std student.Student, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   std.StudentID,
			Audience:  "AdminDashboard",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Name:         std.Name,
		Email:        std.Email,
		IsAdmin:      std.IsAdmin,
	}
	return claims
}

// authenticate resolves login as a student ID or an email address and checks
// the password. Only admin accounts may enter the dashboard.
func authenticate(ctx context.Context, conf *core.Config, login, pwd string, svc student.Service) (*Claims, error) {
	std, err := svc.GetByIDOrEmail(ctx, login)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "finding student by ID or email")
	}
	if err = std.CheckPassword(pwd); err != nil {
		return nil, errAuthenticationFailed
	}
	if !std.IsAdmin {
		return nil, errNotAnAdmin
	}
	std, err = svc.SetLastLogin(ctx, std)
	if err != nil {
		return nil, errors.Wrap(err, "setting lastLogin")
	}
	return GetStudentClaims(conf, std), nil
}

// GenerateToken generates a signed JWT token string representing the student Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)

	ss, err := token.SignedString(conf.SecretKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextStudent(ctx echo.Context, svc student.Service, clms ...Claims) (student.Student, error) {
	if std, ok := ctx.Get(contextStudentKey).(student.Student); ok {
		return std, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return student.Student{}, errors.Wrap(err, "getting context claims")
		}
	}

	std, err := svc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "finding student by ID")
	}
	ctx.Set(contextStudentKey, std)
	return std, nil
}

func refreshToken(ctx echo.Context, conf *core.Config, svc student.Service) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	std, err := getContextStudent(ctx, svc, claims)
	if err != nil {
		return "", errors.Wrap(err, "getting context student")
	}

	// check if the account still holds admin privilege
	if !std.IsAdmin {
		return "", errNotAnAdmin
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetStudentClaims(conf, std, claims.OrigIssuedAt)
	token, err := GenerateToken(conf, newClaims)
	return token, errors.Wrap(err, "generating token")
}
