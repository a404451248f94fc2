package echoapi

import (
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
	"github.com/ecobirla/ecopoints/core/activity"
	"github.com/ecobirla/ecopoints/core/points"
	"github.com/ecobirla/ecopoints/core/reward"
	"github.com/ecobirla/ecopoints/core/student"
)

// columns clients may sort the student list by
var studentOrderingFields = []string{
	"student_id", "name", "email", "course",
	"current_points", "lifetime_points", "joined_at", "last_login",
}

type studentApi struct {
	conf        *core.Config
	svc         student.Service
	pointsSvc   points.Service
	activitySvc activity.Service
	rewardSvc   reward.Service
	validate    *validator.Validate
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{
		conf:        deps.Conf,
		svc:         deps.StudentSvc,
		pointsSvc:   deps.PointsSvc,
		activitySvc: deps.ActivitySvc,
		rewardSvc:   deps.RewardSvc,
		validate:    deps.Validate,
	}

	sg := g.Group("/students")

	// un-authed endpoints
	sg.POST("/login", api.login)
	sg.POST("/password-reset", api.resetPassword)
	sg.POST("/password-reset-confirm", api.confirmPasswordReset)

	// authed endpoints
	ag := sg.Group("", jwt)
	ag.POST("/token-refresh", api.refreshToken)
	ag.GET("", api.query, adminMiddleware())
	ag.DELETE("", api.destroyMultiple, adminMiddleware())

	// detail endpoints
	dg := ag.Group("/:id", adminMiddleware())
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *studentApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), api.conf, data.Login, data.Password, api.svc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(api.conf, claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *studentApi) resetPassword(ctx echo.Context) error {
	var data PasswordResetRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PasswordResetRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.RequestPasswordReset(ctx.Request().Context(), data.Email); !(err == nil || errors.Cause(err) == student.ErrNotFound) {
		// do not return errors to attackers
		ctx.Logger().Errorf("%+v", errors.Wrap(err, "requesting password reset"))
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{
		Success: "If the email address supplied is associated with an active account on this system, " +
			"an email will arrive in your inbox shortly with instructions to reset your password.",
	})
}

func (api *studentApi) confirmPasswordReset(ctx echo.Context) error {
	var data student.ResetStudentPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetStudentPassword")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.ResetPassword(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "resetting password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Password has been reset with the new password."})
}

func (api *studentApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.conf, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx, studentOrderingFields...)

	students, err := api.svc.Filter(ctx.Request().Context(), filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	std, err := api.svc.GetByID(reqCtx, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}

	history, err := api.pointsSvc.ForStudent(reqCtx, std.StudentID)
	if err != nil {
		return errors.Wrap(err, "querying points history")
	}
	rewards, err := api.rewardSvc.ForStudent(reqCtx, std.StudentID)
	if err != nil {
		return errors.Wrap(err, "querying rewards")
	}
	logs, err := api.activitySvc.ForStudent(reqCtx, std.StudentID)
	if err != nil {
		return errors.Wrap(err, "querying activity")
	}

	return ctx.JSON(http.StatusOK, StudentDetailResponse{
		Student:        std,
		PointsHistory:  history,
		Rewards:        rewards,
		RecentActivity: logs,
	})
}

func (api *studentApi) update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	std, err := api.svc.GetByID(reqCtx, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding student by ID")
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(std, api.validate); err != nil {
		return err
	}

	std, err = api.svc.Update(reqCtx, std.StudentID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// Say No to Suicide! admins cannot delete themselves
	id := ctx.Param("id")
	if id == claims.Subject {
		return errHttpForbidden
	}

	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// Say No to Suicide! admins cannot delete themselves
	sort.Strings(query.IDs)
	if i := sort.SearchStrings(query.IDs, claims.Subject); i < len(query.IDs) {
		if match := query.IDs[i]; claims.Subject == match {
			return errHttpForbidden
		}
	}

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	LoginRequest struct {
		// Login is a student ID or an email address.
		Login    string `json:"login" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}

	// StudentDetailResponse bundles everything the student detail page shows.
	StudentDetailResponse struct {
		Student        student.Student     `json:"student"`
		PointsHistory  []points.Entry      `json:"points_history"`
		Rewards        []reward.UserReward `json:"rewards"`
		RecentActivity []activity.Entry    `json:"recent_activity"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Login = core.CleanString(lr.Login, true /* lower */)
	return validate.Struct(lr)
}

func (pr *PasswordResetRequest) Validate(validate *validator.Validate) error {
	pr.Email = core.CleanString(pr.Email, true /* lower */)
	return validate.Struct(pr)
}
