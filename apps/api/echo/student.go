package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core"
	"github.com/campusdesk/portal/core/student"
)

type authApi struct {
	svc      *student.Service
	validate *validator.Validate
}

func registerAuthAPI(app *echo.Echo, deps *Deps) {
	api := authApi{
		svc:      deps.StudentSvc,
		validate: deps.Validate,
	}

	// un-authed endpoints
	app.POST("/register", api.register)
	app.POST("/login", api.login)
}

// Handlers

func (api *authApi) register(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	std, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		if _, ok := errors.Cause(err).(*core.ConflictError); ok {
			return err
		}
		return errors.Wrap(err, "registering student")
	}

	return ctx.JSON(http.StatusCreated, RegisterResponse{
		Message: "account created",
		ID:      std.ID,
	})
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), data.Email, data.Password, api.svc)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	RegisterResponse struct {
		Message string `json:"message"`
		ID      int    `json:"id"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
