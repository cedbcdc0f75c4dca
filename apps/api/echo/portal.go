package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core/portal"
)

type portalApi struct {
	svc *portal.Service
}

func registerPortalAPI(app *echo.Echo, jwt echo.MiddlewareFunc, deps *Deps) {
	api := portalApi{svc: deps.PortalSvc}

	// the staff directory is public
	app.GET("/staff", api.staff)

	// student-scoped reads sit behind the JWT gate
	ag := app.Group("", jwt)
	ag.GET("/timetable", api.timetable)
	ag.GET("/grades", api.grades)
	ag.GET("/calendar", api.calendar)
}

// Handlers

func (api *portalApi) timetable(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	entries, err := api.svc.Timetable(ctx.Request().Context(), claims.StudentID)
	if err != nil {
		return errors.Wrap(err, "querying timetable")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"timetable": entries})
}

func (api *portalApi) grades(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	grades, err := api.svc.Grades(ctx.Request().Context(), claims.StudentID)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"grades": grades})
}

func (api *portalApi) calendar(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	events, err := api.svc.Calendar(ctx.Request().Context(), claims.StudentID)
	if err != nil {
		return errors.Wrap(err, "querying calendar")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"calendar": events})
}

func (api *portalApi) staff(ctx echo.Context) error {
	staff, err := api.svc.Staff(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying staff directory")
	}
	return ctx.JSON(http.StatusOK, staff)
}
