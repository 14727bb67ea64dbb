package apis

import (
	"context"
	"errors"
	"io"
	"net/http"
	"snapagenda-backend/cmd/snapagenda/model"
	"snapagenda-backend/cmd/snapagenda/session"

	"github.com/goforj/godump"
	"github.com/labstack/echo/v4"
)

type ISessionController interface {
	Snapshot() session.State
	BeginUpload() (session.State, error)
	SubmitImage(ctx context.Context, image []byte, mimeType string) (session.State, string, error)
	SkipUpload() (session.State, error)
	EditEvent(ctx context.Context, id string) (session.State, error)
	Cancel() session.State
	Confirm(ctx context.Context, e model.Event) (session.State, error)
}

type SessionAPI struct {
	controller ISessionController
}

func NewSessionAPI(controller ISessionController) *SessionAPI {

	return &SessionAPI{
		controller: controller,
	}
}

func (a *SessionAPI) Setup(g *echo.Group) {
	g.GET("/session", a.getSession)
	g.POST("/session/upload", a.beginUpload)
	g.POST("/session/image", a.submitImage)
	g.POST("/session/skip", a.skipUpload)
	g.POST("/session/edit/:id", a.editEvent)
	g.POST("/session/cancel", a.cancel)
	g.POST("/session/back", a.cancel)
	g.POST("/session/confirm", a.confirm)
}

func (a *SessionAPI) getSession(c echo.Context) error {

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    a.controller.Snapshot(),
		},
	)
}

func (a *SessionAPI) beginUpload(c echo.Context) error {

	state, err := a.controller.BeginUpload()
	if err != nil {
		return a.transitionError(c, state, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    state,
		},
	)
}

func (a *SessionAPI) submitImage(c echo.Context) error {

	ctx := c.Request().Context()

	imagefile, err := c.FormFile("image")
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	f, err := imagefile.Open()
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	state, notice, err := a.controller.SubmitImage(ctx, image, imagefile.Header.Get("Content-Type"))
	if err != nil {
		return a.transitionError(c, state, err)
	}

	godump.Dump(state.Draft)

	message := "success"
	if notice != "" {
		message = notice
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: message,
			Data:    state,
		},
	)
}

func (a *SessionAPI) skipUpload(c echo.Context) error {

	state, err := a.controller.SkipUpload()
	if err != nil {
		return a.transitionError(c, state, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    state,
		},
	)
}

func (a *SessionAPI) editEvent(c echo.Context) error {

	ctx := c.Request().Context()

	state, err := a.controller.EditEvent(ctx, c.Param("id"))
	if err != nil {
		return a.transitionError(c, state, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    state,
		},
	)
}

func (a *SessionAPI) cancel(c echo.Context) error {

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    a.controller.Cancel(),
		},
	)
}

func (a *SessionAPI) confirm(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.EventSaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	state, err := a.controller.Confirm(ctx, req.ToEvent())
	if err != nil {
		return a.transitionError(c, state, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    state,
		},
	)
}

// transitionError maps controller errors to HTTP statuses. The state is
// returned alongside so the caller can re-render where it actually is.
func (a *SessionAPI) transitionError(c echo.Context, state session.State, err error) error {

	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, session.ErrBusy),
		errors.Is(err, session.ErrConflictingState),
		errors.Is(err, session.ErrNoDraft):
		status = http.StatusConflict
	case errors.Is(err, session.ErrEventNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrMissingTitle),
		errors.Is(err, model.ErrMissingDate):
		status = http.StatusBadRequest
	}

	return c.JSON(
		status,
		model.BaseResponse{
			Message: err.Error(),
			Data:    state,
		},
	)
}
