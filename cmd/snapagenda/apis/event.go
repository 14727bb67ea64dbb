package apis

import (
	"bytes"
	"context"
	"net/http"
	"snapagenda-backend/cmd/snapagenda/model"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
)

type IEventStore interface {
	SortedEvents(ctx context.Context) []model.Event
	RemoveEvent(ctx context.Context, id string) ([]model.Event, error)
}

type EventAPI struct {
	eventStore IEventStore
}

func NewEventAPI(eventStore IEventStore) *EventAPI {

	return &EventAPI{
		eventStore: eventStore,
	}
}

func (a *EventAPI) Setup(g *echo.Group) {
	g.GET("/events", a.listEvents)
	g.GET("/events/export", a.exportEvents)
	g.DELETE("/event/:id", a.deleteEvent)
}

func (a *EventAPI) listEvents(c echo.Context) error {

	ctx := c.Request().Context()

	events := a.eventStore.SortedEvents(ctx)

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    events,
		},
	)
}

func (a *EventAPI) exportEvents(c echo.Context) error {

	ctx := c.Request().Context()

	rows := model.EventsToCSV(a.eventStore.SortedEvents(ctx))

	var buf bytes.Buffer
	err := gocsv.Marshal(rows, &buf)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="agenda.csv"`)

	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// deleteEvent requires the explicit confirm flag; there is no undo. Removing
// an id that is not in the store is a no-op, not an error.
func (a *EventAPI) deleteEvent(c echo.Context) error {

	ctx := c.Request().Context()

	if c.QueryParam("confirm") != "true" {
		return c.JSON(
			http.StatusConflict,
			model.BaseResponse{
				Message: "deletion requires confirm=true",
			},
		)
	}

	events, err := a.eventStore.RemoveEvent(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    events,
		},
	)
}
