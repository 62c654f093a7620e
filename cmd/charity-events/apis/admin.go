package apis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"charity-events-backend/cmd/charity-events/model"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/goforj/godump"
	"github.com/labstack/echo/v4"
)

type IAdminEventRepo interface {
	ListAll(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id int64) (model.Event, error)
	Statistics(ctx context.Context) (model.Statistics, error)
	CreateEvent(ctx context.Context, event model.Event) (int64, error)
	UpdateEvent(ctx context.Context, id int64, event model.Event) error
	DeleteEvent(ctx context.Context, id int64) error
}

type IRegistrationLister interface {
	ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error)
}

type AdminAPI struct {
	eventRepo        IAdminEventRepo
	registrationRepo IRegistrationLister
	validate         *validator.Validate
	debug            bool
}

func NewAdminAPI(eventRepo IAdminEventRepo, registrationRepo IRegistrationLister, debug bool) *AdminAPI {

	return &AdminAPI{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		validate:         validator.New(),
		debug:            debug,
	}
}

func (a *AdminAPI) Setup(g *echo.Group) {
	g.GET("/statistics", a.statistics)
	g.GET("/events", a.listEvents)
	g.POST("/events", a.createEvent)
	g.PUT("/events/:id", a.updateEvent)
	g.DELETE("/events/:id", a.deleteEvent)
	g.GET("/events/:id/registrations/export", a.exportRegistrations)
}

func (a *AdminAPI) statistics(c echo.Context) error {

	ctx := c.Request().Context()

	stats, err := a.eventRepo.Statistics(ctx)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "internal server error",
			},
		)
	}

	return c.JSON(http.StatusOK, stats)
}

func (a *AdminAPI) listEvents(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.eventRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "internal server error",
			},
		)
	}

	return c.JSON(http.StatusOK, events)
}

func (a *AdminAPI) createEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.EventUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.ErrorResponse{
				Error: "invalid request body",
			},
		)
	}

	if err := a.validate.Struct(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.ErrorResponse{
				Error: "name, category, date and location are required",
			},
		)
	}

	if a.debug {
		godump.Dump(req)
	}

	id, err := a.eventRepo.CreateEvent(ctx, req.Event())
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "failed to create event",
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.CreateEventResponse{
			Message: "event created successfully",
			ID:      id,
		},
	)
}

func (a *AdminAPI) updateEvent(c echo.Context) error {

	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(
			http.StatusNotFound,
			model.ErrorResponse{
				Error: "event not found",
			},
		)
	}

	var req model.EventUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.ErrorResponse{
				Error: "invalid request body",
			},
		)
	}

	if err := a.validate.Struct(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.ErrorResponse{
				Error: "name, category, date and location are required",
			},
		)
	}

	err = a.eventRepo.UpdateEvent(ctx, id, req.Event())
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return c.JSON(
				http.StatusNotFound,
				model.ErrorResponse{
					Error: "event not found",
				},
			)
		}
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "failed to update event",
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.MessageResponse{
			Message: "event updated successfully",
		},
	)
}

func (a *AdminAPI) deleteEvent(c echo.Context) error {

	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(
			http.StatusNotFound,
			model.ErrorResponse{
				Error: "event not found",
			},
		)
	}

	err = a.eventRepo.DeleteEvent(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return c.JSON(
				http.StatusNotFound,
				model.ErrorResponse{
					Error: "event not found",
				},
			)
		}
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "failed to delete event",
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.MessageResponse{
			Message: "event deleted successfully",
		},
	)
}

// exportRegistrations streams an event's registrations as CSV.
func (a *AdminAPI) exportRegistrations(c echo.Context) error {

	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(
			http.StatusNotFound,
			model.ErrorResponse{
				Error: "event not found",
			},
		)
	}

	if _, err := a.eventRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return c.JSON(
				http.StatusNotFound,
				model.ErrorResponse{
					Error: "event not found",
				},
			)
		}
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "internal server error",
			},
		)
	}

	regs, err := a.registrationRepo.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "internal server error",
			},
		)
	}

	rows := make([]*model.RegistrationCSV, 0, len(regs))
	for _, reg := range regs {
		row := model.ExportRow(reg)
		rows = append(rows, &row)
	}

	out, err := gocsv.MarshalString(rows)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "internal server error",
			},
		)
	}

	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="event-%d-registrations.csv"`, id),
	)

	return c.Blob(http.StatusOK, "text/csv", []byte(out))
}
