package apis

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"charity-events-backend/cmd/charity-events/model"

	"github.com/go-playground/validator/v10"
	"github.com/goforj/godump"
	"github.com/labstack/echo/v4"
)

type IEventRepo interface {
	ListActive(ctx context.Context) ([]model.Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]model.Event, error)
	Search(ctx context.Context, date, location, category string) ([]model.Event, error)
	GetByID(ctx context.Context, id int64) (model.Event, error)
	Categories(ctx context.Context) ([]string, error)
}

type IRegistrationRepo interface {
	Register(ctx context.Context, eventID int64, reg model.Registration) (int64, error)
}

// upcomingLimit caps the homepage spotlight listing.
const upcomingLimit = 6

type EventAPI struct {
	eventRepo        IEventRepo
	registrationRepo IRegistrationRepo
	validate         *validator.Validate
	debug            bool
}

func NewEventAPI(eventRepo IEventRepo, registrationRepo IRegistrationRepo, debug bool) *EventAPI {

	return &EventAPI{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		validate:         validator.New(),
		debug:            debug,
	}
}

func (a *EventAPI) Setup(g *echo.Group) {
	g.GET("/events", a.listEvents)
	g.GET("/events/upcoming", a.listUpcoming)
	g.GET("/events/search", a.searchEvents)
	g.GET("/events/:id", a.getEvent)
	g.GET("/categories", a.listCategories)
	g.POST("/events/:id/register", a.register)
}

func (a *EventAPI) listEvents(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.eventRepo.ListActive(ctx)
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

func (a *EventAPI) listUpcoming(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.eventRepo.ListUpcoming(ctx, upcomingLimit)
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

func (a *EventAPI) searchEvents(c echo.Context) error {

	ctx := c.Request().Context()

	events, err := a.eventRepo.Search(
		ctx,
		c.QueryParam("date"),
		c.QueryParam("location"),
		c.QueryParam("category"),
	)
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

func (a *EventAPI) getEvent(c echo.Context) error {

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

	event, err := a.eventRepo.GetByID(ctx, id)
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
				Error: "internal server error",
			},
		)
	}

	return c.JSON(http.StatusOK, event)
}

func (a *EventAPI) listCategories(c echo.Context) error {

	ctx := c.Request().Context()

	categories, err := a.eventRepo.Categories(ctx)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "internal server error",
			},
		)
	}

	return c.JSON(http.StatusOK, categories)
}

// register runs the registration workflow. Validation happens before
// any store access; the repository handles the transactional part.
func (a *EventAPI) register(c echo.Context) error {

	ctx := c.Request().Context()

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(
			http.StatusNotFound,
			model.ErrorResponse{
				Error: "event not found",
			},
		)
	}

	var req model.RegisterRequest
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
				Error: "name and phone are required",
			},
		)
	}

	if a.debug {
		godump.Dump(req)
	}

	reg := model.Registration{
		ParticipantName:     req.Name,
		ParticipantPhone:    req.Phone,
		ParticipantEmail:    req.Email,
		ParticipantAge:      req.Age,
		VolunteerExperience: req.Experience,
		Motivation:          req.Motivation,
		AllowContact:        req.AllowContact,
	}

	registrationID, err := a.registrationRepo.Register(ctx, eventID, reg)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEventNotFound):
			return c.JSON(
				http.StatusNotFound,
				model.ErrorResponse{
					Error: err.Error(),
				},
			)
		case errors.Is(err, model.ErrEventFull),
			errors.Is(err, model.ErrAlreadyRegistered):
			return c.JSON(
				http.StatusBadRequest,
				model.ErrorResponse{
					Error: err.Error(),
				},
			)
		}
		return c.JSON(
			http.StatusInternalServerError,
			model.ErrorResponse{
				Error: "registration failed",
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.RegisterResponse{
			Message:        "registration successful",
			RegistrationID: registrationID,
		},
	)
}
