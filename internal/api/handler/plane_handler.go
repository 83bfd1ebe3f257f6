package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/api/metrics"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/ports"
)

// PlaneHandler handles sighting submission and the public airport queries.
type PlaneHandler struct {
	service ports.PlaneService
	files   FileStore
}

func NewPlaneHandler(service ports.PlaneService, files FileStore) *PlaneHandler {
	return &PlaneHandler{service: service, files: files}
}

// Add handles POST /api/add-plane — records a sighting for the caller.
//
// @Summary      Record a plane sighting
// @Tags         planes
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        airport       formData  string  true   "Airport name or code"
// @Param        airline       formData  string  true   "Airline name"
// @Param        planeModel    formData  string  true   "Plane model"
// @Param        registration  formData  string  true   "Registration mark"
// @Param        planeImage    formData  file    false  "Sighting photo"
// @Success      201  {object}  addPlaneResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/add-plane [post]
func (h *PlaneHandler) Add(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req addPlaneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	arrival, err := parseDate(req.ArrivalDate, "arrivalDate")
	if err != nil {
		return err
	}
	departure, err := parseDate(req.DepartureDate, "departureDate")
	if err != nil {
		return err
	}

	imagePath, err := formUpload(c, h.files, "planeImage", false)
	if err != nil {
		return err
	}
	if imagePath != "" {
		metrics.UploadsTotal.WithLabelValues("plane").Inc()
	}

	id, err := h.service.AddPlane(c.Request().Context(), email, ports.PlaneInput{
		Airport:       req.Airport,
		Airline:       req.Airline,
		PlaneModel:    req.PlaneModel,
		Registration:  req.Registration,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		ImagePath:     imagePath,
	})
	if err != nil {
		return err
	}

	metrics.PlanesCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, addPlaneResponse{
		Message: "plane added",
		PlaneID: id,
	})
}

// List handles GET /api/planes/:airport and /api/planes/:airport/:airline.
//
// @Summary      List sightings for an airport
// @Tags         planes
// @Produce      json
// @Param        airport  path  string  true   "Airport (case-insensitive)"
// @Param        airline  path  string  false  "Airline (case-insensitive)"
// @Success      200  {array}  ports.PlaneView
// @Router       /api/planes/{airport} [get]
func (h *PlaneHandler) List(c echo.Context) error {
	views, err := h.service.ListPlanes(c.Request().Context(), c.Param("airport"), c.Param("airline"))
	if err != nil {
		return err
	}
	if views == nil {
		views = []ports.PlaneView{}
	}
	return c.JSON(http.StatusOK, views)
}

// Airlines handles GET /api/airlines/:airport.
//
// @Summary      List distinct airlines seen at an airport
// @Tags         planes
// @Produce      json
// @Param        airport  path  string  true  "Airport (case-insensitive)"
// @Success      200  {array}  string
// @Router       /api/airlines/{airport} [get]
func (h *PlaneHandler) Airlines(c echo.Context) error {
	airlines, err := h.service.ListAirlines(c.Request().Context(), c.Param("airport"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, airlines)
}
