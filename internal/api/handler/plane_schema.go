package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// addPlaneRequest is bound from the multipart form of POST /api/add-plane.
// The optional planeImage file part is handled separately.
type addPlaneRequest struct {
	Airport       string `form:"airport"       validate:"required"`
	Airline       string `form:"airline"       validate:"required"`
	PlaneModel    string `form:"planeModel"    validate:"required"`
	Registration  string `form:"registration"  validate:"required"`
	ArrivalDate   string `form:"arrivalDate"`
	DepartureDate string `form:"departureDate"`
}

// parseDate accepts an RFC 3339 timestamp or an empty string (meaning "now",
// applied downstream).
func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, field+" must be an RFC 3339 timestamp")
	}
	return t, nil
}

type addPlaneResponse struct {
	Message string `json:"message"`
	PlaneID string `json:"planeId"`
}

type uploadResponse struct {
	ProfileImage string `json:"profileImage"`
}

type profileResponse struct {
	Username       string `json:"username"`
	ProfileImage   string `json:"profileImage"`
	NumberOfPlanes int64  `json:"numberOfPlanes"`
}

type messageResponse struct {
	Message string `json:"message"`
}
