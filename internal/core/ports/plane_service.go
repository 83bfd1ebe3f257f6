package ports

import (
	"context"
	"time"
)

// PlaneInput carries all data needed to record a sighting.
type PlaneInput struct {
	Airport      string
	Airline      string
	PlaneModel   string
	Registration string
	// ArrivalDate and DepartureDate default to the submission time when zero.
	ArrivalDate   time.Time
	DepartureDate time.Time
	// ImagePath is the public path returned by the upload store, empty when
	// no image was attached.
	ImagePath string
}

// PlaneView is a sighting record enriched with the submitting user's display
// name, resolved at read time.
type PlaneView struct {
	ID             string    `json:"id"`
	Airport        string    `json:"airport"`
	Airline        string    `json:"airline"`
	PlaneModel     string    `json:"planeModel"`
	Registration   string    `json:"registration"`
	ArrivalDate    time.Time `json:"arrivalDate"`
	DepartureDate  time.Time `json:"departureDate"`
	PlaneImagePath string    `json:"planeImage,omitempty"`
	Username       string    `json:"username"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Profile is the account view returned to its owner.
type Profile struct {
	Username         string
	ProfileImagePath string
	NumberOfPlanes   int64
}

// PlaneService defines the record, query and account-maintenance use cases.
type PlaneService interface {
	// AddPlane records a sighting and schedules the owner's plane-counter
	// increment. Returns the new record id.
	AddPlane(ctx context.Context, ownerEmail string, in PlaneInput) (string, error)
	// ListPlanes returns sightings for an airport (and airline, when given),
	// each resolved to the owner's username. Never errors on an empty match.
	ListPlanes(ctx context.Context, airport, airline string) ([]PlaneView, error)
	ListAirlines(ctx context.Context, airport string) ([]string, error)
	Profile(ctx context.Context, email string) (*Profile, error)
	SetProfileImage(ctx context.Context, email, path string) error
	// DeleteAccount removes the owner's sightings first, then the account.
	// The two deletes are sequential, not transactional.
	DeleteAccount(ctx context.Context, email string) error
}
