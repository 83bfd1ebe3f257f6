package domain

import "time"

// PlaneRecord is a single plane sighting submitted by a user. Records are
// immutable after creation and removed only when the owning account is
// deleted. OwnerEmail is a by-value reference, not a managed foreign key:
// the store does not enforce referential integrity on delete.
type PlaneRecord struct {
	ID             string    `json:"id"`
	Airport        string    `json:"airport"`
	Airline        string    `json:"airline"`
	PlaneModel     string    `json:"planeModel"`
	Registration   string    `json:"registration"`
	ArrivalDate    time.Time `json:"arrivalDate"`
	DepartureDate  time.Time `json:"departureDate"`
	PlaneImagePath string    `json:"planeImage,omitempty"`
	OwnerEmail     string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// UnknownOwner is substituted for the owner's username when a record's
// owner no longer exists. A missing join target never fails a query.
const UnknownOwner = "Unknown"
