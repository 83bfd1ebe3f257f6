package ports

import (
	"context"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/domain"
)

// PlaneRepository defines persistence operations for plane sighting records.
type PlaneRepository interface {
	// Insert persists a new record and returns its generated id.
	Insert(ctx context.Context, record *domain.PlaneRecord) (string, error)
	// FindByAirport returns records matching airport, and airline when
	// non-empty. Both matches are case-insensitive and exact.
	FindByAirport(ctx context.Context, airport, airline string) ([]*domain.PlaneRecord, error)
	// DistinctAirlines returns the distinct airline names recorded for an
	// airport (case-insensitive airport match).
	DistinctAirlines(ctx context.Context, airport string) ([]string, error)
	// DeleteByOwner removes all records submitted by the given owner and
	// returns how many were deleted.
	DeleteByOwner(ctx context.Context, ownerEmail string) (int64, error)
}
