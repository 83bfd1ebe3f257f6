package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/domain"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/ports"
)

// PlaneCounter abstracts the asynchronous plane-counter updater. The counter
// is a display hint: increments settle eventually, not within the request.
type PlaneCounter interface {
	Enqueue(ownerEmail string)
}

// PlaneService implements sighting submission, the public airport queries and
// account maintenance.
type PlaneService struct {
	planes  ports.PlaneRepository
	users   ports.UserRepository
	counter PlaneCounter
	log     zerolog.Logger
}

func NewPlaneService(planes ports.PlaneRepository, users ports.UserRepository, counter PlaneCounter, log zerolog.Logger) *PlaneService {
	return &PlaneService{planes: planes, users: users, counter: counter, log: log}
}

func (s *PlaneService) AddPlane(ctx context.Context, ownerEmail string, in ports.PlaneInput) (string, error) {
	if in.Airport == "" || in.Airline == "" || in.PlaneModel == "" || in.Registration == "" {
		return "", domain.ErrValidation
	}

	now := time.Now().UTC()
	record := &domain.PlaneRecord{
		Airport:        in.Airport,
		Airline:        in.Airline,
		PlaneModel:     in.PlaneModel,
		Registration:   in.Registration,
		ArrivalDate:    in.ArrivalDate,
		DepartureDate:  in.DepartureDate,
		PlaneImagePath: in.ImagePath,
		OwnerEmail:     ownerEmail,
		CreatedAt:      now,
	}
	if record.ArrivalDate.IsZero() {
		record.ArrivalDate = now
	}
	if record.DepartureDate.IsZero() {
		record.DepartureDate = now
	}

	id, err := s.planes.Insert(ctx, record)
	if err != nil {
		s.log.Error().Err(err).Str("owner", ownerEmail).Msg("failed to insert plane record")
		return "", err
	}

	s.counter.Enqueue(ownerEmail)

	s.log.Info().
		Str("id", id).
		Str("airport", record.Airport).
		Str("airline", record.Airline).
		Str("owner", ownerEmail).
		Msg("plane record added")

	return id, nil
}

// ListPlanes resolves each record's owner email to a username. A missing
// owner yields the "Unknown" sentinel instead of failing the batch.
func (s *PlaneService) ListPlanes(ctx context.Context, airport, airline string) ([]ports.PlaneView, error) {
	records, err := s.planes.FindByAirport(ctx, airport, airline)
	if err != nil {
		return nil, err
	}

	usernames := make(map[string]string, len(records))
	views := make([]ports.PlaneView, 0, len(records))
	for _, r := range records {
		username, seen := usernames[r.OwnerEmail]
		if !seen {
			username = s.resolveUsername(ctx, r.OwnerEmail)
			usernames[r.OwnerEmail] = username
		}
		views = append(views, ports.PlaneView{
			ID:             r.ID,
			Airport:        r.Airport,
			Airline:        r.Airline,
			PlaneModel:     r.PlaneModel,
			Registration:   r.Registration,
			ArrivalDate:    r.ArrivalDate,
			DepartureDate:  r.DepartureDate,
			PlaneImagePath: r.PlaneImagePath,
			Username:       username,
			CreatedAt:      r.CreatedAt,
		})
	}
	return views, nil
}

func (s *PlaneService) resolveUsername(ctx context.Context, email string) string {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Err(err).Str("owner", email).Msg("owner lookup failed")
		}
		return domain.UnknownOwner
	}
	return user.Username
}

func (s *PlaneService) ListAirlines(ctx context.Context, airport string) ([]string, error) {
	airlines, err := s.planes.DistinctAirlines(ctx, airport)
	if err != nil {
		return nil, err
	}
	if airlines == nil {
		airlines = []string{}
	}
	return airlines, nil
}

func (s *PlaneService) Profile(ctx context.Context, email string) (*ports.Profile, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &ports.Profile{
		Username:         user.Username,
		ProfileImagePath: user.ProfileImagePath,
		NumberOfPlanes:   user.NumberOfPlanes,
	}, nil
}

func (s *PlaneService) SetProfileImage(ctx context.Context, email, path string) error {
	return s.users.SetProfileImage(ctx, email, path)
}

// DeleteAccount cascades: the owner's records are deleted first, then the
// account. If the process dies in between, the leftover empty account is an
// accepted degraded state, not corruption.
func (s *PlaneService) DeleteAccount(ctx context.Context, email string) error {
	deleted, err := s.planes.DeleteByOwner(ctx, email)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, email); err != nil {
		return err
	}

	s.log.Info().Str("email", email).Int64("planes_deleted", deleted).Msg("account deleted")
	return nil
}
