package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kuuslauk/models"
	"kuuslauk/repositories"

	"github.com/rs/zerolog"
)

const (
	dateLayout = "2006-01-02"
	maxGuests  = 100
)

type ReservationService interface {
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error)
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status string) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
}

type reservationService struct {
	reservations repositories.ReservationRepository
	settings     SettingsService
	notifier     Notifier
	dispatcher   *Dispatcher
	logger       zerolog.Logger
}

func NewReservationService(
	reservations repositories.ReservationRepository,
	settings SettingsService,
	notifier Notifier,
	dispatcher *Dispatcher,
	logger zerolog.Logger,
) ReservationService {
	return &reservationService{
		reservations: reservations,
		settings:     settings,
		notifier:     notifier,
		dispatcher:   dispatcher,
		logger:       logger.With().Str("service", "reservation").Logger(),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	r := &models.Reservation{
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(req.Email),
		Phone:  strings.TrimSpace(req.Phone),
		Date:   strings.TrimSpace(req.Date),
		Time:   strings.TrimSpace(req.Time),
		Guests: 1,
		Menu:   strings.TrimSpace(req.Menu),
		Notes:  req.Notes,
		Status: models.ReservationStatusPending,
	}

	if r.Name == "" || r.Email == "" {
		return nil, models.InvalidInput("Name and email are required")
	}
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		return nil, models.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	if req.Guests.Valid {
		if req.Guests.Value < 1 {
			return nil, models.InvalidInput("Guests must be at least 1")
		}
		if req.Guests.Value > maxGuests {
			return nil, models.InvalidInput(fmt.Sprintf("Guests must be at most %d", maxGuests))
		}
		r.Guests = int(req.Guests.Value)
	}

	if err := s.reservations.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("reservation_id", r.ID).
		Str("date", r.Date).
		Int("guests", r.Guests).
		Msg("reservation created")

	reservation := *r
	s.dispatcher.Go("reservation_received", func(ctx context.Context) error {
		return s.notifier.ReservationReceived(ctx, reservation)
	})

	return r, nil
}

func (s *reservationService) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	return s.reservations.List(ctx)
}

func (s *reservationService) UpdateReservationStatus(ctx context.Context, id int64, status string) (*models.Reservation, error) {
	next := models.ReservationStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, models.ErrInvalidStatus
	}

	current, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == next {
		return current, nil
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, models.ErrInvalidTransition
	}

	r, err := s.reservations.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return nil, err
	}

	reservation := *r
	switch next {
	case models.ReservationStatusConfirmed:
		s.dispatcher.Go("reservation_confirmed", func(ctx context.Context) error {
			return s.notifier.ReservationConfirmed(ctx, reservation, s.settings.Get(ctx))
		})
	case models.ReservationStatusCancelled:
		s.dispatcher.Go("reservation_cancelled", func(ctx context.Context) error {
			return s.notifier.ReservationCancelled(ctx, reservation, s.settings.Get(ctx))
		})
	}

	return r, nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, id int64) error {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !r.Status.IsTerminal() {
		return models.ErrNotDeletable
	}

	if err := s.reservations.Delete(ctx, id, r.Status); err != nil {
		return err
	}

	s.logger.Info().Int64("reservation_id", id).Msg("reservation deleted")
	return nil
}
