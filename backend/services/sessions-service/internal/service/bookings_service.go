package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"evzone/backend/libs/request"
	"evzone/backend/services/sessions-service/internal/models"
	"evzone/backend/services/sessions-service/internal/repository"
)

// BookingRepository defines storage contract used by the service.
type BookingRepository interface {
	List(ctx context.Context, filter models.ListFilter, page request.Pagination) ([]models.Booking, error)
	Count(ctx context.Context, filter models.ListFilter) (int, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// BookingsService lists and fetches bookings with the same shape as sessions.
type BookingsService struct {
	repo         BookingRepository
	enforceScope bool
	logger       *zap.Logger
}

// NewBookingsService builds service.
func NewBookingsService(repo BookingRepository, enforceScope bool, logger *zap.Logger) *BookingsService {
	return &BookingsService{repo: repo, enforceScope: enforceScope, logger: logger}
}

// List returns a page of bookings and the total for the same filter.
func (s *BookingsService) List(ctx context.Context, input ListInput) (request.Page[models.Booking], error) {
	if err := request.Validate(input); err != nil {
		return request.Page[models.Booking]{}, err
	}
	filter := input.filter()
	filter.Scope = scopeFilter(ctx, s.enforceScope)

	items, err := s.repo.List(ctx, filter, input.Pagination)
	if err != nil {
		return request.Page[models.Booking]{}, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return request.Page[models.Booking]{}, err
	}
	return request.NewPage(items, input.Pagination, total), nil
}

// Get returns the booking or nil when it does not exist.
func (s *BookingsService) Get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if s.enforceScope && !inTokenScope(ctx, booking.ScopeTarget()) {
		return nil, nil
	}
	return booking, nil
}
