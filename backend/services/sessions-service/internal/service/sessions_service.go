package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"evzone/backend/libs/access"
	"evzone/backend/libs/auth"
	"evzone/backend/libs/request"
	"evzone/backend/services/sessions-service/internal/models"
	"evzone/backend/services/sessions-service/internal/repository"
)

// Status values recorded for charging sessions.
const (
	SessionStatusActive    = "Active"
	SessionStatusCompleted = "Completed"
	SessionStatusFailed    = "Failed"
)

// SessionRepository defines storage contract used by the service.
type SessionRepository interface {
	List(ctx context.Context, filter models.ListFilter, page request.Pagination) ([]models.Session, error)
	Count(ctx context.Context, filter models.ListFilter) (int, error)
	GetByID(ctx context.Context, id string) (*models.Session, error)
}

// ListInput carries the validated listing parameters.
type ListInput struct {
	Query     string `query:"q" validate:"max=128"`
	StationID string `query:"stationId" validate:"max=64"`
	UserID    string `query:"userId" validate:"max=64"`
	Status    string `query:"status" validate:"max=32"`
	request.Pagination
}

func (in ListInput) filter() models.ListFilter {
	return models.ListFilter{
		Query:     strings.TrimSpace(in.Query),
		StationID: in.StationID,
		UserID:    in.UserID,
		Status:    in.Status,
	}
}

// SessionsService lists and fetches charging sessions.
type SessionsService struct {
	repo         SessionRepository
	enforceScope bool
	logger       *zap.Logger
}

// NewSessionsService builds service. enforceScope adds the token scope to every filter.
func NewSessionsService(repo SessionRepository, enforceScope bool, logger *zap.Logger) *SessionsService {
	return &SessionsService{
		repo:         repo,
		enforceScope: enforceScope,
		logger:       logger,
	}
}

// List returns a page of sessions and the total count for the same filter.
func (s *SessionsService) List(ctx context.Context, input ListInput) (request.Page[models.Session], error) {
	if err := request.Validate(input); err != nil {
		return request.Page[models.Session]{}, err
	}
	filter := input.filter()
	filter.Scope = scopeFilter(ctx, s.enforceScope)

	items, err := s.repo.List(ctx, filter, input.Pagination)
	if err != nil {
		return request.Page[models.Session]{}, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return request.Page[models.Session]{}, err
	}

	s.logger.Debug("sessions listed",
		zap.Int("page", input.Page),
		zap.Int("returned", len(items)),
		zap.Int("total", total),
	)
	return request.NewPage(items, input.Pagination, total), nil
}

// Get returns the session or nil when it does not exist.
func (s *SessionsService) Get(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if s.enforceScope && !inTokenScope(ctx, session.ScopeTarget()) {
		return nil, nil
	}
	return session, nil
}

// scopeFilter derives the SQL scope restriction from the caller's token.
func scopeFilter(ctx context.Context, enforce bool) *models.ScopeFilter {
	if !enforce {
		return nil
	}
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok || claims.Scope == nil || claims.Role == access.RoleSuperAdmin {
		return nil
	}
	scope := claims.Scope
	out := &models.ScopeFilter{}
	if scope.Region != "" && scope.Region != access.All {
		out.Regions = access.RegionAliases(scope.Region)
	}
	if scope.OrgID != access.All {
		out.OrgID = scope.OrgID
	}
	if scope.StationID != access.All {
		out.StationID = scope.StationID
	}
	if len(out.Regions) == 0 && out.OrgID == "" && out.StationID == "" {
		return nil
	}
	return out
}

func inTokenScope(ctx context.Context, target access.Target) bool {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok || claims.Scope == nil || claims.Role == access.RoleSuperAdmin {
		return true
	}
	return access.IsInScope(*claims.Scope, target)
}
