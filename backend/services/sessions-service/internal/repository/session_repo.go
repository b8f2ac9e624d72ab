package repository

import (
	"context"
	"database/sql"
	"errors"

	"evzone/backend/libs/request"
	"evzone/backend/services/sessions-service/internal/models"
)

// ErrSessionNotFound indicates a missing session id.
var ErrSessionNotFound = errors.New("session not found")

const sessionColumns = `
	cs.id, cs.user_id, cs.station_id,
	COALESCE(st.name, ''), COALESCE(st.region, ''), COALESCE(st.org_id, ''),
	cs.status, cs.started_at, cs.ended_at, cs.energy_kwh, cs.created_at, cs.updated_at
`

const sessionFrom = `
	FROM charging_sessions cs
	LEFT JOIN stations st ON st.id = cs.station_id
`

// SessionRepository reads charging sessions.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository returns repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// List returns one page of sessions matching filter, newest first.
func (r *SessionRepository) List(ctx context.Context, filter models.ListFilter, page request.Pagination) ([]models.Session, error) {
	w := buildWhere("cs", filter)
	query := "SELECT " + sessionColumns + sessionFrom + w.SQL() +
		" ORDER BY cs.started_at DESC, cs.id LIMIT " + w.Placeholder(1) + " OFFSET " + w.Placeholder(2)
	args := append(w.Args(), page.Limit(), page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Count returns the number of sessions matching filter. It is a separate round trip
// from List, so the two may disagree if rows change in between.
func (r *SessionRepository) Count(ctx context.Context, filter models.ListFilter) (int, error) {
	w := buildWhere("cs", filter)
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+sessionFrom+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// GetByID fetches a single session.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+sessionColumns+sessionFrom+" WHERE cs.id = $1", id)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (*models.Session, error) {
	var (
		s     models.Session
		ended sql.NullTime
	)
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.StationID,
		&s.StationName,
		&s.Region,
		&s.OrgID,
		&s.Status,
		&s.StartedAt,
		&ended,
		&s.EnergyKWh,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if ended.Valid {
		t := ended.Time
		s.EndedAt = &t
	}
	return &s, nil
}
