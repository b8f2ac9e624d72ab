package repository

import (
	"context"
	"database/sql"
	"errors"

	"evzone/backend/libs/request"
	"evzone/backend/services/sessions-service/internal/models"
)

// ErrBookingNotFound indicates a missing booking id.
var ErrBookingNotFound = errors.New("booking not found")

const bookingColumns = `
	b.id, b.user_id, b.station_id,
	COALESCE(st.name, ''), COALESCE(st.region, ''), COALESCE(st.org_id, ''),
	b.status, b.starts_at, b.ends_at, b.created_at
`

const bookingFrom = `
	FROM bookings b
	LEFT JOIN stations st ON st.id = b.station_id
`

// BookingRepository reads station bookings.
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository returns repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// List returns one page of bookings matching filter.
func (r *BookingRepository) List(ctx context.Context, filter models.ListFilter, page request.Pagination) ([]models.Booking, error) {
	w := buildWhere("b", filter)
	query := "SELECT " + bookingColumns + bookingFrom + w.SQL() +
		" ORDER BY b.starts_at DESC, b.id LIMIT " + w.Placeholder(1) + " OFFSET " + w.Placeholder(2)
	rows, err := r.db.QueryContext(ctx, query, append(w.Args(), page.Limit(), page.Offset())...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Count returns the number of bookings matching filter.
func (r *BookingRepository) Count(ctx context.Context, filter models.ListFilter) (int, error) {
	w := buildWhere("b", filter)
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+bookingFrom+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// GetByID fetches a single booking.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, "SELECT "+bookingColumns+bookingFrom+" WHERE b.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func scanBooking(row scanner) (*models.Booking, error) {
	var b models.Booking
	if err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.StationID,
		&b.StationName,
		&b.Region,
		&b.OrgID,
		&b.Status,
		&b.StartsAt,
		&b.EndsAt,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
