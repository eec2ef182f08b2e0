package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"travel-persona/internal/domain"
)

// EventRepository entrega el historial conductual crudo de un usuario.
// Las fechas salen como texto: el motor decide que registros son legibles.
type EventRepository interface {
	LoadEventLog(ctx context.Context, userID string) (domain.EventLog, error)
}

type PgEventRepository struct {
	pool *pgxpool.Pool
}

func NewPgEventRepository(pool *pgxpool.Pool) *PgEventRepository {
	return &PgEventRepository{pool: pool}
}

// LoadEventLog junta las ocho series de eventos de un usuario en un solo log.
// Una serie vacia es normal (usuario nuevo); no es error.
func (r *PgEventRepository) LoadEventLog(ctx context.Context, userID string) (domain.EventLog, error) {
	var log domain.EventLog
	var err error

	if log.Bookings, err = r.bookings(ctx, userID); err != nil {
		return domain.EventLog{}, fmt.Errorf("load bookings: %w", err)
	}
	if log.Sessions, err = r.sessions(ctx, userID); err != nil {
		return domain.EventLog{}, fmt.Errorf("load sessions: %w", err)
	}
	if log.Searches, err = r.searches(ctx, userID); err != nil {
		return domain.EventLog{}, fmt.Errorf("load searches: %w", err)
	}
	if log.Hovers, err = r.hovers(ctx, userID); err != nil {
		return domain.EventLog{}, fmt.Errorf("load hovers: %w", err)
	}
	if log.Scrolls, err = r.scrolls(ctx, userID); err != nil {
		return domain.EventLog{}, fmt.Errorf("load scrolls: %w", err)
	}
	if log.ImageViews, err = r.imageViews(ctx, userID); err != nil {
		return domain.EventLog{}, fmt.Errorf("load image views: %w", err)
	}
	if log.PriceFilters, err = r.priceFilters(ctx, userID); err != nil {
		return domain.EventLog{}, fmt.Errorf("load price filters: %w", err)
	}
	if log.ViewedProperties, err = r.viewedProperties(ctx, userID); err != nil {
		return domain.EventLog{}, fmt.Errorf("load viewed properties: %w", err)
	}

	return log, nil
}

func (r *PgEventRepository) bookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	const query = `
		SELECT id, user_id, property_id, booking_date, check_in, check_out,
		       price, rating, property_type, destination
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.PropertyID, &b.BookingDate, &b.CheckIn, &b.CheckOut,
			&b.Price, &b.Rating, &b.PropertyType, &b.Destination,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PgEventRepository) sessions(ctx context.Context, userID string) ([]domain.BrowsingSession, error) {
	const query = `
		SELECT id, user_id, started_at, COALESCE(ended_at, '')
		FROM browsing_sessions
		WHERE user_id = $1
		ORDER BY started_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BrowsingSession
	for rows.Next() {
		var s domain.BrowsingSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartedAt, &s.EndedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PgEventRepository) searches(ctx context.Context, userID string) ([]domain.SearchEvent, error) {
	const query = `
		SELECT id, user_id, date, COALESCE(property_id, ''), COALESCE(search_term, '')
		FROM search_events
		WHERE user_id = $1
		ORDER BY date
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SearchEvent
	for rows.Next() {
		var s domain.SearchEvent
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.PropertyID, &s.SearchTerm); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PgEventRepository) hovers(ctx context.Context, userID string) ([]domain.HoverEvent, error) {
	const query = `
		SELECT timestamp, element_type, duration_seconds
		FROM hover_events
		WHERE user_id = $1
		ORDER BY timestamp
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HoverEvent
	for rows.Next() {
		var h domain.HoverEvent
		if err := rows.Scan(&h.Timestamp, &h.ElementType, &h.DurationSeconds); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *PgEventRepository) scrolls(ctx context.Context, userID string) ([]domain.ScrollEvent, error) {
	const query = `
		SELECT timestamp, depth_percent, speed_px_per_s
		FROM scroll_events
		WHERE user_id = $1
		ORDER BY timestamp
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScrollEvent
	for rows.Next() {
		var s domain.ScrollEvent
		if err := rows.Scan(&s.Timestamp, &s.DepthPercent, &s.SpeedPxPerS); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PgEventRepository) imageViews(ctx context.Context, userID string) ([]domain.ImageViewEvent, error) {
	const query = `
		SELECT timestamp, image_id, duration_seconds
		FROM image_view_events
		WHERE user_id = $1
		ORDER BY timestamp
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ImageViewEvent
	for rows.Next() {
		var v domain.ImageViewEvent
		if err := rows.Scan(&v.Timestamp, &v.ImageID, &v.DurationSeconds); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PgEventRepository) priceFilters(ctx context.Context, userID string) ([]domain.PriceFilterEvent, error) {
	const query = `
		SELECT timestamp, min_price, max_price
		FROM price_filter_events
		WHERE user_id = $1
		ORDER BY timestamp
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PriceFilterEvent
	for rows.Next() {
		var f domain.PriceFilterEvent
		if err := rows.Scan(&f.Timestamp, &f.MinPrice, &f.MaxPrice); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PgEventRepository) viewedProperties(ctx context.Context, userID string) ([]domain.ViewedProperty, error) {
	const query = `
		SELECT property_id, user_id, viewed_at, price, rating, property_type, destination
		FROM viewed_properties
		WHERE user_id = $1
		ORDER BY viewed_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ViewedProperty
	for rows.Next() {
		var v domain.ViewedProperty
		if err := rows.Scan(&v.PropertyID, &v.UserID, &v.ViewedAt, &v.Price, &v.Rating, &v.PropertyType, &v.Destination); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
