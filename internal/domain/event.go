package domain

// Registros crudos de comportamiento tal como llegan del log de eventos.
// Las fechas viajan como strings (formato de ingesta); el motor las parsea
// y descarta el registro si no son legibles, nunca falla completo.

type Booking struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	PropertyID   string  `json:"property_id"`
	BookingDate  string  `json:"booking_date"`
	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	PropertyType string  `json:"property_type"`
	Destination  string  `json:"destination"`
}

type BrowsingSession struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at,omitempty"`
}

type SearchEvent struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Date       string `json:"date"`
	PropertyID string `json:"property_id,omitempty"`
	SearchTerm string `json:"search_term,omitempty"`
}

type HoverEvent struct {
	Timestamp       string  `json:"timestamp"`
	ElementType     string  `json:"element_type"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type ScrollEvent struct {
	Timestamp    string   `json:"timestamp"`
	DepthPercent *float64 `json:"depth_percent,omitempty"`
	SpeedPxPerS  *float64 `json:"speed_px_per_s,omitempty"`
}

type ImageViewEvent struct {
	Timestamp       string  `json:"timestamp"`
	ImageID         string  `json:"image_id"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type PriceFilterEvent struct {
	Timestamp string  `json:"timestamp"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
}

type ViewedProperty struct {
	PropertyID   string  `json:"property_id"`
	UserID       string  `json:"user_id"`
	ViewedAt     string  `json:"viewed_at"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	PropertyType string  `json:"property_type"`
	Destination  string  `json:"destination"`
}

// Activity agrupa los eventos con dimension temporal (entrada del extractor de patrones de tiempo).
type Activity struct {
	Bookings []Booking         `json:"bookings,omitempty"`
	Sessions []BrowsingSession `json:"sessions,omitempty"`
	Searches []SearchEvent     `json:"searches,omitempty"`
}

// Interactions agrupa la telemetria fina de UI (entrada del extractor de micro-interacciones).
type Interactions struct {
	Hovers       []HoverEvent       `json:"hovers,omitempty"`
	Scrolls      []ScrollEvent      `json:"scrolls,omitempty"`
	ImageViews   []ImageViewEvent   `json:"image_views,omitempty"`
	PriceFilters []PriceFilterEvent `json:"price_filters,omitempty"`
}

// Choices agrupa las decisiones observables (entrada del extractor de patrones de decision).
type Choices struct {
	Bookings         []Booking        `json:"bookings,omitempty"`
	Searches         []SearchEvent    `json:"searches,omitempty"`
	ViewedProperties []ViewedProperty `json:"viewed_properties,omitempty"`
}

// EventLog es todo el historial conductual de un usuario, tal como lo entrega el repositorio.
// Es de solo lectura para el motor; el caller conserva la propiedad.
type EventLog struct {
	Bookings         []Booking          `json:"bookings"`
	Sessions         []BrowsingSession  `json:"sessions"`
	Searches         []SearchEvent      `json:"searches"`
	Hovers           []HoverEvent       `json:"hovers"`
	Scrolls          []ScrollEvent      `json:"scrolls"`
	ImageViews       []ImageViewEvent   `json:"image_views"`
	PriceFilters     []PriceFilterEvent `json:"price_filters"`
	ViewedProperties []ViewedProperty   `json:"viewed_properties"`
}

// Activity devuelve la vista temporal del log.
func (l EventLog) Activity() Activity {
	return Activity{Bookings: l.Bookings, Sessions: l.Sessions, Searches: l.Searches}
}

// Interactions devuelve la vista de micro-interacciones del log.
func (l EventLog) Interactions() Interactions {
	return Interactions{Hovers: l.Hovers, Scrolls: l.Scrolls, ImageViews: l.ImageViews, PriceFilters: l.PriceFilters}
}

// Choices devuelve la vista de decisiones del log.
func (l EventLog) Choices() Choices {
	return Choices{Bookings: l.Bookings, Searches: l.Searches, ViewedProperties: l.ViewedProperties}
}
