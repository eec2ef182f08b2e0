package domain

// DistributionEntry es una celda de un desglose por categoria.
type DistributionEntry struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Distribution mapea categoria -> conteo y porcentaje del total.
// Invariante: los porcentajes de una distribucion no vacia suman exactamente 100.
type Distribution map[string]DistributionEntry

// --- Patrones temporales ---

// BookingTimePatterns describe cuando reserva el usuario.
type BookingTimePatterns struct {
	PreferredDay     string       `json:"preferred_day"`
	PreferredTime    string       `json:"preferred_time"`
	DayDistribution  Distribution `json:"day_distribution"`
	TimeDistribution Distribution `json:"time_distribution"`
}

// BrowsingPattern describe cuando y cuanto navega.
type BrowsingPattern struct {
	PeakHourRange          string       `json:"peak_hour_range"`
	HourDistribution       Distribution `json:"hour_distribution"`
	AvgSessionDurationMins float64      `json:"avg_session_duration_mins"`
}

// SeasonalPreference describe en que estaciones busca viajar.
type SeasonalPreference struct {
	PreferredSeason    string       `json:"preferred_season"`
	SeasonDistribution Distribution `json:"season_distribution"`
}

// PlanningHorizon describe con cuanta anticipacion reserva.
type PlanningHorizon struct {
	AvgDaysInAdvance int    `json:"avg_days_in_advance"`
	MinDaysInAdvance int    `json:"min_days_in_advance"`
	MaxDaysInAdvance int    `json:"max_days_in_advance"`
	PlanningStyle    string `json:"planning_style"`
}

// TimePatternReport agrupa los cuatro sub-analisis temporales.
// Cada campo es nil cuando falto el insumo correspondiente.
type TimePatternReport struct {
	BookingPatterns    *BookingTimePatterns `json:"booking_patterns,omitempty"`
	BrowsingPattern    *BrowsingPattern     `json:"browsing_pattern,omitempty"`
	SeasonalPreference *SeasonalPreference  `json:"seasonal_preference,omitempty"`
	PlanningHorizon    *PlanningHorizon     `json:"planning_horizon,omitempty"`
}

// --- Micro-interacciones ---

type HoverMetrics struct {
	AvgHoverSeconds       float64      `json:"avg_hover_seconds"`
	MostViewedElementType string       `json:"most_viewed_element_type"`
	TypeBreakdown         Distribution `json:"type_breakdown"`
}

type ScrollMetrics struct {
	AvgDepthPercent float64 `json:"avg_depth_percent"`
	AvgSpeedPxPerS  float64 `json:"avg_speed_px_per_s"`
	Behavior        string  `json:"behavior"`
}

type ImageEngagement struct {
	AvgViewSeconds  float64 `json:"avg_view_seconds"`
	UniqueImages    int     `json:"unique_images"`
	EngagementLevel string  `json:"engagement_level"`
}

type PriceSensitivity struct {
	ElasticityPercent float64 `json:"elasticity_percent"`
	Sensitivity       string  `json:"sensitivity"`
	AvgMinPrice       float64 `json:"avg_min_price"`
	AvgMaxPrice       float64 `json:"avg_max_price"`
}

type MicroInteractionReport struct {
	Hover            *HoverMetrics     `json:"hover,omitempty"`
	Scroll           *ScrollMetrics    `json:"scroll,omitempty"`
	ImageEngagement  *ImageEngagement  `json:"image_engagement,omitempty"`
	PriceSensitivity *PriceSensitivity `json:"price_sensitivity,omitempty"`
}

// --- Patrones de decision ---

type ImpulsivityMetrics struct {
	Score                int     `json:"score"`
	Category             string  `json:"category"`
	AvgDecisionHours     float64 `json:"avg_decision_hours"`
	QuickDecisionPercent float64 `json:"quick_decision_percent"`
}

type PriceQualityMetrics struct {
	Score            int    `json:"score"`
	Preference       string `json:"preference"`
	QualityChoices   int    `json:"quality_choices"`
	PriceChoices     int    `json:"price_choices"`
	ComparedBookings int    `json:"compared_bookings"`
}

type UniquenessMetrics struct {
	Score    int    `json:"score"`
	Category string `json:"category"`
}

type RiskToleranceMetrics struct {
	Score    int    `json:"score"`
	Category string `json:"category"`
}

type DecisionPatternReport struct {
	Impulsivity   *ImpulsivityMetrics   `json:"impulsivity,omitempty"`
	PriceQuality  *PriceQualityMetrics  `json:"price_quality,omitempty"`
	Uniqueness    *UniquenessMetrics    `json:"uniqueness,omitempty"`
	RiskTolerance *RiskToleranceMetrics `json:"risk_tolerance,omitempty"`
}

// BehavioralProfile es el perfil compuesto que consume el clasificador.
// Siempre es estructuralmente completo: los sub-reportes ausentes van en nil.
type BehavioralProfile struct {
	TimePatterns      TimePatternReport      `json:"time_patterns"`
	MicroInteractions MicroInteractionReport `json:"micro_interactions"`
	DecisionPatterns  DecisionPatternReport  `json:"decision_patterns"`
}
