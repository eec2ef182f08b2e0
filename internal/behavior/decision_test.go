package behavior

import (
	"testing"

	"travel-persona/internal/domain"
)

func TestExtractDecisionPatterns_NoBookingsReturnsEmptyReport(t *testing.T) {
	report := ExtractDecisionPatterns(domain.Choices{
		Searches: []domain.SearchEvent{{Date: "2024-01-01", SearchTerm: "beach"}},
	})

	if report.Impulsivity != nil || report.PriceQuality != nil || report.Uniqueness != nil || report.RiskTolerance != nil {
		t.Fatalf("expected all sub-reports nil without bookings, got %+v", report)
	}
}

func TestImpulsivity_QuickDecisionScoresHigh(t *testing.T) {
	report := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{
			{PropertyID: "p1", BookingDate: "2024-03-10T12:30"},
		},
		Searches: []domain.SearchEvent{
			{PropertyID: "p1", Date: "2024-03-10T12:00"},
		},
	})

	imp := report.Impulsivity
	if imp == nil {
		t.Fatalf("expected impulsivity metrics")
	}
	// 30 minutos de decision: promedio ~0.5h, 100% de decisiones rapidas.
	if imp.Category != ImpulsivityHigh {
		t.Fatalf("expected %q, got %q (score=%d)", ImpulsivityHigh, imp.Category, imp.Score)
	}
	if imp.QuickDecisionPercent != 100 {
		t.Fatalf("expected 100%% quick decisions, got %v", imp.QuickDecisionPercent)
	}
}

func TestImpulsivity_UnmatchedBookingsCountInRateDenominator(t *testing.T) {
	report := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{
			{PropertyID: "p1", BookingDate: "2024-03-10T12:30"},
			{PropertyID: "p2", BookingDate: "2024-06-01T09:00"}, // sin busqueda relacionada
		},
		Searches: []domain.SearchEvent{
			{PropertyID: "p1", Date: "2024-03-10T12:00"},
		},
	})

	imp := report.Impulsivity
	if imp == nil {
		t.Fatalf("expected impulsivity metrics")
	}
	if imp.QuickDecisionPercent != 50 {
		t.Fatalf("expected quick rate over all bookings (50%%), got %v", imp.QuickDecisionPercent)
	}
	if imp.AvgDecisionHours != 0.5 {
		t.Fatalf("expected decision average only over matched bookings (0.5h), got %v", imp.AvgDecisionHours)
	}
}

func TestImpulsivity_NoRelatedSearchesYieldsNoReport(t *testing.T) {
	// Reservas sin ninguna busqueda correlacionada: no hay evidencia de velocidad
	// de decision, asi que no debe salir un puntaje (y menos uno maximo).
	report := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{
			{PropertyID: "p1", BookingDate: "2024-03-10T12:30"},
			{PropertyID: "p2", BookingDate: "2024-06-01T09:00"},
		},
		Searches: []domain.SearchEvent{
			{PropertyID: "p9", Date: "2023-11-01T08:00"}, // lejos de ambas reservas
		},
	})

	if report.Impulsivity != nil {
		t.Fatalf("expected nil impulsivity without related searches, got %+v", report.Impulsivity)
	}
}

func TestImpulsivity_RelatedSearchByTimeWindow(t *testing.T) {
	report := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{
			{PropertyID: "p1", BookingDate: "2024-03-10T12:00"},
		},
		Searches: []domain.SearchEvent{
			// Otro property, pero dentro de la ventana de 24h: cuenta como relacionada.
			{PropertyID: "p9", Date: "2024-03-10T02:00"},
			// Fuera de ventana y otro property: no cuenta.
			{PropertyID: "p9", Date: "2024-03-01T02:00"},
		},
	})

	imp := report.Impulsivity
	if imp == nil {
		t.Fatalf("expected impulsivity metrics")
	}
	if imp.AvgDecisionHours != 10 {
		t.Fatalf("expected 10h decision time, got %v", imp.AvgDecisionHours)
	}
}

func TestPriceQuality_BothAboveMeanCountsAsQuality(t *testing.T) {
	report := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{
			{BookingDate: "2024-03-10", Price: 300, Rating: 4.8},
		},
		ViewedProperties: []domain.ViewedProperty{
			{ViewedAt: "2024-03-08", Price: 100, Rating: 4.0},
			{ViewedAt: "2024-03-09", Price: 150, Rating: 4.2},
			{ViewedAt: "2024-01-01", Price: 900, Rating: 5.0}, // fuera de la ventana de +-7 dias
		},
	})

	pq := report.PriceQuality
	if pq == nil {
		t.Fatalf("expected price/quality metrics")
	}
	if pq.QualityChoices != 1 || pq.PriceChoices != 0 {
		t.Fatalf("expected one quality choice, got q=%d p=%d", pq.QualityChoices, pq.PriceChoices)
	}
	if pq.Score != 100 {
		t.Fatalf("expected score 100, got %d", pq.Score)
	}
	if pq.Preference != PrefStronglyQuality {
		t.Fatalf("expected %q, got %q", PrefStronglyQuality, pq.Preference)
	}
}

func TestPriceQuality_NoComparableViewsIsBalancedZero(t *testing.T) {
	report := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{{BookingDate: "2024-03-10", Price: 300, Rating: 4.8}},
	})

	pq := report.PriceQuality
	if pq == nil {
		t.Fatalf("expected price/quality metrics")
	}
	if pq.Score != 0 || pq.Preference != PrefBalanced {
		t.Fatalf("expected balanced zero, got score=%d preference=%q", pq.Score, pq.Preference)
	}
}

func TestUniqueness_UnusualBookingsScoreAsNoveltySeeker(t *testing.T) {
	report := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{
			{PropertyType: "Treehouse retreat", Destination: "Costa Rica"},
			{PropertyType: "Ice igloo", Destination: "Lapland"},
			{PropertyType: "Lighthouse suite", Destination: "Cornwall"},
		},
		Searches: []domain.SearchEvent{
			{SearchTerm: "castle stay"},
			{SearchTerm: "cave hotel"},
			{SearchTerm: "houseboat"},
		},
	})

	u := report.Uniqueness
	if u == nil {
		t.Fatalf("expected uniqueness metrics")
	}
	// typeUniqueness=100, unusualRatio=100, destinationDiversity=100, searchDiversity=100.
	if u.Score != 100 {
		t.Fatalf("expected score 100, got %d", u.Score)
	}
	if u.Category != UniquenessNovelty {
		t.Fatalf("expected %q, got %q", UniquenessNovelty, u.Category)
	}
}

func TestUniqueness_RepeatedHotelBookingsScoreAsComfortSeeker(t *testing.T) {
	report := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{
			{PropertyType: "hotel", Destination: "Paris"},
			{PropertyType: "hotel", Destination: "Paris"},
			{PropertyType: "hotel", Destination: "Paris"},
			{PropertyType: "hotel", Destination: "Paris"},
		},
	})

	u := report.Uniqueness
	if u == nil {
		t.Fatalf("expected uniqueness metrics")
	}
	if u.Category != UniquenessComfort {
		t.Fatalf("expected %q, got %q (score=%d)", UniquenessComfort, u.Category, u.Score)
	}
}

func TestRiskTolerance_Categories(t *testing.T) {
	// Todo nuevo destino, ratings bajos, ultimo minuto y estadias largas: riesgo alto.
	high := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{
			{Destination: "Yemen", Rating: 3.2, BookingDate: "2024-03-01", CheckIn: "2024-03-03", CheckOut: "2024-03-20"},
			{Destination: "Chad", Rating: 3.5, BookingDate: "2024-05-01", CheckIn: "2024-05-02", CheckOut: "2024-05-25"},
		},
	})
	if high.RiskTolerance == nil || high.RiskTolerance.Category != RiskHigh {
		t.Fatalf("expected %q, got %+v", RiskHigh, high.RiskTolerance)
	}

	// Mismo destino repetido, ratings altos, reservado con meses y estadias cortas.
	low := ExtractDecisionPatterns(domain.Choices{
		Bookings: []domain.Booking{
			{Destination: "Paris", Rating: 4.8, BookingDate: "2024-01-01", CheckIn: "2024-06-01", CheckOut: "2024-06-04"},
			{Destination: "Paris", Rating: 4.9, BookingDate: "2024-02-01", CheckIn: "2024-08-01", CheckOut: "2024-08-05"},
			{Destination: "Paris", Rating: 4.7, BookingDate: "2024-03-01", CheckIn: "2024-09-01", CheckOut: "2024-09-03"},
		},
	})
	if low.RiskTolerance == nil || low.RiskTolerance.Category != RiskLow {
		t.Fatalf("expected %q, got %+v", RiskLow, low.RiskTolerance)
	}
}
