package behavior

import (
	"strings"
	"time"

	"travel-persona/internal/domain"
)

// Ventanas de correlacion entre eventos.
const (
	relatedSearchWindow  = 24 * time.Hour     // busqueda "relacionada" a una reserva
	contemporaneousViews = 7 * 24 * time.Hour // vistas comparables alrededor de una reserva
	quickDecisionHours   = 1.0
	lastMinuteDays       = 7.0
	longStayDays         = 14.0
	lowRatingThreshold   = 4.0
)

// Pesos de los puntajes compuestos. Todos los terminos entran en escala 0-100.
const (
	uniquenessTypeWeight        = 0.3
	uniquenessUnusualWeight     = 0.4
	uniquenessDestinationWeight = 0.2
	uniquenessSearchWeight      = 0.1

	riskNewDestinationWeight = 0.4
	riskLowRatingWeight      = 0.3
	riskLastMinuteWeight     = 0.2
	riskLongStayWeight       = 0.1
)

// Categorias de los cuatro sub-analisis.
const (
	ImpulsivityHigh     = "Highly Impulsive"
	ImpulsivityModerate = "Moderately Impulsive"
	ImpulsivityPlanned  = "Planned Decision Maker"

	PrefStronglyQuality = "Strongly Quality-Focused"
	PrefQuality         = "Quality-Focused"
	PrefBalanced        = "Balanced Price-Quality"
	PrefPrice           = "Price-Focused"
	PrefStronglyPrice   = "Strongly Price-Focused"

	UniquenessNovelty  = "Novelty Seeker"
	UniquenessModerate = "Moderate Explorer"
	UniquenessComfort  = "Comfort Seeker"

	RiskHigh     = "High Risk Tolerance"
	RiskModerate = "Moderate Risk Tolerance"
	RiskLow      = "Low Risk Tolerance"
)

// Tipos de propiedad inusuales vs. convencionales (match por substring, case-insensitive).
var unusualPropertyTypes = []string{
	"treehouse", "castle", "cave", "igloo", "lighthouse", "container", "boat", "dome", "yurt",
}

var commonPropertyTypes = []string{
	"hotel", "apartment", "house", "villa", "resort", "hostel", "condo", "cabin",
}

// ExtractDecisionPatterns deriva rasgos de decision de alto nivel correlacionando
// busquedas, vistas y reservas. Sin reservas no hay nada que correlacionar:
// los cuatro sub-reportes quedan en nil.
func ExtractDecisionPatterns(choices domain.Choices) domain.DecisionPatternReport {
	if len(choices.Bookings) == 0 {
		return domain.DecisionPatternReport{}
	}
	return domain.DecisionPatternReport{
		Impulsivity:   impulsivity(choices.Bookings, choices.Searches),
		PriceQuality:  priceQuality(choices.Bookings, choices.ViewedProperties),
		Uniqueness:    uniqueness(choices.Bookings, choices.Searches),
		RiskTolerance: riskTolerance(choices.Bookings),
	}
}

// impulsivity mide cuanto tarda el usuario entre su primera busqueda relacionada y la reserva.
// Reservas sin busqueda relacionada no aportan al promedio pero si al denominador de tasas.
// Sin ninguna correlacion busqueda-reserva no hay evidencia de velocidad de decision
// y el sub-reporte queda en nil.
func impulsivity(bookings []domain.Booking, searches []domain.SearchEvent) *domain.ImpulsivityMetrics {
	var decisionHours []float64
	quick := 0

	for _, b := range bookings {
		booked, ok := parseTimestamp(b.BookingDate)
		if !ok {
			continue
		}

		var earliest time.Time
		found := false
		for _, s := range searches {
			searched, ok := parseTimestamp(s.Date)
			if !ok {
				continue
			}
			sameProperty := s.PropertyID != "" && s.PropertyID == b.PropertyID
			within := absDuration(booked.Sub(searched)) <= relatedSearchWindow
			if !sameProperty && !within {
				continue
			}
			if !found || searched.Before(earliest) {
				earliest = searched
				found = true
			}
		}
		if !found {
			continue
		}

		hours := booked.Sub(earliest).Hours()
		if hours < 0 {
			hours = 0
		}
		decisionHours = append(decisionHours, hours)
		if hours < quickDecisionHours {
			quick++
		}
	}

	if len(decisionHours) == 0 {
		return nil
	}

	avgHours := mean(decisionHours)
	quickRate := percent(float64(quick), float64(len(bookings)))
	score := clamp(100-(avgHours/24)*20+quickRate/2, 0, 100)

	category := ImpulsivityPlanned
	switch {
	case score > 70:
		category = ImpulsivityHigh
	case score > 40:
		category = ImpulsivityModerate
	}

	return &domain.ImpulsivityMetrics{
		Score:                roundInt(score),
		Category:             category,
		AvgDecisionHours:     avgHours,
		QuickDecisionPercent: quickRate,
	}
}

// priceQuality compara cada reserva contra el promedio de las propiedades
// vistas en la semana alrededor de la fecha de reserva.
func priceQuality(bookings []domain.Booking, views []domain.ViewedProperty) *domain.PriceQualityMetrics {
	qualityChoices, priceChoices, compared := 0, 0, 0

	for _, b := range bookings {
		booked, ok := parseTimestamp(b.BookingDate)
		if !ok {
			continue
		}

		var prices, ratings []float64
		for _, v := range views {
			viewed, ok := parseTimestamp(v.ViewedAt)
			if !ok || absDuration(booked.Sub(viewed)) > contemporaneousViews {
				continue
			}
			prices = append(prices, v.Price)
			ratings = append(ratings, v.Rating)
		}
		if len(prices) == 0 {
			continue
		}
		compared++

		avgPrice, avgRating := mean(prices), mean(ratings)
		if b.Price > avgPrice && b.Rating > avgRating {
			qualityChoices++
		} else if b.Price < avgPrice && b.Rating < avgRating {
			priceChoices++
		}
	}

	score := 0.0
	if qualityChoices+priceChoices > 0 {
		score = float64(qualityChoices-priceChoices) / float64(qualityChoices+priceChoices) * 100
	}

	preference := PrefBalanced
	switch {
	case score > 50:
		preference = PrefStronglyQuality
	case score > 20:
		preference = PrefQuality
	case score < -50:
		preference = PrefStronglyPrice
	case score < -20:
		preference = PrefPrice
	}

	return &domain.PriceQualityMetrics{
		Score:            roundInt(score),
		Preference:       preference,
		QualityChoices:   qualityChoices,
		PriceChoices:     priceChoices,
		ComparedBookings: compared,
	}
}

// uniqueness pondera variedad de tipos, tipos inusuales, diversidad de destinos
// y diversidad de terminos de busqueda.
func uniqueness(bookings []domain.Booking, searches []domain.SearchEvent) *domain.UniquenessMetrics {
	total := float64(len(bookings))

	types := make(map[string]struct{})
	destinations := make(map[string]struct{})
	unusual, common := 0, 0
	for _, b := range bookings {
		propType := strings.ToLower(strings.TrimSpace(b.PropertyType))
		if propType != "" {
			types[propType] = struct{}{}
			switch {
			case matchesAny(propType, unusualPropertyTypes):
				unusual++
			case matchesAny(propType, commonPropertyTypes):
				common++
			}
		}
		if dest := strings.ToLower(strings.TrimSpace(b.Destination)); dest != "" {
			destinations[dest] = struct{}{}
		}
	}

	typeUniqueness := clamp(percent(float64(len(types)), total), 0, 100)
	unusualRatio := 0.0
	if unusual+common > 0 {
		unusualRatio = percent(float64(unusual), float64(unusual+common))
	}
	destinationDiversity := clamp(percent(float64(len(destinations)), total), 0, 100)

	terms := make(map[string]struct{})
	for _, s := range searches {
		if term := strings.ToLower(strings.TrimSpace(s.SearchTerm)); term != "" {
			terms[term] = struct{}{}
		}
	}
	searchDiversity := 0.0
	if len(searches) > 0 {
		searchDiversity = clamp(percent(float64(len(terms)), float64(len(searches))), 0, 100)
	}

	score := WeightedScore(
		Term{Value: typeUniqueness, Weight: uniquenessTypeWeight},
		Term{Value: unusualRatio, Weight: uniquenessUnusualWeight},
		Term{Value: destinationDiversity, Weight: uniquenessDestinationWeight},
		Term{Value: searchDiversity, Weight: uniquenessSearchWeight},
	)

	category := UniquenessComfort
	switch {
	case score > 70:
		category = UniquenessNovelty
	case score > 40:
		category = UniquenessModerate
	}

	return &domain.UniquenessMetrics{Score: roundInt(score), Category: category}
}

// riskTolerance pondera destinos nuevos, ratings bajos, reservas de ultimo minuto
// y estadias largas. Cada tasa se calcula solo sobre reservas con datos suficientes.
func riskTolerance(bookings []domain.Booking) *domain.RiskToleranceMetrics {
	seen := make(map[string]struct{})
	newDestinations := 0
	lowRating, rated := 0, 0
	lastMinute, withAdvance := 0, 0
	longStay, withStay := 0, 0

	for _, b := range bookings {
		if dest := strings.ToLower(strings.TrimSpace(b.Destination)); dest != "" {
			if _, ok := seen[dest]; !ok {
				seen[dest] = struct{}{}
				newDestinations++
			}
		}

		if b.Rating > 0 {
			rated++
			if b.Rating < lowRatingThreshold {
				lowRating++
			}
		}

		booked, okB := parseTimestamp(b.BookingDate)
		checkIn, okI := parseTimestamp(b.CheckIn)
		if okB && okI && !checkIn.Before(booked) {
			withAdvance++
			if checkIn.Sub(booked).Hours()/24 <= lastMinuteDays {
				lastMinute++
			}
		}

		checkOut, okO := parseTimestamp(b.CheckOut)
		if okI && okO && checkOut.After(checkIn) {
			withStay++
			if checkOut.Sub(checkIn).Hours()/24 >= longStayDays {
				longStay++
			}
		}
	}

	newDestRate := percent(float64(newDestinations), float64(len(bookings)))
	lowRatingRate := percent(float64(lowRating), float64(rated))
	lastMinuteRate := percent(float64(lastMinute), float64(withAdvance))
	longStayRate := percent(float64(longStay), float64(withStay))

	score := WeightedScore(
		Term{Value: newDestRate, Weight: riskNewDestinationWeight},
		Term{Value: lowRatingRate, Weight: riskLowRatingWeight},
		Term{Value: lastMinuteRate, Weight: riskLastMinuteWeight},
		Term{Value: longStayRate, Weight: riskLongStayWeight},
	)

	category := RiskLow
	switch {
	case score > 70:
		category = RiskHigh
	case score > 40:
		category = RiskModerate
	}

	return &domain.RiskToleranceMetrics{Score: roundInt(score), Category: category}
}

func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
