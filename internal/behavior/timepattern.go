package behavior

import (
	"fmt"
	"time"

	"travel-persona/internal/domain"
)

// Estilos de planificacion segun dias de anticipacion promedio.
const (
	planningSpontaneousMax = 14
	planningModerateMax    = 60

	PlanningSpontaneous = "Spontaneous"
	PlanningModerate    = "Moderate Planner"
	PlanningAdvance     = "Advance Planner"
)

// ExtractTimePatterns deriva los habitos temporales del usuario.
// Cada sub-analisis es independiente: si falta su insumo queda en nil,
// nunca se interrumpe el resto del reporte.
func ExtractTimePatterns(activity domain.Activity) domain.TimePatternReport {
	return domain.TimePatternReport{
		BookingPatterns:    bookingTimePatterns(activity.Bookings),
		BrowsingPattern:    browsingPattern(activity.Sessions),
		SeasonalPreference: seasonalPreference(activity.Searches),
		PlanningHorizon:    planningHorizon(activity.Bookings),
	}
}

// timeBand clasifica la hora en las cuatro franjas del dia.
func timeBand(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

func season(month time.Month) string {
	switch month {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "fall"
	default:
		return "winter"
	}
}

func bookingTimePatterns(bookings []domain.Booking) *domain.BookingTimePatterns {
	if len(bookings) == 0 {
		return nil
	}
	days := NewCounter()
	bands := NewCounter()
	for _, b := range bookings {
		ts, ok := parseTimestamp(b.BookingDate)
		if !ok {
			continue
		}
		days.Add(ts.Weekday().String())
		bands.Add(timeBand(ts.Hour()))
	}
	if days.Total() == 0 {
		return nil
	}
	return &domain.BookingTimePatterns{
		PreferredDay:     days.Argmax(),
		PreferredTime:    bands.Argmax(),
		DayDistribution:  days.Distribution(),
		TimeDistribution: bands.Distribution(),
	}
}

func browsingPattern(sessions []domain.BrowsingSession) *domain.BrowsingPattern {
	if len(sessions) == 0 {
		return nil
	}
	hours := NewCounter()
	var durations []float64
	for _, s := range sessions {
		start, ok := parseTimestamp(s.StartedAt)
		if !ok {
			continue
		}
		hours.Add(fmt.Sprintf("%02d:00-%02d:00", start.Hour(), (start.Hour()+1)%24))
		if end, ok := parseTimestamp(s.EndedAt); ok && end.After(start) {
			durations = append(durations, end.Sub(start).Minutes())
		}
	}
	if hours.Total() == 0 {
		return nil
	}
	return &domain.BrowsingPattern{
		PeakHourRange:          hours.Argmax(),
		HourDistribution:       hours.Distribution(),
		AvgSessionDurationMins: mean(durations),
	}
}

func seasonalPreference(searches []domain.SearchEvent) *domain.SeasonalPreference {
	if len(searches) == 0 {
		return nil
	}
	seasons := NewCounter()
	for _, s := range searches {
		ts, ok := parseTimestamp(s.Date)
		if !ok {
			continue
		}
		seasons.Add(season(ts.Month()))
	}
	if seasons.Total() == 0 {
		return nil
	}
	return &domain.SeasonalPreference{
		PreferredSeason:    seasons.Argmax(),
		SeasonDistribution: seasons.Distribution(),
	}
}

func planningHorizon(bookings []domain.Booking) *domain.PlanningHorizon {
	var daysInAdvance []float64
	for _, b := range bookings {
		booked, okB := parseTimestamp(b.BookingDate)
		checkIn, okC := parseTimestamp(b.CheckIn)
		if !okB || !okC || checkIn.Before(booked) {
			continue
		}
		daysInAdvance = append(daysInAdvance, checkIn.Sub(booked).Hours()/24)
	}
	if len(daysInAdvance) == 0 {
		return nil
	}

	minDays, maxDays := daysInAdvance[0], daysInAdvance[0]
	for _, d := range daysInAdvance[1:] {
		if d < minDays {
			minDays = d
		}
		if d > maxDays {
			maxDays = d
		}
	}

	avg := roundInt(mean(daysInAdvance))
	style := PlanningAdvance
	switch {
	case avg < planningSpontaneousMax:
		style = PlanningSpontaneous
	case avg < planningModerateMax:
		style = PlanningModerate
	}

	return &domain.PlanningHorizon{
		AvgDaysInAdvance: avg,
		MinDaysInAdvance: roundInt(minDays),
		MaxDaysInAdvance: roundInt(maxDays),
		PlanningStyle:    style,
	}
}
