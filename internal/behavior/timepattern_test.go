package behavior

import (
	"testing"

	"travel-persona/internal/domain"
)

func TestExtractTimePatterns_EmptyActivityReturnsNilSubReports(t *testing.T) {
	report := ExtractTimePatterns(domain.Activity{})

	if report.BookingPatterns != nil {
		t.Fatalf("expected nil booking patterns")
	}
	if report.BrowsingPattern != nil {
		t.Fatalf("expected nil browsing pattern")
	}
	if report.SeasonalPreference != nil {
		t.Fatalf("expected nil seasonal preference")
	}
	if report.PlanningHorizon != nil {
		t.Fatalf("expected nil planning horizon")
	}
}

func TestPlanningHorizon_SpontaneousScenario(t *testing.T) {
	report := ExtractTimePatterns(domain.Activity{
		Bookings: []domain.Booking{
			{BookingDate: "2024-01-01T09:00", CheckIn: "2024-01-10", CheckOut: "2024-01-12"},
		},
	})

	ph := report.PlanningHorizon
	if ph == nil {
		t.Fatalf("expected planning horizon")
	}
	if ph.AvgDaysInAdvance != 9 {
		t.Fatalf("expected 9 days in advance, got %d", ph.AvgDaysInAdvance)
	}
	if ph.PlanningStyle != PlanningSpontaneous {
		t.Fatalf("expected %q, got %q", PlanningSpontaneous, ph.PlanningStyle)
	}
}

func TestPlanningHorizon_StyleMonotonicInMeanDays(t *testing.T) {
	cases := []struct {
		checkIn string
		want    string
	}{
		{"2024-01-10", PlanningSpontaneous},
		{"2024-02-01", PlanningModerate},
		{"2024-04-01", PlanningAdvance},
	}
	for _, tc := range cases {
		report := ExtractTimePatterns(domain.Activity{
			Bookings: []domain.Booking{{BookingDate: "2024-01-01", CheckIn: tc.checkIn}},
		})
		if report.PlanningHorizon == nil {
			t.Fatalf("expected planning horizon for check-in %s", tc.checkIn)
		}
		if got := report.PlanningHorizon.PlanningStyle; got != tc.want {
			t.Fatalf("check-in %s: expected %q, got %q", tc.checkIn, tc.want, got)
		}
	}
}

func TestBookingTimePatterns_ModalDayAndBand(t *testing.T) {
	report := ExtractTimePatterns(domain.Activity{
		Bookings: []domain.Booking{
			{BookingDate: "2024-06-01T10:00"}, // Saturday morning
			{BookingDate: "2024-06-08T11:00"}, // Saturday morning
			{BookingDate: "2024-06-03T23:30"}, // Monday night
		},
	})

	bp := report.BookingPatterns
	if bp == nil {
		t.Fatalf("expected booking patterns")
	}
	if bp.PreferredDay != "Saturday" {
		t.Fatalf("expected Saturday, got %q", bp.PreferredDay)
	}
	if bp.PreferredTime != "morning" {
		t.Fatalf("expected morning, got %q", bp.PreferredTime)
	}
	if bp.DayDistribution["Saturday"].Count != 2 {
		t.Fatalf("expected 2 saturday bookings, got %d", bp.DayDistribution["Saturday"].Count)
	}
	if bp.TimeDistribution["night"].Count != 1 {
		t.Fatalf("expected 1 night booking, got %d", bp.TimeDistribution["night"].Count)
	}
}

func TestBookingTimePatterns_MalformedDatesSkippedNotFatal(t *testing.T) {
	report := ExtractTimePatterns(domain.Activity{
		Bookings: []domain.Booking{
			{BookingDate: "garbage"},
			{BookingDate: "2024-06-01T10:00"},
		},
	})

	bp := report.BookingPatterns
	if bp == nil {
		t.Fatalf("expected booking patterns despite malformed record")
	}
	if bp.DayDistribution["Saturday"].Count != 1 {
		t.Fatalf("expected only the parseable booking counted, got %v", bp.DayDistribution)
	}
}

func TestBookingTimePatterns_AllMalformedReturnsNil(t *testing.T) {
	report := ExtractTimePatterns(domain.Activity{
		Bookings: []domain.Booking{{BookingDate: "x"}, {BookingDate: ""}},
	})
	if report.BookingPatterns != nil {
		t.Fatalf("expected nil when no booking date parses")
	}
}

func TestBrowsingPattern_MeanDurationIgnoresOpenSessions(t *testing.T) {
	report := ExtractTimePatterns(domain.Activity{
		Sessions: []domain.BrowsingSession{
			{StartedAt: "2024-06-01T20:00", EndedAt: "2024-06-01T20:30"},
			{StartedAt: "2024-06-02T20:15"}, // sin fin
		},
	})

	bp := report.BrowsingPattern
	if bp == nil {
		t.Fatalf("expected browsing pattern")
	}
	if bp.AvgSessionDurationMins != 30 {
		t.Fatalf("expected 30 minute average, got %v", bp.AvgSessionDurationMins)
	}
	if bp.PeakHourRange != "20:00-21:00" {
		t.Fatalf("expected peak range 20:00-21:00, got %q", bp.PeakHourRange)
	}
}

func TestBrowsingPattern_NoEndTimesYieldsZeroDuration(t *testing.T) {
	report := ExtractTimePatterns(domain.Activity{
		Sessions: []domain.BrowsingSession{{StartedAt: "2024-06-01T20:00"}},
	})
	if report.BrowsingPattern == nil {
		t.Fatalf("expected browsing pattern")
	}
	if report.BrowsingPattern.AvgSessionDurationMins != 0 {
		t.Fatalf("expected zero duration, got %v", report.BrowsingPattern.AvgSessionDurationMins)
	}
}

func TestSeasonalPreference_Buckets(t *testing.T) {
	report := ExtractTimePatterns(domain.Activity{
		Searches: []domain.SearchEvent{
			{Date: "2024-07-01"}, // summer
			{Date: "2024-08-15"}, // summer
			{Date: "2024-12-20"}, // winter
			{Date: "2024-04-10"}, // spring
			{Date: "2024-10-05"}, // fall
		},
	})

	sp := report.SeasonalPreference
	if sp == nil {
		t.Fatalf("expected seasonal preference")
	}
	if sp.PreferredSeason != "summer" {
		t.Fatalf("expected summer, got %q", sp.PreferredSeason)
	}
	if sp.SeasonDistribution["summer"].Percentage != 40 {
		t.Fatalf("expected summer at 40%%, got %v", sp.SeasonDistribution["summer"].Percentage)
	}
}
