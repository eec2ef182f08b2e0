package behavior

import "travel-persona/internal/domain"

// Umbrales del analisis de micro-interacciones.
const (
	deepScrollDepthPercent = 80
	fastScrollPxPerS       = 1000

	highImageEngagementSecs   = 5
	mediumImageEngagementSecs = 2

	highElasticityPercent   = 60
	mediumElasticityPercent = 30
)

// ExtractMicroInteractions deriva la intensidad de engagement desde la telemetria de UI.
// Sub-reportes sin insumo quedan en nil.
func ExtractMicroInteractions(interactions domain.Interactions) domain.MicroInteractionReport {
	return domain.MicroInteractionReport{
		Hover:            hoverMetrics(interactions.Hovers),
		Scroll:           scrollMetrics(interactions.Scrolls),
		ImageEngagement:  imageEngagement(interactions.ImageViews),
		PriceSensitivity: priceSensitivity(interactions.PriceFilters),
	}
}

func hoverMetrics(hovers []domain.HoverEvent) *domain.HoverMetrics {
	if len(hovers) == 0 {
		return nil
	}

	var total float64
	byType := make(map[string]float64)
	var typeOrder []string
	for _, h := range hovers {
		if _, seen := byType[h.ElementType]; !seen {
			typeOrder = append(typeOrder, h.ElementType)
		}
		byType[h.ElementType] += h.DurationSeconds
		total += h.DurationSeconds
	}

	// "Mas visto" es el tipo con mayor duracion acumulada, no mas eventos.
	mostViewed := ""
	bestDuration := -1.0
	shares := roundedShares(typeOrder, byType, total)
	breakdown := make(domain.Distribution, len(typeOrder))
	for _, t := range typeOrder {
		d := byType[t]
		if d > bestDuration {
			mostViewed = t
			bestDuration = d
		}
		breakdown[t] = domain.DistributionEntry{
			Count:      roundInt(d),
			Percentage: shares[t],
		}
	}

	return &domain.HoverMetrics{
		AvgHoverSeconds:       total / float64(len(hovers)),
		MostViewedElementType: mostViewed,
		TypeBreakdown:         breakdown,
	}
}

func scrollMetrics(scrolls []domain.ScrollEvent) *domain.ScrollMetrics {
	if len(scrolls) == 0 {
		return nil
	}

	var depths, speeds []float64
	for _, s := range scrolls {
		if s.DepthPercent != nil {
			depths = append(depths, *s.DepthPercent)
		}
		if s.SpeedPxPerS != nil {
			speeds = append(speeds, *s.SpeedPxPerS)
		}
	}

	avgDepth := mean(depths)
	avgSpeed := mean(speeds)

	deep := avgDepth > deepScrollDepthPercent
	fast := avgSpeed > fastScrollPxPerS
	behavior := "Casual Browser"
	switch {
	case deep && fast:
		behavior = "Rapid Deep Reader"
	case deep:
		behavior = "Thorough Reader"
	case fast:
		behavior = "Quick Scanner"
	}

	return &domain.ScrollMetrics{
		AvgDepthPercent: avgDepth,
		AvgSpeedPxPerS:  avgSpeed,
		Behavior:        behavior,
	}
}

func imageEngagement(views []domain.ImageViewEvent) *domain.ImageEngagement {
	if len(views) == 0 {
		return nil
	}

	var total float64
	unique := make(map[string]struct{})
	for _, v := range views {
		total += v.DurationSeconds
		if v.ImageID != "" {
			unique[v.ImageID] = struct{}{}
		}
	}
	avg := total / float64(len(views))

	level := "Low"
	switch {
	case avg > highImageEngagementSecs:
		level = "High"
	case avg > mediumImageEngagementSecs:
		level = "Medium"
	}

	return &domain.ImageEngagement{
		AvgViewSeconds:  avg,
		UniqueImages:    len(unique),
		EngagementLevel: level,
	}
}

// priceSensitivity mide cuantos ajustes consecutivos de filtro cambian el rango de precio.
// Elasticidad = pares adyacentes con cambio / (n-1), como porcentaje.
func priceSensitivity(filters []domain.PriceFilterEvent) *domain.PriceSensitivity {
	if len(filters) == 0 {
		return nil
	}

	changes := 0
	var minSum, maxSum float64
	for i, f := range filters {
		minSum += f.MinPrice
		maxSum += f.MaxPrice
		if i == 0 {
			continue
		}
		prev := filters[i-1]
		if f.MinPrice != prev.MinPrice || f.MaxPrice != prev.MaxPrice {
			changes++
		}
	}

	elasticity := 0.0
	if len(filters) > 1 {
		elasticity = percent(float64(changes), float64(len(filters)-1))
	}

	sensitivity := "Low"
	switch {
	case elasticity > highElasticityPercent:
		sensitivity = "High"
	case elasticity > mediumElasticityPercent:
		sensitivity = "Medium"
	}

	n := float64(len(filters))
	return &domain.PriceSensitivity{
		ElasticityPercent: elasticity,
		Sensitivity:       sensitivity,
		AvgMinPrice:       minSum / n,
		AvgMaxPrice:       maxSum / n,
	}
}
