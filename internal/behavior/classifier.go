package behavior

import (
	"fmt"
	"sort"

	"travel-persona/internal/domain"
)

// Puntos por coincidencia de nivel de rasgo.
const (
	exactMatchPoints   = 25
	partialMatchPoints = 15
	topMatchesCount    = 3
)

// Umbrales de conversion puntaje -> nivel categorico.
const (
	highLevelThreshold     = 70
	moderateLevelThreshold = 40
)

// TraitLevelFor convierte un puntaje 0-100 en su bucket categorico.
func TraitLevelFor(score float64) domain.TraitLevel {
	switch {
	case score > highLevelThreshold:
		return domain.LevelHigh
	case score > moderateLevelThreshold:
		return domain.LevelModerate
	default:
		return domain.LevelLow
	}
}

// traitLevels calcula el nivel de cada dimension, en orden canonico.
func traitLevels(scores domain.TraitScores) map[string]domain.TraitLevel {
	return map[string]domain.TraitLevel{
		domain.TraitOpenness:          TraitLevelFor(scores.Openness),
		domain.TraitConscientiousness: TraitLevelFor(scores.Conscientiousness),
		domain.TraitExtraversion:      TraitLevelFor(scores.Extraversion),
		domain.TraitAgreeableness:     TraitLevelFor(scores.Agreeableness),
		domain.TraitNeuroticism:       TraitLevelFor(scores.Neuroticism),
	}
}

// partialLevelMatch: niveles distintos pero adyacentes cuentan parcial solo si
// uno de los dos es "moderate". low vs high nunca puntua.
func partialLevelMatch(computed, required domain.TraitLevel) bool {
	if computed == required {
		return false
	}
	return computed == domain.LevelModerate || required == domain.LevelModerate
}

// ClassifyArchetype clasifica contra el catalogo por defecto.
func ClassifyArchetype(scores domain.TraitScores, profile *domain.BehavioralProfile) domain.ClassificationResult {
	return ClassifyWithCatalog(DefaultCatalog, DefaultBonusRules, scores, profile)
}

// ClassifyWithCatalog puntua cada arquetipo del catalogo contra los niveles de rasgo
// y las señales conductuales, y devuelve el ranking. Es deterministica: mismos
// insumos, misma salida; los empates se resuelven por orden de declaracion.
func ClassifyWithCatalog(
	catalog []domain.ArchetypeDefinition,
	rules []BonusRule,
	scores domain.TraitScores,
	profile *domain.BehavioralProfile,
) domain.ClassificationResult {
	if len(catalog) == 0 {
		return domain.ClassificationResult{}
	}

	levels := traitLevels(scores)

	matches := make([]domain.ArchetypeMatch, 0, len(catalog))
	for _, def := range catalog {
		score := 0
		var factors []string

		for _, req := range def.Requirements {
			computed, ok := levels[req.Trait]
			if !ok {
				continue
			}
			switch {
			case computed == req.Level:
				score += exactMatchPoints
				factors = append(factors, fmt.Sprintf("%s is %s", req.Trait, req.Level))
			case partialLevelMatch(computed, req.Level):
				score += partialMatchPoints
				factors = append(factors, fmt.Sprintf("%s is close to %s", req.Trait, req.Level))
			}
		}

		// Sin perfil conductual las reglas de bonus no aportan nada.
		for _, rule := range rules {
			if rule.Archetype != def.Name {
				continue
			}
			if signalCategory(profile, rule.Signal) == rule.Category {
				score += rule.Points
				factors = append(factors, rule.Factor)
			}
		}

		matches = append(matches, domain.ArchetypeMatch{
			Archetype:   def.Name,
			Score:       score,
			Description: def.Description,
			Factors:     factors,
		})
	}

	// Orden estable: score descendente, empates por indice de catalogo.
	// Con todo en cero queda primero el primer arquetipo declarado.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	top := matches
	if len(top) > topMatchesCount {
		top = top[:topMatchesCount]
	}

	primary := top[0]
	var recommended []string
	for _, def := range catalog {
		if def.Name == primary.Archetype {
			recommended = def.RecommendedProperties
			break
		}
	}

	return domain.ClassificationResult{
		PrimaryArchetype:      primary.Archetype,
		Score:                 primary.Score,
		Description:           primary.Description,
		RecommendedProperties: recommended,
		TopMatches:            top,
	}
}
