package domain

import "time"

const (
	TraitCategoryBigFive = "BIG_FIVE"
)

// Nombres canonicos de las cinco dimensiones.
const (
	TraitOpenness          = "openness"
	TraitConscientiousness = "conscientiousness"
	TraitExtraversion      = "extraversion"
	TraitAgreeableness     = "agreeableness"
	TraitNeuroticism       = "neuroticism"
)

// Trait es una fila persistida de un rasgo de personalidad (0-100).
type Trait struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Category   string    `json:"category"`
	Trait      string    `json:"trait"`
	Value      int       `json:"value"`
	Confidence *float64  `json:"confidence,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TraitScores son las cinco dimensiones Big Five en escala 0-100.
// Vienen de la capa de inferencia de personalidad; el motor solo las consume.
type TraitScores struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
}

// TraitScoresFromRows arma un TraitScores desde filas persistidas.
// Rasgos desconocidos se ignoran; los faltantes quedan en cero.
func TraitScoresFromRows(rows []Trait) TraitScores {
	var s TraitScores
	for _, r := range rows {
		switch r.Trait {
		case TraitOpenness:
			s.Openness = float64(r.Value)
		case TraitConscientiousness:
			s.Conscientiousness = float64(r.Value)
		case TraitExtraversion:
			s.Extraversion = float64(r.Value)
		case TraitAgreeableness:
			s.Agreeableness = float64(r.Value)
		case TraitNeuroticism:
			s.Neuroticism = float64(r.Value)
		}
	}
	return s
}
