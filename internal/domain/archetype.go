package domain

import (
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

// TraitLevel es el bucket categorico de una dimension de personalidad.
type TraitLevel string

const (
	LevelLow      TraitLevel = "low"
	LevelModerate TraitLevel = "moderate"
	LevelHigh     TraitLevel = "high"
)

// TraitRequirement exige un nivel concreto para un rasgo.
type TraitRequirement struct {
	Trait string     `json:"trait"`
	Level TraitLevel `json:"level"`
}

// ArchetypeDefinition es una entrada del catalogo de personas viajeras.
// El catalogo es configuracion estatica: se declara una vez y no muta en runtime.
// El orden de declaracion importa: desempata puntajes iguales.
type ArchetypeDefinition struct {
	Name                  string             `json:"name"`
	Requirements          []TraitRequirement `json:"requirements"`
	Description           string             `json:"description"`
	RecommendedProperties []string           `json:"recommended_properties"`
}

// ArchetypeMatch es una entrada del ranking con sus factores explicativos.
type ArchetypeMatch struct {
	Archetype   string   `json:"archetype"`
	Score       int      `json:"score"`
	Description string   `json:"description"`
	Factors     []string `json:"factors"`
}

// ClassificationResult es la salida del clasificador de arquetipos.
// Invariante: TopMatches ordenado por score descendente, empates por orden de catalogo.
type ClassificationResult struct {
	PrimaryArchetype      string           `json:"primary_archetype"`
	Score                 int              `json:"score"`
	Description           string           `json:"description"`
	RecommendedProperties []string         `json:"recommended_properties"`
	TopMatches            []ArchetypeMatch `json:"top_matches"`
}

// PersonaResult es el registro persistido de una clasificacion completa.
type PersonaResult struct {
	ID             string               `json:"id"`
	UserID         string               `json:"user_id"`
	Classification ClassificationResult `json:"classification"`
	Profile        BehavioralProfile    `json:"profile"`
	Narrative      string               `json:"narrative,omitempty"`
	Embedding      *pgvector.Vector     `json:"-"`
	CreatedAt      time.Time            `json:"created_at"`
}
