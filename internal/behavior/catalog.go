package behavior

import "travel-persona/internal/domain"

// BehavioralSignal identifica que salida del perfil conductual evalua una regla de bonus.
type BehavioralSignal string

const (
	SignalUniqueness    BehavioralSignal = "uniqueness"
	SignalRiskTolerance BehavioralSignal = "risk_tolerance"
	SignalPriceQuality  BehavioralSignal = "price_quality"
	SignalImpulsivity   BehavioralSignal = "impulsivity"
)

// BonusRule otorga puntos extra cuando un arquetipo coincide con una señal conductual.
// Es una tabla de datos, no logica: agregar cobertura es agregar filas.
type BonusRule struct {
	Archetype string
	Signal    BehavioralSignal
	Category  string
	Points    int
	Factor    string
}

const bonusPoints = 20

// DefaultCatalog es el catalogo fijo de personas viajeras.
// El orden de declaracion desempata puntajes iguales: el primero gana.
var DefaultCatalog = []domain.ArchetypeDefinition{
	{
		Name: "Explorer",
		Requirements: []domain.TraitRequirement{
			{Trait: domain.TraitOpenness, Level: domain.LevelHigh},
			{Trait: domain.TraitNeuroticism, Level: domain.LevelLow},
		},
		Description:           "Seeks out new destinations and unconventional stays, comfortable far from the beaten path.",
		RecommendedProperties: []string{"treehouse", "cave", "boat", "dome"},
	},
	{
		Name: "Comfort Seeker",
		Requirements: []domain.TraitRequirement{
			{Trait: domain.TraitNeuroticism, Level: domain.LevelHigh},
			{Trait: domain.TraitOpenness, Level: domain.LevelLow},
		},
		Description:           "Prefers familiar, predictable trips with well-reviewed stays and few surprises.",
		RecommendedProperties: []string{"hotel", "resort", "villa"},
	},
	{
		Name: "Social Butterfly",
		Requirements: []domain.TraitRequirement{
			{Trait: domain.TraitExtraversion, Level: domain.LevelHigh},
			{Trait: domain.TraitAgreeableness, Level: domain.LevelHigh},
		},
		Description:           "Travels to meet people; picks lively neighborhoods and shared spaces.",
		RecommendedProperties: []string{"hostel", "apartment", "guesthouse"},
	},
	{
		Name: "Digital Nomad",
		Requirements: []domain.TraitRequirement{
			{Trait: domain.TraitOpenness, Level: domain.LevelHigh},
			{Trait: domain.TraitConscientiousness, Level: domain.LevelModerate},
		},
		Description:           "Works while traveling; values long stays, reliable wifi and repeatable routines.",
		RecommendedProperties: []string{"apartment", "condo", "coliving"},
	},
	{
		Name: "Luxury Traveler",
		Requirements: []domain.TraitRequirement{
			{Trait: domain.TraitConscientiousness, Level: domain.LevelHigh},
			{Trait: domain.TraitAgreeableness, Level: domain.LevelModerate},
		},
		Description:           "Pays for quality without hesitation; curated stays and premium service.",
		RecommendedProperties: []string{"resort", "villa", "boutique hotel"},
	},
	{
		Name: "Budget Backpacker",
		Requirements: []domain.TraitRequirement{
			{Trait: domain.TraitOpenness, Level: domain.LevelModerate},
			{Trait: domain.TraitConscientiousness, Level: domain.LevelLow},
		},
		Description:           "Stretches every booking; price drives the decision, the destination adapts.",
		RecommendedProperties: []string{"hostel", "guesthouse", "cabin"},
	},
	{
		Name: "Cultural Enthusiast",
		Requirements: []domain.TraitRequirement{
			{Trait: domain.TraitOpenness, Level: domain.LevelHigh},
			{Trait: domain.TraitAgreeableness, Level: domain.LevelHigh},
		},
		Description:           "Chooses destinations for museums, food and local life over amenities.",
		RecommendedProperties: []string{"apartment", "house", "boutique hotel"},
	},
	{
		Name: "Wellness Seeker",
		Requirements: []domain.TraitRequirement{
			{Trait: domain.TraitConscientiousness, Level: domain.LevelHigh},
			{Trait: domain.TraitNeuroticism, Level: domain.LevelModerate},
		},
		Description:           "Travels to recharge; quiet settings, nature and structured downtime.",
		RecommendedProperties: []string{"resort", "cabin", "villa"},
	},
}

// DefaultBonusRules cubre solo los pares arquetipo/señal heredados del modelo original.
// La cobertura es asimetrica a proposito: extenderla cambia el ranking, asi que
// cualquier par nuevo entra como fila explicita y no como regla implicita.
var DefaultBonusRules = []BonusRule{
	{
		Archetype: "Explorer",
		Signal:    SignalUniqueness,
		Category:  UniquenessNovelty,
		Points:    bonusPoints,
		Factor:    "booking history shows strong novelty seeking",
	},
	{
		Archetype: "Comfort Seeker",
		Signal:    SignalRiskTolerance,
		Category:  RiskLow,
		Points:    bonusPoints,
		Factor:    "booking history shows low risk tolerance",
	},
	{
		Archetype: "Luxury Traveler",
		Signal:    SignalPriceQuality,
		Category:  PrefStronglyQuality,
		Points:    bonusPoints,
		Factor:    "consistently books quality over price",
	},
	{
		Archetype: "Budget Backpacker",
		Signal:    SignalPriceQuality,
		Category:  PrefStronglyPrice,
		Points:    bonusPoints,
		Factor:    "consistently books price over quality",
	},
}

// signalCategory lee la categoria de una señal desde el perfil conductual.
// Devuelve "" cuando el sub-reporte no existe.
func signalCategory(profile *domain.BehavioralProfile, signal BehavioralSignal) string {
	if profile == nil {
		return ""
	}
	d := profile.DecisionPatterns
	switch signal {
	case SignalUniqueness:
		if d.Uniqueness != nil {
			return d.Uniqueness.Category
		}
	case SignalRiskTolerance:
		if d.RiskTolerance != nil {
			return d.RiskTolerance.Category
		}
	case SignalPriceQuality:
		if d.PriceQuality != nil {
			return d.PriceQuality.Preference
		}
	case SignalImpulsivity:
		if d.Impulsivity != nil {
			return d.Impulsivity.Category
		}
	}
	return ""
}
