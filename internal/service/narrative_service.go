package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"travel-persona/internal/domain"
	"travel-persona/internal/llm"
)

const personaNarrativePrompt = `
Eres el redactor de perfiles de una plataforma de viajes. Con los datos de abajo,
escribe una narrativa breve (2-4 frases, segunda persona) que le explique al viajero
su arquetipo y sus habitos observados. Tono calido, sin inventar datos.

Arquetipo principal: %s
Descripcion: %s
Factores observados: %s
Estilo de planificacion: %s
Categoria de riesgo: %s

Responde SOLO un JSON con esta forma exacta:
{"narrative": "<texto>"}
No incluyas texto fuera del JSON.
`

// NarrativeService es la frontera con el LLM: convierte una clasificacion en
// texto narrativo. Nunca participa en la clasificacion misma.
type NarrativeService struct {
	llmClient llm.LLMClient
}

func NewNarrativeService(llmClient llm.LLMClient) *NarrativeService {
	return &NarrativeService{llmClient: llmClient}
}

// ComposeNarrative pide la narrativa al LLM. Cualquier fallo devuelve error:
// el orquestador decide que una narrativa vacia no invalida la clasificacion.
func (s *NarrativeService) ComposeNarrative(ctx context.Context, classification domain.ClassificationResult, profile domain.BehavioralProfile) (string, error) {
	if s.llmClient == nil {
		return "", fmt.Errorf("llm client not configured")
	}

	var factors []string
	if len(classification.TopMatches) > 0 {
		factors = classification.TopMatches[0].Factors
	}
	planningStyle := "unknown"
	if ph := profile.TimePatterns.PlanningHorizon; ph != nil {
		planningStyle = ph.PlanningStyle
	}
	riskCategory := "unknown"
	if rt := profile.DecisionPatterns.RiskTolerance; rt != nil {
		riskCategory = rt.Category
	}

	prompt := fmt.Sprintf(personaNarrativePrompt,
		classification.PrimaryArchetype,
		classification.Description,
		strings.Join(factors, "; "),
		planningStyle,
		riskCategory,
	)

	raw, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate narrative: %w", err)
	}

	narrative, ok := ParseNarrativeResponse(raw)
	if !ok {
		return "", fmt.Errorf("unparseable narrative response")
	}
	return narrative, nil
}

// ParseNarrativeResponse parsea la respuesta del LLM de manera robusta:
// limpia fences de markdown, busca el primer objeto JSON y recien despues
// acepta el texto plano como fallback.
func ParseNarrativeResponse(raw string) (string, bool) {
	cleaned := stripCodeFences(raw)

	tryUnmarshal := func(candidate string) (string, bool) {
		var tmp struct {
			Narrative string `json:"narrative"`
		}
		if err := json.Unmarshal([]byte(candidate), &tmp); err != nil {
			return "", false
		}
		narrative := strings.TrimSpace(tmp.Narrative)
		return narrative, narrative != ""
	}

	if obj := extractFirstJSONObject(cleaned); obj != "" {
		if n, ok := tryUnmarshal(obj); ok {
			return n, true
		}
	}
	if n, ok := tryUnmarshal(cleaned); ok {
		return n, true
	}

	// Fallback: texto plano sin estructura, siempre que no parezca JSON roto.
	fallback := strings.TrimSpace(cleaned)
	if fallback == "" || strings.HasPrefix(fallback, "{") {
		return "", false
	}
	return fallback, true
}

// stripCodeFences remueve bloques tipo ```json ... ``` que algunos modelos agregan.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractFirstJSONObject devuelve el primer objeto {...} balanceado, respetando strings.
func extractFirstJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
