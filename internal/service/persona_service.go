package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"travel-persona/internal/behavior"
	"travel-persona/internal/domain"
	"travel-persona/internal/llm"
	"travel-persona/internal/repository"
)

// NarrativeComposer abstrae la frontera LLM para poder mockearla en tests.
type NarrativeComposer interface {
	ComposeNarrative(ctx context.Context, classification domain.ClassificationResult, profile domain.BehavioralProfile) (string, error)
}

var ErrNoPersona = errors.New("no persona classification for user")

// PersonaService orquesta una clasificacion completa: carga logs y rasgos,
// corre los extractores, clasifica, persiste y cachea. Es el unico componente
// que habla con colaboradores externos; el motor en si no hace I/O.
type PersonaService struct {
	logger    *zap.Logger
	events    repository.EventRepository
	traits    repository.TraitRepository
	results   repository.ResultRepository
	cache     PersonaCache
	narrative NarrativeComposer
	llmClient llm.LLMClient
}

func NewPersonaService(
	logger *zap.Logger,
	events repository.EventRepository,
	traits repository.TraitRepository,
	results repository.ResultRepository,
	cache PersonaCache,
	narrative NarrativeComposer,
	llmClient llm.LLMClient,
) *PersonaService {
	return &PersonaService{
		logger:    logger,
		events:    events,
		traits:    traits,
		results:   results,
		cache:     cache,
		narrative: narrative,
		llmClient: llmClient,
	}
}

// ClassifyUser ejecuta el pipeline completo para un usuario y devuelve el
// resultado persistido. Narrativa y embedding son best-effort: su fallo
// degrada el resultado, nunca lo invalida.
func (s *PersonaService) ClassifyUser(ctx context.Context, userID string) (domain.PersonaResult, error) {
	eventLog, err := s.events.LoadEventLog(ctx, userID)
	if err != nil {
		return domain.PersonaResult{}, fmt.Errorf("load event log for user %s: %w", userID, err)
	}

	traitRows, err := s.traits.FindByUserID(ctx, userID)
	if err != nil {
		return domain.PersonaResult{}, fmt.Errorf("load traits for user %s: %w", userID, err)
	}
	scores := domain.TraitScoresFromRows(traitRows)

	profile := buildBehavioralProfile(eventLog)
	classification := behavior.ClassifyArchetype(scores, &profile)

	result := domain.PersonaResult{
		ID:             uuid.NewString(),
		UserID:         userID,
		Classification: classification,
		Profile:        profile,
		CreatedAt:      time.Now().UTC(),
	}

	if s.narrative != nil {
		narrative, err := s.narrative.ComposeNarrative(ctx, classification, profile)
		if err != nil {
			s.logger.Warn("narrative generation failed", zap.Error(err), zap.String("user_id", userID))
		} else {
			result.Narrative = narrative
		}
	}

	if s.llmClient != nil {
		if vec, err := s.llmClient.CreateEmbedding(ctx, profileEmbeddingText(classification, profile)); err != nil {
			s.logger.Warn("profile embedding failed", zap.Error(err), zap.String("user_id", userID))
		} else if len(vec) > 0 {
			v := pgvector.NewVector(vec)
			result.Embedding = &v
		}
	}

	if err := s.results.Create(ctx, result); err != nil {
		return domain.PersonaResult{}, fmt.Errorf("persist persona result: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, result); err != nil {
			s.logger.Warn("persona cache set failed", zap.Error(err), zap.String("user_id", userID))
		}
	}

	return result, nil
}

// GetLatest devuelve la ultima clasificacion, cache primero y postgres despues.
func (s *PersonaService) GetLatest(ctx context.Context, userID string) (domain.PersonaResult, error) {
	if s.cache != nil {
		if result, ok, err := s.cache.Get(ctx, userID); err != nil {
			s.logger.Warn("persona cache get failed", zap.Error(err), zap.String("user_id", userID))
		} else if ok {
			return result, nil
		}
	}

	result, err := s.results.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PersonaResult{}, ErrNoPersona
		}
		return domain.PersonaResult{}, fmt.Errorf("load persona result: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, result); err != nil {
			s.logger.Warn("persona cache backfill failed", zap.Error(err), zap.String("user_id", userID))
		}
	}

	return result, nil
}

// FindSimilar devuelve los viajeros con perfil conductual mas cercano.
func (s *PersonaService) FindSimilar(ctx context.Context, userID string, k int) ([]domain.PersonaResult, error) {
	results, err := s.results.FindSimilarToUser(ctx, userID, k)
	if err != nil {
		return nil, fmt.Errorf("find similar travelers: %w", err)
	}
	return results, nil
}

// buildBehavioralProfile corre los tres extractores en paralelo.
// No comparten estado: cada goroutine escribe su propio campo.
func buildBehavioralProfile(log domain.EventLog) domain.BehavioralProfile {
	var profile domain.BehavioralProfile

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		profile.TimePatterns = behavior.ExtractTimePatterns(log.Activity())
	}()
	go func() {
		defer wg.Done()
		profile.MicroInteractions = behavior.ExtractMicroInteractions(log.Interactions())
	}()
	go func() {
		defer wg.Done()
		profile.DecisionPatterns = behavior.ExtractDecisionPatterns(log.Choices())
	}()
	wg.Wait()

	return profile
}

// profileEmbeddingText serializa lo esencial del perfil para el embedding.
// Texto corto y estable: mismas entradas producen el mismo vector de busqueda.
func profileEmbeddingText(classification domain.ClassificationResult, profile domain.BehavioralProfile) string {
	parts := []string{"archetype: " + classification.PrimaryArchetype}

	if ph := profile.TimePatterns.PlanningHorizon; ph != nil {
		parts = append(parts, "planning: "+ph.PlanningStyle)
	}
	if sp := profile.TimePatterns.SeasonalPreference; sp != nil {
		parts = append(parts, "season: "+sp.PreferredSeason)
	}
	if u := profile.DecisionPatterns.Uniqueness; u != nil {
		parts = append(parts, "uniqueness: "+u.Category)
	}
	if rt := profile.DecisionPatterns.RiskTolerance; rt != nil {
		parts = append(parts, "risk: "+rt.Category)
	}
	if pq := profile.DecisionPatterns.PriceQuality; pq != nil {
		parts = append(parts, "price-quality: "+pq.Preference)
	}
	if ps := profile.MicroInteractions.PriceSensitivity; ps != nil {
		parts = append(parts, "price-sensitivity: "+ps.Sensitivity)
	}

	return strings.Join(parts, "; ")
}
