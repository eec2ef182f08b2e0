package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"travel-persona/internal/domain"
	"travel-persona/internal/service"
)

type mockEventRepo struct {
	log domain.EventLog
}

func (m *mockEventRepo) LoadEventLog(context.Context, string) (domain.EventLog, error) {
	return m.log, nil
}

type mockTraitRepo struct {
	traits []domain.Trait
}

func (m *mockTraitRepo) Upsert(context.Context, domain.Trait) error { return nil }

func (m *mockTraitRepo) FindByUserID(context.Context, string) ([]domain.Trait, error) {
	return m.traits, nil
}

type mockResultRepo struct {
	created []domain.PersonaResult
	similar []domain.PersonaResult
}

func (m *mockResultRepo) Create(_ context.Context, result domain.PersonaResult) error {
	m.created = append(m.created, result)
	return nil
}

func (m *mockResultRepo) GetLatestByUserID(context.Context, string) (domain.PersonaResult, error) {
	if len(m.created) == 0 {
		return domain.PersonaResult{}, pgx.ErrNoRows
	}
	return m.created[len(m.created)-1], nil
}

func (m *mockResultRepo) FindSimilarToUser(context.Context, string, int) ([]domain.PersonaResult, error) {
	return m.similar, nil
}

func setupPersonaRouter(t *testing.T, events *mockEventRepo, traits *mockTraitRepo, results *mockResultRepo) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	personaSvc := service.NewPersonaService(logger, events, traits, results, nil, nil, nil)
	jwtSvc := service.NewJWTService("test-secret", 15*time.Minute, 30*time.Minute)
	pair, err := jwtSvc.GeneratePair(domain.User{ID: "u1", Email: "user@example.com"})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	h := NewPersonaHandler(logger, personaSvc)
	r := gin.New()
	persona := r.Group("/persona")
	persona.Use(JWTAuthMiddleware(jwtSvc))
	persona.POST("/classify", h.Classify)
	persona.GET("", h.GetPersona)
	persona.GET("/similar", h.GetSimilar)
	persona.GET("/reports", h.GetReports)

	return r, pair.AccessToken
}

func performAuthedRequest(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func explorerTraits() []domain.Trait {
	return []domain.Trait{
		{Trait: domain.TraitOpenness, Value: 85},
		{Trait: domain.TraitConscientiousness, Value: 30},
		{Trait: domain.TraitExtraversion, Value: 20},
		{Trait: domain.TraitAgreeableness, Value: 40},
		{Trait: domain.TraitNeuroticism, Value: 15},
	}
}

func TestPersonaHandlerClassify_Success(t *testing.T) {
	results := &mockResultRepo{}
	r, token := setupPersonaRouter(t, &mockEventRepo{}, &mockTraitRepo{traits: explorerTraits()}, results)

	rec := performAuthedRequest(r, http.MethodPost, "/persona/classify", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Persona domain.PersonaResult `json:"persona"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Persona.Classification.PrimaryArchetype != "Explorer" {
		t.Fatalf("expected Explorer, got %q", resp.Persona.Classification.PrimaryArchetype)
	}
	if resp.Persona.UserID != "u1" {
		t.Fatalf("expected persona for authenticated user, got %q", resp.Persona.UserID)
	}
	if len(results.created) != 1 {
		t.Fatalf("expected one persisted result, got %d", len(results.created))
	}
}

func TestPersonaHandlerClassify_RequiresToken(t *testing.T) {
	r, _ := setupPersonaRouter(t, &mockEventRepo{}, &mockTraitRepo{}, &mockResultRepo{})

	req := httptest.NewRequest(http.MethodPost, "/persona/classify", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestPersonaHandlerGetPersona_NotFoundBeforeClassification(t *testing.T) {
	r, token := setupPersonaRouter(t, &mockEventRepo{}, &mockTraitRepo{}, &mockResultRepo{})

	rec := performAuthedRequest(r, http.MethodGet, "/persona", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any classification, got %d", rec.Code)
	}
}

func TestPersonaHandlerGetPersona_AfterClassify(t *testing.T) {
	results := &mockResultRepo{}
	r, token := setupPersonaRouter(t, &mockEventRepo{}, &mockTraitRepo{traits: explorerTraits()}, results)

	rec := performAuthedRequest(r, http.MethodPost, "/persona/classify", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("classify failed: %d", rec.Code)
	}

	rec = performAuthedRequest(r, http.MethodGet, "/persona", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after classification, got %d", rec.Code)
	}
}

func TestPersonaHandlerGetSimilar_InvalidK(t *testing.T) {
	r, token := setupPersonaRouter(t, &mockEventRepo{}, &mockTraitRepo{}, &mockResultRepo{})

	rec := performAuthedRequest(r, http.MethodGet, "/persona/similar?k=cero", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid k, got %d", rec.Code)
	}

	rec = performAuthedRequest(r, http.MethodGet, "/persona/similar?k=0", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for k=0, got %d", rec.Code)
	}
}

func TestPersonaHandlerGetSimilar_ReturnsNeighbors(t *testing.T) {
	results := &mockResultRepo{similar: []domain.PersonaResult{
		{ID: "r2", UserID: "u2"},
		{ID: "r3", UserID: "u3"},
	}}
	r, token := setupPersonaRouter(t, &mockEventRepo{}, &mockTraitRepo{}, results)

	rec := performAuthedRequest(r, http.MethodGet, "/persona/similar?k=2", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Similar []domain.PersonaResult `json:"similar"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Similar) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(resp.Similar))
	}
}

func TestPersonaHandlerAdminLookup_ReadsAnyUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	results := &mockResultRepo{created: []domain.PersonaResult{{ID: "r1", UserID: "u7"}}}
	personaSvc := service.NewPersonaService(logger, &mockEventRepo{}, &mockTraitRepo{}, results, nil, nil, nil)
	jwtSvc := service.NewJWTService("test-secret", 15*time.Minute, 30*time.Minute)

	adminPair, err := jwtSvc.GeneratePair(domain.User{ID: "a1", Email: "admin@example.com", IsAdmin: true})
	if err != nil {
		t.Fatalf("generate admin pair: %v", err)
	}
	userPair, err := jwtSvc.GeneratePair(domain.User{ID: "u1", Email: "user@example.com"})
	if err != nil {
		t.Fatalf("generate user pair: %v", err)
	}

	h := NewPersonaHandler(logger, personaSvc)
	r := gin.New()
	admin := r.Group("/admin")
	admin.Use(JWTAuthMiddleware(jwtSvc), RequireAdmin())
	admin.GET("/persona/:user_id", h.GetPersonaForUser)

	rec := performAuthedRequest(r, http.MethodGet, "/admin/persona/u7", adminPair.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin lookup, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Persona domain.PersonaResult `json:"persona"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Persona.UserID != "u7" {
		t.Fatalf("expected persona for requested user, got %q", resp.Persona.UserID)
	}

	rec = performAuthedRequest(r, http.MethodGet, "/admin/persona/u7", userPair.AccessToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestPersonaHandlerGetReports_ExposesProfileOnly(t *testing.T) {
	results := &mockResultRepo{}
	events := &mockEventRepo{log: domain.EventLog{
		Bookings: []domain.Booking{
			{PropertyID: "p1", BookingDate: "2024-06-01T10:00", CheckIn: "2024-06-10", CheckOut: "2024-06-12", PropertyType: "hotel", Destination: "Roma", Rating: 4.2, Price: 200},
		},
	}}
	r, token := setupPersonaRouter(t, events, &mockTraitRepo{traits: explorerTraits()}, results)

	rec := performAuthedRequest(r, http.MethodPost, "/persona/classify", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("classify failed: %d", rec.Code)
	}

	rec = performAuthedRequest(r, http.MethodGet, "/persona/reports", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"time_patterns", "micro_interactions", "decision_patterns", "generated_at"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("expected key %q in reports payload", key)
		}
	}
	if _, ok := resp["classification"]; ok {
		t.Fatalf("reports payload must not include the classification")
	}
}
