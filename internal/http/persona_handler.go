package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travel-persona/internal/service"
)

const (
	defaultSimilarCount = 5
	maxSimilarCount     = 20
)

// PersonaHandler expone la clasificacion conductual del usuario autenticado.
type PersonaHandler struct {
	logger      *zap.Logger
	personaServ *service.PersonaService
}

func NewPersonaHandler(logger *zap.Logger, personaServ *service.PersonaService) *PersonaHandler {
	return &PersonaHandler{
		logger:      logger,
		personaServ: personaServ,
	}
}

// Classify maneja POST /persona/classify: corre el pipeline completo y
// devuelve la clasificacion recien persistida.
func (h *PersonaHandler) Classify(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	result, err := h.personaServ.ClassifyUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("classification failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not classify user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"persona": result})
}

// GetPersona maneja GET /persona: ultima clasificacion, cache primero.
func (h *PersonaHandler) GetPersona(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	result, err := h.personaServ.GetLatest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoPersona) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no classification yet"})
			return
		}
		h.logger.Error("get persona failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load persona"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"persona": result})
}

// GetSimilar maneja GET /persona/similar?k=N: viajeros con perfil cercano.
func (h *PersonaHandler) GetSimilar(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	k := defaultSimilarCount
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid k"})
			return
		}
		k = parsed
	}
	if k > maxSimilarCount {
		k = maxSimilarCount
	}

	results, err := h.personaServ.FindSimilar(c.Request.Context(), userID, k)
	if err != nil {
		h.logger.Error("find similar failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not find similar travelers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"similar": results})
}

// GetPersonaForUser maneja GET /admin/persona/:user_id: lectura administrativa
// de la ultima clasificacion de cualquier usuario.
func (h *PersonaHandler) GetPersonaForUser(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user id"})
		return
	}

	result, err := h.personaServ.GetLatest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoPersona) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no classification yet"})
			return
		}
		h.logger.Error("admin persona lookup failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load persona"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"persona": result})
}

// GetReports maneja GET /persona/reports: solo los tres reportes conductuales
// de la ultima clasificacion, sin el arquetipo.
func (h *PersonaHandler) GetReports(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	result, err := h.personaServ.GetLatest(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoPersona) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no classification yet"})
			return
		}
		h.logger.Error("get reports failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"time_patterns":      result.Profile.TimePatterns,
		"micro_interactions": result.Profile.MicroInteractions,
		"decision_patterns":  result.Profile.DecisionPatterns,
		"generated_at":       result.CreatedAt,
	})
}
