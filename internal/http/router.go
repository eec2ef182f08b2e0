package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travel-persona/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	personaH *PersonaHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthH.Health)

	users := r.Group("/users")
	users.POST("", userH.Register)

	auth := r.Group("/auth")
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.RefreshToken)
	auth.POST("/logout", userH.Logout)

	// Todo lo que toca la clasificacion del usuario requiere access token.
	persona := r.Group("/persona")
	persona.Use(JWTAuthMiddleware(jwtSvc))
	persona.POST("/classify", personaH.Classify)
	persona.GET("", personaH.GetPersona)
	persona.GET("/similar", personaH.GetSimilar)
	persona.GET("/reports", personaH.GetReports)

	// Lecturas administrativas sobre cualquier usuario.
	admin := r.Group("/admin")
	admin.Use(JWTAuthMiddleware(jwtSvc), RequireAdmin())
	admin.GET("/persona/:user_id", personaH.GetPersonaForUser)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
