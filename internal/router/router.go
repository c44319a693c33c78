package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ecuaforma/simulador-backend/internal/config"
	"github.com/ecuaforma/simulador-backend/internal/handler"
	"github.com/ecuaforma/simulador-backend/internal/middleware"
	"github.com/ecuaforma/simulador-backend/internal/response"
	"github.com/ecuaforma/simulador-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	Quiz      *handler.QuizHandler
	Simulator *handler.SimulatorHandler
	Question  *handler.QuestionHandler
	Result    *handler.ResultHandler
	Media     *handler.MediaHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded question images statically with aggressive caching
	// (1 year); filenames are UUIDs, so contents never change under a URL.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
		auth.GET("/google", handlers.Auth.GoogleLogin)
		auth.GET("/google/callback", handlers.Auth.GoogleCallback)
	}

	// ─── 2. Catalog Group (Public, Optional JWT) ───────────────────────
	// Visibility depends on who is asking: anonymous callers see public
	// simulators only, signed-in candidates also see their grants.
	catalog := router.Group("/api/v1")
	catalog.Use(middleware.OptionalUserJWT(authService))
	{
		catalog.GET("/catalogo/instituciones", handlers.Catalog.Institutions)
		catalog.GET("/catalogo/instituciones/:institucion/categorias", handlers.Catalog.Categories)
		catalog.GET("/catalogo/instituciones/:institucion/categorias/:categoria/materias", handlers.Catalog.Subjects)
		catalog.GET("/catalogo/instituciones/:institucion/categorias/:categoria/materias/:materia/simuladores", handlers.Catalog.Simulators)
		catalog.GET("/simuladores/:slug", handlers.Catalog.GetSimulator)
		catalog.GET("/sitemap", handlers.Catalog.Sitemap)
	}

	// ─── 3. Quiz Group (Public, Optional JWT) ──────────────────────────
	// Anonymous attempts are allowed; only signed-in attempts are recorded.
	quizAPI := router.Group("/api/v1/quiz")
	quizAPI.Use(middleware.OptionalUserJWT(authService))
	{
		quizAPI.POST("/:slug/start", handlers.Quiz.Start)
		quizAPI.GET("/sessions/:id", handlers.Quiz.Get)
		quizAPI.POST("/sessions/:id/select", handlers.Quiz.Select)
		quizAPI.POST("/sessions/:id/verify", handlers.Quiz.Verify)
		quizAPI.POST("/sessions/:id/advance", handlers.Quiz.Advance)
		quizAPI.POST("/sessions/:id/restart", handlers.Quiz.Restart)
	}

	// ─── 4. Candidate Group (JWT) ──────────────────────────────────────
	me := router.Group("/api/v1/me")
	me.Use(middleware.RequireUserJWT(authService))
	{
		me.GET("", handlers.Auth.Me)
		me.GET("/historial", handlers.Result.History)
		me.GET("/cursos", handlers.Catalog.MyCourses)
	}

	// ─── 5. Admin Group (Admin JWT) ────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.GET("/simuladores", handlers.Simulator.List)
		adminAPI.POST("/simuladores", handlers.Simulator.Create)
		adminAPI.DELETE("/simuladores/:id", handlers.Simulator.Delete)

		adminAPI.GET("/simuladores/:id/preguntas", handlers.Question.List)
		adminAPI.POST("/simuladores/:id/preguntas", handlers.Question.Create)
		adminAPI.DELETE("/simuladores/:id/preguntas/:pregunta_id", handlers.Question.Delete)
		adminAPI.PUT("/simuladores/:id/preguntas/:pregunta_id/posicion", handlers.Question.Move)

		adminAPI.POST("/media/upload", handlers.Media.UploadMedia)
	}

	return router
}
