package routes

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mzhao28/commune/config"
	"github.com/mzhao28/commune/controllers"
	"github.com/mzhao28/commune/middleware"
	"github.com/mzhao28/commune/services"
	"github.com/mzhao28/commune/utils"
)

// SetupRouter wires routes, middlewares, services, and controllers.
func SetupRouter(cfg config.AppConfig, db *gorm.DB) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())

	// Access log goes to its own rolling file, separate from the app log
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	tokens := utils.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	revoked := utils.NewTokenStore(utils.NewRedisClient(
		net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		cfg.RedisPassword,
		cfg.RedisDB,
	))

	identity := services.NewIdentityStore(db)
	communitySvc := services.NewCommunityService(db, services.NewSlugAllocator(cfg.SlugMaxAttempts))
	likeSvc := services.NewLikeService(db)
	agg := services.NewAggregator(db)

	authController := controllers.NewAuthController(identity, tokens, revoked)
	communityController := controllers.NewCommunityController(db, communitySvc, agg)
	postController := controllers.NewPostController(db, agg, likeSvc)
	commentController := controllers.NewCommentController(db)
	statsController := controllers.NewStatsController(db)

	authRequired := middleware.AuthRequired(tokens, revoked)
	authOptional := middleware.AuthOptional(tokens, revoked)
	rateLimited := middleware.RateLimit(cfg.RateLimitPerMinute)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(rateLimited)
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", authRequired, authController.Logout)
	authGroup.GET("/me", authRequired, authController.Me)

	// Optional-auth reads: projections depend on the viewer when present
	api.GET("/posts", authOptional, postController.List)
	api.GET("/posts/announcements", authOptional, postController.Announcements)
	api.GET("/posts/:id", authOptional, postController.Get)
	api.GET("/posts/:id/comments", commentController.ListForPost)
	api.GET("/communities", authOptional, communityController.List)
	api.GET("/communities/by-slug/:slug", authOptional, communityController.GetBySlug)
	api.GET("/communities/:id/posts", authOptional, communityController.ListPosts)
	api.GET("/users/:id", authController.GetUserPublic)
	api.GET("/users/:id/posts", authOptional, postController.ListUserPosts)
	api.GET("/stats", statsController.GetStats)

	protected := api.Group("")
	protected.Use(authRequired, rateLimited)
	protected.POST("/posts", postController.Create)
	protected.PUT("/posts/:id", postController.Update)
	protected.DELETE("/posts/:id", postController.Delete)
	protected.POST("/posts/:id/like", postController.Like)
	protected.DELETE("/posts/:id/like", postController.Unlike)
	protected.POST("/posts/:id/comments", commentController.Create)
	protected.PUT("/comments/:id", commentController.Update)
	protected.DELETE("/comments/:id", commentController.Delete)
	protected.POST("/communities", communityController.Create)
	protected.GET("/communities/my", communityController.ListMine)
	protected.GET("/communities/owned", communityController.ListOwned)
	protected.PUT("/communities/:id", communityController.Update)
	protected.DELETE("/communities/:id", communityController.Delete)
	protected.POST("/communities/:id/members", communityController.Join)
	protected.DELETE("/communities/:id/members", communityController.Leave)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "not_found", "route not found")
	})

	return r
}
