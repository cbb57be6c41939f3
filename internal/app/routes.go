package app

import (
	"github.com/MarcoAlber/KanMind/internal/access"
	"github.com/MarcoAlber/KanMind/internal/auth"
	"github.com/MarcoAlber/KanMind/internal/cache"
	"github.com/MarcoAlber/KanMind/internal/config"
	"github.com/MarcoAlber/KanMind/internal/handlers"
	"github.com/MarcoAlber/KanMind/internal/repo"
	"github.com/MarcoAlber/KanMind/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")

	tokenStore := auth.NewStore(rdb, cfg.Auth.TokenTTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	boardRepo := repo.NewPGBoardRepo(db)
	taskRepo := repo.NewPGTaskRepo(db)
	commentRepo := repo.NewPGCommentRepo(db)
	guard := access.NewGuard(boardRepo, taskRepo, commentRepo)
	listCache := cache.NewListCache(rdb, cfg.Redis.DefaultTTL.Duration())

	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(tokenStore, userSvc)

	api.POST("/registration/", authHandler.Register)
	api.POST("/login/", authHandler.Login)

	protected := api.Group("", auth.RequireToken(tokenStore))
	protected.GET("/email-check/", authHandler.EmailCheck)

	boardSvc := service.NewBoardService(boardRepo, taskRepo, guard, listCache)
	boardHandler := handlers.NewBoardHandler(boardSvc)
	registerBoardRoutes(protected, boardHandler)

	taskSvc := service.NewTaskService(taskRepo, userRepo, guard, listCache)
	taskHandler := handlers.NewTaskHandler(taskSvc)
	commentSvc := service.NewCommentService(commentRepo, taskRepo, guard, listCache)
	commentHandler := handlers.NewCommentHandler(commentSvc)
	registerTaskRoutes(protected, taskHandler, commentHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "KanMind API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerBoardRoutes(api *gin.RouterGroup, h *handlers.BoardHandler) {
	api.GET("/boards/", h.List)
	api.POST("/boards/", h.Create)
	api.GET("/boards/:board_id/", h.Get)
	api.PATCH("/boards/:board_id/", h.Update)
	api.DELETE("/boards/:board_id/", h.Delete)
}

func registerTaskRoutes(api *gin.RouterGroup, th *handlers.TaskHandler, ch *handlers.CommentHandler) {
	api.GET("/tasks/assigned-to-me/", th.AssignedToMe)
	api.GET("/tasks/reviewing/", th.Reviewing)
	api.POST("/tasks/", th.Create)
	api.PATCH("/tasks/:task_id/", th.Update)
	api.DELETE("/tasks/:task_id/", th.Delete)
	api.GET("/tasks/:task_id/comments/", ch.List)
	api.POST("/tasks/:task_id/comments/", ch.Create)
	api.DELETE("/tasks/:task_id/comments/:comment_id/", ch.Delete)
}
