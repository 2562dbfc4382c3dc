// Package api 路由装配
package api

import (
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    swaggerFiles "github.com/swaggo/files"
    ginSwagger "github.com/swaggo/gin-swagger"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    _ "github.com/d60-Lab/pressroom/docs"
    "github.com/d60-Lab/pressroom/internal/api/handler"
    "github.com/d60-Lab/pressroom/internal/config"
    "github.com/d60-Lab/pressroom/internal/middleware"
    "github.com/d60-Lab/pressroom/internal/service"
)

// NewRouter 组装 gin 引擎与全部路由
func NewRouter(cfg *config.Config, h *handler.Handler, authSvc *service.AuthService) *gin.Engine {
    gin.SetMode(cfg.Server.Mode)
    r := gin.New()
    r.Use(gin.Logger())
    r.Use(middleware.Recovery())
    r.Use(otelgin.Middleware("pressroom"))
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(middleware.Auth(authSvc))

    r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
    r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

    v1 := r.Group("/api/v1")
    {
        auth := v1.Group("/auth")
        {
            auth.POST("/register", h.Register)
            auth.POST("/login", h.Login)
        }

        posts := v1.Group("/posts")
        {
            posts.GET("", h.ListPosts)
            posts.GET("/:key", h.ShowPost)
            posts.POST("", middleware.RequireActor(), h.CreatePost)
            posts.PUT("/:key", middleware.RequireActor(), h.UpdatePost)
            posts.DELETE("/:key", middleware.RequireActor(), h.DeletePost)
            posts.POST("/:key/publish", middleware.RequireActor(), h.PublishPost)
            posts.POST("/:key/unpublish", middleware.RequireActor(), h.UnpublishPost)
            posts.POST("/:key/comments",
                middleware.RequireActor(),
                middleware.RateLimit(cfg.RateLimit.CommentsPerMinute, cfg.RateLimit.Burst),
                h.CreateComment)
        }

        v1.DELETE("/comments/:id", middleware.RequireActor(), h.DeleteComment)

        admin := v1.Group("/admin", middleware.RequireActor())
        {
            admin.GET("/dashboard", h.Dashboard)
            admin.GET("/users", h.ListUsers)
            admin.PUT("/users/:id/role", h.UpdateUserRole)
            admin.DELETE("/users/:id", h.DeleteUser)
        }
    }
    return r
}
