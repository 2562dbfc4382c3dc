package main

import (
    "context"
    "errors"
    "flag"
    "fmt"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/d60-Lab/pressroom/internal/api"
    "github.com/d60-Lab/pressroom/internal/api/handler"
    "github.com/d60-Lab/pressroom/internal/config"
    "github.com/d60-Lab/pressroom/internal/database"
    "github.com/d60-Lab/pressroom/internal/policy"
    "github.com/d60-Lab/pressroom/internal/repository"
    "github.com/d60-Lab/pressroom/internal/service"
    "github.com/d60-Lab/pressroom/internal/telemetry"
    "github.com/d60-Lab/pressroom/pkg/logger"
)

// @title Pressroom API
// @version 1.0
// @description Multi-author publishing service
func main() {
    configPath := flag.String("config", "config.yaml", "配置文件路径")
    flag.Parse()

    cfg, err := config.Load(*configPath)
    if err != nil {
        fmt.Fprintln(os.Stderr, "load config:", err)
        os.Exit(1)
    }
    if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
        fmt.Fprintln(os.Stderr, "init logger:", err)
        os.Exit(1)
    }
    defer logger.Sync()

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
    if err != nil {
        logger.Error("init telemetry", zap.Error(err))
        os.Exit(1)
    }

    db, err := database.Open(cfg.Database)
    if err != nil {
        logger.Error("open database", zap.Error(err))
        os.Exit(1)
    }
    if err := database.Migrate(db); err != nil {
        logger.Error("migrate database", zap.Error(err))
        os.Exit(1)
    }

    var rdb *redis.Client
    if cfg.Redis.Enabled {
        rdb = redis.NewClient(&redis.Options{
            Addr:     cfg.Redis.Addr,
            Password: cfg.Redis.Password,
            DB:       cfg.Redis.DB,
        })
        if err := rdb.Ping(ctx).Err(); err != nil {
            logger.Error("ping redis", zap.Error(err))
            os.Exit(1)
        }
    }

    userRepo := repository.NewUserRepository(db)
    postRepo := repository.NewPostRepository(db)
    commentRepo := repository.NewCommentRepository(db)

    notifier := service.NewNotifier(service.LogMailer{}, cfg.Notifier.QueueSize)
    stopNotifier := notifier.Start(cfg.Notifier.Workers)
    broadcaster := service.NewStatusBroadcaster(rdb)

    policies := policy.NewEngine(policy.Config{DeleteRequiresAdmin: cfg.Policy.DeleteRequiresAdmin})
    authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
    postSvc := service.NewPostService(postRepo, broadcaster)
    cmtSvc := service.NewCommentService(commentRepo, userRepo, notifier, cfg.Spam.Keywords)
    adminSvc := service.NewAdminService(userRepo, postRepo, commentRepo)

    if cfg.Admin.Email != "" {
        admin, err := authSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password)
        if err != nil {
            logger.Error("seed admin", zap.Error(err))
            os.Exit(1)
        }
        logger.Info("admin ensured", zap.String("email", admin.Email))
    }

    h := handler.New(policies, authSvc, postSvc, cmtSvc, adminSvc, postRepo, commentRepo)
    router := api.NewRouter(cfg, h, authSvc)

    srv := &http.Server{
        Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
        Handler:           router,
        ReadHeaderTimeout: 10 * time.Second,
    }

    go func() {
        logger.Info("server listening", zap.Int("port", cfg.Server.Port))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Error("listen", zap.Error(err))
            stop()
        }
    }()

    <-ctx.Done()
    logger.Info("shutting down")

    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Warn("server shutdown", zap.Error(err))
    }
    if err := stopNotifier(shutdownCtx); err != nil {
        logger.Warn("notifier shutdown", zap.Error(err))
    }
    if rdb != nil {
        _ = rdb.Close()
    }
    if err := shutdownTelemetry(shutdownCtx); err != nil {
        logger.Warn("telemetry shutdown", zap.Error(err))
    }
}
