// @title LectoQuiz API
// @version 1.0
// @description Generates question sets from lecture material with an LLM, stores them, and grades submissions.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lectoquiz/internal/adapter"
	"lectoquiz/internal/adapter/llmgen"
	"lectoquiz/internal/adapter/storage"
	"lectoquiz/internal/cache"
	"lectoquiz/internal/config"
	"lectoquiz/internal/database"
	"lectoquiz/internal/handler"
	"lectoquiz/internal/logger"
	"lectoquiz/internal/middleware"
	"lectoquiz/internal/repository"
	"lectoquiz/internal/service"

	_ "lectoquiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM-backed text generator
	generator, err := llmgen.NewOllama(cfg.LLM.ServerURL, cfg.LLM.Model, cfg.LLM.Timeout)
	if err != nil {
		appLogger.Fatal("Failed to create LLM generator", zap.Error(err))
	}

	// Database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	qaSetRepository := repository.NewQASetDatabaseAdapter(db)

	// Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Object storage for lecture document uploads
	minioStorage, err := storage.NewMinioStorage(cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to create object storage client", zap.Error(err))
	}

	// Services
	qaSetService := service.NewQASetService(qaSetRepository, generator, cacheAdapter, cfg)
	uploadService := service.NewUploadService(minioStorage, cacheAdapter, cfg)
	documentWorker := service.NewDocumentWorker(redisClient, cfg.Storage.EventChannel, uploadService, qaSetService)

	// Handlers
	qaSetHandler := handler.NewQASetHandler(qaSetService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")
	apiGroup.Post("/generate", qaSetHandler.Generate)
	apiGroup.Post("/uploads", uploadHandler.IssueUploadURL)
	apiGroup.Get("/qas", qaSetHandler.List)
	apiGroup.Get("/qas/:id", qaSetHandler.Get)
	apiGroup.Delete("/qas/:id", qaSetHandler.Delete)
	apiGroup.Post("/qas/:id/submit", qaSetHandler.Submit)

	// Run the HTTP server and the document worker side by side; either one
	// failing takes the process down.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})

	g.Go(func() error {
		err := documentWorker.Run(gCtx)
		if err == context.Canceled {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Fatal("Server terminated with error", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
