// @title Pariksha API
// @version 1.0
// @description Bilingual exam preparation API: quizzes, subscriptions, and the ask-teacher channel.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pariksha/internal/adapter"
	"pariksha/internal/adapter/translate"
	"pariksha/internal/cache"
	"pariksha/internal/config"
	"pariksha/internal/database"
	"pariksha/internal/domain"
	"pariksha/internal/handler"
	"pariksha/internal/logger"
	"pariksha/internal/middleware"
	"pariksha/internal/repository"
	"pariksha/internal/service"

	_ "pariksha/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
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

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	profileRepository := repository.NewSQLXProfileRepository(db)
	questionRepository := repository.NewSQLXQuestionRepository(db)
	resultRepository := repository.NewSQLXResultRepository(db)
	teacherRepository := repository.NewSQLXTeacherQuestionRepository(db)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("Successfully connected to Redis")

	// Translator is optional: without it, staff must author both language
	// blocks by hand.
	var translator domain.Translator
	if cfg.Translator.ServerURL != "" {
		translator, err = translate.NewOllamaTranslator(cfg.Translator.ServerURL, cfg.Translator.Model)
		if err != nil {
			appLogger.Fatal("Failed to create translator", zap.Error(err))
		}
		appLogger.Info("Translator initialized",
			zap.String("server_url", cfg.Translator.ServerURL),
			zap.String("model", cfg.Translator.Model))
	} else {
		appLogger.Info("Translator not configured; question translation disabled")
	}

	// Initialize services
	quotaService := service.NewQuotaService(profileRepository, cfg.Quota)
	subscriptionService := service.NewSubscriptionService(profileRepository)
	quizService := service.NewQuizService(questionRepository, resultRepository, quotaService, cacheAdapter, cfg.Cache)
	teacherService := service.NewTeacherService(teacherRepository, profileRepository, quotaService)
	userService := service.NewUserService(profileRepository, teacherRepository, subscriptionService, quotaService)
	questionService := service.NewQuestionService(questionRepository, translator)

	authService, err := service.NewAuthService(profileRepository, subscriptionService, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	quizHandler := handler.NewQuizHandler(quizService, profileRepository)
	userHandler := handler.NewUserHandler(userService, subscriptionService)
	teacherHandler := handler.NewTeacherHandler(teacherService, profileRepository)
	adminHandler := handler.NewAdminHandler(userService, subscriptionService, teacherService, questionService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// Quiz routes: start and submit also work for guests
	quizGroup := apiGroup.Group("/quiz")
	quizGroup.Get("/categories", quizHandler.GetCategories)
	quizGroup.Get("/start", middleware.OptionalAuth(authService), quizHandler.StartQuiz)
	quizGroup.Post("/submit", middleware.OptionalAuth(authService), quizHandler.SubmitQuiz)
	quizGroup.Get("/history", middleware.Protected(authService), quizHandler.GetHistory)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Post("/me/upgrade", userHandler.RequestUpgrade)
	userGroup.Post("/me/notifications/clear", userHandler.ClearNotifications)

	// Teacher channel (all protected)
	teacherGroup := apiGroup.Group("/teacher", middleware.Protected(authService))
	teacherGroup.Post("/questions", teacherHandler.Ask)
	teacherGroup.Get("/questions", teacherHandler.MyQuestions)

	// Staff surfaces
	adminGroup := apiGroup.Group("/admin", middleware.Protected(authService), middleware.AdminOnly(profileRepository))
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Post("/users/:id/validate", adminHandler.ValidateUser)
	adminGroup.Post("/users/:id/invalidate", adminHandler.InvalidateUser)
	adminGroup.Get("/teacher-questions", adminHandler.PendingTeacherQuestions)
	adminGroup.Post("/teacher-questions/:id/answer", adminHandler.AnswerTeacherQuestion)
	adminGroup.Post("/teacher-questions/:id/reject", adminHandler.RejectTeacherQuestion)
	adminGroup.Post("/questions", adminHandler.CreateQuestion)
	adminGroup.Get("/questions/:id", adminHandler.GetQuestion)
	adminGroup.Put("/questions/:id", adminHandler.UpdateQuestion)
	adminGroup.Delete("/questions/:id", adminHandler.DeleteQuestion)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
