package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "cvboost/internal/app"
	"cvboost/internal/bootstrap"
	"cvboost/internal/cache"
	"cvboost/internal/repository"
	"cvboost/internal/transport/http/handler"
	"cvboost/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	sessionRepo := repository.NewSessionRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)
	contactRepo := repository.NewContactRepository(app.MySQL)
	consultationRepo := repository.NewConsultationRepository(app.MySQL)

	transcriptCache := cache.NewTranscriptCache(
		app.Redis,
		time.Duration(app.Config.Redis.TranscriptTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.TranscriptDirtyTTLSeconds)*time.Second,
	)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	optimizerService := appsvc.NewOptimizerService(
		sessionRepo,
		messageRepo,
		app.Workflow,
		transcriptCache,
		app.Config.MaxUploadBytes(),
	)
	creatorService := appsvc.NewCreatorService(app.Workflow)
	analysisService := appsvc.NewAnalysisService(app.Workflow)
	inboxService := appsvc.NewInboxService(
		contactRepo,
		consultationRepo,
		userRepo,
		app.SubmissionPublisher,
	)

	authHandler := handler.NewAuthHandler(authService)
	optimizerHandler := handler.NewOptimizerHandler(optimizerService, app.Config.MaxUploadBytes())
	creatorHandler := handler.NewCreatorHandler(creatorService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	inboxHandler := handler.NewInboxHandler(inboxService)
	adminHandler := handler.NewAdminHandler(inboxService)

	authJWT := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authJWT, authHandler.Me)

	cvGroup := v1.Group("/cv")
	cvGroup.Use(authJWT)
	cvGroup.POST("/upload", optimizerHandler.Upload)
	cvGroup.GET("/session", optimizerHandler.Session)
	cvGroup.POST("/messages", optimizerHandler.Send)
	cvGroup.POST("/finalize", optimizerHandler.Finalize)
	cvGroup.POST("/reset", optimizerHandler.Reset)
	cvGroup.GET("/history", optimizerHandler.History)
	cvGroup.POST("/generate", creatorHandler.Generate)

	analysisGroup := v1.Group("/analysis")
	analysisGroup.Use(authJWT)
	analysisGroup.POST("/business", analysisHandler.Analyze)
	analysisGroup.POST("/compare", analysisHandler.Compare)

	v1.POST("/contact", inboxHandler.Contact)
	v1.POST("/consultations", authJWT, inboxHandler.RequestConsultation)

	adminGroup := v1.Group("/admin")
	adminGroup.Use(authJWT, middleware.RequireAdmin())
	adminGroup.GET("/consultations", adminHandler.ListConsultations)
	adminGroup.PATCH("/consultations/:id", adminHandler.UpdateConsultation)
	adminGroup.GET("/stats", adminHandler.Stats)

	return router
}
