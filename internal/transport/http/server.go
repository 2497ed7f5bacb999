package http

import (
	"github.com/gin-gonic/gin"

	"genai-chat/internal/ai"
	appsvc "genai-chat/internal/app"
	"genai-chat/internal/bootstrap"
	"genai-chat/internal/pkg/extract"
	rabbitmqClient "genai-chat/internal/platform/rabbitmq"
	"genai-chat/internal/repository"
	"genai-chat/internal/transport/http/handler"
	"genai-chat/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(app.Logger), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	chatRepo := repository.NewChatRepository(app.MySQL, app.Schema)
	sessionRepo := repository.NewSessionRepository(app.MySQL, app.Schema)
	keywordRepo := repository.NewKeywordRepository(app.MySQL)
	cleanupPublisher := rabbitmqClient.NewSessionCleanupPublisher(app.MQConn, app.Config.RabbitMQ.SessionCleanupQueue)

	geminiClient := ai.NewGeminiClient(ai.GeminiConfig{
		BaseURL:           app.Config.LLM.BaseURL,
		APIKey:            app.Config.LLM.APIKey,
		Models:            app.Config.LLM.Models,
		SystemInstruction: app.Config.LLM.SystemInstruction,
	}, app.Logger)

	askService := appsvc.NewAskService(
		geminiClient,
		extract.Extractor{},
		chatRepo,
		sessionRepo,
		keywordRepo,
		app.TurnsCache,
		app.Logger,
		app.Config.LLM.MaxContextTurns,
	)
	sessionService := appsvc.NewSessionService(sessionRepo, chatRepo, app.TurnsCache, cleanupPublisher, app.Logger)
	chatService := appsvc.NewChatService(chatRepo)
	keywordService := appsvc.NewKeywordService(keywordRepo)

	aiHandler := handler.NewAIHandler(askService, app.Config.Upload.Dir)
	sessionHandler := handler.NewSessionHandler(sessionService)
	chatHandler := handler.NewChatHandler(chatService)
	keywordHandler := handler.NewKeywordHandler(keywordService)

	v1 := router.Group("/api/v1")

	aiGroup := v1.Group("/ai")
	aiGroup.POST("/text", aiHandler.AskText)
	aiGroup.POST("/file", aiHandler.AskFile)

	chatGroup := v1.Group("/chats")
	chatGroup.GET("", chatHandler.List)
	chatGroup.GET("/:id", chatHandler.Get)
	chatGroup.POST("", chatHandler.Create)
	chatGroup.GET("/keyword/:keywordId", chatHandler.ListByKeyword)
	chatGroup.DELETE("/:id", chatHandler.Delete)

	sessionGroup := v1.Group("/sessions")
	sessionGroup.GET("", sessionHandler.List)
	sessionGroup.GET("/:id", sessionHandler.Get)
	sessionGroup.POST("", sessionHandler.Create)
	sessionGroup.PUT("/:id", sessionHandler.Rename)
	sessionGroup.DELETE("/:id", sessionHandler.Delete)
	sessionGroup.POST("/:id/chats", sessionHandler.AddChat)

	keywordGroup := v1.Group("/keywords")
	keywordGroup.GET("", keywordHandler.List)
	keywordGroup.GET("/search", keywordHandler.Search)
	keywordGroup.GET("/:id", keywordHandler.Get)
	keywordGroup.POST("", keywordHandler.Create)
	keywordGroup.PUT("/:id", keywordHandler.Update)
	keywordGroup.DELETE("/:id", keywordHandler.Delete)

	return router
}
