package main

import (
	"context"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agoranews/comment-gateway/internal/cache"
	"github.com/agoranews/comment-gateway/internal/client"
	"github.com/agoranews/comment-gateway/internal/config"
	"github.com/agoranews/comment-gateway/internal/handler"
	"github.com/agoranews/comment-gateway/internal/logger"
	"github.com/agoranews/comment-gateway/internal/service"
)

// @title Comment Gateway API
// @version 1.0
// @description Thread gateway for the news-and-debate front-end: nested comment forests reconciled against the remote comment API.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env는 로컬 개발용, 없는 경우 무시
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	listCache, err := cache.NewListCache(cfg.Cache)
	if err != nil {
		log.Fatal("failed to initialize list cache", zap.Error(err))
	}
	if listCache != nil {
		defer listCache.Close()
		log.Info("list cache enabled", zap.String("addr", cfg.Cache.RedisAddr))
	}

	var verifier *oidc.IDTokenVerifier
	if cfg.Auth.OIDCIssuer != "" {
		provider, err := oidc.NewProvider(context.Background(), cfg.Auth.OIDCIssuer)
		if err != nil {
			log.Fatal("failed to reach OIDC issuer", zap.Error(err))
		}
		verifier = provider.Verifier(&oidc.Config{ClientID: cfg.Auth.OIDCClientID})
		log.Info("edge token verification enabled", zap.String("issuer", cfg.Auth.OIDCIssuer))
	}

	session := client.NewSessionSource(cfg.Auth)
	if session != nil {
		log.Info("gateway-held session enabled")
	}

	commentAPI := client.NewCommentAPIClient(cfg.CommentAPI)
	registry := service.NewThreadRegistry(commentAPI, listCache, session, log)
	threads := handler.NewThreadHandler(registry, log)

	router := gin.Default()
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.CORSMiddleware(strings.Split(cfg.Server.AllowedOrigins, ","), cfg.Server.AllowCredentials == "true"))
	router.Use(handler.BearerMiddleware(verifier))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/threads/:subject/comments", threads.GetThread)
		v1.POST("/threads/:subject/comments", threads.CreateComment)
		v1.PATCH("/threads/:subject/comments/:id", threads.EditComment)
		v1.DELETE("/threads/:subject/comments/:id", threads.DeleteComment)
		v1.POST("/threads/:subject/comments/:id/reaction", threads.ReactToComment)
		v1.DELETE("/threads/:subject/comments/:id/reaction", threads.ClearReaction)
		v1.POST("/threads/:subject/comments/:id/report", threads.ReportComment)
	}

	log.Info("comment gateway listening",
		zap.String("port", cfg.Server.Port),
		zap.String("comment_api", cfg.CommentAPI.BaseURL))

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
