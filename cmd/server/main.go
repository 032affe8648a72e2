// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-sales-go/internal/config"
	"ai-sales-go/internal/handler"
	"ai-sales-go/internal/middleware"
	"ai-sales-go/internal/model"
	"ai-sales-go/internal/pipeline"
	"ai-sales-go/internal/realtime"
	"ai-sales-go/internal/repository"
	"ai-sales-go/internal/service"
	"ai-sales-go/pkg/calendar"
	"ai-sales-go/pkg/database"
	"ai-sales-go/pkg/es"
	"ai-sales-go/pkg/kafka"
	"ai-sales-go/pkg/llm"
	"ai-sales-go/pkg/log"
	"ai-sales-go/pkg/storage"
	"ai-sales-go/pkg/token"
	"ai-sales-go/pkg/transcribe"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库和外部依赖
	database.InitMySQL(cfg.Database.MySQL.DSN)
	if err := database.DB.AutoMigrate(
		&model.User{},
		&model.Conversation{},
		&model.Meeting{},
		&model.Transcript{},
	); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化 Repository
	userRepository := repository.NewUserRepository(database.DB)
	conversationRepo := repository.NewConversationRepository(database.DB, database.RDB)
	meetingRepo := repository.NewMeetingRepository(database.DB)
	transcriptRepo := repository.NewTranscriptRepository(database.DB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	rtcBuilder := token.NewRTCTokenBuilder(cfg.RTC.AppID, cfg.RTC.Secret, cfg.RTC.ExpireSeconds)
	llmClient := llm.NewClient(cfg.LLM)
	calendarClient := calendar.NewClient(cfg.Google, userRepository)
	transcribeClient := transcribe.NewClient(cfg.Transcription)
	hub := realtime.NewHub()

	userService := service.NewUserService(userRepository, jwtManager)
	chatService := service.NewChatService(llmClient, conversationRepo, kafka.PublishConversationAnnotated, hub)
	conversationService := service.NewConversationService(conversationRepo)
	meetingService := service.NewMeetingService(meetingRepo, calendarClient)
	transcribeService := service.NewTranscribeService(transcriptRepo, transcribeClient, storage.NewBucketStore(cfg.MinIO.BucketName))

	// 6. 启动后台 Kafka 消费者，将标注事件写入 Elasticsearch
	indexer := pipeline.NewIndexer(cfg.Elasticsearch)
	go kafka.StartConsumer(cfg.Kafka, indexer)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 8. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewAuthHandler(userService).RefreshToken)

			// Google OAuth 授权流程；回调由 Google 调用，不走登录态
			auth.GET("/google/callback", handler.NewGoogleHandler(calendarClient, userService).Callback)
			google := auth.Group("/google")
			google.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				google.GET("", handler.NewGoogleHandler(calendarClient, userService).Authorize)
				google.GET("/status", handler.NewGoogleHandler(calendarClient, userService).Status)
			}
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", handler.NewUserHandler(userService).Register)
			users.POST("/login", handler.NewUserHandler(userService).Login)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/me", handler.NewUserHandler(userService).GetProfile)
				authed.POST("/logout", handler.NewUserHandler(userService).Logout)
			}
		}

		// Chat 路由，网站挂件公开调用
		apiV1.POST("/chat", handler.NewChatHandler(chatService).Chat)

		// Conversation 路由组，需要认证
		conversations := apiV1.Group("/conversations")
		conversations.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			conversations.GET("", handler.NewConversationHandler(conversationService).GetConversations)
			conversations.GET("/search", handler.NewConversationHandler(conversationService).SearchConversations)
		}

		// Meeting 路由组，需要认证
		meetings := apiV1.Group("/meetings")
		meetings.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			meetings.POST("", handler.NewMeetingHandler(meetingService).ScheduleMeeting)
			meetings.GET("", handler.NewMeetingHandler(meetingService).GetMeetings)
		}

		// RTC 令牌与语音转写，挂件公开调用
		apiV1.GET("/rtc/token", handler.NewRTCHandler(rtcBuilder).Token)
		apiV1.POST("/transcribe", handler.NewTranscribeHandler(transcribeService).Transcribe)

		// 转写记录查询，控制台使用，需要认证
		transcripts := apiV1.Group("/transcripts")
		transcripts.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			transcripts.GET("", handler.NewTranscribeHandler(transcribeService).GetTranscripts)
		}
	}

	// 实时推送通道 (WebSocket)
	r.GET("/ws/feed/:token", handler.NewFeedHandler(hub, jwtManager, conversationRepo).Feed)

	// 9. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Info("服务已退出")
}
