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

	"github.com/gin-gonic/gin"

	"learn-mate-go/internal/config"
	"learn-mate-go/internal/handler"
	"learn-mate-go/internal/middleware"
	"learn-mate-go/internal/model"
	"learn-mate-go/internal/repository"
	"learn-mate-go/internal/service"
	"learn-mate-go/pkg/arxiv"
	"learn-mate-go/pkg/books"
	"learn-mate-go/pkg/database"
	"learn-mate-go/pkg/github"
	"learn-mate-go/pkg/llm"
	"learn-mate-go/pkg/log"
	"learn-mate-go/pkg/token"
	"learn-mate-go/pkg/youtube"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库（显式构造并注入，进程内统一生命周期）
	db, err := database.NewMySQL(cfg.Database.MySQL.DSN)
	if err != nil {
		log.Fatal("数据库初始化失败", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Conversation{}, &model.Message{}, &model.ResourceHistory{}); err != nil {
		log.Fatal("数据库迁移失败", err)
	}
	log.Info("MySQL database connected successfully")

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	convRepo := repository.NewConversationRepository(db)
	resourceHistoryRepo := repository.NewResourceHistoryRepository(db)

	// 5. 初始化外部客户端
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours)
	llmClient := llm.NewClient(cfg.LLM)
	youtubeClient := youtube.NewClient(cfg.Providers.YouTube)
	booksClient := books.NewClient(cfg.Providers.Books)
	githubClient := github.NewClient(cfg.Providers.GitHub)
	arxivClient := arxiv.NewClient(cfg.Providers.Arxiv)

	// 6. 初始化 Service (依赖注入)
	userService := service.NewUserService(userRepo)
	resourceService := service.NewResourceService(youtubeClient, booksClient, githubClient, arxivClient, llmClient)
	conversationService := service.NewConversationService(convRepo)
	resourceHistoryService := service.NewResourceHistoryService(resourceHistoryRepo)
	historyService := service.NewHistoryService(convRepo, resourceHistoryRepo)
	recommendService := service.NewRecommendService(llmClient, resourceService, conversationService, resourceHistoryService)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 8. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// 推荐入口：匿名可用，认证用户的结果会被持久化
		apiV1.POST("/recommend",
			middleware.OptionalAuthMiddleware(jwtManager, userService),
			handler.NewRecommendHandler(recommendService).Recommend,
		)

		// 历史记录路由组，需要认证
		history := apiV1.Group("/history")
		history.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			historyHandler := handler.NewHistoryHandler(historyService)
			history.GET("", historyHandler.List)
			history.GET("/:id", historyHandler.Get)
			history.PATCH("/:id", historyHandler.Update)
			history.DELETE("/:id", historyHandler.Delete)
		}
	}

	// 9. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	if err := database.Close(db); err != nil {
		log.Error("关闭数据库连接失败", err)
	}
	log.Info("服务已优雅关闭")
}
