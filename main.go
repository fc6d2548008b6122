package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Xushengqwer/go-common/core"
	sharedTracing "github.com/Xushengqwer/go-common/core/tracing"
	"github.com/Xushengqwer/post_admin/config"
	"github.com/Xushengqwer/post_admin/constants"
	"github.com/Xushengqwer/post_admin/internal/api"
	"github.com/Xushengqwer/post_admin/internal/contentapi"
	coreES "github.com/Xushengqwer/post_admin/internal/core/es"
	coreKafka "github.com/Xushengqwer/post_admin/internal/core/kafka"
	"github.com/Xushengqwer/post_admin/internal/listquery"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/Xushengqwer/post_admin/internal/repositories"
	"github.com/Xushengqwer/post_admin/internal/service"
	"github.com/Xushengqwer/post_admin/router"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// @title 博客管理控制台 API
// @version 0.1.0
// @description 博客管理控制台的后端：列表视图会话（分页、搜索、删除）、文章与标签编辑、热门搜索词。

// @host localhost:8090
// @schemes http https
func main() {
	// --- 0. 配置和基础设置 ---
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "指定配置文件的路径")
	flag.Parse()

	var cfg config.AdminConsoleConfig
	if err := core.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("致命错误: 加载配置文件 '%s' 失败: %v", configFile, err)
	}
	cfg.ApplyDefaults()

	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("致命错误: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("警告: ZapLogger Sync 操作失败: %v\n", err)
		}
	}()
	logger.Info("Logger 初始化成功。", zap.String("service", constants.ServiceName), zap.String("version", constants.ServiceVersion))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- 1. 出站 HTTP Transport 与链路追踪 ---
	var transport http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if cfg.TracerConfig.Enabled {
		tracerShutdown, err := sharedTracing.InitTracerProvider(constants.ServiceName, constants.ServiceVersion, cfg.TracerConfig)
		if err != nil {
			logger.Fatal("初始化分布式追踪 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := tracerShutdown(shutdownCtx); err != nil {
				logger.Error("关闭分布式追踪 TracerProvider 时发生错误", zap.Error(err))
			}
		}()
		// 后台 API 与 Elasticsearch 的出站请求都带上 span
		transport = otelhttp.NewTransport(transport)
		logger.Info("分布式追踪功能已初始化。")
	} else {
		logger.Info("分布式追踪功能已禁用 (根据配置)。")
	}

	// --- 2. 博客后台 API 客户端 ---
	apiClient, err := contentapi.NewClient(cfg.ContentAPI, transport, logger)
	if err != nil {
		logger.Fatal("创建博客后台 API 客户端失败", zap.Error(err))
	}

	providers := map[models.ViewKind]listquery.Provider{
		models.ViewKindContents: contentapi.NewContentProvider(apiClient),
		models.ViewKindTags:     contentapi.NewTagProvider(apiClient),
	}
	var consoleOpts []service.ConsoleOption

	// --- 3. Elasticsearch (可选) ---
	var (
		contentRepo repositories.ContentRepository
		termsSvc    *service.SearchTermService
	)
	if cfg.ElasticsearchConfig.Enabled {
		esClient, err := coreES.NewESClient(ctx, cfg.ElasticsearchConfig, logger, transport)
		if err != nil {
			logger.Fatal("创建 Elasticsearch 客户端失败", zap.Error(err))
		}
		contentRepo = repositories.NewESContentRepository(esClient.Client, esClient.ContentIndex.Name, logger)
		termRepo := repositories.NewESSearchTermRepository(esClient.Client, logger, esClient.SearchTermsIndex.Name)
		termsSvc = service.NewSearchTermService(termRepo, logger)
		consoleOpts = append(consoleOpts, service.WithSearchTermRecorder(termsSvc))

		if cfg.Provider.Kind == "elasticsearch" {
			providers[models.ViewKindContents] = repositories.NewContentIndexProvider(contentRepo)
			logger.Info("文章列表使用 Elasticsearch 数据源。", zap.String("index", esClient.ContentIndex.Name))
		}
	} else if cfg.Provider.Kind == "elasticsearch" {
		logger.Fatal("provider.kind 为 elasticsearch，但 elasticsearchConfig.enabled 未开启")
	}

	// --- 4. Kafka (可选) ---
	if cfg.KafkaConfig.Enabled {
		saramaCfg, err := coreKafka.ConfigureSarama(cfg.KafkaConfig, logger)
		if err != nil {
			logger.Fatal("配置 Sarama (Kafka 客户端库) 失败", zap.Error(err))
		}
		producer, err := coreKafka.NewSyncProducer(cfg.KafkaConfig, saramaCfg, logger)
		if err != nil {
			logger.Fatal("创建 Kafka 同步生产者失败", zap.Error(err))
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("关闭 Kafka 生产者时发生错误", zap.Error(err))
			}
		}()
		publisher := coreKafka.NewDeletionPublisher(producer, cfg.KafkaConfig.ContentDeleteTopic, logger)
		consoleOpts = append(consoleOpts, service.WithDeletionAuditor(publisher))

		if cfg.KafkaConfig.IndexerEnabled {
			if contentRepo == nil {
				logger.Fatal("kafkaConfig.indexerEnabled 需要同时开启 elasticsearchConfig.enabled")
			}
			handler := coreKafka.NewHandler(
				coreKafka.NewEventService(contentRepo, logger),
				producer,
				cfg.KafkaConfig.DLQTopic,
				cfg.KafkaConfig.ContentUpsertTopic,
				cfg.KafkaConfig.ContentDeleteTopic,
				logger,
				cfg.KafkaConfig.MaxRetryAttempts,
			)
			consumerGroup, err := coreKafka.NewConsumerGroup(cfg.KafkaConfig, saramaCfg, handler, handler.Topics(), logger)
			if err != nil {
				logger.Fatal("创建 Kafka 消费者组失败", zap.Error(err))
			}
			defer func() {
				if err := consumerGroup.Close(); err != nil {
					logger.Error("关闭 Kafka 消费者组时发生错误", zap.Error(err))
				}
			}()
			consumerGroup.Start(ctx)
			logger.Info("索引同步消费者组已启动。", zap.Strings("topics", handler.Topics()))
		}
	}

	// --- 5. 业务服务、API 与路由 ---
	store := service.NewSessionStore(cfg.Console.SessionTTL, cfg.Console.MaxSessions, logger)
	go store.Run(ctx, cfg.Console.SweepInterval)

	consoleSvc := service.NewConsoleService(providers, store, logger, consoleOpts...)
	contentSvc := service.NewContentService(apiClient, logger)
	consoleHandler := api.NewConsoleHandler(consoleSvc, contentSvc, termsSvc, logger)
	ginRouter := router.SetupRouter(logger, &cfg, consoleHandler)

	// --- 6. 启动与优雅关闭 ---
	serverAddr := cfg.Server.ListenAddr
	if serverAddr == "" {
		serverAddr = ":" + cfg.Server.Port
	} else if !strings.Contains(serverAddr, ":") {
		serverAddr = serverAddr + ":" + cfg.Server.Port
	}
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP API 服务器正在启动...", zap.String("listen_address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP API 服务器启动失败或意外停止", zap.Error(err))
			cancel()
		}
	}()

	quitSignal := make(chan os.Signal, 1)
	signal.Notify(quitSignal, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-quitSignal:
		logger.Info("接收到关闭信号，开始优雅关闭...", zap.String("signal", s.String()))
	case <-ctx.Done():
		logger.Warn("服务上下文已取消，开始关闭...")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP API 服务器时发生错误", zap.Error(err))
	} else {
		logger.Info("HTTP API 服务器已成功关闭。")
	}
}
