package router

import (
	"time"

	"github.com/Xushengqwer/go-common/core"
	commonMiddleware "github.com/Xushengqwer/go-common/middleware"
	"github.com/Xushengqwer/post_admin/config"
	"github.com/Xushengqwer/post_admin/constants"
	_ "github.com/Xushengqwer/post_admin/docs"
	"github.com/Xushengqwer/post_admin/internal/api"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// SetupRouter 初始化 Gin 引擎，注册全局中间件、控制台路由和 Swagger UI。
//
// 参数:
//   - logger: 用于中间件和路由注册日志。
//   - cfg: 服务配置，读取 server.requestTimeout。
//   - consoleHandler: 控制台 API 处理器，不能为 nil。
//
// 返回:
//   - *gin.Engine: 配置完成的引擎。
func SetupRouter(logger *core.ZapLogger, cfg *config.AdminConsoleConfig, consoleHandler *api.ConsoleHandler) *gin.Engine {
	router := gin.New()

	// OTel 放在最前面，后面的中间件都能拿到 span
	router.Use(otelgin.Middleware(constants.ServiceName))
	router.Use(commonMiddleware.ErrorHandlingMiddleware(logger))
	router.Use(commonMiddleware.RequestLoggerMiddleware(logger.Logger()))

	requestTimeout := cfg.Server.RequestTimeout
	if requestTimeout <= 0 {
		logger.Warn("server.requestTimeout 无效或未设置，使用默认超时 10 秒",
			zap.Duration("parsed_duration_from_config", cfg.Server.RequestTimeout),
		)
		requestTimeout = 10 * time.Second
	}
	router.Use(commonMiddleware.RequestTimeoutMiddleware(logger, requestTimeout))
	logger.Info("全局中间件已注册", zap.Duration("request_timeout", requestTimeout))

	if consoleHandler == nil {
		panic("致命错误：ConsoleHandler 未初始化，无法注册 API 路由。")
	}
	consoleHandler.RegisterRoutes(router.Group("/api/v1"))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logger.Info("Swagger UI 路由已注册，访问 /swagger/index.html 查看 API 文档。")
	return router
}
