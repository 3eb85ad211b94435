package app

import (
	"course_assistant_backend/docs"
	"course_assistant_backend/internal/config"
	"course_assistant_backend/internal/middleware"
	"course_assistant_backend/internal/model"
	"course_assistant_backend/internal/util"
	"course_assistant_backend/pkg/monitoring"
	"course_assistant_backend/pkg/security"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// askRateLimiter 只对转发RAG服务的提问接口限流。跑在认证中间件之后，
// 配额按登录用户计，共享出口IP的教室场景不会互相挤占。
func askRateLimiter(cfg *config.Config) gin.HandlerFunc {
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}

	return security.RateLimiter(maxRequests, window, func(c *gin.Context) string {
		if user := util.GetUserFromContext(c); user != nil {
			return "user:" + strconv.FormatUint(uint64(user.UserID), 10)
		}
		return c.ClientIP()
	})
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 组件脚本是静态资源，无需登录
	router.GET("/assets/assistant/chat.js", c.widget.Script)

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 问答相关接口，要求宿主平台的会话令牌
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/assistant/ask", askRateLimiter(cfg), c.assistant.Ask)
		authGroup.GET("/assistant/widget/:courseid", c.widget.Render)
	}

	// 教师/管理员接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		admin.GET("/assistant/logs", c.assistant.Logs)
	}
}
