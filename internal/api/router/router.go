package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/3Xbang/project/config"
	"github.com/3Xbang/project/internal/api/handler"
	"github.com/3Xbang/project/internal/api/middleware"
	"github.com/3Xbang/project/internal/model"
	"github.com/3Xbang/project/internal/service"
	"github.com/3Xbang/project/pkg/jwt"
	"github.com/3Xbang/project/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时跳过 Token 黑名单与限流
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	userSvc service.UserService,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	db *gorm.DB,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.NoRoute(middleware.NotFound())

	// 接口值须保持真正的 nil，避免带类型的 nil 指针绕过判空
	var (
		blacklist middleware.Blacklist
		limiter   middleware.Limiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	protect := middleware.Protect(jwtMgr, userSvc, blacklist)
	optional := middleware.OptionalAuth(jwtMgr, userSvc, blacklist)
	authLimit := middleware.RateLimit(limiter, cfg.Auth.RateLimit, cfg.Auth.RateLimitWindow)

	admin := middleware.Authorize(model.RoleAdmin)
	staffWriter := middleware.Authorize(model.RoleAdmin, model.RoleManager)
	clientOrAdmin := middleware.Authorize(model.RoleClient, model.RoleAdmin)
	clientOnly := middleware.Authorize(model.RoleClient)

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})

	api := r.Group("/api")
	{
		// 认证模块
		auth := api.Group("/auth")
		{
			auth.POST("/login", authLimit, h.Auth.Login)
			auth.POST("/register", authLimit, h.Auth.Register)
			auth.POST("/logout", protect, h.Auth.Logout)
			auth.GET("/session", protect, h.Auth.Session)
		}

		// 用户模块
		users := api.Group("/users", protect)
		{
			users.GET("", admin, h.User.ListUsers)
			users.POST("", admin, h.User.CreateUser)
			users.GET("/:id", h.User.GetUser)    // 本人或管理员（Service 层鉴权）
			users.PUT("/:id", h.User.UpdateUser) // 本人或管理员（Service 层鉴权）
			users.DELETE("/:id", admin, h.User.DeleteUser)
		}

		// 工程项目：公开浏览，管理员维护
		projects := api.Group("/projects")
		{
			projects.GET("", optional, h.Project.ListProjects)
			projects.GET("/:id", optional, h.Project.GetProject)
			projects.POST("", protect, admin, h.Project.CreateProject)
			projects.PUT("/:id", protect, admin, h.Project.UpdateProject)
			projects.DELETE("/:id", protect, admin, h.Project.DeleteProject)
		}

		// 客户门户
		client := api.Group("/client", protect)
		{
			quotes := client.Group("/quotes")
			{
				quotes.GET("", clientOrAdmin, h.Quote.ListQuotes)
				quotes.GET("/:id", clientOrAdmin, h.Quote.GetQuote)
				quotes.POST("", staffWriter, h.Quote.CreateQuote)
				quotes.PUT("/:id", staffWriter, h.Quote.UpdateQuote)
				quotes.PUT("/:id/confirm", clientOnly, h.Quote.ConfirmQuote)
				quotes.DELETE("/:id", admin, h.Quote.DeleteQuote)
			}

			repairs := client.Group("/repairs")
			{
				repairs.GET("/stats", clientOnly, h.Repair.Stats)
				repairs.GET("", clientOrAdmin, h.Repair.ListRepairs)
				repairs.GET("/:id", clientOrAdmin, h.Repair.GetRepair)
				repairs.POST("", clientOnly, h.Repair.CreateRepair)
				repairs.POST("/:id/feedback", clientOnly, h.Repair.Feedback)
				repairs.PUT("/:id", staffWriter, h.Repair.UpdateRepair)
				repairs.DELETE("/:id", admin, h.Repair.DeleteRepair)
			}

			receipts := client.Group("/receipts")
			{
				receipts.GET("", clientOrAdmin, h.Receipt.ListReceipts)
				receipts.GET("/:id", clientOrAdmin, h.Receipt.GetReceipt)
				receipts.POST("", staffWriter, h.Receipt.CreateReceipt)
				receipts.PUT("/:id", staffWriter, h.Receipt.UpdateReceipt)
				receipts.DELETE("/:id", admin, h.Receipt.DeleteReceipt)
			}

			tempWorks := client.Group("/temp-works")
			{
				tempWorks.GET("", clientOrAdmin, h.TempWork.ListTempWorks)
				tempWorks.GET("/:id", clientOrAdmin, h.TempWork.GetTempWork)
				tempWorks.POST("", clientOnly, h.TempWork.CreateTempWork)
				tempWorks.PUT("/:id", staffWriter, h.TempWork.UpdateTempWork)
				tempWorks.DELETE("/:id", admin, h.TempWork.DeleteTempWork)
			}

			client.GET("/calendar.ics", clientOnly, h.Calendar.ClientCalendar)
		}

		// 后台导出
		api.GET("/admin/exports/receipts", protect, staffWriter, h.Export.ExportReceipts)
	}

	return r
}
