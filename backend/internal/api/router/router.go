package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"presensia/backend/config"
	"presensia/backend/internal/api/handler"
	"presensia/backend/internal/api/middleware"
	"presensia/backend/internal/model"
	"presensia/backend/pkg/jwt"
	"presensia/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限速防暴力破解）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 教师排课模块
			schedule := authorized.Group("/teachers/:id/schedule")
			{
				schedule.GET("", h.Schedule.List)
				schedule.POST("", middleware.RoleAuth(model.RoleAdmin), h.Schedule.SetDay)
				schedule.PUT("/:day", middleware.RoleAuth(model.RoleAdmin), h.Schedule.UpdateDay)
				schedule.DELETE("/:day", middleware.RoleAuth(model.RoleAdmin), h.Schedule.UnsetDay)
			}

			// 教师考勤模块
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/check-in", middleware.RoleAuth(model.RoleGuru), h.Attendance.CheckIn)
				attendance.POST("/check-out", middleware.RoleAuth(model.RoleGuru), h.Attendance.CheckOut)
				attendance.GET("/weekly", middleware.RoleAuth(model.RoleGuru), h.Attendance.WeeklyView)
				attendance.POST("/manual", middleware.RoleAuth(model.RoleAdmin), h.Attendance.RecordManual)
				attendance.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleTU), h.Attendance.List)
			}

			// 教练缺勤模块
			coachAbsences := authorized.Group("/coach-absences")
			coachAbsences.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				coachAbsences.POST("", h.CoachAbsence.Record)
				coachAbsences.PUT("/:id", h.CoachAbsence.Update)
				coachAbsences.DELETE("/:id", h.CoachAbsence.Delete)
				coachAbsences.GET("", h.CoachAbsence.List)
			}

			// 刷卡模块
			cardScans := authorized.Group("/card-scans")
			{
				cardScans.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.CardScan.Scan)
				cardScans.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff, model.RoleTU), h.CardScan.List)
				cardScans.GET("/statistics", middleware.RoleAuth(model.RoleAdmin, model.RoleTU), h.CardScan.Statistics)
				cardScans.GET("/report", middleware.RoleAuth(model.RoleAdmin, model.RoleTU), h.CardScan.Report)
			}

			// 课外活动模块
			extracurriculars := authorized.Group("/extracurriculars")
			{
				extracurriculars.GET("", h.Extracurricular.List)
				extracurriculars.GET("/:id", h.Extracurricular.Get)
				extracurriculars.POST("", middleware.RoleAuth(model.RoleAdmin), h.Extracurricular.Create)
				extracurriculars.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Extracurricular.Update)
				extracurriculars.POST("/:id/members", middleware.RoleAuth(model.RoleAdmin), h.Extracurricular.AddMember)
				extracurriculars.DELETE("/:id/members/:studentId", middleware.RoleAuth(model.RoleAdmin), h.Extracurricular.RemoveMember)
			}

			// 报表与导出模块
			reports := authorized.Group("/reports")
			reports.Use(middleware.RoleAuth(model.RoleAdmin, model.RoleTU))
			{
				reports.GET("/attendance-summary", h.Report.AttendanceSummary)
			}
			export := authorized.Group("/export")
			export.Use(middleware.RoleAuth(model.RoleAdmin, model.RoleTU))
			{
				export.GET("/attendance-recap", h.Export.ExportAttendanceRecap)
			}

			// 实时通知（WebSocket）
			authorized.GET("/ws/admin", middleware.RoleAuth(model.RoleAdmin), h.Realtime.AdminSocket)
		}
	}

	return r
}

