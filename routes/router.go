package routes

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine) {
	// 注册认证路由
	RegisterAuthRoutes(router)

	// 注册业务路由
	RegisterClientRoutes(router)
	RegisterLoanFileRoutes(router)
	RegisterTaskRoutes(router)
	RegisterDocumentRoutes(router)
	RegisterInvitationRoutes(router)
	RegisterAnalyticsRoutes(router)

	// 健康检查路由
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
