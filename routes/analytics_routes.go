package routes

import (
	"github.com/OnPointBS/loanflowpro-thailand-sub001/controllers"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAnalyticsRoutes 注册分析报表相关路由
func RegisterAnalyticsRoutes(router *gin.Engine) {
	analyticsRoutes := router.Group("/api/analytics")
	analyticsRoutes.Use(middleware.AuthMiddleware())

	analyticsRoutes.GET("/overview", controllers.GetWorkspaceOverview)
	analyticsRoutes.GET("/staff-performance", controllers.GetStaffPerformance)
	analyticsRoutes.GET("/pipeline-funnel", controllers.GetPipelineFunnel)
	analyticsRoutes.GET("/client-engagement", controllers.GetClientEngagement)
	analyticsRoutes.GET("/export", controllers.ExportAnalyticsReport)
}
