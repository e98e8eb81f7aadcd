package routes

import (
	"github.com/OnPointBS/loanflowpro-thailand-sub001/controllers"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterLoanFileRoutes 注册贷款文件相关路由
func RegisterLoanFileRoutes(router *gin.Engine) {
	loanFileRoutes := router.Group("/api/loan-files")
	loanFileRoutes.Use(middleware.AuthMiddleware())

	loanFileRoutes.GET("/", controllers.GetLoanFileList)
	loanFileRoutes.POST("/", controllers.CreateLoanFile)
	loanFileRoutes.PUT("/:id/status", controllers.UpdateLoanFileStatus)
	loanFileRoutes.DELETE("/:id", controllers.DeleteLoanFile)
}
