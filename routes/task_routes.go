package routes

import (
	"github.com/OnPointBS/loanflowpro-thailand-sub001/controllers"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterTaskRoutes 注册任务相关路由
func RegisterTaskRoutes(router *gin.Engine) {
	taskRoutes := router.Group("/api/tasks")
	taskRoutes.Use(middleware.AuthMiddleware())

	taskRoutes.GET("/", controllers.GetTaskList)
	taskRoutes.POST("/", controllers.CreateTask)
	taskRoutes.POST("/:id/complete", controllers.CompleteTask)
	taskRoutes.PUT("/:id/status", controllers.UpdateTaskStatus)
	taskRoutes.DELETE("/:id", controllers.DeleteTask)
}
