package routes

import (
	"github.com/OnPointBS/loanflowpro-thailand-sub001/controllers"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterClientRoutes 注册客户相关路由
func RegisterClientRoutes(router *gin.Engine) {
	clientRoutes := router.Group("/api/clients")
	clientRoutes.Use(middleware.AuthMiddleware())

	clientRoutes.GET("/", controllers.GetClientList)
	clientRoutes.POST("/", controllers.CreateClient)
	clientRoutes.GET("/:id", controllers.GetClientDetail)
	clientRoutes.PUT("/:id", controllers.UpdateClient)
	clientRoutes.DELETE("/:id", controllers.DeleteClient)
}
