package routes

import (
	"github.com/OnPointBS/loanflowpro-thailand-sub001/controllers"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDocumentRoutes 注册文档相关路由
func RegisterDocumentRoutes(router *gin.Engine) {
	documentRoutes := router.Group("/api/documents")
	documentRoutes.Use(middleware.AuthMiddleware())

	documentRoutes.GET("/", controllers.GetDocumentList)
	documentRoutes.POST("/", controllers.CreateDocument)
	documentRoutes.DELETE("/:id", controllers.DeleteDocument)
}
