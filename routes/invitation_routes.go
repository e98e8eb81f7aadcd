package routes

import (
	"github.com/OnPointBS/loanflowpro-thailand-sub001/controllers"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterInvitationRoutes 注册邀请相关路由
func RegisterInvitationRoutes(router *gin.Engine) {
	invitationRoutes := router.Group("/api/invitations")

	// 接受邀请为公开路由，通过token定位邀请
	invitationRoutes.POST("/accept/:token", controllers.AcceptInvitation)

	authed := invitationRoutes.Group("")
	authed.Use(middleware.AuthMiddleware())
	authed.GET("/", controllers.GetInvitationList)
	authed.POST("/", controllers.CreateInvitation)
}
