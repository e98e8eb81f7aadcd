package middleware

import (
	"net/http"
	"time"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/repository"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/utils"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// 需要记录的HTTP方法
var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// 不需要记录的路径
var excludedPaths = map[string]bool{
	"/api/health":     true,
	"/api/auth/login": true,
}

// AuditMiddleware 写操作审计日志中间件
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 检查是否需要记录此操作
		if !shouldAudit(c) {
			c.Next()
			return
		}

		startTime := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// 处理请求
		c.Next()

		// 提取操作者信息
		operatorID, operatorName, operatorRole, workspaceID := extractOperator(c)

		auditLog := models.AuditLog{
			Method:        method,
			Path:          path,
			WorkspaceID:   workspaceID,
			OperatorID:    operatorID,
			OperatorName:  operatorName,
			OperatorRole:  operatorRole,
			StatusCode:    c.Writer.Status(),
			Success:       c.Writer.Status() < http.StatusBadRequest,
			OperationTime: startTime,
			ResponseTime:  time.Since(startTime).Milliseconds(),
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
		}

		// 审计日志写入失败不影响请求结果
		if _, err := repository.Collection(repository.AuditLogsCollection).
			InsertOne(repository.GetContext(), auditLog); err != nil {
			utils.Logger.Error().Err(err).Msg("保存审计日志失败")
		}
	}
}

// shouldAudit 检查是否需要记录此操作
func shouldAudit(c *gin.Context) bool {
	if _, excluded := excludedPaths[c.Request.URL.Path]; excluded {
		return false
	}
	return loggedMethods[c.Request.Method]
}

// extractOperator 从上下文中提取操作者信息
func extractOperator(c *gin.Context) (string, string, string, string) {
	// 默认匿名用户
	operatorID := "anonymous"
	operatorName := "匿名用户"
	operatorRole := "UNKNOWN"
	workspaceID := ""

	if userClaims, exists := c.Get("user"); exists {
		if claims, ok := userClaims.(jwt.MapClaims); ok {
			if id, ok := claims["id"].(string); ok {
				operatorID = id
			}
			if username, ok := claims["username"].(string); ok {
				operatorName = username
			}
			if role, ok := claims["role"].(string); ok {
				operatorRole = role
			}
			if ws, ok := claims["workspaceId"].(string); ok {
				workspaceID = ws
			}
		}
	}

	return operatorID, operatorName, operatorRole, workspaceID
}
