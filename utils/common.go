package utils

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// LoginUser 从token claims中还原出的当前登录用户
type LoginUser struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Username    string `json:"name"`
	WorkspaceID string `json:"workspaceId"`
}

// GetUser 从请求上下文中获取当前登录用户
func GetUser(c *gin.Context) (*LoginUser, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("GetUser 未授权访问")
	}

	// 处理不同类型的 claims
	var claims map[string]interface{}
	switch v := currentUser.(type) {
	case jwt.MapClaims:
		claims = make(map[string]interface{})
		for key, val := range v {
			claims[key] = val
		}
	case map[string]interface{}:
		claims = v
	default:
		return nil, fmt.Errorf("无效的用户信息类型")
	}

	// 获取用户信息字段
	id, ok := claims["id"].(string)
	if !ok {
		return nil, fmt.Errorf("无效的用户ID")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("无效的用户角色")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, fmt.Errorf("无效的用户名")
	}

	workspaceID, ok := claims["workspaceId"].(string)
	if !ok {
		return nil, fmt.Errorf("无效的工作区ID")
	}

	return &LoginUser{
		ID:          id,
		Role:        role,
		Username:    username,
		WorkspaceID: workspaceID,
	}, nil
}

// IsStaffRole 判断角色是否属于员工（顾问或内部员工）
func IsStaffRole(role string) bool {
	return role == "advisor" || role == "staff"
}

// ParsePagination 解析page/limit查询参数，非法值回退默认
func ParsePagination(c *gin.Context) (int64, int64) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		limit = 20
	}
	return page, limit
}

// PaginatedResponse 分页响应
func PaginatedResponse(c *gin.Context, data interface{}, total int64, page int64, limit int64) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": (total + limit - 1) / limit,
		},
	})
}
