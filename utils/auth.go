package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/OnPointBS/loanflowpro-thailand-sub001/config"
	"github.com/OnPointBS/loanflowpro-thailand-sub001/models"

	"github.com/dgrijalva/jwt-go"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// HashPassword 哈希密码
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// SimpleHash 简单哈希 (sha256 + 盐值)
func SimpleHash(password string, salt string) string {
	if salt == "" {
		salt = "69dc6ee0"
	}
	hash := sha256.Sum256([]byte(password + salt))
	return fmt.Sprintf("sha256$%s$%s", salt, hex.EncodeToString(hash[:]))
}

// VerifyPassword 验证密码 - 支持多种密码存储格式
func VerifyPassword(password string, hashedPassword string) bool {
	// 标准SHA-256哈希
	if HashPassword(password) == hashedPassword {
		return true
	}

	// 格式化的盐值哈希 (如 sha256$salt$hash)
	parts := strings.Split(hashedPassword, "$")
	if len(parts) == 3 && parts[0] == "sha256" {
		salt := parts[1]
		hashParts := strings.Split(SimpleHash(password, salt), "$")
		if len(hashParts) == 3 && hashParts[2] == parts[2] {
			return true
		}
	}

	return false
}

// GenerateToken 生成JWT令牌
func GenerateToken(user models.User) (string, error) {
	Logger.Info().
		Str("_id", user.ID.Hex()).
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Str("workspaceId", user.WorkspaceID).
		Msg("开始生成token")

	// 创建JWT Claims
	claims := jwt.MapClaims{
		"id":          user.ID.Hex(),
		"username":    user.Name,
		"role":        string(user.Role),
		"workspaceId": user.WorkspaceID,
		"exp":         time.Now().Add(time.Hour * 24 * 30).Unix(), // 30天有效期
		"iat":         time.Now().Unix(),
	}

	// 创建并签名token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("生成token失败")
		return "", err
	}

	return tokenString, nil
}

// ParseToken 解析JWT令牌
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名方法: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("无效的token")
	}

	return claims, nil
}
