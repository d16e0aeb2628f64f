package player

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mascodex/game-backend/internal/platform/database"
)

const (
	// PlayerIDKey 是认证中间件放入Gin上下文的玩家ID键
	PlayerIDKey = "playerID"
)

// AuthRequired 验证请求携带的Bearer令牌并解析玩家身份。
// 令牌由外部认证系统签发，格式为 base64(playerID + ":" + timestamp)；
// 本中间件只校验对应的玩家档案存在于Redis中。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := resolvePlayerID(c)
		if playerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}
		c.Set(PlayerIDKey, playerID)
		c.Next()
	}
}

// resolvePlayerID 从Authorization头解析并验证玩家ID，失败时返回空串
func resolvePlayerID(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return ""
	}
	token := strings.TrimPrefix(auth, "Bearer ")

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return ""
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) == 0 || parts[0] == "" {
		return ""
	}
	playerID := parts[0]

	// 验证外部系统写入的玩家档案确实存在
	exists, err := database.RDB.Exists(database.Ctx, ProfileKeyPrefix+playerID).Result()
	if err != nil || exists == 0 {
		return ""
	}
	return playerID
}

// CurrentPlayerID 从Gin上下文中取出认证中间件写入的玩家ID
func CurrentPlayerID(c *gin.Context) string {
	return c.GetString(PlayerIDKey)
}
