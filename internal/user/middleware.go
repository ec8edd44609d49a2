package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName   = "user-id"
	CookieMaxAge = 365 * 24 * 60 * 60
	UserIDKey    = "userID"
)

// EnsureUserCookieMiddleware 确保用户的浏览器中有一个格式正确的user-id cookie，
// 并把最终生效的用户ID放入Gin上下文。
// 如果cookie不存在或格式不正确，会生成一个新的临时ID并设置cookie；
// 临时ID在用户第一次产生写操作时才会被正式激活。
func EnsureUserCookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := c.Cookie(CookieName)

		// 如果Cookie不存在，或存在但格式不正确，则分发一个新的
		if err != nil || !IsValidUUID(userID) {
			if err != nil && err != http.ErrNoCookie {
				fmt.Printf("检测到无效的用户Cookie: %s, err: %v\n", userID, err)
			}
			provisionalUserID, genErr := CreateProvisionalUser()
			if genErr != nil {
				fmt.Printf("创建临时用户ID时发生错误: %v\n", genErr)
				c.Set(UserIDKey, "")
				c.Next()
				return
			}
			c.SetCookie(CookieName, provisionalUserID, CookieMaxAge, "/", "", false, true)
			userID = provisionalUserID
		}

		// 同一请求的后续handler直接从上下文取用户ID，
		// 不再依赖请求中的旧cookie
		c.Set(UserIDKey, userID)
		c.Next()
	}
}
