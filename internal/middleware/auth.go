package middleware

import (
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/internal/service"
    "github.com/d60-Lab/pressroom/pkg/response"
)

const ctxActorKey = "actor"

// Auth 从 Bearer token 解析 actor 放入上下文。
// 无 token 按匿名放行；坏 token 直接 401。核心不做鉴权，只拿结果
func Auth(auth *service.AuthService) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        if header == "" {
            c.Next()
            return
        }
        token := strings.TrimPrefix(header, "Bearer ")
        if token == header {
            response.Unauthorized(c, "malformed authorization header")
            c.Abort()
            return
        }
        actor, err := auth.ResolveActor(c.Request.Context(), token)
        if err != nil {
            response.Unauthorized(c, "invalid or expired token")
            c.Abort()
            return
        }
        c.Set(ctxActorKey, actor)
        c.Next()
    }
}

// RequireActor 匿名请求直接 401
func RequireActor() gin.HandlerFunc {
    return func(c *gin.Context) {
        if Actor(c) == nil {
            response.Unauthorized(c, "sign in required")
            c.Abort()
            return
        }
        c.Next()
    }
}

// Actor 取当前请求的 actor；匿名返回 nil
func Actor(c *gin.Context) *model.User {
    v, ok := c.Get(ctxActorKey)
    if !ok {
        return nil
    }
    actor, _ := v.(*model.User)
    return actor
}
