package middleware

import (
    "fmt"

    "github.com/getsentry/sentry-go"
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/pressroom/pkg/response"
)

// Recovery panic 上报 sentry 后按基础设施故障返回 500。
// 业务失败永远不走到这里，它们在领域层折叠成 Outcome
func Recovery() gin.HandlerFunc {
    return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
        err := fmt.Errorf("panic recovered: %v", recovered)
        if hub := sentry.CurrentHub(); hub.Client() != nil {
            hub.Recover(recovered)
        }
        response.InternalError(c, err)
        c.Abort()
    })
}
