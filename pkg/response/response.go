// Package response 统一 JSON 响应壳
package response

import (
    "net/http"

    "github.com/gin-gonic/gin"
    "github.com/go-playground/validator/v10"

    "github.com/d60-Lab/pressroom/pkg/logger"

    "go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
    Code    int         `json:"code"`
    Message string      `json:"message"`
    Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
    c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func Created(c *gin.Context, data interface{}) {
    c.JSON(http.StatusCreated, Response{Code: 0, Message: "ok", Data: data})
}

func fail(c *gin.Context, status int, msg string) {
    c.JSON(status, Response{Code: status, Message: msg})
}

func BadRequest(c *gin.Context, msg string)    { fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string)  { fail(c, http.StatusUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)     { fail(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)      { fail(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)      { fail(c, http.StatusConflict, msg) }
func Unprocessable(c *gin.Context, msg string) { fail(c, http.StatusUnprocessableEntity, msg) }

func TooManyRequests(c *gin.Context, msg string) { fail(c, http.StatusTooManyRequests, msg) }

// InternalError 基础设施故障：记录日志，对外只给通用信息
func InternalError(c *gin.Context, err error) {
    logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
    fail(c, http.StatusInternalServerError, "internal server error")
}

// BindError 绑定失败时展开 validator 字段错误，便于前端定位
func BindError(c *gin.Context, err error) {
    if verrs, ok := err.(validator.ValidationErrors); ok {
        fields := make([]string, 0, len(verrs))
        for _, fe := range verrs {
            fields = append(fields, fe.Field()+" "+fe.Tag())
        }
        c.JSON(http.StatusBadRequest, Response{
            Code:    http.StatusBadRequest,
            Message: "validation failed",
            Data:    gin.H{"fields": fields},
        })
        return
    }
    BadRequest(c, err.Error())
}
