package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/pressroom/internal/middleware"
    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/internal/repository"
    "github.com/d60-Lab/pressroom/internal/service"
    "github.com/d60-Lab/pressroom/pkg/response"
)

// requireAdmin 后台路由统一入口把关
func (h *Handler) requireAdmin(c *gin.Context) (*model.User, bool) {
    actor := middleware.Actor(c)
    if !h.policies.ManageUsers(actor) {
        response.Forbidden(c, "admin privileges required")
        return nil, false
    }
    return actor, true
}

// ListUsers 用户列表
// @Summary 后台用户列表
// @Tags 后台
// @Produce json
// @Param role query string false "按角色过滤"
// @Param search query string false "name/email 检索"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
    if _, ok := h.requireAdmin(c); !ok {
        return
    }
    users, err := h.adminSvc.ListUsers(c.Request.Context(), repository.UserListOptions{
        Role:  model.Role(c.Query("role")),
        Query: c.Query("search"),
    })
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, users)
}

type updateRoleRequest struct {
    Role string `json:"role" binding:"required"`
}

// UpdateUserRole 调整角色
// @Summary 调整用户角色
// @Tags 后台
// @Accept json
// @Produce json
// @Param id path string true "用户 ID"
// @Param request body updateRoleRequest true "目标角色"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/admin/users/{id}/role [put]
func (h *Handler) UpdateUserRole(c *gin.Context) {
    actor, ok := h.requireAdmin(c)
    if !ok {
        return
    }
    var req updateRoleRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BindError(c, err)
        return
    }
    u, err := h.adminSvc.UpdateUserRole(c.Request.Context(), actor, c.Param("id"), model.Role(req.Role))
    if err != nil {
        switch {
        case errors.Is(err, service.ErrUserNotFound):
            response.NotFound(c, err.Error())
        case errors.Is(err, service.ErrUnknownRole), errors.Is(err, service.ErrOwnRoleChange):
            response.Unprocessable(c, err.Error())
        default:
            response.InternalError(c, err)
        }
        return
    }
    response.Success(c, u)
}

// DeleteUser 删除账号
// @Summary 删除用户
// @Tags 后台
// @Produce json
// @Param id path string true "用户 ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/admin/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
    actor, ok := h.requireAdmin(c)
    if !ok {
        return
    }
    err := h.adminSvc.DeleteUser(c.Request.Context(), actor, c.Param("id"))
    if err != nil {
        switch {
        case errors.Is(err, service.ErrUserNotFound):
            response.NotFound(c, err.Error())
        case errors.Is(err, service.ErrOwnAccountDel), errors.Is(err, service.ErrUserHasContent):
            response.Unprocessable(c, err.Error())
        default:
            response.InternalError(c, err)
        }
        return
    }
    response.Success(c, gin.H{"deleted": c.Param("id")})
}

// Dashboard 站点总览
// @Summary 后台总览
// @Tags 后台
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/admin/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
    if _, ok := h.requireAdmin(c); !ok {
        return
    }
    stats, err := h.adminSvc.Dashboard(c.Request.Context())
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, stats)
}
