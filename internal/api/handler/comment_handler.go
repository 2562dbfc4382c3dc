package handler

import (
    "errors"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/middleware"
    "github.com/d60-Lab/pressroom/pkg/response"
)

type createCommentRequest struct {
    Body string `json:"body" binding:"required"`
}

// CreateComment 发表评论
// @Summary 发表评论（评论流水线）
// @Tags 评论
// @Accept json
// @Produce json
// @Param key path string true "文章 slug 或 id"
// @Param request body createCommentRequest true "评论内容"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/posts/{key}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
    actor := middleware.Actor(c)
    if !h.policies.CreateComment(actor) {
        response.Unauthorized(c, "sign in required")
        return
    }
    post, ok := h.findPost(c)
    if !ok {
        return
    }
    if !h.policies.ShowPost(actor, post) {
        response.Forbidden(c, "you are not authorized to view this post")
        return
    }
    var req createCommentRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BindError(c, err)
        return
    }
    out, err := h.cmtSvc.Submit(c.Request.Context(), post, actor, req.Body)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    writeOutcome(c, out)
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Tags 评论
// @Param id path string true "评论 id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
    comment, err := h.comments.GetByID(c.Request.Context(), c.Param("id"))
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            response.NotFound(c, "comment not found")
        } else {
            response.InternalError(c, err)
        }
        return
    }
    actor := middleware.Actor(c)
    if !h.policies.DeleteComment(actor, comment) {
        response.Forbidden(c, "you are not authorized to perform this action")
        return
    }
    if err := h.cmtSvc.Delete(c.Request.Context(), comment); err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, nil)
}
