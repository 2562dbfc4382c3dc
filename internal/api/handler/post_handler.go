package handler

import (
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"
    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/middleware"
    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/internal/repository"
    "github.com/d60-Lab/pressroom/internal/service"
    "github.com/d60-Lab/pressroom/pkg/response"
)

// writeOutcome 领域 Outcome → HTTP 映射
func writeOutcome(c *gin.Context, out service.Outcome) {
    if out.Success {
        response.Success(c, out)
        return
    }
    switch out.Code {
    case service.CodeAlreadyPublished, service.CodeNotDraft:
        response.Conflict(c, out.Error)
    case service.CodeSpamBlocked, service.CodeInvalid:
        response.Unprocessable(c, out.Error)
    default:
        response.BadRequest(c, out.Error)
    }
}

func (h *Handler) findPost(c *gin.Context) (*model.Post, bool) {
    post, err := h.posts.GetByKey(c.Request.Context(), c.Param("key"))
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            response.NotFound(c, "post not found")
        } else {
            response.InternalError(c, err)
        }
        return nil, false
    }
    return post, true
}

// ListPosts 文章列表
// @Summary 文章列表（按可见范围过滤）
// @Tags 文章
// @Param q query string false "标题/正文检索"
// @Param author_id query string false "按作者过滤"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
    actor := middleware.Actor(c)
    page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
    pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
    if page < 1 {
        page = 1
    }
    if pageSize < 1 || pageSize > 100 {
        pageSize = 20
    }
    posts, err := h.posts.List(c.Request.Context(), h.policies.PostScope(actor), repository.PostListOptions{
        AuthorID: c.Query("author_id"),
        Query:    c.Query("q"),
        Offset:   (page - 1) * pageSize,
        Limit:    pageSize,
    })
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": posts})
}

// ShowPost 文章详情
// @Summary 文章详情（含评论）
// @Tags 文章
// @Param key path string true "slug 或 id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{key} [get]
func (h *Handler) ShowPost(c *gin.Context) {
    post, ok := h.findPost(c)
    if !ok {
        return
    }
    actor := middleware.Actor(c)
    if !h.policies.ShowPost(actor, post) {
        response.Forbidden(c, "you are not authorized to view this post")
        return
    }
    comments, err := h.comments.ListForPost(c.Request.Context(), post.ID)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"post": post, "comments": comments})
}

type createPostRequest struct {
    Title      string `json:"title" binding:"required"`
    Body       string `json:"body" binding:"required"`
    PublishNow bool   `json:"publish_now"`
}

// CreatePost 建稿
// @Summary 建稿（可选建稿即发布）
// @Tags 文章
// @Accept json
// @Produce json
// @Param request body createPostRequest true "文章内容"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
    actor := middleware.Actor(c)
    if !h.policies.CreatePost(actor) {
        response.Unauthorized(c, "sign in required")
        return
    }
    var req createPostRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BindError(c, err)
        return
    }
    out, err := h.postSvc.Create(c.Request.Context(), actor, service.CreatePostInput{
        Title: req.Title, Body: req.Body, PublishNow: req.PublishNow,
    })
    if err != nil {
        response.InternalError(c, err)
        return
    }
    writeOutcome(c, out)
}

type updatePostRequest struct {
    Title string `json:"title" binding:"required"`
    Body  string `json:"body" binding:"required"`
}

// UpdatePost 改稿
// @Summary 改稿
// @Tags 文章
// @Accept json
// @Produce json
// @Param key path string true "slug 或 id"
// @Param request body updatePostRequest true "文章内容"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/posts/{key} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
    post, ok := h.findPost(c)
    if !ok {
        return
    }
    actor := middleware.Actor(c)
    if !h.policies.UpdatePost(actor, post) {
        response.Forbidden(c, "you are not authorized to perform this action")
        return
    }
    var req updatePostRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BindError(c, err)
        return
    }
    out, err := h.postSvc.Update(c.Request.Context(), post, service.UpdatePostInput{Title: req.Title, Body: req.Body})
    if err != nil {
        response.InternalError(c, err)
        return
    }
    writeOutcome(c, out)
}

// DeletePost 删稿
// @Summary 删稿（级联删除评论）
// @Tags 文章
// @Param key path string true "slug 或 id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/v1/posts/{key} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
    post, ok := h.findPost(c)
    if !ok {
        return
    }
    actor := middleware.Actor(c)
    if !h.policies.DeletePost(actor, post) {
        response.Forbidden(c, "you are not authorized to perform this action")
        return
    }
    if err := h.postSvc.Delete(c.Request.Context(), post); err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, nil)
}

// PublishPost 发布
// @Summary 发布文章
// @Tags 文章
// @Param key path string true "slug 或 id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{key}/publish [post]
func (h *Handler) PublishPost(c *gin.Context) {
    post, ok := h.findPost(c)
    if !ok {
        return
    }
    actor := middleware.Actor(c)
    if !h.policies.PublishPost(actor, post) {
        response.Forbidden(c, "you are not authorized to perform this action")
        return
    }
    out, err := h.postSvc.Publish(c.Request.Context(), post, actor)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    writeOutcome(c, out)
}

// UnpublishPost 撤回为草稿
// @Summary 撤回为草稿
// @Tags 文章
// @Param key path string true "slug 或 id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{key}/unpublish [post]
func (h *Handler) UnpublishPost(c *gin.Context) {
    post, ok := h.findPost(c)
    if !ok {
        return
    }
    actor := middleware.Actor(c)
    if !h.policies.UnpublishPost(actor, post) {
        response.Forbidden(c, "you are not authorized to perform this action")
        return
    }
    out, err := h.postSvc.Unpublish(c.Request.Context(), post)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    writeOutcome(c, out)
}
