package handler

import (
    "github.com/d60-Lab/pressroom/internal/policy"
    "github.com/d60-Lab/pressroom/internal/repository"
    "github.com/d60-Lab/pressroom/internal/service"
)

// Handler 聚合各路由依赖
type Handler struct {
    policies *policy.Engine
    authSvc  *service.AuthService
    postSvc  *service.PostService
    cmtSvc   *service.CommentService
    adminSvc *service.AdminService

    posts    repository.PostRepository
    comments repository.CommentRepository
}

func New(
    policies *policy.Engine,
    authSvc *service.AuthService,
    postSvc *service.PostService,
    cmtSvc *service.CommentService,
    adminSvc *service.AdminService,
    posts repository.PostRepository,
    comments repository.CommentRepository,
) *Handler {
    return &Handler{
        policies: policies,
        authSvc:  authSvc,
        postSvc:  postSvc,
        cmtSvc:   cmtSvc,
        adminSvc: adminSvc,
        posts:    posts,
        comments: comments,
    }
}
