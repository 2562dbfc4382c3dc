// Package service 领域操作层。业务规则失败一律折叠进 Outcome，
// 只有基础设施故障（存储不可用等）才以 error 穿出边界
package service

import (
    "errors"

    "github.com/d60-Lab/pressroom/internal/model"
)

// Code 机器可读失败码
type Code string

const (
    CodeInvalid          Code = "invalid"
    CodeSpamBlocked      Code = "spam_blocked"
    CodeAlreadyPublished Code = "already_published"
    CodeNotDraft         Code = "not_draft"
)

// Outcome 领域操作的统一返回壳
type Outcome struct {
    Success bool           `json:"success"`
    Post    *model.Post    `json:"post,omitempty"`
    Comment *model.Comment `json:"comment,omitempty"`
    Error   string         `json:"error,omitempty"`
    Code    Code           `json:"error_code,omitempty"`
}

func PostOK(p *model.Post) Outcome          { return Outcome{Success: true, Post: p} }
func CommentOK(c *model.Comment) Outcome    { return Outcome{Success: true, Comment: c} }
func PostFail(p *model.Post, code Code, msg string) Outcome {
    return Outcome{Post: p, Error: msg, Code: code}
}
func CommentFail(c *model.Comment, code Code, msg string) Outcome {
    return Outcome{Comment: c, Error: msg, Code: code}
}

var (
    ErrPostNotFound    = errors.New("post not found")
    ErrCommentNotFound = errors.New("comment not found")
    ErrUserNotFound    = errors.New("user not found")
    ErrEmailTaken      = errors.New("email already registered")
    ErrBadCredentials  = errors.New("invalid email or password")
    ErrSlugExhausted   = errors.New("could not allocate a unique slug")
    ErrUnknownRole     = errors.New("unknown role")
    ErrOwnRoleChange   = errors.New("cannot change your own role")
    ErrOwnAccountDel   = errors.New("cannot delete yourself")
    ErrUserHasContent  = errors.New("cannot delete user with existing posts or comments")
)
