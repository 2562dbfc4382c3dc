// Package policy 集中所有 (actor, resource, action) 授权决策。
// 决策函数是纯函数：拒绝通过返回 false 表达，从不报错、从不 panic，
// 匿名（nil actor）是合法输入。
package policy

import (
    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/model"
)

// Config 策略可配置项
type Config struct {
    // DeleteRequiresAdmin 为 true 时删除文章仅限管理员（历史规则变体）
    DeleteRequiresAdmin bool
}

// Engine 授权引擎，无状态
type Engine struct {
    cfg Config
}

func NewEngine(cfg Config) *Engine { return &Engine{cfg: cfg} }

func signedIn(actor *model.User) bool { return actor != nil }

// ownsPost nil actor 永远不拥有任何资源
func ownsPost(actor *model.User, post *model.Post) bool {
    return actor != nil && post != nil && post.AuthorID == actor.ID
}

// ShowPost 已发布任何人可见；草稿仅作者或管理员可见
func (e *Engine) ShowPost(actor *model.User, post *model.Post) bool {
    if post == nil {
        return false
    }
    return post.Published() || ownsPost(actor, post) || actor.IsAdmin()
}

// CreatePost 登录即可发文
func (e *Engine) CreatePost(actor *model.User) bool { return signedIn(actor) }

// UpdatePost 作者或管理员
func (e *Engine) UpdatePost(actor *model.User, post *model.Post) bool {
    return signedIn(actor) && (ownsPost(actor, post) || actor.IsAdmin())
}

// DeletePost 默认作者或管理员；DeleteRequiresAdmin 变体下仅管理员
func (e *Engine) DeletePost(actor *model.User, post *model.Post) bool {
    if !signedIn(actor) {
        return false
    }
    if actor.IsAdmin() {
        return true
    }
    return !e.cfg.DeleteRequiresAdmin && ownsPost(actor, post)
}

// PublishPost 作者或管理员。重复发布属于领域冲突，不在此判定
func (e *Engine) PublishPost(actor *model.User, post *model.Post) bool {
    return signedIn(actor) && (ownsPost(actor, post) || actor.IsAdmin())
}

// UnpublishPost 与 PublishPost 同规则
func (e *Engine) UnpublishPost(actor *model.User, post *model.Post) bool {
    return e.PublishPost(actor, post)
}

// CreateComment 登录即可评论
func (e *Engine) CreateComment(actor *model.User) bool { return signedIn(actor) }

// DeleteComment 评论作者或管理员
func (e *Engine) DeleteComment(actor *model.User, comment *model.Comment) bool {
    if !signedIn(actor) || comment == nil {
        return false
    }
    return comment.AuthoredBy(actor) || actor.IsAdmin()
}

// ManageUsers 后台用户管理与站点总览，仅限管理员
func (e *Engine) ManageUsers(actor *model.User) bool { return actor.IsAdmin() }

// PostScope 列表可见范围：管理员全量；登录用户为已发布 + 自己的草稿；
// 匿名仅已发布。所有列表查询必须套用该 scope，禁止绕过
func (e *Engine) PostScope(actor *model.User) func(*gorm.DB) *gorm.DB {
    switch {
    case actor.IsAdmin():
        return func(db *gorm.DB) *gorm.DB { return db }
    case actor != nil:
        return func(db *gorm.DB) *gorm.DB {
            return db.Where("published_at IS NOT NULL OR author_id = ?", actor.ID)
        }
    default:
        return func(db *gorm.DB) *gorm.DB {
            return db.Where("published_at IS NOT NULL")
        }
    }
}
