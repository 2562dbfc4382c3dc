package model

import "time"

// Post 文章主体。slug 在作者命名空间内唯一
// ux_post_author_slug = (author_id, slug)
type Post struct {
    ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
    AuthorID      string     `json:"author_id" gorm:"type:varchar(36);index:idx_post_author;uniqueIndex:ux_post_author_slug;not null"`
    Author        *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
    Title         string     `json:"title" gorm:"type:varchar(120);not null"`
    Body          string     `json:"body" gorm:"type:text;not null"`
    Slug          string     `json:"slug" gorm:"type:varchar(160);uniqueIndex:ux_post_author_slug;not null"`
    PublishedAt   *time.Time `json:"published_at" gorm:"index"`
    PublishedByID *string    `json:"published_by_id" gorm:"type:varchar(36)"`
    CommentsCount int        `json:"comments_count" gorm:"not null;default:0"`
    CreatedAt     time.Time  `json:"created_at"`
    UpdatedAt     time.Time  `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// Published published_at 是否有值是草稿/发布状态的唯一依据
func (p *Post) Published() bool { return p != nil && p.PublishedAt != nil }

// 标题 / 正文长度约束（字符数）
const (
    TitleMinLen = 5
    TitleMaxLen = 120
    BodyMinLen  = 3
    BodyMaxLen  = 500
)
