package model

import "time"

// Comment 评论。user_id 可空，空表示匿名（Guest）
type Comment struct {
    ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    PostID    string    `json:"post_id" gorm:"type:varchar(36);index:idx_comment_post;not null"`
    UserID    *string   `json:"user_id" gorm:"type:varchar(36);index:idx_comment_user"`
    User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
    Body      string    `json:"body" gorm:"type:text;not null"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

// AuthorName 匿名评论显示 Guest
func (c *Comment) AuthorName() string {
    if c.User != nil && c.User.Name != "" {
        return c.User.Name
    }
    return "Guest"
}

// AuthoredBy 评论是否由该用户发表；匿名评论不属于任何人
func (c *Comment) AuthoredBy(u *User) bool {
    return u != nil && c.UserID != nil && *c.UserID == u.ID
}
