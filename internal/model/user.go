package model

import "time"

// Role 用户角色，闭合枚举（member / admin）
type Role string

const (
    RoleMember Role = "member"
    RoleAdmin  Role = "admin"
)

// Valid 角色是否为已知取值
func (r Role) Valid() bool { return r == RoleMember || r == RoleAdmin }

// User 作者 / 评论者账号
type User struct {
    ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
    Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex:ux_user_email;not null"`
    Name      string    `json:"name" gorm:"type:varchar(120);not null"`
    Password  string    `json:"-" gorm:"type:varchar(255);not null"`
    Role      Role      `json:"role" gorm:"type:varchar(16);not null;default:member"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// IsAdmin nil 安全：匿名用户不是管理员
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
