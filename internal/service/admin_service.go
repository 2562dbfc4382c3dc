package service

import (
    "context"
    "errors"

    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/internal/repository"
)

// AdminService 后台用户管理与站点总览。
// 授权（仅管理员可进）由 policy.ManageUsers 在入口把关，这里只做领域规则
type AdminService struct {
    users    repository.UserRepository
    posts    repository.PostRepository
    comments repository.CommentRepository
}

func NewAdminService(users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository) *AdminService {
    return &AdminService{users: users, posts: posts, comments: comments}
}

// ListUsers 支持按角色过滤与 name/email 检索
func (s *AdminService) ListUsers(ctx context.Context, opts repository.UserListOptions) ([]*model.User, error) {
    return s.users.List(ctx, opts)
}

// UpdateUserRole 管理员不能改自己的角色，防止把自己降级后丢失后台入口
func (s *AdminService) UpdateUserRole(ctx context.Context, actor *model.User, targetID string, role model.Role) (*model.User, error) {
    if !role.Valid() {
        return nil, ErrUnknownRole
    }
    if actor != nil && actor.ID == targetID {
        return nil, ErrOwnRoleChange
    }
    target, err := s.users.GetByID(ctx, targetID)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
        return nil, err
    }
    target.Role = role
    return target, nil
}

// DeleteUser 不能删自己；名下还有文章或评论的账号不允许删除
func (s *AdminService) DeleteUser(ctx context.Context, actor *model.User, targetID string) error {
    if actor != nil && actor.ID == targetID {
        return ErrOwnAccountDel
    }
    if _, err := s.users.GetByID(ctx, targetID); err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return ErrUserNotFound
        }
        return err
    }
    posts, err := s.posts.CountByAuthor(ctx, targetID)
    if err != nil {
        return err
    }
    comments, err := s.comments.CountByUser(ctx, targetID)
    if err != nil {
        return err
    }
    if posts > 0 || comments > 0 {
        return ErrUserHasContent
    }
    return s.users.Delete(ctx, targetID)
}

// DashboardStats 站点总览计数
type DashboardStats struct {
    TotalUsers     int64 `json:"total_users"`
    AdminUsers     int64 `json:"admin_users"`
    TotalPosts     int64 `json:"total_posts"`
    PublishedPosts int64 `json:"published_posts"`
    DraftPosts     int64 `json:"draft_posts"`
    TotalComments  int64 `json:"total_comments"`
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
    st := &DashboardStats{}
    var err error
    if st.TotalUsers, err = s.users.Count(ctx); err != nil {
        return nil, err
    }
    if st.AdminUsers, err = s.users.CountByRole(ctx, model.RoleAdmin); err != nil {
        return nil, err
    }
    if st.TotalPosts, err = s.posts.Count(ctx); err != nil {
        return nil, err
    }
    if st.PublishedPosts, err = s.posts.CountPublished(ctx); err != nil {
        return nil, err
    }
    st.DraftPosts = st.TotalPosts - st.PublishedPosts
    if st.TotalComments, err = s.comments.Count(ctx); err != nil {
        return nil, err
    }
    return st, nil
}
