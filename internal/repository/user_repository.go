package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/model"
)

// UserListOptions 后台用户列表过滤条件
type UserListOptions struct {
    Role  model.Role
    Query string // name/email LIKE 检索
}

type UserRepository interface {
    Create(ctx context.Context, user *model.User) error
    GetByID(ctx context.Context, id string) (*model.User, error)
    GetByEmail(ctx context.Context, email string) (*model.User, error)
    List(ctx context.Context, opts UserListOptions) ([]*model.User, error)
    // UpdateRole 只写 role 一列
    UpdateRole(ctx context.Context, id string, role model.Role) error
    Delete(ctx context.Context, id string) error
    Count(ctx context.Context) (int64, error)
    CountByRole(ctx context.Context, role model.Role) (int64, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
    return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
    var u model.User
    if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
        return nil, err
    }
    return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    var u model.User
    if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
        return nil, err
    }
    return &u, nil
}

func (r *userRepository) List(ctx context.Context, opts UserListOptions) ([]*model.User, error) {
    q := r.db.WithContext(ctx).Model(&model.User{})
    if opts.Role != "" {
        q = q.Where("role = ?", opts.Role)
    }
    if opts.Query != "" {
        like := "%" + opts.Query + "%"
        q = q.Where("name LIKE ? OR email LIKE ?", like, like)
    }
    var res []*model.User
    err := q.Order("created_at DESC").Find(&res).Error
    return res, err
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role model.Role) error {
    res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role)
    if res.Error != nil {
        return res.Error
    }
    if res.RowsAffected == 0 {
        return gorm.ErrRecordNotFound
    }
    return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
    res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
    if res.Error != nil {
        return res.Error
    }
    if res.RowsAffected == 0 {
        return gorm.ErrRecordNotFound
    }
    return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
    var n int64
    err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
    return n, err
}

func (r *userRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
    var n int64
    err := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&n).Error
    return n, err
}
