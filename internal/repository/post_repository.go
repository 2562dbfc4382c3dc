package repository

import (
    "context"
    "errors"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/pressroom/internal/model"
)

// PostListOptions 列表过滤条件
type PostListOptions struct {
    AuthorID string
    Query    string // title/body LIKE 检索
    Offset   int
    Limit    int
}

type PostRepository interface {
    Create(ctx context.Context, post *model.Post) error
    // UpdateContent 只写 title/body/slug；comments_count 由评论事务独占维护，
    // 任何改稿都不得把内存里的过期计数带回数据库
    UpdateContent(ctx context.Context, post *model.Post) error
    // UpdatePublication 只写 published_at/published_by_id，理由同上
    UpdatePublication(ctx context.Context, post *model.Post) error
    // Delete 级联删除评论，同一事务
    Delete(ctx context.Context, post *model.Post) error
    GetByID(ctx context.Context, id string) (*model.Post, error)
    // GetByKey 先按 slug 再按 id 查找
    GetByKey(ctx context.Context, key string) (*model.Post, error)
    // List 必须带上 policy.PostScope 产出的 scope，保证可见性过滤不被绕过
    List(ctx context.Context, scope func(*gorm.DB) *gorm.DB, opts PostListOptions) ([]*model.Post, error)
    Count(ctx context.Context) (int64, error)
    CountPublished(ctx context.Context) (int64, error)
    CountByAuthor(ctx context.Context, authorID string) (int64, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
    return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (r *postRepository) UpdateContent(ctx context.Context, post *model.Post) error {
    return r.db.WithContext(ctx).Model(post).
        Select("title", "body", "slug", "updated_at").Updates(post).Error
}

func (r *postRepository) UpdatePublication(ctx context.Context, post *model.Post) error {
    return r.db.WithContext(ctx).Model(post).
        Select("published_at", "published_by_id", "updated_at").Updates(post).Error
}

func (r *postRepository) Delete(ctx context.Context, post *model.Post) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("post_id = ?", post.ID).Delete(&model.Comment{}).Error; err != nil {
            return err
        }
        return tx.Delete(post).Error
    })
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
    var p model.Post
    if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&p).Error; err != nil {
        return nil, err
    }
    return &p, nil
}

func (r *postRepository) GetByKey(ctx context.Context, key string) (*model.Post, error) {
    var p model.Post
    err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", key).First(&p).Error
    if err == nil {
        return &p, nil
    }
    if !errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, err
    }
    if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", key).First(&p).Error; err != nil {
        return nil, err
    }
    return &p, nil
}

func (r *postRepository) List(ctx context.Context, scope func(*gorm.DB) *gorm.DB, opts PostListOptions) ([]*model.Post, error) {
    q := r.db.WithContext(ctx).Model(&model.Post{}).Scopes(scope).Preload("Author")
    if opts.AuthorID != "" {
        q = q.Where("author_id = ?", opts.AuthorID)
    }
    if opts.Query != "" {
        like := "%" + opts.Query + "%"
        q = q.Where("title LIKE ? OR body LIKE ?", like, like)
    }
    if opts.Limit > 0 {
        q = q.Offset(opts.Offset).Limit(opts.Limit)
    }
    var res []*model.Post
    err := q.Order("published_at DESC, created_at DESC").Find(&res).Error
    return res, err
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&cnt).Error
    return cnt, err
}

func (r *postRepository) CountPublished(ctx context.Context) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.Post{}).Where("published_at IS NOT NULL").Count(&cnt).Error
    return cnt, err
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID).Count(&cnt).Error
    return cnt, err
}
