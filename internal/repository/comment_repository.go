package repository

import (
    "context"

    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/pressroom/internal/model"
)

type CommentRepository interface {
    // CreateWithCount 插入评论并在同一事务内对父文章计数 +1。
    // 两个写操作要么同时落地要么同时回滚
    CreateWithCount(ctx context.Context, comment *model.Comment) error
    // DeleteWithCount 删除评论并在同一事务内计数 -1
    DeleteWithCount(ctx context.Context, comment *model.Comment) error
    GetByID(ctx context.Context, id string) (*model.Comment, error)
    ListForPost(ctx context.Context, postID string) ([]*model.Comment, error)
    // ListCommenters 该文章去重后的具名评论者
    ListCommenters(ctx context.Context, postID string) ([]*model.User, error)
    CountForPost(ctx context.Context, postID string) (int64, error)
    Count(ctx context.Context) (int64, error)
    CountByUser(ctx context.Context, userID string) (int64, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) CreateWithCount(ctx context.Context, comment *model.Comment) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
            return err
        }
        return tx.Model(&model.Post{}).Where("id = ?", comment.PostID).
            UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
    })
}

func (r *commentRepository) DeleteWithCount(ctx context.Context, comment *model.Comment) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        res := tx.Delete(comment)
        if res.Error != nil {
            return res.Error
        }
        if res.RowsAffected == 0 {
            return gorm.ErrRecordNotFound
        }
        return tx.Model(&model.Post{}).Where("id = ?", comment.PostID).
            UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error
    })
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
    var c model.Comment
    if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&c).Error; err != nil {
        return nil, err
    }
    return &c, nil
}

func (r *commentRepository) ListForPost(ctx context.Context, postID string) ([]*model.Comment, error) {
    var res []*model.Comment
    err := r.db.WithContext(ctx).Preload("User").
        Where("post_id = ?", postID).
        Order("created_at DESC").
        Find(&res).Error
    return res, err
}

func (r *commentRepository) ListCommenters(ctx context.Context, postID string) ([]*model.User, error) {
    var res []*model.User
    err := r.db.WithContext(ctx).
        Model(&model.User{}).
        Distinct("users.*").
        Joins("JOIN comments ON comments.user_id = users.id").
        Where("comments.post_id = ?", postID).
        Find(&res).Error
    return res, err
}

func (r *commentRepository) CountForPost(ctx context.Context, postID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postID).Count(&cnt).Error
    return cnt, err
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.Comment{}).Count(&cnt).Error
    return cnt, err
}

func (r *commentRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("user_id = ?", userID).Count(&cnt).Error
    return cnt, err
}
