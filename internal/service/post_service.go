package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/internal/repository"

    "github.com/google/uuid"
)

// slug 冲突重试上限；靠 (author_id, slug) 唯一键判冲突，不做预查
const maxSlugAttempts = 50

// PostService 文章生命周期：创建、修改、删除与发布状态机
type PostService struct {
    posts       repository.PostRepository
    broadcaster *StatusBroadcaster
}

func NewPostService(posts repository.PostRepository, broadcaster *StatusBroadcaster) *PostService {
    return &PostService{posts: posts, broadcaster: broadcaster}
}

// CreatePostInput 创建参数；PublishNow 走建稿即发布捷径
type CreatePostInput struct {
    Title      string
    Body       string
    PublishNow bool
}

func validateTitleBody(title, body string) string {
    msg := ""
    if n := len([]rune(title)); n < model.TitleMinLen || n > model.TitleMaxLen {
        msg = fmt.Sprintf("Title must be %d-%d characters", model.TitleMinLen, model.TitleMaxLen)
    }
    if n := len([]rune(body)); n < model.BodyMinLen || n > model.BodyMaxLen {
        if msg != "" {
            msg += ", "
        }
        msg += fmt.Sprintf("Body must be %d-%d characters", model.BodyMinLen, model.BodyMaxLen)
    }
    return msg
}

// Create 建稿。PublishNow 时写入时间戳但不记录 published_by，
// 这是初始状态选择而非 publish 转移，不触发状态广播
func (s *PostService) Create(ctx context.Context, author *model.User, in CreatePostInput) (Outcome, error) {
    post := &model.Post{
        ID:       uuid.New().String(),
        AuthorID: author.ID,
        Title:    in.Title,
        Body:     in.Body,
    }
    if msg := validateTitleBody(in.Title, in.Body); msg != "" {
        return PostFail(post, CodeInvalid, msg), nil
    }
    if in.PublishNow {
        now := time.Now()
        post.PublishedAt = &now
    }
    if err := s.createWithSlug(ctx, post); err != nil {
        if errors.Is(err, ErrSlugExhausted) {
            return PostFail(post, CodeInvalid, "Slug has already been taken"), nil
        }
        return Outcome{}, err
    }
    return PostOK(post), nil
}

// createWithSlug 先试基础 slug，撞唯一键则依次追加 -1、-2…。
// 并发同名创建由存储层唯一约束裁决，而不是查了再插
func (s *PostService) createWithSlug(ctx context.Context, post *model.Post) error {
    base := Parameterize(post.Title)
    if base == "" {
        base = post.ID
    }
    for i := 0; i < maxSlugAttempts; i++ {
        post.Slug = base
        if i > 0 {
            post.Slug = fmt.Sprintf("%s-%d", base, i)
        }
        err := s.posts.Create(ctx, post)
        if err == nil {
            return nil
        }
        if !errors.Is(err, gorm.ErrDuplicatedKey) {
            return err
        }
    }
    return ErrSlugExhausted
}

// UpdatePostInput 修改参数
type UpdatePostInput struct {
    Title string
    Body  string
}

// Update 标题变更会重新分配 slug，规则与创建一致；
// 标题不变时重新分配是幂等的（候选首位就是当前 slug）
func (s *PostService) Update(ctx context.Context, post *model.Post, in UpdatePostInput) (Outcome, error) {
    if msg := validateTitleBody(in.Title, in.Body); msg != "" {
        return PostFail(post, CodeInvalid, msg), nil
    }
    post.Title = in.Title
    post.Body = in.Body
    base := Parameterize(in.Title)
    if base == "" {
        base = post.ID
    }
    for i := 0; i < maxSlugAttempts; i++ {
        post.Slug = base
        if i > 0 {
            post.Slug = fmt.Sprintf("%s-%d", base, i)
        }
        err := s.posts.UpdateContent(ctx, post)
        if err == nil {
            return PostOK(post), nil
        }
        if !errors.Is(err, gorm.ErrDuplicatedKey) {
            return Outcome{}, err
        }
    }
    return PostFail(post, CodeInvalid, "Slug has already been taken"), nil
}

// Delete 级联删除评论（仓储层同一事务）
func (s *PostService) Delete(ctx context.Context, post *model.Post) error {
    return s.posts.Delete(ctx, post)
}

// Publish 草稿 → 已发布。重复发布返回 already_published，不改任何字段。
// 这是唯一记录 published_by 的转移
func (s *PostService) Publish(ctx context.Context, post *model.Post, publisher *model.User) (Outcome, error) {
    if post.Published() {
        return PostFail(post, CodeAlreadyPublished, "Post is already published"), nil
    }
    now := time.Now()
    post.PublishedAt = &now
    post.PublishedByID = &publisher.ID
    if err := s.posts.UpdatePublication(ctx, post); err != nil {
        return Outcome{}, err
    }
    s.broadcaster.Broadcast(ctx, post)
    return PostOK(post), nil
}

// Unpublish 已发布 → 草稿，时间戳与 published_by 一并清空。
// 本来就是草稿时返回失败，不写库
func (s *PostService) Unpublish(ctx context.Context, post *model.Post) (Outcome, error) {
    if !post.Published() {
        return PostFail(post, CodeNotDraft, "Post is already a draft"), nil
    }
    post.PublishedAt = nil
    post.PublishedByID = nil
    if err := s.posts.UpdatePublication(ctx, post); err != nil {
        return Outcome{}, err
    }
    s.broadcaster.Broadcast(ctx, post)
    return PostOK(post), nil
}
