package service

import (
    "context"
    "errors"
    "fmt"
    "strings"

    "gorm.io/gorm"

    "go.uber.org/zap"

    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/internal/repository"
    "github.com/d60-Lab/pressroom/pkg/logger"

    "github.com/google/uuid"
)

func logNotifyLookupFailure(what, postID string, err error) {
    logger.Warn("notification fan-out lookup failed",
        zap.String("what", what), zap.String("post", postID), zap.Error(err))
}

// DefaultSpamKeywords 朴素的关键字黑名单，误伤是接受的代价，
// 不调外部服务、不阻塞
var DefaultSpamKeywords = []string{
    "casino", "lottery", "winner", "bitcoin", "crypto",
    "click-here", "buy-now", "limited-time", "act-now",
}

// CommentService 评论流水线：校验 → 垃圾过滤 → 事务落库+计数 → 异步通知
type CommentService struct {
    comments repository.CommentRepository
    users    repository.UserRepository
    notifier *Notifier
    keywords []string
}

func NewCommentService(comments repository.CommentRepository, users repository.UserRepository, notifier *Notifier, keywords []string) *CommentService {
    if len(keywords) == 0 {
        keywords = DefaultSpamKeywords
    }
    lowered := make([]string, len(keywords))
    for i, k := range keywords {
        lowered[i] = strings.ToLower(k)
    }
    return &CommentService{comments: comments, users: users, notifier: notifier, keywords: lowered}
}

func (s *CommentService) spam(body string) bool {
    lowered := strings.ToLower(body)
    for _, k := range s.keywords {
        if strings.Contains(lowered, k) {
            return true
        }
    }
    return false
}

// Submit 每一步都是硬门禁，前三步为纯校验拒绝。
// 评论插入与父文章计数 +1 在同一事务；通知在提交之后才入队，
// 通知失败永远不影响评论创建
func (s *CommentService) Submit(ctx context.Context, post *model.Post, actor *model.User, body string) (Outcome, error) {
    comment := &model.Comment{ID: uuid.New().String(), PostID: post.ID, Body: body}
    if actor != nil {
        comment.UserID = &actor.ID
    }

    if strings.TrimSpace(body) == "" {
        return CommentFail(comment, CodeInvalid, "Comment body can't be blank"), nil
    }
    if s.spam(body) {
        return CommentFail(comment, CodeSpamBlocked, "Comment appears to be spam and was blocked"), nil
    }
    if n := len([]rune(body)); n < model.BodyMinLen || n > model.BodyMaxLen {
        return CommentFail(comment, CodeInvalid,
            fmt.Sprintf("Body must be %d-%d characters", model.BodyMinLen, model.BodyMaxLen)), nil
    }

    if err := s.comments.CreateWithCount(ctx, comment); err != nil {
        // 并发冲突按 invalid 返回，由调用方决定是否重提
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            return CommentFail(comment, CodeInvalid, "Comment could not be saved: "+err.Error()), nil
        }
        return Outcome{}, err
    }
    post.CommentsCount++

    s.fanOut(ctx, post, comment, actor)
    return CommentOK(comment), nil
}

// Delete 删除评论并同步计数
func (s *CommentService) Delete(ctx context.Context, comment *model.Comment) error {
    return s.comments.DeleteWithCount(ctx, comment)
}

// fanOut 收件人 = 文章作者（有邮箱且不是评论者本人）
// + 该文章此前的具名评论者，排除当前评论者与文章作者，按 ID 去重。
// 任何查询失败只记日志，绝不让通知问题波及已提交的评论
func (s *CommentService) fanOut(ctx context.Context, post *model.Post, comment *model.Comment, actor *model.User) {
    seen := make(map[string]struct{})
    enqueue := func(u *model.User) {
        if u == nil || u.Email == "" {
            return
        }
        if _, dup := seen[u.ID]; dup {
            return
        }
        seen[u.ID] = struct{}{}
        s.notifier.Enqueue(Notification{Recipient: u, Post: post, Comment: comment})
    }

    owner := post.Author
    if owner == nil {
        var err error
        if owner, err = s.users.GetByID(ctx, post.AuthorID); err != nil {
            logNotifyLookupFailure("post author", post.ID, err)
            owner = nil
        }
    }
    if owner != nil && (actor == nil || actor.ID != owner.ID) {
        enqueue(owner)
    }

    commenters, err := s.comments.ListCommenters(ctx, post.ID)
    if err != nil {
        logNotifyLookupFailure("commenters", post.ID, err)
        return
    }
    for _, u := range commenters {
        if actor != nil && u.ID == actor.ID {
            continue
        }
        if u.ID == post.AuthorID {
            continue
        }
        enqueue(u)
    }
}
