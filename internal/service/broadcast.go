package service

import (
    "context"
    "encoding/json"
    "time"

    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/pkg/logger"
)

// StatusUpdate 发布状态变更事件
type StatusUpdate struct {
    PostID      string     `json:"post_id"`
    Slug        string     `json:"slug"`
    Published   bool       `json:"published"`
    PublishedAt *time.Time `json:"published_at"`
}

// StatusBroadcaster 通过 redis pub/sub 把状态变更推给在线订阅者。
// rdb 为 nil 时整体退化为 no-op，广播失败只记日志
type StatusBroadcaster struct {
    rdb *redis.Client
}

func NewStatusBroadcaster(rdb *redis.Client) *StatusBroadcaster {
    return &StatusBroadcaster{rdb: rdb}
}

func statusChannel(postID string) string { return "post:" + postID + ":status" }

// Broadcast fire-and-forget，永远不向调用方返回错误
func (b *StatusBroadcaster) Broadcast(ctx context.Context, post *model.Post) {
    if b == nil || b.rdb == nil {
        return
    }
    payload, err := json.Marshal(StatusUpdate{
        PostID:      post.ID,
        Slug:        post.Slug,
        Published:   post.Published(),
        PublishedAt: post.PublishedAt,
    })
    if err != nil {
        logger.Warn("marshal status update", zap.Error(err))
        return
    }
    if err := b.rdb.Publish(ctx, statusChannel(post.ID), payload).Err(); err != nil {
        logger.Warn("broadcast status update", zap.String("post", post.ID), zap.Error(err))
    }
}

// Subscribe 订阅某篇文章的状态频道；返回事件通道与取消函数
func (b *StatusBroadcaster) Subscribe(ctx context.Context, postID string) (<-chan StatusUpdate, func()) {
    out := make(chan StatusUpdate, 16)
    if b == nil || b.rdb == nil {
        close(out)
        return out, func() {}
    }
    sub := b.rdb.Subscribe(ctx, statusChannel(postID))
    go func() {
        defer close(out)
        for msg := range sub.Channel() {
            var upd StatusUpdate
            if err := json.Unmarshal([]byte(msg.Payload), &upd); err != nil {
                logger.Warn("decode status update", zap.Error(err))
                continue
            }
            select {
            case out <- upd:
            default:
            }
        }
    }()
    return out, func() { _ = sub.Close() }
}
