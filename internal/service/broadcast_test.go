package service

import (
    "context"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/pressroom/internal/model"
)

func TestBroadcastReachesSubscriber(t *testing.T) {
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })

    b := NewStatusBroadcaster(rdb)
    ctx := context.Background()

    updates, cancel := b.Subscribe(ctx, "p1")
    defer cancel()
    // 订阅建立是异步的，给 pubsub 一点时间
    time.Sleep(50 * time.Millisecond)

    now := time.Now()
    b.Broadcast(ctx, &model.Post{ID: "p1", Slug: "hello-world", PublishedAt: &now})

    select {
    case upd := <-updates:
        require.Equal(t, "p1", upd.PostID)
        require.Equal(t, "hello-world", upd.Slug)
        require.True(t, upd.Published)
        require.NotNil(t, upd.PublishedAt)
    case <-time.After(2 * time.Second):
        t.Fatal("no status update received")
    }
}

func TestBroadcastNoopWithoutRedis(t *testing.T) {
    b := NewStatusBroadcaster(nil)
    // 没配 redis 时广播与订阅都安静退化
    b.Broadcast(context.Background(), &model.Post{ID: "p1"})
    updates, cancel := b.Subscribe(context.Background(), "p1")
    defer cancel()
    _, open := <-updates
    require.False(t, open)
}
