package service

import (
    "context"
    "time"

    "go.uber.org/zap"

    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/pkg/logger"
)

// Notification 一次评论通知的模板上下文
type Notification struct {
    Recipient *model.User
    Post      *model.Post
    Comment   *model.Comment
}

// Mailer 邮件队列协作方。投递失败由通知侧消化，核心不感知
type Mailer interface {
    Send(ctx context.Context, n Notification) error
}

// LogMailer 默认实现：只落日志，给本地与测试环境用
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, n Notification) error {
    logger.Info("comment notification",
        zap.String("recipient", n.Recipient.Email),
        zap.String("post", n.Post.ID),
        zap.String("comment", n.Comment.ID))
    return nil
}

// Notifier 评论通知的本地异步扇出执行器。
// 入队永不阻塞，队满丢弃并告警；投递失败不回传调用方
type Notifier struct {
    mailer Mailer
    ch     chan Notification
}

func NewNotifier(mailer Mailer, queueSize int) *Notifier {
    if queueSize <= 0 {
        queueSize = 10000
    }
    return &Notifier{mailer: mailer, ch: make(chan Notification, queueSize)}
}

// Start 启动 worker；返回停止函数，停止前等待队列自然排空一小段时间
func (r *Notifier) Start(workers int) func(context.Context) error {
    if workers <= 0 {
        workers = 4
    }
    stopCh := make(chan struct{})
    for i := 0; i < workers; i++ {
        go func() {
            for {
                select {
                case n := <-r.ch:
                    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
                    if err := r.mailer.Send(ctx, n); err != nil {
                        logger.Warn("notification delivery failed",
                            zap.String("recipient", n.Recipient.ID), zap.Error(err))
                    }
                    cancel()
                case <-stopCh:
                    return
                }
            }
        }()
    }
    return func(ctx context.Context) error {
        close(stopCh)
        timeout := time.After(2 * time.Second)
        for {
            select {
            case <-timeout:
                return nil
            default:
                if len(r.ch) == 0 {
                    return nil
                }
                time.Sleep(50 * time.Millisecond)
            }
        }
    }
}

// Enqueue 非阻塞入队
func (r *Notifier) Enqueue(n Notification) {
    select {
    case r.ch <- n:
    default:
        logger.Warn("notifier queue full, drop",
            zap.String("recipient", n.Recipient.ID), zap.String("post", n.Post.ID))
    }
}

// QueueLen 返回当前队列长度（采样值）。
func (r *Notifier) QueueLen() int { return len(r.ch) }
