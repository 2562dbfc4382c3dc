package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/internal/repository"
)

func newAuthFixture(t *testing.T) *AuthService {
    t.Helper()
    db := setupDB(t)
    return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
    svc := newAuthFixture(t)
    ctx := context.Background()

    u, err := svc.Register(ctx, "alice@example.com", "Alice", "hunter2hunter2")
    require.NoError(t, err)
    require.Equal(t, model.RoleMember, u.Role)
    require.NotEqual(t, "hunter2hunter2", u.Password, "password stored hashed")

    token, logged, err := svc.Login(ctx, "alice@example.com", "hunter2hunter2")
    require.NoError(t, err)
    require.Equal(t, u.ID, logged.ID)

    actor, err := svc.ResolveActor(ctx, token)
    require.NoError(t, err)
    require.Equal(t, u.ID, actor.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
    svc := newAuthFixture(t)
    ctx := context.Background()

    _, err := svc.Register(ctx, "alice@example.com", "Alice", "hunter2hunter2")
    require.NoError(t, err)
    _, err = svc.Register(ctx, "alice@example.com", "Alice Again", "hunter2hunter2")
    require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginBadCredentials(t *testing.T) {
    svc := newAuthFixture(t)
    ctx := context.Background()

    _, err := svc.Register(ctx, "alice@example.com", "Alice", "hunter2hunter2")
    require.NoError(t, err)

    _, _, err = svc.Login(ctx, "alice@example.com", "wrong-password")
    require.ErrorIs(t, err, ErrBadCredentials)
    _, _, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
    require.ErrorIs(t, err, ErrBadCredentials)
}

func TestResolveActorAnonymous(t *testing.T) {
    svc := newAuthFixture(t)
    actor, err := svc.ResolveActor(context.Background(), "")
    require.NoError(t, err)
    require.Nil(t, actor, "empty token is anonymous, not an error")
}

func TestResolveActorBadToken(t *testing.T) {
    svc := newAuthFixture(t)
    _, err := svc.ResolveActor(context.Background(), "not-a-jwt")
    require.Error(t, err)
}

func TestEnsureAdmin(t *testing.T) {
    svc := newAuthFixture(t)
    ctx := context.Background()

    created, err := svc.EnsureAdmin(ctx, "root@example.com", "Root", "s3cr3ts3cr3t")
    require.NoError(t, err)
    require.Equal(t, model.RoleAdmin, created.Role)

    // 幂等，重启重跑不重复建号
    again, err := svc.EnsureAdmin(ctx, "root@example.com", "Root", "s3cr3ts3cr3t")
    require.NoError(t, err)
    require.Equal(t, created.ID, again.ID)

    _, logged, err := svc.Login(ctx, "root@example.com", "s3cr3ts3cr3t")
    require.NoError(t, err)
    require.Equal(t, model.RoleAdmin, logged.Role)
}

// 邮箱已注册为普通成员时原地提权，口令保持不变
func TestEnsureAdminPromotesExisting(t *testing.T) {
    svc := newAuthFixture(t)
    ctx := context.Background()

    alice, err := svc.Register(ctx, "alice@example.com", "Alice", "hunter2hunter2")
    require.NoError(t, err)

    promoted, err := svc.EnsureAdmin(ctx, "alice@example.com", "Alice", "ignored-password")
    require.NoError(t, err)
    require.Equal(t, alice.ID, promoted.ID)
    require.Equal(t, model.RoleAdmin, promoted.Role)

    _, logged, err := svc.Login(ctx, "alice@example.com", "hunter2hunter2")
    require.NoError(t, err)
    require.Equal(t, model.RoleAdmin, logged.Role)
}
