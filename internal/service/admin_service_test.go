package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/model"
    "github.com/d60-Lab/pressroom/internal/repository"
)

func newAdminFixture(t *testing.T) (*AdminService, *gorm.DB) {
    t.Helper()
    db := setupDB(t)
    svc := NewAdminService(
        repository.NewUserRepository(db),
        repository.NewPostRepository(db),
        repository.NewCommentRepository(db),
    )
    return svc, db
}

func TestListUsersFilters(t *testing.T) {
    svc, db := newAdminFixture(t)
    ctx := context.Background()
    seedUser(t, db, "alice", model.RoleMember)
    seedUser(t, db, "bob", model.RoleMember)
    root := seedUser(t, db, "root", model.RoleAdmin)

    all, err := svc.ListUsers(ctx, repository.UserListOptions{})
    require.NoError(t, err)
    require.Len(t, all, 3)

    admins, err := svc.ListUsers(ctx, repository.UserListOptions{Role: model.RoleAdmin})
    require.NoError(t, err)
    require.Len(t, admins, 1)
    require.Equal(t, root.ID, admins[0].ID)

    found, err := svc.ListUsers(ctx, repository.UserListOptions{Query: "bob@"})
    require.NoError(t, err)
    require.Len(t, found, 1)
    require.Equal(t, "bob", found[0].ID)
}

func TestUpdateUserRole(t *testing.T) {
    svc, db := newAdminFixture(t)
    ctx := context.Background()
    root := seedUser(t, db, "root", model.RoleAdmin)
    alice := seedUser(t, db, "alice", model.RoleMember)

    promoted, err := svc.UpdateUserRole(ctx, root, alice.ID, model.RoleAdmin)
    require.NoError(t, err)
    require.Equal(t, model.RoleAdmin, promoted.Role)

    var stored model.User
    require.NoError(t, db.Where("id = ?", alice.ID).First(&stored).Error)
    require.Equal(t, model.RoleAdmin, stored.Role)

    _, err = svc.UpdateUserRole(ctx, root, alice.ID, "superuser")
    require.ErrorIs(t, err, ErrUnknownRole)

    _, err = svc.UpdateUserRole(ctx, root, "nobody", model.RoleAdmin)
    require.ErrorIs(t, err, ErrUserNotFound)
}

// 管理员不能调整自己的角色
func TestUpdateUserRoleSelfGuard(t *testing.T) {
    svc, db := newAdminFixture(t)
    ctx := context.Background()
    root := seedUser(t, db, "root", model.RoleAdmin)

    _, err := svc.UpdateUserRole(ctx, root, root.ID, model.RoleMember)
    require.ErrorIs(t, err, ErrOwnRoleChange)

    var stored model.User
    require.NoError(t, db.Where("id = ?", root.ID).First(&stored).Error)
    require.Equal(t, model.RoleAdmin, stored.Role)
}

func TestDeleteUserGuards(t *testing.T) {
    svc, db := newAdminFixture(t)
    ctx := context.Background()
    root := seedUser(t, db, "root", model.RoleAdmin)
    writer := seedUser(t, db, "writer", model.RoleMember)
    idle := seedUser(t, db, "idle", model.RoleMember)

    seedPost(t, db, writer)

    require.ErrorIs(t, svc.DeleteUser(ctx, root, root.ID), ErrOwnAccountDel)
    require.ErrorIs(t, svc.DeleteUser(ctx, root, writer.ID), ErrUserHasContent)
    require.ErrorIs(t, svc.DeleteUser(ctx, root, "nobody"), ErrUserNotFound)

    require.NoError(t, svc.DeleteUser(ctx, root, idle.ID))
    var n int64
    require.NoError(t, db.Model(&model.User{}).Where("id = ?", idle.ID).Count(&n).Error)
    require.EqualValues(t, 0, n)
}

func TestDashboard(t *testing.T) {
    svc, db := newAdminFixture(t)
    ctx := context.Background()
    root := seedUser(t, db, "root", model.RoleAdmin)
    writer := seedUser(t, db, "writer", model.RoleMember)

    posts := NewPostService(repository.NewPostRepository(db), NewStatusBroadcaster(nil))
    draft, err := posts.Create(ctx, writer, CreatePostInput{Title: "Draft Post", Body: "draft body"})
    require.NoError(t, err)
    _, err = posts.Create(ctx, writer, CreatePostInput{Title: "Live Post", Body: "live body", PublishNow: true})
    require.NoError(t, err)

    comments := repository.NewCommentRepository(db)
    require.NoError(t, comments.CreateWithCount(ctx, &model.Comment{
        ID: "c1", PostID: draft.Post.ID, UserID: &root.ID, Body: "a comment",
    }))

    stats, err := svc.Dashboard(ctx)
    require.NoError(t, err)
    require.EqualValues(t, 2, stats.TotalUsers)
    require.EqualValues(t, 1, stats.AdminUsers)
    require.EqualValues(t, 2, stats.TotalPosts)
    require.EqualValues(t, 1, stats.PublishedPosts)
    require.EqualValues(t, 1, stats.DraftPosts)
    require.EqualValues(t, 1, stats.TotalComments)
}
