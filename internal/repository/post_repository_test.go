package repository

import (
    "context"
    "testing"

    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/model"
)

func setupRepoDB(t *testing.T) *gorm.DB {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
    require.NoError(t, err)
    sqlDB, err := db.DB()
    require.NoError(t, err)
    sqlDB.SetMaxOpenConns(1)
    require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}))
    return db
}

func seedPostRow(t *testing.T, db *gorm.DB, id, author, slug string) *model.Post {
    t.Helper()
    u := &model.User{ID: author, Email: author + "-" + id + "@example.com", Name: author, Password: "x", Role: model.RoleMember}
    require.NoError(t, db.FirstOrCreate(u, model.User{ID: author}).Error)
    p := &model.Post{ID: id, AuthorID: author, Title: "Title " + id, Body: "body", Slug: slug}
    require.NoError(t, db.Create(p).Error)
    return p
}

func TestGetByKeyPrefersSlug(t *testing.T) {
    db := setupRepoDB(t)
    repo := NewPostRepository(db)
    ctx := context.Background()

    seedPostRow(t, db, "id-1", "alice", "hello-world")

    bySlug, err := repo.GetByKey(ctx, "hello-world")
    require.NoError(t, err)
    require.Equal(t, "id-1", bySlug.ID)
    require.NotNil(t, bySlug.Author)

    byID, err := repo.GetByKey(ctx, "id-1")
    require.NoError(t, err)
    require.Equal(t, "hello-world", byID.Slug)

    _, err = repo.GetByKey(ctx, "missing")
    require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCompositeSlugConstraint(t *testing.T) {
    db := setupRepoDB(t)
    repo := NewPostRepository(db)
    ctx := context.Background()

    require.NoError(t, repo.Create(ctx, &model.Post{ID: "a1", AuthorID: "alice", Title: "T", Body: "b", Slug: "shared"}))
    // 同作者同 slug 撞唯一键
    err := repo.Create(ctx, &model.Post{ID: "a2", AuthorID: "alice", Title: "T", Body: "b", Slug: "shared"})
    require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
    // 异作者同 slug 合法
    require.NoError(t, repo.Create(ctx, &model.Post{ID: "b1", AuthorID: "bob", Title: "T", Body: "b", Slug: "shared"}))
}

func TestDeleteCascadesComments(t *testing.T) {
    db := setupRepoDB(t)
    posts := NewPostRepository(db)
    comments := NewCommentRepository(db)
    ctx := context.Background()

    p := seedPostRow(t, db, "id-1", "alice", "hello-world")
    for _, cid := range []string{"c1", "c2"} {
        require.NoError(t, comments.CreateWithCount(ctx, &model.Comment{ID: cid, PostID: p.ID, Body: "a comment"}))
    }
    cnt, err := comments.CountForPost(ctx, p.ID)
    require.NoError(t, err)
    require.EqualValues(t, 2, cnt)

    require.NoError(t, posts.Delete(ctx, p))

    cnt, err = comments.CountForPost(ctx, p.ID)
    require.NoError(t, err)
    require.Zero(t, cnt, "comments removed with the post")
    _, err = posts.GetByID(ctx, p.ID)
    require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListCommentersDistinct(t *testing.T) {
    db := setupRepoDB(t)
    comments := NewCommentRepository(db)
    ctx := context.Background()

    p := seedPostRow(t, db, "id-1", "alice", "hello-world")
    bob := &model.User{ID: "bob", Email: "bob@example.com", Name: "bob", Password: "x", Role: model.RoleMember}
    require.NoError(t, db.Create(bob).Error)

    bobID := bob.ID
    for _, cid := range []string{"c1", "c2"} {
        require.NoError(t, comments.CreateWithCount(ctx, &model.Comment{ID: cid, PostID: p.ID, UserID: &bobID, Body: "a comment"}))
    }
    // 匿名评论不产生收件人
    require.NoError(t, comments.CreateWithCount(ctx, &model.Comment{ID: "c3", PostID: p.ID, Body: "guest comment"}))

    users, err := comments.ListCommenters(ctx, p.ID)
    require.NoError(t, err)
    require.Len(t, users, 1, "duplicates collapsed, anonymous excluded")
    require.Equal(t, "bob", users[0].ID)
}

func TestCounterStaysExact(t *testing.T) {
    db := setupRepoDB(t)
    comments := NewCommentRepository(db)
    ctx := context.Background()

    p := seedPostRow(t, db, "id-1", "alice", "hello-world")
    c := &model.Comment{ID: "c1", PostID: p.ID, Body: "a comment"}
    require.NoError(t, comments.CreateWithCount(ctx, c))
    require.NoError(t, comments.DeleteWithCount(ctx, c))

    var stored model.Post
    require.NoError(t, db.Where("id = ?", p.ID).First(&stored).Error)
    require.Zero(t, stored.CommentsCount)

    require.ErrorIs(t, comments.DeleteWithCount(ctx, c), gorm.ErrRecordNotFound)
}
