package policy

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/pressroom/internal/model"
)

func member(id string) *model.User { return &model.User{ID: id, Role: model.RoleMember} }
func admin(id string) *model.User  { return &model.User{ID: id, Role: model.RoleAdmin} }

func draft(author string) *model.Post { return &model.Post{ID: "p1", AuthorID: author} }

func published(author string) *model.Post {
    now := time.Now()
    return &model.Post{ID: "p1", AuthorID: author, PublishedAt: &now}
}

func TestShowPost(t *testing.T) {
    e := NewEngine(Config{})

    require.True(t, e.ShowPost(nil, published("a")), "anonymous sees published")
    require.False(t, e.ShowPost(nil, draft("a")), "anonymous never sees drafts")
    require.True(t, e.ShowPost(member("a"), draft("a")), "owner sees own draft")
    require.False(t, e.ShowPost(member("b"), draft("a")), "other member denied on draft")
    require.True(t, e.ShowPost(admin("x"), draft("a")), "admin sees any draft")
    require.False(t, e.ShowPost(member("a"), nil))
}

func TestCreatePost(t *testing.T) {
    e := NewEngine(Config{})
    require.False(t, e.CreatePost(nil))
    require.True(t, e.CreatePost(member("a")))
    require.True(t, e.CreatePost(admin("x")))
}

func TestUpdatePost(t *testing.T) {
    e := NewEngine(Config{})
    p := draft("a")
    require.False(t, e.UpdatePost(nil, p))
    require.True(t, e.UpdatePost(member("a"), p))
    require.False(t, e.UpdatePost(member("b"), p))
    require.True(t, e.UpdatePost(admin("x"), p))
}

func TestDeletePost_OwnerOrAdmin(t *testing.T) {
    e := NewEngine(Config{})
    p := draft("a")
    require.False(t, e.DeletePost(nil, p))
    require.True(t, e.DeletePost(member("a"), p))
    require.False(t, e.DeletePost(member("b"), p))
    require.True(t, e.DeletePost(admin("x"), p))
}

func TestDeletePost_AdminOnlyVariant(t *testing.T) {
    e := NewEngine(Config{DeleteRequiresAdmin: true})
    p := draft("a")
    require.False(t, e.DeletePost(member("a"), p), "owner denied under admin-only variant")
    require.True(t, e.DeletePost(admin("x"), p))
}

func TestPublishUnpublish(t *testing.T) {
    e := NewEngine(Config{})
    p := draft("a")
    require.False(t, e.PublishPost(nil, p))
    require.True(t, e.PublishPost(member("a"), p))
    require.False(t, e.PublishPost(member("b"), p))
    require.True(t, e.PublishPost(admin("x"), p))
    // 已发布的文章依然允许走 publish 策略：冲突属于领域层
    require.True(t, e.PublishPost(member("a"), published("a")))
    require.True(t, e.UnpublishPost(admin("x"), published("a")))
}

func TestCommentPolicies(t *testing.T) {
    e := NewEngine(Config{})
    require.False(t, e.CreateComment(nil))
    require.True(t, e.CreateComment(member("a")))

    uid := "a"
    own := &model.Comment{ID: "c1", PostID: "p1", UserID: &uid}
    anon := &model.Comment{ID: "c2", PostID: "p1"}
    require.True(t, e.DeleteComment(member("a"), own))
    require.False(t, e.DeleteComment(member("b"), own))
    require.True(t, e.DeleteComment(admin("x"), own))
    require.False(t, e.DeleteComment(member("a"), anon), "anonymous comment owned by nobody")
    require.True(t, e.DeleteComment(admin("x"), anon))
    require.False(t, e.DeleteComment(nil, own))
}

func TestManageUsers(t *testing.T) {
    e := NewEngine(Config{})
    require.False(t, e.ManageUsers(nil))
    require.False(t, e.ManageUsers(member("a")))
    require.True(t, e.ManageUsers(admin("x")))
}

func TestPostScope(t *testing.T) {
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, db.AutoMigrate(&model.Post{}))

    now := time.Now()
    posts := []model.Post{
        {ID: "p1", AuthorID: "a", Title: "a draft", Body: "body", Slug: "a-draft"},
        {ID: "p2", AuthorID: "a", Title: "a live", Body: "body", Slug: "a-live", PublishedAt: &now},
        {ID: "p3", AuthorID: "b", Title: "b draft", Body: "body", Slug: "b-draft"},
    }
    require.NoError(t, db.Create(&posts).Error)

    e := NewEngine(Config{})
    count := func(actor *model.User) int64 {
        var n int64
        require.NoError(t, db.Model(&model.Post{}).Scopes(e.PostScope(actor)).Count(&n).Error)
        return n
    }

    require.EqualValues(t, 1, count(nil), "anonymous sees only published")
    require.EqualValues(t, 2, count(member("a")), "member sees published plus own drafts")
    require.EqualValues(t, 2, count(member("b")))
    require.EqualValues(t, 3, count(admin("x")), "admin sees everything")
}
