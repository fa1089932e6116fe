package controllers_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/controllers"
	"github.com/postline/api-go/middleware"
	"github.com/postline/api-go/models"
	"github.com/postline/api-go/utils"
	"gorm.io/gorm"
)

// fixture is an in-memory stand-in for the Postgres repositories so
// handlers can be exercised without a database.
type fixture struct {
	users    map[uint]models.User
	groups   map[uint]models.Group
	posts    map[uint]models.Post
	comments map[uint]models.Comment
	follows  []models.Follow
	nextID   uint
	now      time.Time
}

func newFixture() *fixture {
	return &fixture{
		users:    map[uint]models.User{},
		groups:   map[uint]models.Group{},
		posts:    map[uint]models.Post{},
		comments: map[uint]models.Comment{},
		now:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) id() uint {
	f.nextID++
	return f.nextID
}

// tick returns a strictly increasing timestamp so creation order is
// unambiguous.
func (f *fixture) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fixture) addUser(username string) models.User {
	u := models.User{ID: f.id(), Username: username, Email: username + "@example.com"}
	f.users[u.ID] = u
	return u
}

func (f *fixture) addGroup(title, slug string) models.Group {
	g := models.Group{ID: f.id(), Title: title, Slug: slug}
	f.groups[g.ID] = g
	return g
}

func (f *fixture) addPost(author models.User, group *models.Group, text string) models.Post {
	p := models.Post{ID: f.id(), Text: text, AuthorID: author.ID, CreatedAt: f.tick()}
	if group != nil {
		gid := group.ID
		p.GroupID = &gid
	}
	f.posts[p.ID] = p
	return p
}

func (f *fixture) addComment(post models.Post, author models.User, text string) models.Comment {
	c := models.Comment{ID: f.id(), PostID: post.ID, AuthorID: author.ID, Text: text, CreatedAt: f.tick()}
	f.comments[c.ID] = c
	return c
}

// hydrate fills the relations the Postgres repositories preload.
func (f *fixture) hydrate(p models.Post) models.Post {
	p.Author = f.users[p.AuthorID]
	if p.GroupID != nil {
		g := f.groups[*p.GroupID]
		p.Group = &g
	}
	return p
}

func (f *fixture) newestFirst(match func(models.Post) bool, limit, offset int) []models.Post {
	var out []models.Post
	for _, p := range f.posts {
		if match(p) {
			out = append(out, f.hydrate(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (f *fixture) count(match func(models.Post) bool) int64 {
	var n int64
	for _, p := range f.posts {
		if match(p) {
			n++
		}
	}
	return n
}

type fakePostRepo struct{ f *fixture }

func (r fakePostRepo) Create(post *models.Post) error {
	post.ID = r.f.id()
	post.CreatedAt = r.f.tick()
	r.f.posts[post.ID] = *post
	return nil
}

func (r fakePostRepo) GetByID(id uint) (*models.Post, error) {
	p, ok := r.f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p = r.f.hydrate(p)
	return &p, nil
}

func (r fakePostRepo) Update(post *models.Post) error {
	stored, ok := r.f.posts[post.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// Mirrors the column list of the Postgres implementation: id, author
	// and creation time stay as stored.
	stored.Text = post.Text
	stored.GroupID = post.GroupID
	stored.ImageURL = post.ImageURL
	r.f.posts[post.ID] = stored
	return nil
}

func (r fakePostRepo) Delete(id uint) error {
	delete(r.f.posts, id)
	// Mirrors the ON DELETE CASCADE on comments.post_id.
	for cid, c := range r.f.comments {
		if c.PostID == id {
			delete(r.f.comments, cid)
		}
	}
	return nil
}

func (r fakePostRepo) Newest(limit, offset int) ([]models.Post, error) {
	return r.f.newestFirst(func(models.Post) bool { return true }, limit, offset), nil
}

func (r fakePostRepo) CountAll() (int64, error) {
	return r.f.count(func(models.Post) bool { return true }), nil
}

func (r fakePostRepo) ByAuthor(authorID uint, limit, offset int) ([]models.Post, error) {
	return r.f.newestFirst(func(p models.Post) bool { return p.AuthorID == authorID }, limit, offset), nil
}

func (r fakePostRepo) CountByAuthor(authorID uint) (int64, error) {
	return r.f.count(func(p models.Post) bool { return p.AuthorID == authorID }), nil
}

func (r fakePostRepo) ByGroup(groupID uint, limit, offset int) ([]models.Post, error) {
	return r.f.newestFirst(func(p models.Post) bool { return p.GroupID != nil && *p.GroupID == groupID }, limit, offset), nil
}

func (r fakePostRepo) CountByGroup(groupID uint) (int64, error) {
	return r.f.count(func(p models.Post) bool { return p.GroupID != nil && *p.GroupID == groupID }), nil
}

func (r fakePostRepo) ByAuthors(authorIDs []uint, limit, offset int) ([]models.Post, error) {
	set := map[uint]bool{}
	for _, id := range authorIDs {
		set[id] = true
	}
	return r.f.newestFirst(func(p models.Post) bool { return set[p.AuthorID] }, limit, offset), nil
}

func (r fakePostRepo) CountByAuthors(authorIDs []uint) (int64, error) {
	set := map[uint]bool{}
	for _, id := range authorIDs {
		set[id] = true
	}
	return r.f.count(func(p models.Post) bool { return set[p.AuthorID] }), nil
}

type fakeGroupRepo struct{ f *fixture }

func (r fakeGroupRepo) Create(group *models.Group) error {
	group.ID = r.f.id()
	r.f.groups[group.ID] = *group
	return nil
}

func (r fakeGroupRepo) GetByID(id uint) (*models.Group, error) {
	g, ok := r.f.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &g, nil
}

func (r fakeGroupRepo) GetBySlug(slug string) (*models.Group, error) {
	for _, g := range r.f.groups {
		if g.Slug == slug {
			g := g
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeGroupRepo) All() ([]models.Group, error) {
	var out []models.Group
	for _, g := range r.f.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r fakeGroupRepo) Delete(id uint) error {
	delete(r.f.groups, id)
	// Mirrors the ON DELETE SET NULL on posts.group_id.
	for pid, p := range r.f.posts {
		if p.GroupID != nil && *p.GroupID == id {
			p.GroupID = nil
			r.f.posts[pid] = p
		}
	}
	return nil
}

type fakeUserRepo struct{ f *fixture }

func (r fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.f.id()
	r.f.users[user.ID] = *user
	return nil
}

func (r fakeUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := r.f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCommentRepo struct{ f *fixture }

func (r fakeCommentRepo) Create(comment *models.Comment) error {
	comment.ID = r.f.id()
	comment.CreatedAt = r.f.tick()
	r.f.comments[comment.ID] = *comment
	return nil
}

func (r fakeCommentRepo) ByPost(postID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.f.comments {
		if c.PostID == postID {
			c.Author = r.f.users[c.AuthorID]
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeFollowRepo struct{ f *fixture }

func (r fakeFollowRepo) Create(follow *models.Follow) error {
	for _, edge := range r.f.follows {
		if edge.UserID == follow.UserID && edge.AuthorID == follow.AuthorID {
			return nil
		}
	}
	follow.ID = r.f.id()
	r.f.follows = append(r.f.follows, *follow)
	return nil
}

func (r fakeFollowRepo) Delete(userID, authorID uint) error {
	for i, edge := range r.f.follows {
		if edge.UserID == userID && edge.AuthorID == authorID {
			r.f.follows = append(r.f.follows[:i], r.f.follows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r fakeFollowRepo) Exists(userID, authorID uint) (bool, error) {
	for _, edge := range r.f.follows {
		if edge.UserID == userID && edge.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeFollowRepo) AuthorIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, edge := range r.f.follows {
		if edge.UserID == userID {
			ids = append(ids, edge.AuthorID)
		}
	}
	return ids, nil
}

// fakeStorage accepts any key listed in uploaded.
type fakeStorage struct {
	uploaded map[string]bool
}

func (s fakeStorage) PresignPut(_ context.Context, key, _ string) (string, error) {
	if s.uploaded == nil {
		return "", errors.New("storage unavailable")
	}
	return "https://media.test/upload/" + key, nil
}

func (s fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	return s.uploaded[key], nil
}

func (s fakeStorage) PublicURL(key string) string {
	return "https://media.test/" + key
}

// setupRouter registers the page routes against the fixture. When claims
// is non-nil every request runs as that user; otherwise requests are
// anonymous and the real login gate applies.
func setupRouter(f *fixture, claims *utils.UserClaims, storage controllers.MediaStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if claims != nil {
		r.Use(func(c *gin.Context) {
			c.Set(string(utils.UserContextKey), claims)
		})
	}

	postRepo := fakePostRepo{f}
	groupRepo := fakeGroupRepo{f}
	userRepo := fakeUserRepo{f}
	commentRepo := fakeCommentRepo{f}
	followRepo := fakeFollowRepo{f}

	postsController := controllers.NewPostsController(postRepo, groupRepo, commentRepo, storage)
	groupController := controllers.NewGroupController(groupRepo, postRepo)
	profileController := controllers.NewProfileController(userRepo, postRepo, followRepo)
	followController := controllers.NewFollowController(followRepo, userRepo, postRepo)

	r.GET("/", postsController.Index)
	r.GET("/group/", groupController.GroupList)
	r.GET("/group/:slug/", groupController.GroupPosts)
	r.GET("/profile/:username/", profileController.Profile)
	r.GET("/posts/:post_id/", postsController.PostDetail)

	protected := r.Group("", middleware.LoginRequired())
	protected.GET("/create/", postsController.NewPost)
	protected.POST("/create/", postsController.CreatePost)
	protected.GET("/posts/:post_id/edit/", postsController.EditPost)
	protected.POST("/posts/:post_id/edit/", postsController.UpdatePost)
	protected.POST("/posts/:post_id/delete/", postsController.DeletePost)
	protected.POST("/posts/:post_id/comment/", postsController.AddComment)
	protected.GET("/follow/", followController.FollowIndex)
	protected.GET("/profile/:username/follow/", followController.Follow)
	protected.POST("/profile/:username/follow/", followController.Follow)
	protected.GET("/profile/:username/unfollow/", followController.Unfollow)
	protected.POST("/profile/:username/unfollow/", followController.Unfollow)

	return r
}

func followEdge(f *fixture, userID, authorID uint) models.Follow {
	return models.Follow{ID: f.id(), UserID: userID, AuthorID: authorID}
}

func asUser(u models.User) *utils.UserClaims {
	return &utils.UserClaims{UserID: u.ID, Username: u.Username}
}
