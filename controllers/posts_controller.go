package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/models"
	"github.com/postline/api-go/repositories"
	"github.com/postline/api-go/types"
	"github.com/postline/api-go/utils"
	"gorm.io/gorm"
)

type PostsController struct {
	Posts    repositories.PostRepository
	Groups   repositories.GroupRepository
	Comments repositories.CommentRepository
	Storage  MediaStorage
}

// PostForm is the create/edit submission: required text, optional group id,
// optional image reference. The image field carries the key of a fresh
// upload, or on edit the stored URL the form was prefilled with to keep
// the current image. An empty field clears it, like an empty group.
type PostForm struct {
	Text  string `form:"text" binding:"required"`
	Group string `form:"group"`
	Image string `form:"image"`
}

type CommentForm struct {
	Text string `form:"text" binding:"required"`
}

func NewPostsController(posts repositories.PostRepository, groups repositories.GroupRepository,
	comments repositories.CommentRepository, storage MediaStorage) *PostsController {
	return &PostsController{
		Posts:    posts,
		Groups:   groups,
		Comments: comments,
		Storage:  storage,
	}
}

// Index is the home page: every post, newest first. The route is wrapped
// in the 20-second page cache, so mutations may take up to the TTL to
// show up here.
func (pc *PostsController) Index(c *gin.Context) {
	total, err := pc.Posts.CountAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	limit, offset, meta := utils.Paginate(c.Query("page"), total)
	posts, err := pc.Posts.Newest(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       postViews(posts),
		Pagination: &meta,
	})
}

// PostDetail returns one post with its comments plus a blank comment form
// for the renderer.
func (pc *PostsController) PostDetail(c *gin.Context) {
	post, ok := pc.findPost(c)
	if !ok {
		return
	}

	comments, err := pc.Comments.ByPost(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: types.PostDetailPage{
			Post:        postView(*post),
			Comments:    commentViews(comments),
			CommentForm: blankForm("text"),
		},
	})
}

// NewPost renders the blank creation form.
func (pc *PostsController) NewPost(c *gin.Context) {
	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    blankForm("text", "group", "image"),
	})
}

// CreatePost validates the form and persists a post authored by the
// current user, then redirects to the author's profile. A failed
// validation re-renders the form and writes nothing.
func (pc *PostsController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		pc.renderPostForm(c, form, utils.FormErrors(err))
		return
	}

	groupID, imageURL, fieldErrs := pc.resolvePostFields(c, form, nil)
	if len(fieldErrs) > 0 {
		pc.renderPostForm(c, form, fieldErrs)
		return
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: user.UserID,
		GroupID:  groupID,
		ImageURL: imageURL,
	}
	if err := pc.Posts.Create(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", user.Username))
}

// EditPost renders the edit form pre-filled with the stored values.
// A non-author lands on the post detail page instead of an error.
func (pc *PostsController) EditPost(c *gin.Context) {
	post, ok := pc.findPost(c)
	if !ok {
		return
	}
	if redirected := pc.redirectNonAuthor(c, post); redirected {
		return
	}

	values := map[string]string{
		"text":  post.Text,
		"group": "",
		"image": post.ImageURL,
	}
	if post.GroupID != nil {
		values["group"] = strconv.FormatUint(uint64(*post.GroupID), 10)
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    types.FormView{Values: values},
	})
}

// UpdatePost applies an edit in place. The post keeps its id, author and
// creation time; only text, group and image change.
func (pc *PostsController) UpdatePost(c *gin.Context) {
	post, ok := pc.findPost(c)
	if !ok {
		return
	}
	if redirected := pc.redirectNonAuthor(c, post); redirected {
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		pc.renderPostForm(c, form, utils.FormErrors(err))
		return
	}

	groupID, imageURL, fieldErrs := pc.resolvePostFields(c, form, post)
	if len(fieldErrs) > 0 {
		pc.renderPostForm(c, form, fieldErrs)
		return
	}

	post.Text = form.Text
	post.GroupID = groupID
	post.ImageURL = imageURL
	if err := pc.Posts.Update(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// DeletePost removes the current user's post and its comments, then
// redirects to the author's profile. Anyone else lands on the detail
// page, same as an edit attempt.
func (pc *PostsController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)

	post, ok := pc.findPost(c)
	if !ok {
		return
	}
	if redirected := pc.redirectNonAuthor(c, post); redirected {
		return
	}

	if err := pc.Posts.Delete(post.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", user.Username))
}

// AddComment appends a comment by the current user to the post. On a
// validation failure the post detail page is re-rendered with the form
// errors instead of redirecting.
func (pc *PostsController) AddComment(c *gin.Context) {
	user := utils.GetUser(c)

	post, ok := pc.findPost(c)
	if !ok {
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		comments, cerr := pc.Comments.ByPost(post.ID)
		if cerr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
			return
		}
		c.JSON(http.StatusOK, StandardResponse{
			Success: false,
			Data: types.PostDetailPage{
				Post:     postView(*post),
				Comments: commentViews(comments),
				CommentForm: types.FormView{
					Values: map[string]string{"text": form.Text},
					Errors: utils.FormErrors(err),
				},
			},
		})
		return
	}

	comment := models.Comment{
		Text:     form.Text,
		PostID:   post.ID,
		AuthorID: user.UserID,
	}
	if err := pc.Comments.Create(&comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// findPost loads the post from the path parameter, answering 404 itself
// when the id is malformed or unknown.
func (pc *PostsController) findPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}

	post, err := pc.Posts.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		}
		return nil, false
	}
	return post, true
}

// redirectNonAuthor sends anyone but the post's author to the detail page.
func (pc *PostsController) redirectNonAuthor(c *gin.Context, post *models.Post) bool {
	user := utils.GetUser(c)
	if user == nil || user.UserID != post.AuthorID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return true
	}
	return false
}

func (pc *PostsController) renderPostForm(c *gin.Context, form PostForm, fieldErrs map[string]string) {
	c.JSON(http.StatusOK, StandardResponse{
		Success: false,
		Data: types.FormView{
			Values: map[string]string{
				"text":  form.Text,
				"group": form.Group,
				"image": form.Image,
			},
			Errors: fieldErrs,
		},
	})
}

// resolvePostFields checks the optional group and image references.
// Both failures are field errors for the form, not server errors. On an
// edit, current is the stored post and its URL passes through unchecked
// so a prefilled form can be resubmitted as-is.
func (pc *PostsController) resolvePostFields(c *gin.Context, form PostForm, current *models.Post) (*uint, string, map[string]string) {
	fieldErrs := map[string]string{}

	var groupID *uint
	if form.Group != "" {
		id, err := strconv.ParseUint(form.Group, 10, 32)
		if err != nil {
			fieldErrs["group"] = "select a valid group"
		} else if _, gerr := pc.Groups.GetByID(uint(id)); gerr != nil {
			fieldErrs["group"] = "select a valid group"
		} else {
			gid := uint(id)
			groupID = &gid
		}
	}

	var imageURL string
	if current != nil && form.Image != "" && form.Image == current.ImageURL {
		imageURL = current.ImageURL
	} else if form.Image != "" {
		if pc.Storage == nil {
			fieldErrs["image"] = "image uploads are not available"
		} else if exists, err := pc.Storage.Exists(c.Request.Context(), form.Image); err != nil {
			fieldErrs["image"] = "could not verify the uploaded image"
		} else if !exists {
			fieldErrs["image"] = "uploaded image not found"
		} else {
			imageURL = pc.Storage.PublicURL(form.Image)
		}
	}

	if len(fieldErrs) == 0 {
		fieldErrs = nil
	}
	return groupID, imageURL, fieldErrs
}
