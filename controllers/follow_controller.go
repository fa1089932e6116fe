package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/models"
	"github.com/postline/api-go/repositories"
	"github.com/postline/api-go/utils"
	"gorm.io/gorm"
)

type FollowController struct {
	Follows repositories.FollowRepository
	Users   repositories.UserRepository
	Posts   repositories.PostRepository
}

func NewFollowController(follows repositories.FollowRepository, users repositories.UserRepository,
	posts repositories.PostRepository) *FollowController {
	return &FollowController{Follows: follows, Users: users, Posts: posts}
}

// FollowIndex is the subscription feed: every post authored by someone the
// current user follows, newest first, paginated like the other listings.
func (fc *FollowController) FollowIndex(c *gin.Context) {
	user := utils.GetUser(c)

	authorIDs, err := fc.Follows.AuthorIDs(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching feed"})
		return
	}

	total, err := fc.Posts.CountByAuthors(authorIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching feed"})
		return
	}

	limit, offset, meta := utils.Paginate(c.Query("page"), total)
	posts, err := fc.Posts.ByAuthors(authorIDs, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching feed"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       postViews(posts),
		Pagination: &meta,
	})
}

// Follow subscribes the current user to the author and returns to the
// author's profile. Following yourself or someone you already follow is
// skipped, not an error; an unknown author is a 404.
func (fc *FollowController) Follow(c *gin.Context) {
	user := utils.GetUser(c)

	author, ok := fc.findAuthor(c)
	if !ok {
		return
	}

	if author.ID != user.UserID {
		exists, err := fc.Follows.Exists(user.UserID, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
			return
		}
		if !exists {
			follow := models.Follow{UserID: user.UserID, AuthorID: author.ID}
			if err := fc.Follows.Create(&follow); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
				return
			}
		}
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", author.Username))
}

// Unfollow removes the subscription if present and returns to the
// author's profile. Unfollowing someone you don't follow is a no-op.
func (fc *FollowController) Unfollow(c *gin.Context) {
	user := utils.GetUser(c)

	author, ok := fc.findAuthor(c)
	if !ok {
		return
	}

	if err := fc.Follows.Delete(user.UserID, author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", author.Username))
}

func (fc *FollowController) findAuthor(c *gin.Context) (*models.User, bool) {
	author, err := fc.Users.GetByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		}
		return nil, false
	}
	return author, true
}
