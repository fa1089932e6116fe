package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/repositories"
	"github.com/postline/api-go/types"
	"github.com/postline/api-go/utils"
	"gorm.io/gorm"
)

type ProfileController struct {
	Users   repositories.UserRepository
	Posts   repositories.PostRepository
	Follows repositories.FollowRepository
}

func NewProfileController(users repositories.UserRepository, posts repositories.PostRepository,
	follows repositories.FollowRepository) *ProfileController {
	return &ProfileController{Users: users, Posts: posts, Follows: follows}
}

// Profile shows an author's page: their posts newest-first plus whether
// the requester follows them (always false for guests).
func (pc *ProfileController) Profile(c *gin.Context) {
	author, err := pc.Users.GetByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		}
		return
	}

	total, err := pc.Posts.CountByAuthor(author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	limit, offset, meta := utils.Paginate(c.Query("page"), total)
	posts, err := pc.Posts.ByAuthor(author.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	following := false
	if viewer := utils.GetUser(c); viewer != nil {
		following, err = pc.Follows.Exists(viewer.UserID, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching profile"})
			return
		}
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: types.ProfilePage{
			Author:    authorView(*author),
			Following: following,
			Posts:     postViews(posts),
		},
		Pagination: &meta,
	})
}
