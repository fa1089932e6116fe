package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/models"
	"github.com/postline/api-go/repositories"
	"github.com/postline/api-go/types"
	"github.com/postline/api-go/utils"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type GroupController struct {
	Groups repositories.GroupRepository
	Posts  repositories.PostRepository
}

func NewGroupController(groups repositories.GroupRepository, posts repositories.PostRepository) *GroupController {
	return &GroupController{Groups: groups, Posts: posts}
}

// GroupList lists every group so they are reachable without deep links.
func (gc *GroupController) GroupList(c *gin.Context) {
	groups, err := gc.Groups.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching groups"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: lo.Map(groups, func(g models.Group, _ int) types.GroupView {
			return groupView(g)
		}),
	})
}

// GroupPosts shows a group's page: the group plus its posts, newest first.
func (gc *GroupController) GroupPosts(c *gin.Context) {
	group, err := gc.Groups.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching group"})
		}
		return
	}

	total, err := gc.Posts.CountByGroup(group.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	limit, offset, meta := utils.Paginate(c.Query("page"), total)
	posts, err := gc.Posts.ByGroup(group.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: types.GroupPage{
			Group: groupView(*group),
			Posts: postViews(posts),
		},
		Pagination: &meta,
	})
}
