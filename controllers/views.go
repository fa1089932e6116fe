package controllers

import (
	"github.com/postline/api-go/models"
	"github.com/postline/api-go/types"
	"github.com/samber/lo"
)

func authorView(u models.User) types.AuthorView {
	return types.AuthorView{ID: u.ID, Username: u.Username}
}

func groupView(g models.Group) types.GroupView {
	return types.GroupView{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

func postView(p models.Post) types.PostView {
	view := types.PostView{
		ID:        p.ID,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		Author:    authorView(p.Author),
		ImageURL:  p.ImageURL,
	}
	if p.Group != nil {
		g := groupView(*p.Group)
		view.Group = &g
	}
	return view
}

func postViews(posts []models.Post) []types.PostView {
	return lo.Map(posts, func(p models.Post, _ int) types.PostView {
		return postView(p)
	})
}

func commentViews(comments []models.Comment) []types.CommentView {
	return lo.Map(comments, func(c models.Comment, _ int) types.CommentView {
		return types.CommentView{
			ID:        c.ID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
			Author:    authorView(c.Author),
		}
	})
}

func blankForm(fields ...string) types.FormView {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = ""
	}
	return types.FormView{Values: values}
}
