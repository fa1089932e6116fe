package types

import (
	"time"
)

// View-models handed to the renderer. Handlers build these; how they turn
// into bytes is the transport's business (JSON here).

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

type AuthorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type GroupView struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

type PostView struct {
	ID        uint       `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	Author    AuthorView `json:"author"`
	Group     *GroupView `json:"group,omitempty"`
	ImageURL  string     `json:"imageUrl,omitempty"`
}

type CommentView struct {
	ID        uint       `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	Author    AuthorView `json:"author"`
}

// FormView describes a form for the renderer: the submitted (or blank)
// values plus field-level validation errors, if any.
type FormView struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
}

type GroupPage struct {
	Group GroupView  `json:"group"`
	Posts []PostView `json:"posts"`
}

type ProfilePage struct {
	Author    AuthorView `json:"author"`
	Following bool       `json:"following"`
	Posts     []PostView `json:"posts"`
}

type PostDetailPage struct {
	Post        PostView      `json:"post"`
	Comments    []CommentView `json:"comments"`
	CommentForm FormView      `json:"commentForm"`
}
