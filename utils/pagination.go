package utils

import (
	"strconv"

	"github.com/postline/api-go/types"
)

// PostsPerPage is the fixed page size for every paginated listing.
const PostsPerPage = 10

// Paginate turns a raw ?page= value and a result-set total into a
// limit/offset pair plus the pagination meta for the view-model.
//
// A missing, malformed or non-positive page falls back to page 1. A page
// past the end clamps to the last valid page, so out-of-range requests
// land on real content instead of an empty page or an error.
func Paginate(pageParam string, total int64) (limit, offset int, meta types.PaginationMeta) {
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}

	totalPages := int((total + PostsPerPage - 1) / PostsPerPage)
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	limit = PostsPerPage
	offset = (page - 1) * PostsPerPage
	meta = types.PaginationMeta{
		CurrentPage: page,
		PageSize:    PostsPerPage,
		TotalItems:  total,
		TotalPages:  totalPages,
	}
	return limit, offset, meta
}
