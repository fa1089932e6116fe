package controllers

import (
	"github.com/postline/api-go/types"
)

type StandardResponse struct {
	Success    bool                  `json:"success"`
	Data       interface{}           `json:"data,omitempty"`
	Pagination *types.PaginationMeta `json:"pagination,omitempty"`
	Message    string                `json:"message,omitempty"`
}
