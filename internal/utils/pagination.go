package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page    int
	PerPage int
}

// Offset returns the number of rows to skip.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination represents the pagination metadata in API responses
type Pagination struct {
	Page         int   `json:"page"`
	PerPage      int   `json:"perPage"`
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int   `json:"totalPages"`
}

// MaxPage keeps Offset from overflowing at the largest page size.
const MaxPage = math.MaxInt / constants.MaxPageSize

// NormalizePagination clamps page and perPage into their allowed ranges.
func NormalizePagination(page, perPage int) PaginationParams {
	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < constants.MinPageSize || perPage > constants.MaxPageSize {
		perPage = constants.DefaultPageSize
	}
	return PaginationParams{Page: page, PerPage: perPage}
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", strconv.Itoa(constants.DefaultPageSize)))
	return NormalizePagination(page, perPage)
}

// TotalPages returns ceil(totalRecords/perPage), never less than 1.
func TotalPages(totalRecords int64, perPage int) int {
	if perPage <= 0 || totalRecords <= 0 {
		return 1
	}
	pages := totalRecords / int64(perPage)
	if totalRecords%int64(perPage) > 0 {
		pages++
	}
	return int(pages)
}

// NewPagination builds the metadata for one page of results.
func NewPagination(params PaginationParams, totalRecords int64) Pagination {
	return Pagination{
		Page:         params.Page,
		PerPage:      params.PerPage,
		TotalRecords: totalRecords,
		TotalPages:   TotalPages(totalRecords, params.PerPage),
	}
}
