// Package paging holds the list envelope shared by the /v1 list endpoints.
package paging

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination reports the size of the page and the cursors around it.
type Pagination struct {
	Total   int     `json:"total"`
	Cursors Cursors `json:"cursors"`
}

// Cursors holds the cursor the page was requested with and the cursor for
// the next page; After is empty on the last page.
type Cursors struct {
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

// New builds the pagination block for a page of n items.
func New(n int, before, after string) Pagination {
	return Pagination{Total: n, Cursors: Cursors{Before: before, After: after}}
}

// Limit reads the limit query parameter. A missing or non-numeric value
// yields def; clamping is left to the repository.
func Limit(c *gin.Context, def int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return limit
}
