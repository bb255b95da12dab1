package rest

import (
	"github.com/gin-gonic/gin"
)

const MAX_PAGE_SIZE = 100

// ListUsernamesQueryParams holds query parameters for GET /usernames
type ListUsernamesQueryParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ParseListUsernamesQuery parses and caps pagination parameters
func ParseListUsernamesQuery(c *gin.Context) (*ListUsernamesQueryParams, error) {
	var params ListUsernamesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = 50
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	return &params, nil
}

// RecentEventsQueryParams holds query parameters for GET /events/recent
type RecentEventsQueryParams struct {
	Limit int `form:"limit,default=20"`
}

// ParseRecentEventsQuery parses and caps the feed size
func ParseRecentEventsQuery(c *gin.Context) (*RecentEventsQueryParams, error) {
	var params RecentEventsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	return &params, nil
}
