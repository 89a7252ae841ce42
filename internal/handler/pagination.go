package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads optional page/limit query parameters. paged is false
// when neither is present, in which case callers return the full list.
func pageParams(c *gin.Context) (limit, offset int, paged bool) {
	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	if pageStr == "" && limitStr == "" {
		return 0, 0, false
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	return limit, (page - 1) * limit, true
}
