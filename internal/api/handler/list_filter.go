package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storeldb/storeapi/internal/api/util"
)

const defaultPerPage = 25

// parseListFilter reads page, per_page, query and order from the request.
// Without page or per_page every match is returned.
// On invalid input it answers 400 and returns false.
func parseListFilter(c *gin.Context, fields []string) (util.ListFilter, bool) {
	filter := util.ListFilter{Page: 1}

	pageStr, hasPage := c.GetQuery("page")
	perPageStr, hasPerPage := c.GetQuery("per_page")
	if hasPage || hasPerPage {
		page, _ := strconv.Atoi(pageStr)
		perPage, _ := strconv.Atoi(perPageStr)
		if page < 1 {
			page = 1
		}
		if perPage < 1 {
			perPage = defaultPerPage
		}
		filter.Page = page
		filter.PerPage = perPage
	}

	if queryStr := c.Query("query"); queryStr != "" {
		filters, err := util.ParseQueryString(queryStr)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return filter, false
		}

		if err := util.ValidateFilterFields(filters, fields); err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return filter, false
		}

		filter.Filters = filters
	}

	if orderStr := c.Query("order"); orderStr != "" {
		orders, err := util.ParseOrderString(orderStr)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return filter, false
		}

		if err := util.ValidateOrderFields(orders, fields); err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return filter, false
		}

		filter.Order = orders
	}

	return filter, true
}

func totalPages(count, perPage int) int {
	if perPage <= 0 {
		if count == 0 {
			return 0
		}
		return 1
	}
	return (count + perPage - 1) / perPage
}
