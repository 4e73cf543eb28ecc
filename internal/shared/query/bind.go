package query

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go-gemtrack/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

var errInvalidDirection = errors.New("Sort direction must be asc or desc")

// Bind reads a Request from the URL:
//
//	?page=2&limit=20&sort=name:asc&sort=-createdAt&filter[name]=acme
func Bind(c *gin.Context) (Request, error) {
	details := map[string]string{}
	req := Request{}

	if raw, ok := c.GetQuery("page"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			details["pagination.page"] = "Page must be a positive integer"
		}
		req.Pagination.Page = n
	}
	if raw, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxLimit {
			details["pagination.limit"] = fmt.Sprintf("Limit must be between 1 and %d", MaxLimit)
		}
		req.Pagination.Limit = n
	}

	for _, raw := range c.QueryArray("sort") {
		for _, token := range strings.Split(raw, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			s, err := parseSort(token)
			if err != nil {
				details["sort."+token] = err.Error()
				continue
			}
			req.Sort = append(req.Sort, s)
		}
	}

	filters := c.QueryMap("filter")
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		req.Filter = append(req.Filter, Filter{Field: k, Value: filters[k]})
	}

	if len(details) > 0 {
		return Request{}, apperror.Validation(details)
	}
	return req, nil
}

func parseSort(token string) (Sort, error) {
	if name, ok := strings.CutPrefix(token, "-"); ok {
		return Sort{Field: name, Desc: true}, nil
	}
	name, dir, found := strings.Cut(token, ":")
	if !found {
		return Sort{Field: token}, nil
	}
	switch strings.ToLower(dir) {
	case "asc":
		return Sort{Field: name}, nil
	case "desc":
		return Sort{Field: name, Desc: true}, nil
	default:
		return Sort{}, errInvalidDirection
	}
}
