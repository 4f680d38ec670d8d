package utils

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

// LimitOffset holds limit/offset paging parameters. Active is false when the
// client asked for neither, in which case lists are returned unpaginated.
type LimitOffset struct {
	Limit  int
	Offset int
	Active bool
}

// ParseLimitOffset reads ?limit= and ?offset=. Values that are not positive
// (limit) or non-negative (offset) integers fall back to the defaults, and
// limit is capped at MaxLimit.
func ParseLimitOffset(c *gin.Context) LimitOffset {
	rawLimit, hasLimit := c.GetQuery("limit")
	rawOffset, hasOffset := c.GetQuery("offset")

	page := LimitOffset{Limit: DefaultLimit, Active: hasLimit || hasOffset}
	if limit, err := strconv.Atoi(rawLimit); err == nil && limit > 0 {
		page.Limit = min(limit, MaxLimit)
	}
	if offset, err := strconv.Atoi(rawOffset); err == nil && offset > 0 {
		page.Offset = offset
	}

	return page
}

// PageURLs builds the absolute next/previous links for the current request.
func PageURLs(c *gin.Context, page LimitOffset, count int64) (next, previous *string) {
	nextOffset := int64(page.Offset) + int64(page.Limit)
	if nextOffset > int64(page.Offset) && nextOffset < count {
		link := pageURL(c, page.Limit, int(nextOffset))
		next = &link
	}

	if page.Offset > 0 {
		prevOffset := page.Offset - page.Limit
		if prevOffset < 0 {
			prevOffset = 0
		}
		link := pageURL(c, page.Limit, prevOffset)
		previous = &link
	}

	return next, previous
}

func pageURL(c *gin.Context, limit, offset int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path}
	query := c.Request.URL.Query()
	query.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	} else {
		query.Del("offset")
	}
	u.RawQuery = query.Encode()

	return u.String()
}
