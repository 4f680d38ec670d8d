package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		target string
		want   LimitOffset
	}{
		{"/posts", LimitOffset{Limit: DefaultLimit}},
		{"/posts?limit=5", LimitOffset{Limit: 5, Active: true}},
		{"/posts?offset=20", LimitOffset{Limit: DefaultLimit, Offset: 20, Active: true}},
		{"/posts?limit=abc&offset=-1", LimitOffset{Limit: DefaultLimit, Active: true}},
		{"/posts?limit=0&offset=3", LimitOffset{Limit: DefaultLimit, Offset: 3, Active: true}},
		{"/posts?limit=5000", LimitOffset{Limit: MaxLimit, Active: true}},
		{"/posts?limit=9223372036854775807&offset=1", LimitOffset{Limit: MaxLimit, Offset: 1, Active: true}},
	}

	for _, tt := range tests {
		if got := ParseLimitOffset(newContext(tt.target)); got != tt.want {
			t.Errorf("ParseLimitOffset(%s) = %+v, want %+v", tt.target, got, tt.want)
		}
	}
}

func TestPageURLs(t *testing.T) {
	c := newContext("http://example.com/api/v1/posts?limit=2&offset=2")

	next, previous := PageURLs(c, LimitOffset{Limit: 2, Offset: 2, Active: true}, 5)
	if next == nil || *next != "http://example.com/api/v1/posts?limit=2&offset=4" {
		t.Fatalf("next = %v", deref(next))
	}
	if previous == nil || *previous != "http://example.com/api/v1/posts?limit=2" {
		t.Fatalf("previous = %v", deref(previous))
	}

	next, previous = PageURLs(c, LimitOffset{Limit: 2, Offset: 4, Active: true}, 5)
	if next != nil {
		t.Fatalf("next = %v, want nil on the last page", *next)
	}
	if previous == nil {
		t.Fatal("previous = nil, want a link")
	}

	next, previous = PageURLs(c, LimitOffset{Limit: 10, Active: true}, 3)
	if next != nil || previous != nil {
		t.Fatalf("single page got next=%v previous=%v", deref(next), deref(previous))
	}
}

func TestPageURLsNextNeverWrapsBack(t *testing.T) {
	c := newContext("http://example.com/api/v1/posts?limit=9223372036854775807&offset=1")

	page := LimitOffset{Limit: math.MaxInt, Offset: 1, Active: true}
	next, previous := PageURLs(c, page, 2)
	if next != nil {
		t.Fatalf("next = %v, want nil", *next)
	}
	if previous == nil {
		t.Fatal("previous = nil, want a link")
	}

	next, _ = PageURLs(c, ParseLimitOffset(c), 2)
	if next != nil {
		t.Fatalf("next = %v, want nil past the last row", *next)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
