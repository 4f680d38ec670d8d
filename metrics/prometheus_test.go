package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	if !strings.Contains(body, `http_requests_total{method="GET",route="/ping",status="200"} 1`) {
		t.Fatalf("exposition is missing the ping counter:\n%s", body)
	}
	if !strings.Contains(body, `http_request_duration_seconds_count{method="GET",route="/ping"} 1`) {
		t.Fatalf("exposition is missing the ping histogram:\n%s", body)
	}
}

func TestObserveEvent(t *testing.T) {
	ObserveEvent("test.subject", nil)
	ObserveEvent("test.subject", errors.New("boom"))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	for _, line := range []string{
		`events_published_total{result="ok",subject="test.subject"} 1`,
		`events_published_total{result="error",subject="test.subject"} 1`,
	} {
		if !strings.Contains(w.Body.String(), line) {
			t.Errorf("exposition is missing %s", line)
		}
	}
}
