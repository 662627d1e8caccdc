package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/invoices/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/invoices/a", "/invoices/b", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/invoices/:id", "204")); got != 2 {
		t.Errorf("route counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched counter = %v, want 1", got)
	}
}

func TestDomainCounters(t *testing.T) {
	m := New()

	m.ObserveRender("pdf", nil)
	m.ObserveRender("pdf", errors.New("boom"))
	m.FeedDropped()
	m.FeedSubscribed(1)
	m.StaleServed()

	if got := testutil.ToFloat64(m.renders.WithLabelValues("pdf", "success")); got != 1 {
		t.Errorf("render success = %v", got)
	}
	if got := testutil.ToFloat64(m.renders.WithLabelValues("pdf", "error")); got != 1 {
		t.Errorf("render error = %v", got)
	}
	if testutil.ToFloat64(m.feedDropped) != 1 || testutil.ToFloat64(m.feedClients) != 1 || testutil.ToFloat64(m.staleServed) != 1 {
		t.Error("feed or dashboard counters not updated")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.FeedDropped()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "billing_feed_events_dropped_total 1") {
		t.Errorf("metrics output missing counter:\n%s", body)
	}
}
