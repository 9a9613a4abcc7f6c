package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSidecarServesAppRegistry(t *testing.T) {
	reg := InitRegistry()
	ObserveHTTP("/", "GET", 200, time.Millisecond)
	ObserveReview("saved")

	rr := httptest.NewRecorder()
	sidecarMux(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	for _, name := range []string{"daleel_http_requests_total", "daleel_review_submissions_total"} {
		if !strings.Contains(string(body), name) {
			t.Fatalf("sidecar scrape is missing %s", name)
		}
	}
}

func TestServe_DisabledWithoutAddr(t *testing.T) {
	if srv := Serve("", InitRegistry()); srv != nil {
		t.Fatalf("expected no server for empty addr")
	}
}
