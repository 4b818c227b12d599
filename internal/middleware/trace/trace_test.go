package trace

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"accounting/internal/core"
	"accounting/internal/log"
)

type recordingCollector struct {
	routes   []string
	statuses []int
}

func (c *recordingCollector) RecordOperation(string, bool) {}
func (c *recordingCollector) RecordTotals(core.Totals)     {}
func (c *recordingCollector) RecordRateLimited()           {}
func (c *recordingCollector) RecordRequest(method, route string, status int, d time.Duration) {
	c.routes = append(c.routes, route)
	c.statuses = append(c.statuses, status)
}

func newTestMiddleware(buf *bytes.Buffer, c *recordingCollector) *Middleware {
	logger := log.New(log.Config{Level: slog.LevelDebug, Format: "json", Output: buf})
	return NewMiddleware(logger, c, func(r *http.Request) string { return "10.1.2.3" })
}

func TestMiddlewareAssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	c := &recordingCollector{}
	var seen string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	newTestMiddleware(&buf, c).Middleware(mux).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/things/1", nil))

	header := rr.Header().Get(HeaderRequestID)
	if _, err := uuid.Parse(header); err != nil {
		t.Fatalf("response request id %q is not a uuid: %v", header, err)
	}
	if seen != header {
		t.Fatalf("context request id %q != header %q", seen, header)
	}
	if len(c.routes) != 1 || c.routes[0] != "GET /things/{id}" || c.statuses[0] != http.StatusTeapot {
		t.Fatalf("unexpected recorded requests: %v %v", c.routes, c.statuses)
	}
	if !strings.Contains(buf.String(), `"status_code":418`) {
		t.Fatalf("completion not logged: %s", buf.String())
	}
}

func TestMiddlewareKeepsValidIncomingID(t *testing.T) {
	var buf bytes.Buffer
	incoming := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	rr := httptest.NewRecorder()
	newTestMiddleware(&buf, &recordingCollector{}).Middleware(http.NotFoundHandler()).ServeHTTP(rr, req)

	if got := rr.Header().Get(HeaderRequestID); got != incoming {
		t.Fatalf("request id = %q, want %q", got, incoming)
	}
}

func TestMiddlewareReplacesInvalidIncomingID(t *testing.T) {
	var buf bytes.Buffer
	c := &recordingCollector{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	rr := httptest.NewRecorder()
	newTestMiddleware(&buf, c).Middleware(http.NotFoundHandler()).ServeHTTP(rr, req)

	if got := rr.Header().Get(HeaderRequestID); got == "<script>" || got == "" {
		t.Fatalf("invalid incoming id kept: %q", got)
	}
	if c.routes[0] != "unmatched" {
		t.Fatalf("route = %q, want unmatched", c.routes[0])
	}
}
