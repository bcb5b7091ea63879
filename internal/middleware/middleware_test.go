package middleware

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// recordingHandler notes whether it ran and with what context.
type recordingHandler struct {
	called bool
	ctx    context.Context
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func serveThrough(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// ============================================================================
// Chain
// ============================================================================

func TestChain_Empty_ServesHandlerDirectly(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("album"))
	})

	rr := serveThrough(Chain(handler), httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Body.String() != "album" {
		t.Errorf("expected body 'album', got %q", rr.Body.String())
	}
}

func TestChain_WrapsOutsideIn(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("h"))
	})

	tag := func(label string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(label))
				next.ServeHTTP(w, r)
			})
		}
	}

	rr := serveThrough(Chain(handler, tag("a"), tag("b"), tag("c")),
		httptest.NewRequest(http.MethodGet, "/", nil))

	// The first middleware passed to Chain runs first.
	if rr.Body.String() != "abch" {
		t.Errorf("expected execution order 'abch', got %q", rr.Body.String())
	}
}

// ============================================================================
// RequestID
// ============================================================================

func TestRequestID_Missing_GeneratesUUID(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	rr := serveThrough(RequestID(handler), httptest.NewRequest(http.MethodGet, "/", nil))

	id := rr.Header().Get("X-Request-ID")
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		t.Errorf("expected a UUID in X-Request-ID, got %q", id)
	}
	if GetRequestID(handler.ctx) != id {
		t.Errorf("context ID %q should match the response header %q", GetRequestID(handler.ctx), id)
	}
}

func TestRequestID_ClientSupplied_Preserved(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "gala-trace-42")

	rr := serveThrough(RequestID(handler), req)

	if rr.Header().Get("X-Request-ID") != "gala-trace-42" {
		t.Errorf("expected the supplied ID to pass through, got %q", rr.Header().Get("X-Request-ID"))
	}
	if GetRequestID(handler.ctx) != "gala-trace-42" {
		t.Errorf("expected context ID 'gala-trace-42', got %q", GetRequestID(handler.ctx))
	}
}

func TestGetRequestID_AbsentOrWrongType_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("expected empty ID on bare context, got %q", got)
	}

	ctx := context.WithValue(context.Background(), RequestIDKey, 7)
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("expected empty ID for non-string value, got %q", got)
	}
}

// ============================================================================
// Logger
// ============================================================================

func TestLogger_PassesStatusAndBodyThrough(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("stored"))
	})

	rr := serveThrough(Logger(handler), httptest.NewRequest(http.MethodPost, "/v1/events/gala-x/photos", nil))

	if rr.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rr.Code)
	}
	if rr.Body.String() != "stored" {
		t.Errorf("expected body 'stored', got %q", rr.Body.String())
	}
}

func TestStatusRecorder_CapturesExplicitStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: rr, status: http.StatusOK}

	rec.WriteHeader(http.StatusUnprocessableEntity)

	if rec.status != http.StatusUnprocessableEntity {
		t.Errorf("expected recorded status 422, got %d", rec.status)
	}
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected forwarded status 422, got %d", rr.Code)
	}
}

// ============================================================================
// Recovery
// ============================================================================

func TestRecovery_NoPanic_Untouched(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	rr := serveThrough(Recovery(handler), httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if !handler.called {
		t.Error("handler should have run")
	}
}

func TestRecovery_Panic_WritesProblemResponse(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("thumbnail cache corrupted")
	})

	rr := serveThrough(Recovery(handler), httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json response, got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "Internal Server Error") {
		t.Errorf("expected an internal error body, got %q", rr.Body.String())
	}
}

// ============================================================================
// CORS
// ============================================================================

func TestCORS_ListedOrigin_Echoed(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://snapgala.app")

	rr := serveThrough(CORS([]string{"https://snapgala.app", "https://staging.snapgala.app"})(handler), req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://snapgala.app" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
}

func TestCORS_UnlistedOrigin_NotEchoed(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://gatecrasher.example")

	rr := serveThrough(CORS([]string{"https://snapgala.app"})(handler), req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no Allow-Origin for unlisted origin, got %q", got)
	}
	if !handler.called {
		t.Error("non-preflight request should still reach the handler")
	}
}

func TestCORS_Wildcard_AdmitsAnyOrigin(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anywhere.example")

	rr := serveThrough(CORS([]string{"*"})(handler), req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example" {
		t.Errorf("expected wildcard to echo the origin, got %q", got)
	}
}

func TestCORS_NoOriginHeader_NoAllowOrigin(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	rr := serveThrough(CORS([]string{"https://snapgala.app"})(handler),
		httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no Allow-Origin without an Origin header, got %q", got)
	}
}

func TestCORS_Preflight_ShortCircuits(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	req := httptest.NewRequest(http.MethodOptions, "/v1/events/gala-x/photos", nil)
	req.Header.Set("Origin", "https://snapgala.app")

	rr := serveThrough(CORS([]string{"https://snapgala.app"})(handler), req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status 204 for preflight, got %d", rr.Code)
	}
	if handler.called {
		t.Error("preflight must not reach the handler")
	}
}

func TestCORS_AdvertisesGuestSurface(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://snapgala.app")

	rr := serveThrough(CORS([]string{"https://snapgala.app"})(handler), req)

	// The API only serves GET and POST; nothing else is advertised.
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("expected methods 'GET, POST, OPTIONS', got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, X-Request-ID" {
		t.Errorf("expected headers 'Content-Type, X-Request-ID', got %q", got)
	}
	if rr.Header().Get("Access-Control-Max-Age") == "" {
		t.Error("expected a Max-Age header")
	}
}

// ============================================================================
// Compress
// ============================================================================

func TestCompress_ClientAcceptsGzip_RoundTrips(t *testing.T) {
	t.Parallel()

	const body = "a page of party photos, repeated enough to be worth compressing"
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")

	rr := serveThrough(Compress(handler), req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", rr.Header().Get("Content-Encoding"))
	}

	zr, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer func() { _ = zr.Close() }()

	plain, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(plain) != body {
		t.Errorf("decompressed body mismatch: %q", string(plain))
	}
}

func TestCompress_ClientDoesNotAcceptGzip_Plain(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	})

	rr := serveThrough(Compress(handler), httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Header().Get("Content-Encoding") == "gzip" {
		t.Error("should not compress without Accept-Encoding: gzip")
	}
	if rr.Body.String() != "plain" {
		t.Errorf("expected unmodified body, got %q", rr.Body.String())
	}
}
