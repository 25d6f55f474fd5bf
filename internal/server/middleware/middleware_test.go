package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

// TestChain tests that middleware is applied in order.
func TestChain(t *testing.T) {
	var order []string

	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(mw("first"), mw("second"))(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
			w.WriteHeader(http.StatusOK)
		}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(order) != 3 {
		t.Fatalf("expected 3 invocations, got %d", len(order))
	}
	if order[0] != "first" || order[1] != "second" || order[2] != "handler" {
		t.Errorf("unexpected invocation order: %v", order)
	}
}

// TestLogger tests that the logging middleware passes requests through
// and preserves the handler's status code.
func TestLogger(t *testing.T) {
	logger := zerolog.Nop()

	handler := Logger(&logger)(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", w.Code)
	}
}

// TestLogger_DefaultStatus tests that an implicit 200 is preserved.
func TestLogger_DefaultStatus(t *testing.T) {
	logger := zerolog.Nop()

	handler := Logger(&logger)(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body ok, got %q", w.Body.String())
	}
}

// TestRecovery tests that panics become 500 responses.
func TestRecovery(t *testing.T) {
	logger := zerolog.Nop()

	handler := Recovery(&logger)(http.HandlerFunc(
		func(_ http.ResponseWriter, _ *http.Request) {
			panic("boom")
		}))

	w := httptest.NewRecorder()

	// Must not propagate the panic
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

// TestRecovery_NoPanic tests pass-through when the handler behaves.
func TestRecovery_NoPanic(t *testing.T) {
	logger := zerolog.Nop()

	handler := Recovery(&logger)(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
}

// TestResponseWriter_Flush tests that the status-capturing wrapper still
// supports streaming responses.
func TestResponseWriter_Flush(t *testing.T) {
	logger := zerolog.Nop()

	handler := Logger(&logger)(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			flusher, ok := w.(http.Flusher)
			if !ok {
				t.Error("wrapped writer does not implement http.Flusher")
				return
			}
			_, _ = w.Write([]byte("chunk"))
			flusher.Flush()
		}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream", nil))

	if !w.Flushed {
		t.Error("expected response to be flushed")
	}
}
