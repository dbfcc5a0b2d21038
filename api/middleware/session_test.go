package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lunakids/lunakids-backend/pkg/logger"
)

func TestSessionRequiresHeader(t *testing.T) {
	t.Parallel()

	handler := Session(logger.New(logger.Options{ServiceName: "test"}))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not run without a session header")
		}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSessionSeedsContext(t *testing.T) {
	t.Parallel()

	const sessionID = "b2c9e7a4-1f33-4f0f-a2f1-9a8d5c6e7f01"
	var got string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(sessionIDHeader, sessionID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got != sessionID {
		t.Fatalf("session id = %q", got)
	}
}

func TestSessionRejectsShortIDs(t *testing.T) {
	t.Parallel()

	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(sessionIDHeader, "short")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
