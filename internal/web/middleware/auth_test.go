package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kozaktomas/securevote/internal/auth"
)

// voterEcho is a terminal handler that records the voter id it saw.
func voterEcho(t *testing.T, got *int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := VoterFromContext(r.Context())
		if !ok {
			t.Error("voter id missing from context")
		}
		*got = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireVoter_ValidToken(t *testing.T) {
	issuer := auth.NewIssuer([]byte("test-secret"), time.Hour)
	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	var got int64
	handler := RequireVoter(issuer)(voterEcho(t, &got))

	req := httptest.NewRequest("POST", "/api/v1/vote", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if got != 42 {
		t.Errorf("expected voter 42, got %d", got)
	}
}

func TestRequireVoter_Rejections(t *testing.T) {
	issuer := auth.NewIssuer([]byte("test-secret"), time.Hour)
	otherToken, err := auth.NewIssuer([]byte("other-secret"), time.Hour).Issue(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	expiredToken, err := auth.NewIssuer([]byte("test-secret"), -time.Minute).Issue(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer nonsense"},
		{"wrong key", "Bearer " + otherToken},
		{"expired", "Bearer " + expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireVoter(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler must not be reached")
			}))

			req := httptest.NewRequest("POST", "/api/v1/vote", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, req)

			if recorder.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", recorder.Code)
			}
		})
	}
}

func TestSetVoterInContext(t *testing.T) {
	ctx := SetVoterInContext(t.Context(), 7)

	id, ok := VoterFromContext(ctx)
	if !ok || id != 7 {
		t.Errorf("expected voter 7, got %d (ok=%v)", id, ok)
	}
}
