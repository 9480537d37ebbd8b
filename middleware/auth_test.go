package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mzhao28/commune/utils"
)

func newAuthTestRouter(tokens *utils.TokenManager, revoked *utils.TokenStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(tokens, revoked), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"user_id": ctx.GetUint(ContextUserIDKey)})
	})
	r.GET("/open", AuthOptional(tokens, revoked), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"user_id": ctx.GetUint(ContextUserIDKey)})
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	r := newAuthTestRouter(tokens, utils.NewTokenStore(nil))

	if w := doRequest(r, "/protected", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if w := doRequest(r, "/protected", "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("non-bearer scheme: status = %d, want 401", w.Code)
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	r := newAuthTestRouter(tokens, utils.NewTokenStore(nil))

	if w := doRequest(r, "/protected", "Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	other := utils.NewTokenManager("other-secret", time.Hour)
	forged, _, err := other.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if w := doRequest(r, "/protected", "Bearer "+forged); w.Code != http.StatusUnauthorized {
		t.Fatalf("forged token: status = %d, want 401", w.Code)
	}
}

func TestAuthRequiredValidToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	r := newAuthTestRouter(tokens, utils.NewTokenStore(nil))

	token, _, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	w := doRequest(r, "/protected", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestAuthRequiredRevokedToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	revoked := utils.NewTokenStore(nil)
	r := newAuthTestRouter(tokens, revoked)

	token, expiresAt, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	revoked.Revoke(token, expiresAt)

	if w := doRequest(r, "/protected", "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token: status = %d, want 401", w.Code)
	}
}

func TestAuthOptional(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	r := newAuthTestRouter(tokens, utils.NewTokenStore(nil))

	// Anonymous and garbage-token requests both pass through with no identity.
	for _, header := range []string{"", "Bearer junk"} {
		w := doRequest(r, "/open", header)
		if w.Code != http.StatusOK {
			t.Fatalf("header %q: status = %d, want 200", header, w.Code)
		}
		if got := w.Body.String(); got != `{"user_id":0}` {
			t.Fatalf("header %q: body = %s", header, got)
		}
	}

	token, _, err := tokens.Issue(9)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	w := doRequest(r, "/open", "Bearer "+token)
	if got := w.Body.String(); got != `{"user_id":9}` {
		t.Fatalf("identified body = %s", got)
	}
}
