package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mzhao28/commune/services"
	"github.com/mzhao28/commune/utils"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		page, size string
		wantPage   int
		wantSize   int
	}{
		{"", "", 1, 20},
		{"3", "50", 3, 50},
		{"0", "0", 1, 20},
		{"-1", "-5", 1, 20},
		{"abc", "xyz", 1, 20},
		{"2", "101", 2, 20},
		{"2", "100", 2, 100},
	}
	for _, tc := range cases {
		page, size := parsePagination(tc.page, tc.size)
		if page != tc.wantPage || size != tc.wantSize {
			t.Errorf("parsePagination(%q, %q) = (%d, %d), want (%d, %d)",
				tc.page, tc.size, page, size, tc.wantPage, tc.wantSize)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, ok := parseID("42"); !ok || id != 42 {
		t.Fatalf("parseID(42) = (%d, %v)", id, ok)
	}
	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		if _, ok := parseID(raw); ok {
			t.Errorf("parseID(%q) accepted invalid input", raw)
		}
	}
}

func TestRenderServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{services.ErrNotFound, http.StatusNotFound, "not_found"},
		{services.ErrForbidden, http.StatusForbidden, "forbidden"},
		{services.ErrOwnerCannotLeave, http.StatusForbidden, "owner_cannot_leave"},
		{services.ErrPrivateCommunity, http.StatusForbidden, "private_community"},
		{services.ErrInactiveAccount, http.StatusForbidden, "inactive_account"},
		{services.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{services.ErrInvalidLogin, http.StatusUnauthorized, "invalid_credentials"},
		{services.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
		{services.ErrAlreadyLiked, http.StatusConflict, "already_liked"},
		{services.ErrNotLiked, http.StatusConflict, "not_liked"},
		{services.ErrSlugExhausted, http.StatusConflict, "slug_exhausted"},
		{services.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
		{errors.New("driver: bad connection"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		renderServiceError(ctx, tc.err)

		if w.Code != tc.wantStatus {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.wantStatus)
			continue
		}
		var body utils.JSONResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Errorf("%v: bad body: %v", tc.err, err)
			continue
		}
		if body.Reason != tc.wantReason {
			t.Errorf("%v: reason = %q, want %q", tc.err, body.Reason, tc.wantReason)
		}
	}
}

func TestRenderServiceErrorWrappedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	wrapped := services.ErrNotFound
	renderServiceError(ctx, errors.Join(errors.New("community 5"), wrapped))
	if w.Code != http.StatusNotFound {
		t.Fatalf("wrapped sentinel: status = %d, want 404", w.Code)
	}
}
