package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storeadmin/internal/constants"

	"github.com/gin-gonic/gin"
)

func listContext(t *testing.T, query string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c, w
}

func TestBindListOptionsSortByWhitelist(t *testing.T) {
	c, w := listContext(t, "sortBy=price")
	if _, ok := bindListOptions(c, constants.CategorySortFields); ok {
		t.Fatalf("expected sortBy outside whitelist rejected")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	c, _ = listContext(t, "sortBy=name&sortOrder=desc")
	opts, ok := bindListOptions(c, constants.CategorySortFields)
	if !ok {
		t.Fatalf("expected whitelisted sortBy accepted")
	}
	if opts.SortBy != "name" || opts.SortOrder != constants.SortOrderDesc {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestBindListOptionsBounds(t *testing.T) {
	c, w := listContext(t, "page=0")
	if _, ok := bindListOptions(c, constants.CategorySortFields); ok || w.Code != http.StatusBadRequest {
		t.Fatalf("expected page=0 rejected, code=%d", w.Code)
	}

	c, w = listContext(t, "pageSize=0")
	if _, ok := bindListOptions(c, constants.CategorySortFields); ok || w.Code != http.StatusBadRequest {
		t.Fatalf("expected pageSize=0 rejected, code=%d", w.Code)
	}

	c, w = listContext(t, "sortOrder=up")
	if _, ok := bindListOptions(c, constants.CategorySortFields); ok || w.Code != http.StatusBadRequest {
		t.Fatalf("expected bad sortOrder rejected, code=%d", w.Code)
	}

	// 超上限收敛，不报错
	c, _ = listContext(t, "pageSize=500")
	opts, ok := bindListOptions(c, constants.CategorySortFields)
	if !ok {
		t.Fatalf("expected oversized pageSize accepted")
	}
	if opts.PageSize != constants.MaxPageSize {
		t.Fatalf("expected pageSize clamped to %d, got %d", constants.MaxPageSize, opts.PageSize)
	}
}
