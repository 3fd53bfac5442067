package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)
	cases := []struct {
		role, perm string
		want       bool
	}{
		{"admin", "results:delete", true},
		{"viewer", "results:list", true},
		{"viewer", "analytics:view", true},
		{"viewer", "results:delete", false},
		{"", "results:list", false},
		{"student", "results:list", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestCheckerWildcardSuffix(t *testing.T) {
	c := NewChecker(map[string][]string{"ops": {"results:*"}})
	if !c.Has("ops", "results:delete") {
		t.Fatal("prefix wildcard should match")
	}
	if c.Has("ops", "analytics:view") {
		t.Fatal("prefix wildcard matched another resource")
	}
	if !c.Any("ops", "analytics:view", "results:list") {
		t.Fatal("Any should accept one match")
	}
	if c.All("ops", "analytics:view", "results:list") {
		t.Fatal("All should require every permission")
	}
}

func TestRequire(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := Require("results:delete")(ok)

	for role, want := range map[string]int{
		"admin":  http.StatusNoContent,
		"viewer": http.StatusForbidden,
		"":       http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodDelete, "/x", nil)
		req = req.WithContext(WithRole(context.Background(), role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("role %q: status %d, want %d", role, rec.Code, want)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil).WithContext(WithRole(context.Background(), "viewer"))
	rec := httptest.NewRecorder()
	RequireAny("results:delete", "results:view")(ok).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("RequireAny: status %d", rec.Code)
	}
}
