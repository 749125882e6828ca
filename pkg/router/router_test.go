package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/merchdesk/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRouteLookup(t *testing.T) {
	r := router.New()
	r.Get("/api/products/{productID}", "catalog.show", ok)

	path, found := r.Path("catalog.show")
	if !found {
		t.Fatal("route catalog.show not registered")
	}
	if path != "/api/products/{productID}" {
		t.Errorf("unexpected path: %s", path)
	}

	url, err := r.URL("catalog.show", map[string]string{"productID": "P_1"})
	if err != nil {
		t.Fatalf("URL failed: %v", err)
	}
	if url != "/api/products/P_1" {
		t.Errorf("unexpected url: %s", url)
	}

	if _, err := r.URL("catalog.show", nil); err == nil {
		t.Error("expected error for missing parameters")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", mw("outer"))
	inner := api.Group("/tables", mw("inner"))
	inner.Get("/{table}/rows", "tables.rows", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/products/rows", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order: %v", order)
	}
}

func TestRoutesSorted(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.create", ok)
	r.Get("/a", "a.index", ok)
	r.Get("/b", "b.index", ok)

	infos := r.Routes()
	if len(infos) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(infos))
	}
	if infos[0].Path != "/a" || infos[1].Method != http.MethodGet || infos[2].Method != http.MethodPost {
		t.Errorf("unexpected ordering: %+v", infos)
	}
}
