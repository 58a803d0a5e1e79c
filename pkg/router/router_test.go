package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/bazaar/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestGroupPrefixes(t *testing.T) {
	r := router.New()

	api := r.Group("/api")
	products := api.Group("/products")
	products.Get("/search", "products.search", ok)
	products.Get("/{id}", "products.get", ok)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/products/search")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/products/search = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/products/7")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /api/products/7 = %d, want 200", resp.StatusCode)
	}
}

func TestGroupMiddlewareInheritance(t *testing.T) {
	var order []string
	mark := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	outer := r.Group("/api", mark("outer"))
	inner := outer.Group("/orders", mark("inner"))
	inner.Get("/", "orders.list", ok, mark("route"))

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	want := []string{"outer", "inner", "route"}
	if len(order) != len(want) {
		t.Fatalf("middleware order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("middleware order = %v, want %v", order, want)
		}
	}
}

func TestURLReversal(t *testing.T) {
	r := router.New()
	r.Get("/api/orders/{id}", "orders.get", ok)

	url, err := r.URL("orders.get", map[string]string{"id": "12"})
	if err != nil {
		t.Fatal(err)
	}
	if url != "/api/orders/12" {
		t.Errorf("url = %q, want /api/orders/12", url)
	}

	if _, err := r.URL("orders.get", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestRoutesSnapshot(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("routes = %d, want 2", len(infos))
	}
}
