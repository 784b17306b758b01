package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/simplyaboveaverage/multicart-backend/api/middleware"
	"github.com/simplyaboveaverage/multicart-backend/internal/cart"
	"github.com/simplyaboveaverage/multicart-backend/internal/catalog"
	"github.com/simplyaboveaverage/multicart-backend/pkg/logger"
	"github.com/simplyaboveaverage/multicart-backend/pkg/state"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func newCartStore(t *testing.T) *cart.Store {
	t.Helper()
	store, err := cart.NewStore(state.NewMemory(), testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func authedRequest(method, target string, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

type itemsEnvelope struct {
	Data struct {
		Items []cart.Item `json:"items"`
	} `json:"data"`
}

func decodeItems(t *testing.T, rec *httptest.ResponseRecorder) []cart.Item {
	t.Helper()
	var envelope itemsEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data.Items
}

func TestCartAddItem(t *testing.T) {
	logg := testLogger()

	t.Run("missing user", func(t *testing.T) {
		store := newCartStore(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"id":"1","vendor":"Acme"}`))
		rec := httptest.NewRecorder()
		CartAddItem(store, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 when user missing, got %d", rec.Code)
		}
	})

	t.Run("missing vendor", func(t *testing.T) {
		store := newCartStore(t)
		req := authedRequest(http.MethodPost, "/api/v1/cart/items", `{"id":"1"}`)
		rec := httptest.NewRecorder()
		CartAddItem(store, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 when vendor missing, got %d", rec.Code)
		}
	})

	t.Run("add then increment", func(t *testing.T) {
		store := newCartStore(t)
		body := `{"id":"1","vendor":"Acme","price":"12.50"}`

		req := authedRequest(http.MethodPost, "/api/v1/cart/items", body)
		rec := httptest.NewRecorder()
		CartAddItem(store, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 on first add, got %d: %s", rec.Code, rec.Body.String())
		}

		req = authedRequest(http.MethodPost, "/api/v1/cart/items", body)
		rec = httptest.NewRecorder()
		CartAddItem(store, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 on re-add, got %d", rec.Code)
		}

		items := decodeItems(t, rec)
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0].Quantity != 2 {
			t.Fatalf("expected quantity 2 after re-add, got %d", items[0].Quantity)
		}
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	logg := testLogger()
	store := newCartStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "user-1", catalog.Product{ID: "1", Vendor: "Acme", Price: decimal.NewFromInt(10)}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	t.Run("missing quantity", func(t *testing.T) {
		req := withURLParam(authedRequest(http.MethodPatch, "/api/v1/cart/items/1", `{}`), "productId", "1")
		rec := httptest.NewRecorder()
		CartUpdateQuantity(store, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 when quantity missing, got %d", rec.Code)
		}
	})

	t.Run("sets exact quantity", func(t *testing.T) {
		req := withURLParam(authedRequest(http.MethodPatch, "/api/v1/cart/items/1", `{"quantity":5}`), "productId", "1")
		rec := httptest.NewRecorder()
		CartUpdateQuantity(store, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		items := decodeItems(t, rec)
		if len(items) != 1 || items[0].Quantity != 5 {
			t.Fatalf("expected quantity 5, got %+v", items)
		}
	})

	t.Run("zero removes the item", func(t *testing.T) {
		req := withURLParam(authedRequest(http.MethodPatch, "/api/v1/cart/items/1", `{"quantity":0}`), "productId", "1")
		rec := httptest.NewRecorder()
		CartUpdateQuantity(store, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if items := decodeItems(t, rec); len(items) != 0 {
			t.Fatalf("expected empty cart, got %+v", items)
		}
	})
}

func TestCartRemoveItem(t *testing.T) {
	logg := testLogger()
	store := newCartStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "user-1", catalog.Product{ID: "1", Vendor: "Acme", Price: decimal.NewFromInt(10)}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := store.Add(ctx, "user-1", catalog.Product{ID: "2", Vendor: "Acme", Price: decimal.NewFromInt(4)}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	req := withURLParam(authedRequest(http.MethodDelete, "/api/v1/cart/items/1", ""), "productId", "1")
	rec := httptest.NewRecorder()
	CartRemoveItem(store, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := decodeItems(t, rec)
	if len(items) != 1 || items[0].ID != "2" {
		t.Fatalf("expected only product 2 to remain, got %+v", items)
	}
}

func TestCartClearAndGet(t *testing.T) {
	logg := testLogger()
	store := newCartStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "user-1", catalog.Product{ID: "1", Vendor: "Acme", Price: decimal.NewFromInt(10)}); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	rec := httptest.NewRecorder()
	CartClear(store, logg).ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/v1/cart", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on clear, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	CartGet(store, logg).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/cart", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", rec.Code)
	}
	if items := decodeItems(t, rec); len(items) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", items)
	}
}
