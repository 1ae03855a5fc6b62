package products

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/singhBond/biryani-cat/internal/domain/product"
	"github.com/singhBond/biryani-cat/internal/events"
	"github.com/singhBond/biryani-cat/pkg/logger"
)

type memStore struct {
	items []product.Product
	next  int
}

func (s *memStore) ListByCategory(_ context.Context, categoryID, search string) ([]product.Product, error) {
	var out []product.Product
	for _, p := range s.items {
		if p.CategoryID != categoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, p)
	}
	// newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, in CreateInput) (product.Product, error) {
	s.next++
	p := product.Product{
		ID:         strconv.Itoa(s.next),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Price:      in.Price,
		HalfPrice:  in.HalfPrice,
		Quantity:   in.Quantity,
		Images:     in.Images,
		Veg:        in.Veg,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	s.items = append(s.items, p)
	return p, nil
}

func (s *memStore) Update(_ context.Context, categoryID, id string, in UpdateInput) (product.Product, error) {
	for i := range s.items {
		if s.items[i].ID != id || s.items[i].CategoryID != categoryID {
			continue
		}
		if in.Name != nil {
			s.items[i].Name = *in.Name
		}
		if in.Price != nil {
			s.items[i].Price = *in.Price
		}
		if in.HalfPrice != nil {
			s.items[i].HalfPrice = in.HalfPrice
		}
		if in.Quantity != nil {
			s.items[i].Quantity = *in.Quantity
		}
		if in.Images != nil {
			s.items[i].Images = in.Images
		}
		if in.Veg != nil {
			s.items[i].Veg = *in.Veg
		}
		return s.items[i], nil
	}
	return product.Product{}, pgx.ErrNoRows
}

func (s *memStore) Delete(_ context.Context, categoryID, id string) error {
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].CategoryID == categoryID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newTestRouter(store Store) (*gin.Engine, *events.Bus) {
	gin.SetMode(gin.TestMode)
	bus := events.NewBus()
	h := NewHandler(store, bus, logger.New("error"))

	r := gin.New()
	r.GET("/api/admin/categories/:id/products", h.List)
	r.POST("/api/admin/categories/:id/products", h.Create)
	r.PATCH("/api/admin/categories/:id/products/:productId", h.Update)
	r.DELETE("/api/admin/categories/:id/products/:productId", h.Delete)
	return r, bus
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProduct(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(store)

	half := 60.0
	w := doJSON(t, r, http.MethodPost, "/api/admin/categories/cat1/products", gin.H{
		"name":       "Chicken Biryani",
		"price":      120.0,
		"half_price": half,
		"quantity":   "full plate",
		"veg":        false,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var got product.Product
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CategoryID != "cat1" {
		t.Errorf("expected category cat1, got %q", got.CategoryID)
	}
	if got.Price != 120.0 {
		t.Errorf("expected price 120, got %v", got.Price)
	}
	if got.HalfPrice == nil || *got.HalfPrice != 60.0 {
		t.Errorf("expected half price 60, got %v", got.HalfPrice)
	}
}

func TestCreateProductValidation(t *testing.T) {
	r, _ := newTestRouter(&memStore{})

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"price": 10.0}},
		{"blank name", gin.H{"name": "   ", "price": 10.0}},
		{"missing price", gin.H{"name": "Dal"}},
		{"negative price", gin.H{"name": "Dal", "price": -1.0}},
		{"negative half price", gin.H{"name": "Dal", "price": 10.0, "half_price": -5.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/admin/categories/cat1/products", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestListProductsSearch(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(store)

	for _, n := range []string{"Chicken Biryani", "Mutton Biryani", "Veg Pulao"} {
		price := 100.0
		store.Create(context.Background(), CreateInput{CategoryID: "cat1", Name: n, Price: price})
	}
	store.Create(context.Background(), CreateInput{CategoryID: "cat2", Name: "Chicken 65", Price: 90})

	w := doJSON(t, r, http.MethodGet, "/api/admin/categories/cat1/products?search=biryani", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items []product.Product `json:"items"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Items))
	}
	for _, p := range resp.Items {
		if !strings.Contains(strings.ToLower(p.Name), "biryani") {
			t.Errorf("unexpected match %q", p.Name)
		}
		if p.CategoryID != "cat1" {
			t.Errorf("search crossed category boundary: %q", p.CategoryID)
		}
	}
}

func TestUpdateProductValidation(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(store)
	created, _ := store.Create(context.Background(), CreateInput{CategoryID: "cat1", Name: "Dal", Price: 50})

	cases := []struct {
		name string
		body gin.H
	}{
		{"blank name", gin.H{"name": "   "}},
		{"negative price", gin.H{"price": -1.0}},
		{"negative half price", gin.H{"half_price": -5.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPatch, "/api/admin/categories/cat1/products/"+created.ID, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
	if store.items[0].Price != 50 {
		t.Errorf("rejected update mutated the product: %+v", store.items[0])
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	r, _ := newTestRouter(&memStore{})

	w := doJSON(t, r, http.MethodPatch, "/api/admin/categories/cat1/products/missing", gin.H{"price": 10.0})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUpdateProduct(t *testing.T) {
	store := &memStore{}
	r, _ := newTestRouter(store)
	created, _ := store.Create(context.Background(), CreateInput{CategoryID: "cat1", Name: "Dal", Price: 50})

	w := doJSON(t, r, http.MethodPatch, "/api/admin/categories/cat1/products/"+created.ID, gin.H{
		"price": 60.0,
		"veg":   true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got product.Product
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Price != 60.0 || !got.Veg || got.Name != "Dal" {
		t.Errorf("unexpected update result: %+v", got)
	}
}

func TestDeleteProductPublishesEvent(t *testing.T) {
	store := &memStore{}
	r, bus := newTestRouter(store)
	created, _ := store.Create(context.Background(), CreateInput{CategoryID: "cat1", Name: "Dal", Price: 50})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := bus.Subscribe(ctx, events.ProductTopic("cat1"))

	w := doJSON(t, r, http.MethodDelete, "/api/admin/categories/cat1/products/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	select {
	case ev := <-ch:
		if ev.Type != events.TypeDeleted {
			t.Errorf("expected %q event, got %q", events.TypeDeleted, ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no event published for delete")
	}
}
