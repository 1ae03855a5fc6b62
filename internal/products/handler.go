package products

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/singhBond/biryani-cat/internal/domain/product"
	"github.com/singhBond/biryani-cat/internal/events"
)

// Store is what the handlers need from the product repository.
type Store interface {
	ListByCategory(ctx context.Context, categoryID, search string) ([]product.Product, error)
	Create(ctx context.Context, in CreateInput) (product.Product, error)
	Update(ctx context.Context, categoryID, id string, in UpdateInput) (product.Product, error)
	Delete(ctx context.Context, categoryID, id string) error
}

type Handler struct {
	store Store
	bus   *events.Bus
	log   *slog.Logger
}

func NewHandler(store Store, bus *events.Bus, log *slog.Logger) *Handler {
	return &Handler{store: store, bus: bus, log: log}
}

// List serves a category's products. ?search= filters by name substring,
// which backs the dashboard's live search box.
func (h *Handler) List(c *gin.Context) {
	categoryID := c.Param("id")
	search := strings.TrimSpace(c.Query("search"))

	items, err := h.store.ListByCategory(c.Request.Context(), categoryID, search)
	if err != nil {
		h.log.Error("list products", "category_id", categoryID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	if items == nil {
		items = []product.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type createReq struct {
	Name      string   `json:"name" binding:"required"`
	Price     *float64 `json:"price" binding:"required"`
	HalfPrice *float64 `json:"half_price"`
	Quantity  string   `json:"quantity"`
	Images    []string `json:"images"`
	Veg       bool     `json:"veg"`
}

func (h *Handler) Create(c *gin.Context) {
	categoryID := c.Param("id")

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
		return
	}
	if *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}
	if req.HalfPrice != nil && *req.HalfPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "half price must not be negative"})
		return
	}

	created, err := h.store.Create(c.Request.Context(), CreateInput{
		CategoryID: categoryID,
		Name:       name,
		Price:      *req.Price,
		HalfPrice:  req.HalfPrice,
		Quantity:   strings.TrimSpace(req.Quantity),
		Images:     req.Images,
		Veg:        req.Veg,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		h.log.Error("create product", "category_id", categoryID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	h.bus.Publish(events.ProductTopic(categoryID), events.Event{Type: events.TypeCreated, Payload: created})
	c.JSON(http.StatusCreated, created)
}

type updateReq struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	HalfPrice *float64 `json:"half_price"`
	Quantity  *string  `json:"quantity"`
	Images    []string `json:"images"`
	Veg       *bool    `json:"veg"`
}

func (h *Handler) Update(c *gin.Context) {
	categoryID := c.Param("id")
	id := c.Param("productId")

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
			return
		}
		req.Name = &name
	}
	if req.Price != nil && *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}
	if req.HalfPrice != nil && *req.HalfPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "half price must not be negative"})
		return
	}

	updated, err := h.store.Update(c.Request.Context(), categoryID, id, UpdateInput{
		Name:      req.Name,
		Price:     req.Price,
		HalfPrice: req.HalfPrice,
		Quantity:  req.Quantity,
		Images:    req.Images,
		Veg:       req.Veg,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.log.Error("update product", "product_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	h.bus.Publish(events.ProductTopic(categoryID), events.Event{Type: events.TypeUpdated, Payload: updated})
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	categoryID := c.Param("id")
	id := c.Param("productId")

	if err := h.store.Delete(c.Request.Context(), categoryID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.log.Error("delete product", "product_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	h.bus.Publish(events.ProductTopic(categoryID), events.Event{Type: events.TypeDeleted, Payload: gin.H{"id": id}})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Stream pushes one category's product changes over SSE.
func (h *Handler) Stream(c *gin.Context) {
	categoryID := c.Param("id")
	ch := h.bus.Subscribe(c.Request.Context(), events.ProductTopic(categoryID))

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev.Payload)
		case <-ticker.C:
			c.SSEvent("ping", nil)
		}
		return true
	})
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
