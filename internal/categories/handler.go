package categories

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/singhBond/biryani-cat/internal/domain/category"
	"github.com/singhBond/biryani-cat/internal/events"
	"github.com/singhBond/biryani-cat/internal/util"
)

// Store is what the handlers need from the category repository.
type Store interface {
	List(ctx context.Context) ([]category.Category, error)
	Create(ctx context.Context, name, image string) (category.Category, error)
	Update(ctx context.Context, id string, name, image *string) (category.Category, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, from, to int) ([]category.Category, error)
}

type Handler struct {
	store Store
	bus   *events.Bus
	log   *slog.Logger
}

func NewHandler(store Store, bus *events.Bus, log *slog.Logger) *Handler {
	return &Handler{store: store, bus: bus, log: log}
}

// List serves both the public menu and the admin dashboard.
func (h *Handler) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		h.log.Error("list categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	if items == nil {
		items = []category.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type createReq struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	name := util.FormatName(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category name is required"})
		return
	}

	created, err := h.store.Create(c.Request.Context(), name, req.Image)
	if err != nil {
		h.log.Error("create category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}

	h.bus.Publish(events.TopicCategories, events.Event{Type: events.TypeCreated, Payload: created})
	c.JSON(http.StatusCreated, created)
}

type updateReq struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name != nil {
		name := util.FormatName(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category name is required"})
			return
		}
		req.Name = &name
	}

	updated, err := h.store.Update(c.Request.Context(), id, req.Name, req.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		h.log.Error("update category", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category"})
		return
	}

	h.bus.Publish(events.TopicCategories, events.Event{Type: events.TypeUpdated, Payload: updated})
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		h.log.Error("delete category", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		return
	}

	h.bus.Publish(events.TopicCategories, events.Event{Type: events.TypeDeleted, Payload: gin.H{"id": id}})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type reorderReq struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

func (h *Handler) Reorder(c *gin.Context) {
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	items, err := h.store.Reorder(c.Request.Context(), *req.From, *req.To)
	if err != nil {
		if errors.Is(err, ErrBadIndex) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reorder index out of range"})
			return
		}
		h.log.Error("reorder categories", "from", *req.From, "to", *req.To, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reorder categories"})
		return
	}

	h.bus.Publish(events.TopicCategories, events.Event{Type: events.TypeReordered, Payload: items})
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Stream pushes category-list changes over SSE until the client goes away.
func (h *Handler) Stream(c *gin.Context) {
	ch := h.bus.Subscribe(c.Request.Context(), events.TopicCategories)

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
