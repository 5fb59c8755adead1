package inventory

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/internal/httpserver"
)

// UseCase is what the HTTP layer needs from the inventory ledger.
type UseCase interface {
	AddItem(ctx context.Context, req AddItemRequest) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	GetByID(ctx context.Context, itemID int64) (*domain.Item, error)
	Update(ctx context.Context, itemID int64, update domain.ItemUpdate) (*domain.Item, error)
	DeductStock(ctx context.Context, itemID int64, quantity int) (*domain.Item, error)
}

// ItemHandler contains the inventory HTTP handlers.
type ItemHandler struct {
	useCase UseCase
	tracer  trace.Tracer
	respond httpserver.Responder
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(useCase UseCase, tracer trace.Tracer, respond httpserver.Responder) *ItemHandler {
	return &ItemHandler{
		useCase: useCase,
		tracer:  tracer,
		respond: respond,
	}
}

// RegisterRoutes mounts the inventory endpoints.
func (h *ItemHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/inventory")
	api.POST("", h.AddItem)
	api.GET("/all", h.List)
	api.GET("/:item_id", h.GetByID)
	api.PUT("/update/:item_id", h.Update)
	api.PUT("/deduce-stock/:item_id", h.DeductStock)
}

// AddItem stocks a new item.
func (h *ItemHandler) AddItem(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "add_item")
	defer span.End()

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		h.respond.BadRequest(c, err)
		return
	}
	span.SetAttributes(
		attribute.String("name", req.Name),
		attribute.String("category", string(req.Category)),
	)

	item, err := h.useCase.AddItem(ctx, req)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// List returns all items.
func (h *ItemHandler) List(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "list_items")
	defer span.End()

	items, err := h.useCase.List(ctx)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetByID returns one item.
func (h *ItemHandler) GetByID(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "get_item")
	defer span.End()

	itemID, ok := h.itemID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("item_id", itemID))

	item, err := h.useCase.GetByID(ctx, itemID)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Update changes item fields.
func (h *ItemHandler) Update(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "update_item")
	defer span.End()

	itemID, ok := h.itemID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("item_id", itemID))

	var update domain.ItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		span.RecordError(err)
		h.respond.BadRequest(c, err)
		return
	}

	item, err := h.useCase.Update(ctx, itemID, update)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeductStock removes units from stock.
func (h *ItemHandler) DeductStock(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "deduct_stock")
	defer span.End()

	itemID, ok := h.itemID(c)
	if !ok {
		return
	}

	var req DeductStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		h.respond.BadRequest(c, err)
		return
	}
	span.SetAttributes(
		attribute.Int64("item_id", itemID),
		attribute.Int("quantity", req.Quantity),
	)

	item, err := h.useCase.DeductStock(ctx, itemID, req.Quantity)
	if err != nil {
		span.RecordError(err)
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil || id <= 0 {
		h.respond.Error(c, domain.InvalidInput("item_id must be a positive integer"))
		return 0, false
	}
	return id, true
}
