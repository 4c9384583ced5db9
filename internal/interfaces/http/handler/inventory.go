package handler

import (
	appinventory "github.com/garment/backend/internal/application/inventory"
	"github.com/garment/backend/internal/domain/identity"
	"github.com/garment/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler handles inventory items, movements, and stock reads
type InventoryHandler struct {
	BaseHandler
	stockService *appinventory.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *appinventory.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// RegisterRoutes registers inventory routes under the session middleware
func (h *InventoryHandler) RegisterRoutes(protected *gin.RouterGroup, permCfg middleware.PermissionConfig) {
	view := middleware.RequirePermission(permCfg, identity.PermVerInventario)
	edit := middleware.RequirePermission(permCfg, identity.PermEditarInventario)

	protected.GET("/inventory-stock", view, h.Stock)

	items := protected.Group("/inventory/items")
	items.POST("", edit, h.CreateItem)
	items.GET("", view, h.ListItems)
	items.GET("/:id", view, h.GetItem)
	items.POST("/:id/entries", edit, h.RecordEntry)
	items.POST("/:id/outputs", edit, h.RecordOutput)
}

// Stock returns the current stock for the item named by the
// inventoryItemId query parameter
func (h *InventoryHandler) Stock(c *gin.Context) {
	raw := c.Query("inventoryItemId")
	if raw == "" {
		h.BadRequest(c, "Query parameter inventoryItemId is required")
		return
	}
	itemID, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid inventoryItemId: "+raw)
		return
	}

	resp, err := h.stockService.Stock(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateItem registers an inventory item
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req appinventory.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.stockService.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListItems returns inventory items matching the filter
func (h *InventoryHandler) ListItems(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	resp, err := h.stockService.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetItem returns a single inventory item
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	resp, err := h.stockService.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordEntry records an inbound movement for an item
func (h *InventoryHandler) RecordEntry(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req appinventory.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.stockService.RecordEntry(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RecordOutput records an outbound movement for an item
func (h *InventoryHandler) RecordOutput(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req appinventory.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.stockService.RecordOutput(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *InventoryHandler) itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID: "+c.Param("id"))
		return uuid.Nil, false
	}
	return id, true
}
