package handler

import (
	apptrade "github.com/garment/backend/internal/application/trade"
	"github.com/garment/backend/internal/domain/identity"
	"github.com/garment/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles production orders and their workflow
type OrderHandler struct {
	BaseHandler
	orderService *apptrade.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apptrade.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes under the session middleware.
// Status changes carry only the view permission here: which stages the
// caller's role may set is decided by the workflow policy itself.
func (h *OrderHandler) RegisterRoutes(protected *gin.RouterGroup, permCfg middleware.PermissionConfig) {
	view := middleware.RequirePermission(permCfg, identity.PermVerPedido)
	edit := middleware.RequirePermission(permCfg, identity.PermEditarPedido)

	orders := protected.Group("/orders")
	orders.POST("", edit, h.Create)
	orders.GET("", view, h.List)
	orders.GET("/allowed-statuses", view, h.AllowedStatuses)
	orders.GET("/:id", view, h.Get)
	orders.PATCH("/:id/status", view, h.ChangeStatus)
}

// Create creates a production order for an operable client
func (h *OrderHandler) Create(c *gin.Context) {
	var req apptrade.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns orders matching the filter
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	resp, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns a single order with its scheduled dates
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeStatus moves an order into a target workflow stage, authorized
// by the caller's role
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req apptrade.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	role := middleware.GetJWTRole(c)
	resp, err := h.orderService.ChangeStatus(c.Request.Context(), id, role, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *OrderHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID: "+c.Param("id"))
		return uuid.Nil, false
	}
	return id, true
}

// AllowedStatuses lists the workflow stages the caller's role may set
func (h *OrderHandler) AllowedStatuses(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		role = middleware.GetJWTRole(c)
	}
	h.Success(c, h.orderService.AllowedStatuses(role))
}
