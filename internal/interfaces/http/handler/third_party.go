package handler

import (
	appthirdparty "github.com/garment/backend/internal/application/thirdparty"
	"github.com/garment/backend/internal/domain/identity"
	domain "github.com/garment/backend/internal/domain/thirdparty"
	"github.com/garment/backend/internal/interfaces/http/dto"
	"github.com/garment/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ThirdPartyHandler handles third-party registration, contact updates,
// and the legal-status ledger endpoints.
type ThirdPartyHandler struct {
	BaseHandler
	partyService       *appthirdparty.PartyService
	legalStatusService *appthirdparty.LegalStatusService
}

// NewThirdPartyHandler creates a new ThirdPartyHandler
func NewThirdPartyHandler(partyService *appthirdparty.PartyService, legalStatusService *appthirdparty.LegalStatusService) *ThirdPartyHandler {
	return &ThirdPartyHandler{
		partyService:       partyService,
		legalStatusService: legalStatusService,
	}
}

// RegisterRoutes registers third-party routes under the session
// middleware. Each route resolves the view or edit permission matching
// the :type path segment; the legal-status write shares a per-entity
// rate budget across all callers.
func (h *ThirdPartyHandler) RegisterRoutes(protected *gin.RouterGroup, permCfg middleware.PermissionConfig, rlCfg middleware.RateLimitConfig) {
	view := middleware.RequirePermissionFunc(permCfg, func(c *gin.Context) string {
		return identity.ViewPermissionFor(c.Param("type"))
	})
	edit := middleware.RequirePermissionFunc(permCfg, func(c *gin.Context) string {
		return identity.EditPermissionFor(c.Param("type"))
	})

	group := protected.Group("/third-parties/:type", h.validateType)
	group.POST("", edit, h.Create)
	group.GET("", view, h.List)
	group.GET("/:id", view, h.Get)
	group.PUT("/:id", edit, h.Update)

	rlCfg.Op = "legal-status"
	rlCfg.KeyFunc = middleware.EntityScopedKey("type", "id")
	group.POST("/:id/legal-status", edit, middleware.RateLimit(rlCfg), h.SetLegalStatus)
	group.GET("/:id/legal-status/check", view, h.CheckOperability)
	group.GET("/:id/legal-status-history", view, h.History)
}

// validateType rejects unknown :type segments before any permission
// lookup, so a typo reads as a bad request rather than a denial
func (h *ThirdPartyHandler) validateType(c *gin.Context) {
	if _, err := domain.ParseType(c.Param("type")); err != nil {
		c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeValidation), dto.NewErrorResponseWithRequestID(
			dto.ErrCodeValidation, "Unknown third-party type: "+c.Param("type"), getRequestID(c)))
		return
	}
	c.Next()
}

// Create registers a new third party of the path type
func (h *ThirdPartyHandler) Create(c *gin.Context) {
	var req appthirdparty.CreateThirdPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.partyService.Create(c.Request.Context(), c.Param("type"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns third parties of the path type
func (h *ThirdPartyHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	resp, err := h.partyService.List(c.Request.Context(), c.Param("type"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns a single third party
func (h *ThirdPartyHandler) Get(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}

	resp, err := h.partyService.Get(c.Request.Context(), c.Param("type"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update changes a third party's name or contact data
func (h *ThirdPartyHandler) Update(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}

	var req appthirdparty.UpdateThirdPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.partyService.Update(c.Request.Context(), c.Param("type"), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetLegalStatus appends a legal-status record to the entity's ledger
// and reports whether its derived active flag flipped
func (h *ThirdPartyHandler) SetLegalStatus(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}

	var req appthirdparty.SetLegalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	reviewedBy := middleware.GetJWTUsername(c)
	resp, err := h.legalStatusService.SetStatus(c.Request.Context(), c.Param("type"), id, reviewedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CheckOperability answers whether the entity may transact right now
func (h *ThirdPartyHandler) CheckOperability(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}

	resp, err := h.legalStatusService.CheckOperability(c.Request.Context(), c.Param("type"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// History returns the entity's full legal-status ledger, newest first
func (h *ThirdPartyHandler) History(c *gin.Context) {
	id, ok := h.entityID(c)
	if !ok {
		return
	}

	resp, err := h.legalStatusService.History(c.Request.Context(), c.Param("type"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ThirdPartyHandler) entityID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID: "+c.Param("id"))
		return uuid.Nil, false
	}
	return id, true
}
