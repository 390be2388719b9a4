package handlers

import (
	"github.com/gin-gonic/gin"

	"kassa/internal/domain/catalogs/paymethod"
	"kassa/internal/infrastructure/http/v1/dto"
)

// PaymentMethodHandler serves the payment methods catalog.
type PaymentMethodHandler struct {
	*BaseHandler
	service *paymethod.Service
}

// NewPaymentMethodHandler creates a new payment method handler.
func NewPaymentMethodHandler(base *BaseHandler, service *paymethod.Service) *PaymentMethodHandler {
	return &PaymentMethodHandler{BaseHandler: base, service: service}
}

// List handles GET /payment-methods
// With ?visible=true only methods shown to cashiers are returned.
func (h *PaymentMethodHandler) List(c *gin.Context) {
	if c.Query("visible") == "true" {
		items, err := h.service.ListVisible(c.Request.Context())
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, dto.ListResponse{
			Items:      dto.FromPaymentMethods(items),
			TotalCount: int64(len(items)),
			Limit:      len(items),
		})
		return
	}

	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := toListFilter(q)
	if q.OrderBy == "" {
		filter.OrderBy = "display_order, name"
	}

	res, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromPaymentMethods(res.Items),
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	})
}

// Create handles POST /payment-methods
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentMethodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := req.ToModel()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, m.ID)
}

// Get handles GET /payment-methods/:id
func (h *PaymentMethodHandler) Get(c *gin.Context) {
	methodID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), methodID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPaymentMethod(m))
}

// Update handles PUT /payment-methods/:id
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	methodID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePaymentMethodRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), methodID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.Apply(m); err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.Update(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPaymentMethod(m))
}

// Delete handles DELETE /payment-methods/:id (soft delete)
func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	methodID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), methodID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// SetVisibility handles POST /payment-methods/:id/visibility
func (h *PaymentMethodHandler) SetVisibility(c *gin.Context) {
	methodID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SetVisibilityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetVisibility(c.Request.Context(), methodID, req.Visible); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "visibility updated")
}

// Reorder handles POST /payment-methods/reorder
func (h *PaymentMethodHandler) Reorder(c *gin.Context) {
	var req dto.ReorderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ids, err := req.ParseIDs()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Reorder(c.Request.Context(), ids); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "order updated")
}
