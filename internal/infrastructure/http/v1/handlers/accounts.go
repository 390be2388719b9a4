package handlers

import (
	"github.com/gin-gonic/gin"

	"kassa/internal/domain"
	"kassa/internal/domain/catalogs/account"
	"kassa/internal/infrastructure/http/v1/dto"
)

// AccountHandler serves the accounts catalog.
type AccountHandler struct {
	*BaseHandler
	service *account.Service
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(base *BaseHandler, service *account.Service) *AccountHandler {
	return &AccountHandler{BaseHandler: base, service: service}
}

// toListFilter converts the common listing query to a domain filter.
func toListFilter(q dto.ListQuery) domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = q.Search
	filter.IncludeInactive = q.IncludeInactive
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.Limit > 0 {
		filter.Limit = q.Limit
	}
	filter.Offset = q.Offset
	return filter
}

// List handles GET /accounts
func (h *AccountHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := toListFilter(q)
	if q.OrderBy == "" {
		filter.OrderBy = "account_type, name"
	}

	res, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromAccounts(res.Items),
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	})
}

// Create handles POST /accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	acc := req.ToModel()
	if err := h.service.Create(c.Request.Context(), acc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, acc.ID)
}

// Get handles GET /accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	accountID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	acc, err := h.service.GetByID(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAccount(acc))
}

// Update handles PUT /accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	accountID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	acc, err := h.service.GetByID(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(acc)
	if err := h.service.Update(c.Request.Context(), acc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAccount(acc))
}

// Delete handles DELETE /accounts/:id (soft delete)
func (h *AccountHandler) Delete(c *gin.Context) {
	accountID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), accountID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
