package handlers

import (
	"github.com/gin-gonic/gin"

	"kassa/internal/domain/catalogs/expensecat"
	"kassa/internal/infrastructure/http/v1/dto"
)

// ExpenseCategoryHandler serves the expense categories catalog.
type ExpenseCategoryHandler struct {
	*BaseHandler
	service *expensecat.Service
}

// NewExpenseCategoryHandler creates a new expense category handler.
func NewExpenseCategoryHandler(base *BaseHandler, service *expensecat.Service) *ExpenseCategoryHandler {
	return &ExpenseCategoryHandler{BaseHandler: base, service: service}
}

// List handles GET /expense-categories
func (h *ExpenseCategoryHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	res, err := h.service.List(c.Request.Context(), toListFilter(q))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromExpenseCategories(res.Items),
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	})
}

// Create handles POST /expense-categories
func (h *ExpenseCategoryHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ec := req.ToModel()
	if err := h.service.Create(c.Request.Context(), ec); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, ec.ID)
}

// Get handles GET /expense-categories/:id
func (h *ExpenseCategoryHandler) Get(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	ec, err := h.service.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromExpenseCategory(ec))
}

// Update handles PUT /expense-categories/:id
func (h *ExpenseCategoryHandler) Update(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateExpenseCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ec, err := h.service.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(ec)
	if err := h.service.Update(c.Request.Context(), ec); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromExpenseCategory(ec))
}

// Delete handles DELETE /expense-categories/:id (soft delete)
func (h *ExpenseCategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), categoryID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
