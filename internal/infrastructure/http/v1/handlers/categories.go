package handlers

import (
	"github.com/gin-gonic/gin"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/domain/catalogs/category"
	"kassa/internal/infrastructure/http/v1/dto"
)

// CategoryHandler serves the income and expense categories catalog.
type CategoryHandler struct {
	*BaseHandler
	service *category.Service
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	return &CategoryHandler{BaseHandler: base, service: service}
}

// List handles GET /categories
// With ?type=income|expense only that branch of the tree is returned;
// ?parentId= narrows to one parent's subcategories, ?parentId=null to top level.
func (h *CategoryHandler) List(c *gin.Context) {
	if typeParam := c.Query("type"); typeParam != "" {
		h.listByType(c, category.Type(typeParam))
		return
	}

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
		Items:      dto.FromCategories(res.Items),
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	})
}

func (h *CategoryHandler) listByType(c *gin.Context, cType category.Type) {
	var parentID *id.ID
	switch raw := c.Query("parentId"); raw {
	case "", "null":
		// top-level categories
	default:
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid parentId").WithDetail("value", raw))
			return
		}
		parentID = &parsed
	}

	items, err := h.service.ListByType(c.Request.Context(), cType, parentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromCategories(items),
		TotalCount: int64(len(items)),
		Limit:      len(items),
	})
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cat, err := req.ToModel()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), cat); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, cat.ID)
}

// Get handles GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cat, err := h.service.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCategory(cat))
}

// Subcategories handles GET /categories/:id/subcategories
func (h *CategoryHandler) Subcategories(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.service.Subcategories(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromCategories(items),
		TotalCount: int64(len(items)),
		Limit:      len(items),
	})
}

// Update handles PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cat, err := h.service.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(cat)
	if err := h.service.Update(c.Request.Context(), cat); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromCategory(cat))
}

// Delete handles DELETE /categories/:id (soft delete, rejected while subcategories exist)
func (h *CategoryHandler) Delete(c *gin.Context) {
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
