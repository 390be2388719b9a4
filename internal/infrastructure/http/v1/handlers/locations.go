package handlers

import (
	"github.com/gin-gonic/gin"

	"kassa/internal/domain/catalogs/location"
	"kassa/internal/infrastructure/http/v1/dto"
)

// LocationHandler serves the locations catalog.
type LocationHandler struct {
	*BaseHandler
	service *location.Service
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(base *BaseHandler, service *location.Service) *LocationHandler {
	return &LocationHandler{BaseHandler: base, service: service}
}

// List handles GET /locations
func (h *LocationHandler) List(c *gin.Context) {
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
		Items:      dto.FromLocations(res.Items),
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	})
}

// Create handles POST /locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	loc := req.ToModel()
	if err := h.service.Create(c.Request.Context(), loc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, loc.ID)
}

// Get handles GET /locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	locationID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	loc, err := h.service.GetByID(c.Request.Context(), locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLocation(loc))
}

// Update handles PUT /locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	locationID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	loc, err := h.service.GetByID(c.Request.Context(), locationID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(loc)
	if err := h.service.Update(c.Request.Context(), loc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLocation(loc))
}

// Delete handles DELETE /locations/:id (soft delete)
func (h *LocationHandler) Delete(c *gin.Context) {
	locationID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), locationID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
