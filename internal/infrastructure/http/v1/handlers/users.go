package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"kassa/internal/core/apperror"
	"kassa/internal/domain/catalogs/user"
	"kassa/internal/infrastructure/http/v1/dto"
)

// UserHandler serves the users catalog.
type UserHandler struct {
	*BaseHandler
	service *user.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(base *BaseHandler, service *user.Service) *UserHandler {
	return &UserHandler{BaseHandler: base, service: service}
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
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
		Items:      dto.FromUsers(res.Items),
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	})
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u := req.ToModel()
	if err := h.service.Create(c.Request.Context(), u); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, u.ID)
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(u))
}

// GetByTelegram handles GET /users/by-telegram/:telegramId
func (h *UserHandler) GetByTelegram(c *gin.Context) {
	raw := c.Param("telegramId")
	telegramID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid telegramId").WithDetail("value", raw))
		return
	}

	u, err := h.service.GetByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(u))
}

// Update handles PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(u)
	if err := h.service.Update(c.Request.Context(), u); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(u))
}

// Delete handles DELETE /users/:id (soft delete)
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
