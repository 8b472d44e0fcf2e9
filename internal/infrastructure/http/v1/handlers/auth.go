package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/core/scope"
	"gestock/internal/domain/auth"
	"gestock/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves login and user management.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// CreateUser handles POST /users.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, user)
}

// ListUsers handles GET /users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}

	filter := auth.UserFilter{
		StoreID:    storeID,
		ActiveOnly: h.ParseBoolQuery(c, "activeOnly"),
		Limit:      h.ParseIntQuery(c, "limit", 50),
		Offset:     h.ParseIntQuery(c, "offset", 0),
	}

	users, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, users, len(users))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	sc, err := scope.MustFromContext(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), sc.UserID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, user)
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sc, err := scope.MustFromContext(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), sc.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "password changed")
}
