package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/catalogs/store"
	"gestock/internal/infrastructure/http/v1/dto"
)

// StoreHandler serves the Store catalog.
type StoreHandler struct {
	*BaseHandler
	service *store.Service
}

// NewStoreHandler creates a store handler.
func NewStoreHandler(service *store.Service) *StoreHandler {
	return &StoreHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Create handles POST /stores.
func (h *StoreHandler) Create(c *gin.Context) {
	var req dto.CreateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, created)
}

// Update handles PUT /stores/:id.
func (h *StoreHandler) Update(c *gin.Context) {
	storeID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStoreRequest
	if !h.BindJSON(c, &req) {
		return
	}

	st, err := h.service.GetByID(c.Request.Context(), storeID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(st)

	updated, err := h.service.Update(c.Request.Context(), st)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Get handles GET /stores/:id.
func (h *StoreHandler) Get(c *gin.Context) {
	storeID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	st, err := h.service.GetByID(c.Request.Context(), storeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, st)
}

// List handles GET /stores.
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.service.List(c.Request.Context(), h.ParseBoolQuery(c, "activeOnly"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, stores, len(stores))
}
