package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/catalogs/product"
	"gestock/internal/domain/registers/stock"
	"gestock/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the Product catalog plus per-product stock
// levels and movement history.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
	stock   *stock.Service
}

// NewProductHandler creates a product handler.
func NewProductHandler(service *product.Service, stockSvc *stock.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: NewBaseHandler(), service: service, stock: stockSvc}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), p)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, created)
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(p)

	updated, err := h.service.Update(c.Request.Context(), p)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}

	filter := product.Filter{
		StoreID:    storeID,
		ActiveOnly: h.ParseBoolQuery(c, "activeOnly"),
		Search:     c.Query("search"),
		Limit:      h.ParseIntQuery(c, "limit", 50),
		Offset:     h.ParseIntQuery(c, "offset", 0),
	}

	products, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, products, len(products))
}

// Stock handles GET /products/:id/stock.
// Existence and visibility are checked through the catalog before the
// register is read.
func (h *ProductHandler) Stock(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	levels, err := h.stock.GetLevelsByProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, levels, len(levels))
}

// Movements handles GET /products/:id/movements.
func (h *ProductHandler) Movements(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	warehouseID, ok := h.ParseIDQuery(c, "warehouseId")
	if !ok {
		return
	}
	from, ok := h.ParseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseTimeQuery(c, "to")
	if !ok {
		return
	}

	filter := stock.MovementFilter{
		WarehouseID: warehouseID,
		FromDate:    from,
		ToDate:      to,
		Limit:       h.ParseIntQuery(c, "limit", 50),
		Offset:      h.ParseIntQuery(c, "offset", 0),
	}
	if dir := c.Query("direction"); dir != "" {
		d := stock.Direction(dir)
		filter.Direction = &d
	}

	movements, err := h.stock.GetMovementHistory(c.Request.Context(), productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, movements, len(movements))
}
