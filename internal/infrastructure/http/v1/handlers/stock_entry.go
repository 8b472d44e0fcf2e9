package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/documents/stock_entry"
	"gestock/internal/infrastructure/http/v1/dto"
)

// StockEntryHandler serves goods receipt documents.
type StockEntryHandler struct {
	*BaseHandler
	service *stock_entry.Service
}

// NewStockEntryHandler creates a stock entry handler.
func NewStockEntryHandler(service *stock_entry.Service) *StockEntryHandler {
	return &StockEntryHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Create handles POST /stock-entries.
func (h *StockEntryHandler) Create(c *gin.Context) {
	var req dto.CreateStockEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	entry, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entry)
}

// AddItem handles POST /stock-entries/:id/items.
func (h *StockEntryHandler) AddItem(c *gin.Context) {
	entryID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.StockEntryItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	entry, err := h.service.AddItem(c.Request.Context(), entryID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entry)
}

// Get handles GET /stock-entries/:id.
func (h *StockEntryHandler) Get(c *gin.Context) {
	entryID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), entryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entry)
}

// List handles GET /stock-entries.
func (h *StockEntryHandler) List(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}
	warehouseID, ok := h.ParseIDQuery(c, "warehouseId")
	if !ok {
		return
	}
	supplierID, ok := h.ParseIDQuery(c, "supplierId")
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

	filter := stock_entry.Filter{
		StoreID:     storeID,
		WarehouseID: warehouseID,
		SupplierID:  supplierID,
		FromDate:    from,
		ToDate:      to,
		Limit:       h.ParseIntQuery(c, "limit", 50),
		Offset:      h.ParseIntQuery(c, "offset", 0),
	}

	entries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, entries, len(entries))
}
