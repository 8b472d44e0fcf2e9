package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/documents/stock_transfer"
	"gestock/internal/infrastructure/http/v1/dto"
)

// StockTransferHandler serves warehouse transfer documents.
type StockTransferHandler struct {
	*BaseHandler
	service *stock_transfer.Service
}

// NewStockTransferHandler creates a stock transfer handler.
func NewStockTransferHandler(service *stock_transfer.Service) *StockTransferHandler {
	return &StockTransferHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Create handles POST /stock-transfers.
func (h *StockTransferHandler) Create(c *gin.Context) {
	var req dto.CreateStockTransferRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	transfer, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, transfer)
}

// AddItem handles POST /stock-transfers/:id/items.
func (h *StockTransferHandler) AddItem(c *gin.Context) {
	transferID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.StockTransferItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	transfer, err := h.service.AddItem(c.Request.Context(), transferID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, transfer)
}

// Complete handles POST /stock-transfers/:id/complete.
func (h *StockTransferHandler) Complete(c *gin.Context) {
	transferID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	transfer, err := h.service.Complete(c.Request.Context(), transferID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, transfer)
}

// Cancel handles POST /stock-transfers/:id/cancel.
func (h *StockTransferHandler) Cancel(c *gin.Context) {
	transferID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	transfer, err := h.service.Cancel(c.Request.Context(), transferID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, transfer)
}

// Get handles GET /stock-transfers/:id.
func (h *StockTransferHandler) Get(c *gin.Context) {
	transferID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	transfer, err := h.service.GetByID(c.Request.Context(), transferID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, transfer)
}

// List handles GET /stock-transfers.
func (h *StockTransferHandler) List(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}
	fromWarehouseID, ok := h.ParseIDQuery(c, "fromWarehouseId")
	if !ok {
		return
	}
	toWarehouseID, ok := h.ParseIDQuery(c, "toWarehouseId")
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

	filter := stock_transfer.Filter{
		StoreID:         storeID,
		FromWarehouseID: fromWarehouseID,
		ToWarehouseID:   toWarehouseID,
		FromDate:        from,
		ToDate:          to,
		Limit:           h.ParseIntQuery(c, "limit", 50),
		Offset:          h.ParseIntQuery(c, "offset", 0),
	}
	if status := c.Query("status"); status != "" {
		s := stock_transfer.Status(status)
		filter.Status = &s
	}

	transfers, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, transfers, len(transfers))
}
