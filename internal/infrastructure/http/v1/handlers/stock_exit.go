package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/documents/stock_exit"
	"gestock/internal/domain/finance/invoice"
	"gestock/internal/infrastructure/http/v1/dto"
)

// StockExitHandler serves goods issue documents, their payments and
// their invoices.
type StockExitHandler struct {
	*BaseHandler
	service  *stock_exit.Service
	invoices *invoice.Service
}

// NewStockExitHandler creates a stock exit handler.
func NewStockExitHandler(service *stock_exit.Service, invoices *invoice.Service) *StockExitHandler {
	return &StockExitHandler{BaseHandler: NewBaseHandler(), service: service, invoices: invoices}
}

// Create handles POST /stock-exits.
func (h *StockExitHandler) Create(c *gin.Context) {
	var req dto.CreateStockExitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	exit, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, exit)
}

// AddItem handles POST /stock-exits/:id/items.
func (h *StockExitHandler) AddItem(c *gin.Context) {
	exitID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.StockExitItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	exit, err := h.service.AddItem(c.Request.Context(), exitID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, exit)
}

// AddPayment handles POST /stock-exits/:id/payments.
func (h *StockExitHandler) AddPayment(c *gin.Context) {
	exitID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	exit, err := h.service.AddPayment(c.Request.Context(), exitID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, exit)
}

// Get handles GET /stock-exits/:id.
func (h *StockExitHandler) Get(c *gin.Context) {
	exitID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	exit, err := h.service.GetByID(c.Request.Context(), exitID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, exit)
}

// Invoice handles GET /stock-exits/:id/invoice.
func (h *StockExitHandler) Invoice(c *gin.Context) {
	exitID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	// Visibility is enforced by the exit read.
	if _, err := h.service.GetByID(c.Request.Context(), exitID); err != nil {
		h.Error(c, err)
		return
	}

	inv, err := h.invoices.GetByStockExit(c.Request.Context(), exitID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// List handles GET /stock-exits.
func (h *StockExitHandler) List(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}
	warehouseID, ok := h.ParseIDQuery(c, "warehouseId")
	if !ok {
		return
	}
	customerID, ok := h.ParseIDQuery(c, "customerId")
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

	filter := stock_exit.Filter{
		StoreID:     storeID,
		WarehouseID: warehouseID,
		CustomerID:  customerID,
		FromDate:    from,
		ToDate:      to,
		Limit:       h.ParseIntQuery(c, "limit", 50),
		Offset:      h.ParseIntQuery(c, "offset", 0),
	}
	if status := c.Query("paymentStatus"); status != "" {
		s := stock_exit.PaymentStatus(status)
		filter.PaymentStatus = &s
	}

	exits, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, exits, len(exits))
}
