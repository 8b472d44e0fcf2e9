package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/finance/invoice"
)

// InvoiceHandler serves invoice snapshots.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates an invoice handler.
func NewInvoiceHandler(service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
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

	filter := invoice.Filter{
		StoreID:    storeID,
		CustomerID: customerID,
		FromDate:   from,
		ToDate:     to,
		Limit:      h.ParseIntQuery(c, "limit", 50),
		Offset:     h.ParseIntQuery(c, "offset", 0),
	}

	invoices, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, invoices, len(invoices))
}
