package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/finance/transaction"
	"gestock/internal/infrastructure/http/v1/dto"
)

// TransactionHandler serves the financial transaction ledger.
type TransactionHandler struct {
	*BaseHandler
	service *transaction.Service
}

// NewTransactionHandler creates a transaction handler.
func NewTransactionHandler(service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Create handles POST /transactions.
// Only manual types pass; document-driven lines come from their documents.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	line, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, line)
}

// Get handles GET /transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	transactionID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	line, err := h.service.GetByID(c.Request.Context(), transactionID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, line)
}

// List handles GET /transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}
	accountID, ok := h.ParseIDQuery(c, "accountId")
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

	filter := transaction.Filter{
		StoreID:    storeID,
		AccountID:  accountID,
		CustomerID: customerID,
		FromDate:   from,
		ToDate:     to,
		Limit:      h.ParseIntQuery(c, "limit", 50),
		Offset:     h.ParseIntQuery(c, "offset", 0),
	}
	if txType := c.Query("type"); txType != "" {
		t := transaction.Type(txType)
		filter.Type = &t
	}

	lines, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, lines, len(lines))
}
