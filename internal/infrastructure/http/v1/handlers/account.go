package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/catalogs/account"
	"gestock/internal/domain/finance/transaction"
	"gestock/internal/infrastructure/http/v1/dto"
)

// AccountHandler serves the Account catalog and account history.
type AccountHandler struct {
	*BaseHandler
	service *account.Service
	ledger  *transaction.Service
}

// NewAccountHandler creates an account handler.
func NewAccountHandler(service *account.Service, ledger *transaction.Service) *AccountHandler {
	return &AccountHandler{BaseHandler: NewBaseHandler(), service: service, ledger: ledger}
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), a)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, created)
}

// Update handles PUT /accounts/:id.
func (h *AccountHandler) Update(c *gin.Context) {
	accountID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(a)

	updated, err := h.service.Update(c.Request.Context(), a)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Get handles GET /accounts/:id.
func (h *AccountHandler) Get(c *gin.Context) {
	accountID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, a)
}

// List handles GET /accounts.
func (h *AccountHandler) List(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}

	filter := account.Filter{
		StoreID:    storeID,
		ActiveOnly: h.ParseBoolQuery(c, "activeOnly"),
	}
	if accType := c.Query("type"); accType != "" {
		t := account.Type(accType)
		filter.Type = &t
	}

	accounts, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, accounts, len(accounts))
}

// Transactions handles GET /accounts/:id/transactions.
func (h *AccountHandler) Transactions(c *gin.Context) {
	accountID, ok := h.ParseIDParam(c, "id")
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
		FromDate: from,
		ToDate:   to,
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}

	lines, err := h.ledger.ListByAccount(c.Request.Context(), accountID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, lines, len(lines))
}
