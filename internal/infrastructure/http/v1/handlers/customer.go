package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/catalogs/customer"
	"gestock/internal/domain/documents/stock_exit"
	"gestock/internal/domain/finance/transaction"
	"gestock/internal/infrastructure/http/v1/dto"
)

// CustomerHandler serves the Customer catalog, debt payments and the
// customer's unpaid exits.
type CustomerHandler struct {
	*BaseHandler
	service *customer.Service
	exits   *stock_exit.Service
	ledger  *transaction.Service
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(service *customer.Service, exits *stock_exit.Service, ledger *transaction.Service) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		exits:       exits,
		ledger:      ledger,
	}
}

// Create handles POST /customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), cust)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, created)
}

// Update handles PUT /customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(cust)

	updated, err := h.service.Update(c.Request.Context(), cust)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cust, err := h.service.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, cust)
}

// List handles GET /customers.
func (h *CustomerHandler) List(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}

	filter := customer.Filter{
		StoreID:    storeID,
		ActiveOnly: h.ParseBoolQuery(c, "activeOnly"),
		WithDebt:   h.ParseBoolQuery(c, "withDebt"),
		Search:     c.Query("search"),
	}

	customers, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, customers, len(customers))
}

// PayDebt handles POST /customers/:id/debt-payments.
func (h *CustomerHandler) PayDebt(c *gin.Context) {
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PayDebtRequest
	if !h.BindJSON(c, &req) {
		return
	}

	accountID, err := dto.ParseID("accountId", req.AccountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	line, err := h.ledger.PayCustomerDebt(c.Request.Context(), customerID, accountID, req.Amount, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, line)
}

// UnpaidExits handles GET /customers/:id/unpaid-exits.
func (h *CustomerHandler) UnpaidExits(c *gin.Context) {
	customerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	exits, err := h.exits.ListUnpaidByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, exits, len(exits))
}
