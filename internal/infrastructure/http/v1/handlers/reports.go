package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"gestock/internal/core/apperror"
	"gestock/internal/core/types"
	"gestock/internal/domain/reports"
)

// ReportsHandler serves read-only reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: NewBaseHandler(), service: service}
}

// StockLevels handles GET /reports/stock.
func (h *ReportsHandler) StockLevels(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}
	warehouseID, ok := h.ParseIDQuery(c, "warehouseId")
	if !ok {
		return
	}
	productID, ok := h.ParseIDQuery(c, "productId")
	if !ok {
		return
	}

	filter := reports.StockLevelsFilter{
		StoreID:     storeID,
		WarehouseID: warehouseID,
		ProductID:   productID,
		ExcludeZero: h.ParseBoolQuery(c, "excludeZero"),
		Limit:       h.ParseIntQuery(c, "limit", 50),
		Offset:      h.ParseIntQuery(c, "offset", 0),
	}

	report, err := h.service.GetStockLevels(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// LowStock handles GET /reports/low-stock.
func (h *ReportsHandler) LowStock(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}

	items, err := h.service.GetLowStock(c.Request.Context(), storeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, items, len(items))
}

// CustomerDebts handles GET /reports/customer-debts.
func (h *ReportsHandler) CustomerDebts(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}

	filter := reports.CustomerDebtFilter{
		StoreID: storeID,
		Limit:   h.ParseIntQuery(c, "limit", 50),
		Offset:  h.ParseIntQuery(c, "offset", 0),
	}
	if minDebt := c.Query("minDebt"); minDebt != "" {
		m, err := types.NewMoneyFromString(minDebt)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid amount").
				WithDetail("param", "minDebt").
				WithDetail("value", minDebt))
			return
		}
		filter.MinDebt = &m
	}

	report, err := h.service.GetCustomerDebts(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// SalesSummary handles GET /reports/sales-summary.
// Defaults to the last 30 days when no period is given.
func (h *ReportsHandler) SalesSummary(c *gin.Context) {
	storeID, ok := h.ParseIDQuery(c, "storeId")
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

	now := time.Now().UTC()
	filter := reports.SalesSummaryFilter{
		StoreID:  storeID,
		FromDate: now.AddDate(0, 0, -30),
		ToDate:   now,
	}
	if from != nil {
		filter.FromDate = *from
	}
	if to != nil {
		filter.ToDate = *to
	}

	summary, err := h.service.GetSalesSummary(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, summary)
}
