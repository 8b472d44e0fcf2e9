package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/catalogs/warehouse"
	"gestock/internal/domain/registers/stock"
)

// StockHandler serves stock level queries on the register.
type StockHandler struct {
	*BaseHandler
	stock      *stock.Service
	warehouses *warehouse.Service
}

// NewStockHandler creates a stock register handler.
func NewStockHandler(stockSvc *stock.Service, warehouses *warehouse.Service) *StockHandler {
	return &StockHandler{BaseHandler: NewBaseHandler(), stock: stockSvc, warehouses: warehouses}
}

// WarehouseLevels handles GET /warehouses/:id/stock.
// The warehouse read enforces store visibility before the register is
// touched; register rows do not carry a store reference themselves.
func (h *StockHandler) WarehouseLevels(c *gin.Context) {
	warehouseID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.warehouses.GetByID(c.Request.Context(), warehouseID); err != nil {
		h.Error(c, err)
		return
	}

	filter := stock.LevelFilter{
		ExcludeZero: h.ParseBoolQuery(c, "excludeZero"),
	}

	levels, err := h.stock.GetLevelsByWarehouse(c.Request.Context(), warehouseID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, levels, len(levels))
}
