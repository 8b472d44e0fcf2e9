package reports

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/tx"
	"gestock/internal/domain/catalogs"
)

// Service provides report generation.
type Service struct {
	repo     Repository
	readOnly tx.ReadOnlyManager
}

// NewService creates a new reports service.
func NewService(repo Repository, readOnly tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, readOnly: readOnly}
}

// GetStockLevels reports the stock register joined with product and
// warehouse names.
func (s *Service) GetStockLevels(ctx context.Context, filter StockLevelsFilter) (*StockLevelsReport, error) {
	storeID, err := catalogs.StoreFilter(ctx, filter.StoreID)
	if err != nil {
		return nil, err
	}
	filter.StoreID = storeID

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	var report *StockLevelsReport
	err = s.readOnly.ReadOnly(ctx, func(ctx context.Context) error {
		report, err = s.repo.GetStockLevels(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GetLowStock lists products needing replenishment.
func (s *Service) GetLowStock(ctx context.Context, requestedStore *id.ID) ([]LowStockItem, error) {
	storeID, err := catalogs.StoreFilter(ctx, requestedStore)
	if err != nil {
		return nil, err
	}

	var items []LowStockItem
	err = s.readOnly.ReadOnly(ctx, func(ctx context.Context) error {
		items, err = s.repo.GetLowStock(ctx, storeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetCustomerDebts reports customers with outstanding debt.
func (s *Service) GetCustomerDebts(ctx context.Context, filter CustomerDebtFilter) (*CustomerDebtReport, error) {
	storeID, err := catalogs.StoreFilter(ctx, filter.StoreID)
	if err != nil {
		return nil, err
	}
	filter.StoreID = storeID

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	var report *CustomerDebtReport
	err = s.readOnly.ReadOnly(ctx, func(ctx context.Context) error {
		report, err = s.repo.GetCustomerDebts(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GetSalesSummary aggregates the exits of a period.
func (s *Service) GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummary, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, apperror.NewValidation("fromDate and toDate are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}

	storeID, err := catalogs.StoreFilter(ctx, filter.StoreID)
	if err != nil {
		return nil, err
	}
	filter.StoreID = storeID

	var summary *SalesSummary
	err = s.readOnly.ReadOnly(ctx, func(ctx context.Context) error {
		summary, err = s.repo.GetSalesSummary(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	if summary != nil {
		summary.FromDate = filter.FromDate
		summary.ToDate = filter.ToDate
	}
	return summary, nil
}
