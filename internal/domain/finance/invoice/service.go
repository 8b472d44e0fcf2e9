package invoice

import (
	"context"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/types"
	"gestock/internal/domain"
	"gestock/internal/domain/catalogs"
	"gestock/pkg/numerator"
)

// Service provides business logic for invoices.
type Service struct {
	repo      Repository
	sequences domain.SequenceAllocator
}

// NewService creates a new Invoice service.
func NewService(repo Repository, sequences domain.SequenceAllocator) *Service {
	return &Service{repo: repo, sequences: sequences}
}

// CreateForExit numerates and inserts the invoice for a stock exit.
// It must run inside the exit's transaction; the once-per-exit guard is
// the unique constraint on stock_exit_id plus the prior-existence check.
func (s *Service) CreateForExit(ctx context.Context, storeID id.ID, storeCode string, createdBy, stockExitID id.ID, customerID *id.ID, customerName *string, total types.Money) (*Invoice, error) {
	if existing, err := s.repo.GetByStockExit(ctx, stockExitID); err == nil && existing != nil {
		return nil, apperror.NewConflict("stock exit already has an invoice").
			WithDetail("stock_exit_id", stockExitID.String()).
			WithDetail("invoice_id", existing.ID.String())
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	inv := New(storeID, createdBy, stockExitID, customerID, customerName, total)

	number, err := s.sequences.Next(ctx, numerator.ForStore("FAC", storeCode, storeID.String()))
	if err != nil {
		return nil, err
	}
	inv.Number = number

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByID returns an invoice visible to the caller.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, inv.StoreID, "invoice", invoiceID); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetByStockExit returns the invoice of an exit, if any.
func (s *Service) GetByStockExit(ctx context.Context, stockExitID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByStockExit(ctx, stockExitID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, inv.StoreID, "invoice", inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// List returns invoices visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]Invoice, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}
