package stock_transfer

import (
	"context"
	"time"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/scope"
	"gestock/internal/core/tx"
	"gestock/internal/domain"
	"gestock/internal/domain/audit"
	"gestock/internal/domain/catalogs"
	"gestock/internal/domain/catalogs/product"
	"gestock/internal/domain/catalogs/store"
	"gestock/internal/domain/catalogs/warehouse"
	"gestock/internal/domain/registers/stock"
	"gestock/pkg/logger"
	"gestock/pkg/numerator"
)

// Service provides business logic for inter-warehouse transfers.
//
// Stock only moves on Complete, where every item is moved inside one
// transaction: the first short cell rolls the whole completion back and
// the transfer stays pending.
type Service struct {
	repo       Repository
	stores     store.Repository
	warehouses warehouse.Repository
	products   product.Repository
	stock      *stock.Service
	txManager  tx.Manager
	sequences  domain.SequenceAllocator
	auditor    audit.Recorder
}

// NewService creates a new stock transfer service.
func NewService(
	repo Repository,
	stores store.Repository,
	warehouses warehouse.Repository,
	products product.Repository,
	stockSvc *stock.Service,
	txManager tx.Manager,
	sequences domain.SequenceAllocator,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:       repo,
		stores:     stores,
		warehouses: warehouses,
		products:   products,
		stock:      stockSvc,
		txManager:  txManager,
		sequences:  sequences,
		auditor:    auditor,
	}
}

// ItemInput is one moved line of the creation payload.
type ItemInput struct {
	ProductID id.ID
	Quantity  int64
}

// CreateInput is the transfer creation payload.
type CreateInput struct {
	StoreID         id.ID
	FromWarehouseID id.ID
	ToWarehouseID   id.ID
	Notes           *string
	Date            *time.Time
	Items           []ItemInput
}

// Create records a pending transfer. Stock is untouched until Complete.
func (s *Service) Create(ctx context.Context, in CreateInput) (*StockTransfer, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	storeID, err := sc.ResolveStore(in.StoreID)
	if err != nil {
		return nil, err
	}

	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	t := NewStockTransfer(storeID, sc.UserID, in.FromWarehouseID, in.ToWarehouseID)
	t.Notes = in.Notes
	if in.Date != nil {
		t.Date = *in.Date
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkReferences(ctx, t); err != nil {
			return err
		}

		for _, item := range in.Items {
			if err := s.checkProduct(ctx, storeID, item.ProductID); err != nil {
				return err
			}
			if _, err := t.AddItem(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := t.Validate(ctx); err != nil {
			return err
		}

		number, err := s.sequences.Next(ctx, numerator.ForStore("TRF", st.Code, storeID.String()))
		if err != nil {
			return err
		}
		t.Number = number

		if err := s.repo.Create(ctx, t); err != nil {
			return err
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			storeID, sc.UserID, audit.ActionCreated, "stock_transfer", t.ID,
			map[string]any{"number": t.Number, "items": len(t.Items)},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock transfer created",
		"transfer_id", t.ID.String(), "number", t.Number, "items", len(t.Items))
	return t, nil
}

// AddItem appends a line to a pending transfer. Completed and cancelled
// transfers are frozen.
func (s *Service) AddItem(ctx context.Context, transferID id.ID, in ItemInput) (*StockTransfer, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var t *StockTransfer
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err = s.repo.GetByIDForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if !sc.CanAccess(t.StoreID) {
			return apperror.NewNotFound("stock transfer", transferID)
		}

		for _, existing := range t.Items {
			if existing.ProductID == in.ProductID {
				return apperror.NewDuplicate("stock transfer item", "product", in.ProductID.String())
			}
		}

		if err := s.checkProduct(ctx, t.StoreID, in.ProductID); err != nil {
			return err
		}

		item, err := t.AddItem(in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if err := t.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.AddItem(ctx, t, item); err != nil {
			return err
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			t.StoreID, sc.UserID, audit.ActionUpdated, "stock_transfer", t.ID,
			map[string]any{
				"item_product_id": item.ProductID.String(),
				"item_quantity":   item.Quantity,
			},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock transfer item added",
		"transfer_id", t.ID.String(), "product_id", in.ProductID.String())
	return t, nil
}

// Complete moves every item from the source to the destination
// warehouse and marks the transfer completed. All items move or none:
// a short source cell fails the whole completion.
func (s *Service) Complete(ctx context.Context, transferID id.ID) (*StockTransfer, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var t *StockTransfer
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err = s.repo.GetByIDForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if !sc.CanAccess(t.StoreID) {
			return apperror.NewNotFound("stock transfer", transferID)
		}

		if err := t.Complete(); err != nil {
			return err
		}

		rec := stock.Recorder{StoreID: t.StoreID, DocumentID: t.ID, DocumentType: DocumentType}
		for _, item := range t.Items {
			if err := s.stock.Move(ctx, rec, item.ProductID, t.FromWarehouseID, t.ToWarehouseID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateStatus(ctx, t); err != nil {
			return err
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			t.StoreID, sc.UserID, audit.ActionCompleted, "stock_transfer", t.ID,
			map[string]any{"number": t.Number, "items": len(t.Items)},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock transfer completed",
		"transfer_id", t.ID.String(), "number", t.Number)
	return t, nil
}

// Cancel abandons a pending transfer.
func (s *Service) Cancel(ctx context.Context, transferID id.ID) (*StockTransfer, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var t *StockTransfer
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err = s.repo.GetByIDForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if !sc.CanAccess(t.StoreID) {
			return apperror.NewNotFound("stock transfer", transferID)
		}

		if err := t.Cancel(); err != nil {
			return err
		}
		if err := s.repo.UpdateStatus(ctx, t); err != nil {
			return err
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			t.StoreID, sc.UserID, audit.ActionCancelled, "stock_transfer", t.ID,
			map[string]any{"number": t.Number},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock transfer cancelled",
		"transfer_id", t.ID.String(), "number", t.Number)
	return t, nil
}

// GetByID returns a transfer visible to the caller.
func (s *Service) GetByID(ctx context.Context, transferID id.ID) (*StockTransfer, error) {
	t, err := s.repo.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, t.StoreID, "stock transfer", transferID); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns transfers visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]StockTransfer, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}

// checkReferences verifies both warehouses belong to the document's
// store, differ, and can hold stock.
func (s *Service) checkReferences(ctx context.Context, t *StockTransfer) error {
	if t.FromWarehouseID == t.ToWarehouseID {
		return apperror.NewSameWarehouse(t.FromWarehouseID.String())
	}

	for _, warehouseID := range []id.ID{t.FromWarehouseID, t.ToWarehouseID} {
		wh, err := s.warehouses.GetByID(ctx, warehouseID)
		if err != nil {
			return err
		}
		if wh.StoreID != t.StoreID {
			return apperror.NewCrossStoreReference("warehouse", wh.ID)
		}
		if !wh.CanHoldStock() {
			return apperror.NewValidation("warehouse is not active").
				WithDetail("warehouse_id", wh.ID.String())
		}
	}

	return nil
}

func (s *Service) checkProduct(ctx context.Context, storeID, productID id.ID) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.StoreID != storeID {
		return apperror.NewCrossStoreReference("product", p.ID)
	}
	return nil
}
