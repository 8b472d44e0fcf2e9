package stock_entry

import (
	"context"
	"time"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/scope"
	"gestock/internal/core/tx"
	"gestock/internal/core/types"
	"gestock/internal/domain"
	"gestock/internal/domain/audit"
	"gestock/internal/domain/catalogs"
	"gestock/internal/domain/catalogs/account"
	"gestock/internal/domain/catalogs/product"
	"gestock/internal/domain/catalogs/store"
	"gestock/internal/domain/catalogs/supplier"
	"gestock/internal/domain/catalogs/warehouse"
	"gestock/internal/domain/finance/transaction"
	"gestock/internal/domain/registers/stock"
	"gestock/pkg/logger"
	"gestock/pkg/numerator"
)

// Service provides business logic for goods receipts.
//
// Create runs as one transaction: numbering, header and items, stock
// increases, the purchase ledger line and the audit entry land together
// or not at all.
type Service struct {
	repo       Repository
	stores     store.Repository
	warehouses warehouse.Repository
	suppliers  supplier.Repository
	products   product.Repository
	accounts   account.Repository
	stock      *stock.Service
	ledger     *transaction.Service
	txManager  tx.Manager
	sequences  domain.SequenceAllocator
	auditor    audit.Recorder
}

// NewService creates a new stock entry service.
func NewService(
	repo Repository,
	stores store.Repository,
	warehouses warehouse.Repository,
	suppliers supplier.Repository,
	products product.Repository,
	accounts account.Repository,
	stockSvc *stock.Service,
	ledger *transaction.Service,
	txManager tx.Manager,
	sequences domain.SequenceAllocator,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:       repo,
		stores:     stores,
		warehouses: warehouses,
		suppliers:  suppliers,
		products:   products,
		accounts:   accounts,
		stock:      stockSvc,
		ledger:     ledger,
		txManager:  txManager,
		sequences:  sequences,
		auditor:    auditor,
	}
}

// ItemInput is one received line of the creation payload.
type ItemInput struct {
	ProductID id.ID
	Quantity  int64

	// PurchasePrice overrides the product's default cost when set
	PurchasePrice *types.Money
}

// CreateInput is the goods receipt creation payload.
type CreateInput struct {
	StoreID     id.ID
	SupplierID  id.ID
	WarehouseID id.ID
	AccountID   *id.ID
	Notes       *string
	Date        *time.Time
	Items       []ItemInput
}

// Create records a goods receipt: inserts the document, increases stock
// for every item and, when the total is positive, spawns the purchase
// ledger line against the paying account.
func (s *Service) Create(ctx context.Context, in CreateInput) (*StockEntry, error) {
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

	e := NewStockEntry(storeID, sc.UserID, in.SupplierID, in.WarehouseID)
	e.AccountID = in.AccountID
	e.Notes = in.Notes
	if in.Date != nil {
		e.Date = *in.Date
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkReferences(ctx, e); err != nil {
			return err
		}

		for i, item := range in.Items {
			price, err := s.itemPrice(ctx, storeID, item, i+1)
			if err != nil {
				return err
			}
			e.AddItem(item.ProductID, item.Quantity, price)
		}

		if err := e.Validate(ctx); err != nil {
			return err
		}

		number, err := s.sequences.Next(ctx, numerator.ForStore("ENT", st.Code, storeID.String()))
		if err != nil {
			return err
		}
		e.Number = number

		if err := s.repo.Create(ctx, e); err != nil {
			return err
		}

		rec := stock.Recorder{StoreID: storeID, DocumentID: e.ID, DocumentType: DocumentType}
		for _, item := range e.Items {
			if err := s.stock.Increase(ctx, rec, item.ProductID, e.WarehouseID, item.Quantity); err != nil {
				return err
			}
		}

		if e.TotalAmount.IsPositive() {
			if err := s.spawnPurchase(ctx, sc.UserID, e); err != nil {
				return err
			}
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			storeID, sc.UserID, audit.ActionCreated, "stock_entry", e.ID,
			map[string]any{"number": e.Number, "total": e.TotalAmount.String(), "items": len(e.Items)},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock entry created",
		"entry_id", e.ID.String(), "number", e.Number, "total", e.TotalAmount.String())
	return e, nil
}

// AddItem appends a line to an existing receipt, increases stock and
// syncs the header total. When the receipt had no purchase ledger line
// yet and the total is now positive, the line is spawned here.
func (s *Service) AddItem(ctx context.Context, entryID id.ID, in ItemInput) (*StockEntry, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var e *StockEntry
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		e, err = s.repo.GetByIDForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if !sc.CanAccess(e.StoreID) {
			return apperror.NewNotFound("stock entry", entryID)
		}

		for _, existing := range e.Items {
			if existing.ProductID == in.ProductID {
				return apperror.NewDuplicate("stock entry item", "product", in.ProductID.String())
			}
		}

		price, err := s.itemPrice(ctx, e.StoreID, in, len(e.Items)+1)
		if err != nil {
			return err
		}

		item := e.AddItem(in.ProductID, in.Quantity, price)
		if err := e.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.AddItem(ctx, e, item); err != nil {
			return err
		}

		rec := stock.Recorder{StoreID: e.StoreID, DocumentID: e.ID, DocumentType: DocumentType}
		if err := s.stock.Increase(ctx, rec, item.ProductID, e.WarehouseID, item.Quantity); err != nil {
			return err
		}

		if e.TotalAmount.IsPositive() {
			exists, err := s.ledger.ExistsForSource(ctx, e.ID, transaction.TypePurchase)
			if err != nil {
				return err
			}
			if !exists {
				if err := s.spawnPurchase(ctx, sc.UserID, e); err != nil {
					return err
				}
			}
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			e.StoreID, sc.UserID, audit.ActionUpdated, "stock_entry", e.ID,
			map[string]any{
				"item_product_id": item.ProductID.String(),
				"item_quantity":   item.Quantity,
				"total":           e.TotalAmount.String(),
			},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock entry item added",
		"entry_id", e.ID.String(), "product_id", in.ProductID.String(), "total", e.TotalAmount.String())
	return e, nil
}

// GetByID returns a receipt visible to the caller.
func (s *Service) GetByID(ctx context.Context, entryID id.ID) (*StockEntry, error) {
	e, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, e.StoreID, "stock entry", entryID); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns receipts visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]StockEntry, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}

// checkReferences verifies the supplier and warehouse belong to the
// document's store and can serve it.
func (s *Service) checkReferences(ctx context.Context, e *StockEntry) error {
	sup, err := s.suppliers.GetByID(ctx, e.SupplierID)
	if err != nil {
		return err
	}
	if sup.StoreID != e.StoreID {
		return apperror.NewCrossStoreReference("supplier", sup.ID)
	}

	wh, err := s.warehouses.GetByID(ctx, e.WarehouseID)
	if err != nil {
		return err
	}
	if wh.StoreID != e.StoreID {
		return apperror.NewCrossStoreReference("warehouse", wh.ID)
	}
	if !wh.CanHoldStock() {
		return apperror.NewValidation("warehouse is not active").
			WithDetail("warehouse_id", wh.ID.String())
	}

	return nil
}

// itemPrice loads the line's product, checks its store and resolves the
// unit cost: the explicit price when given, the product default otherwise.
func (s *Service) itemPrice(ctx context.Context, storeID id.ID, in ItemInput, lineNo int) (types.Money, error) {
	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return types.Zero(), err
	}
	if p.StoreID != storeID {
		return types.Zero(), apperror.NewCrossStoreReference("product", p.ID)
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return types.Zero(), apperror.NewValidation("purchase price cannot be negative").
				WithDetail("line_no", lineNo)
		}
		return *in.PurchasePrice, nil
	}
	return p.PurchasePrice, nil
}

// spawnPurchase records the purchase ledger line for a receipt. The
// paying account is the explicit one, else the store default; with no
// account at all the line still lands, just without a balance effect.
func (s *Service) spawnPurchase(ctx context.Context, userID id.ID, e *StockEntry) error {
	accountID, err := s.resolveAccount(ctx, e.StoreID, e.AccountID)
	if err != nil {
		return err
	}

	t := transaction.New(e.StoreID, userID, transaction.TypePurchase, e.TotalAmount).
		WithSource(e.ID, DocumentType)
	t.FromAccountID = accountID
	t.SupplierID = &e.SupplierID
	t.Description = "Purchase " + e.Number

	return s.ledger.Record(ctx, t)
}

func (s *Service) resolveAccount(ctx context.Context, storeID id.ID, explicit *id.ID) (*id.ID, error) {
	if explicit != nil {
		acc, err := s.accounts.GetByID(ctx, *explicit)
		if err != nil {
			return nil, err
		}
		if acc.StoreID != storeID {
			return nil, apperror.NewCrossStoreReference("account", acc.ID)
		}
		return explicit, nil
	}

	acc, err := s.accounts.FindDefault(ctx, storeID)
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.Warn(ctx, "no payment account configured, recording without balance effect",
				"store_id", storeID.String())
			return nil, nil
		}
		return nil, err
	}
	return &acc.ID, nil
}
