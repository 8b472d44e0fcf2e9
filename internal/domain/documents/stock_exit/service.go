package stock_exit

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
	"gestock/internal/domain/catalogs/customer"
	"gestock/internal/domain/catalogs/product"
	"gestock/internal/domain/catalogs/store"
	"gestock/internal/domain/catalogs/warehouse"
	"gestock/internal/domain/finance/invoice"
	"gestock/internal/domain/finance/transaction"
	"gestock/internal/domain/registers/stock"
	"gestock/pkg/logger"
	"gestock/pkg/numerator"
)

// Service provides business logic for goods issues.
//
// Create runs as one transaction: numbering, header and items, stock
// decreases, the customer debt delta, the invoice, the sale ledger line
// and the audit entry land together or not at all. An insufficient
// stock cell fails the whole document.
type Service struct {
	repo       Repository
	stores     store.Repository
	warehouses warehouse.Repository
	customers  customer.Repository
	products   product.Repository
	accounts   account.Repository
	stock      *stock.Service
	invoices   *invoice.Service
	ledger     *transaction.Service
	txManager  tx.Manager
	sequences  domain.SequenceAllocator
	auditor    audit.Recorder
}

// NewService creates a new stock exit service.
func NewService(
	repo Repository,
	stores store.Repository,
	warehouses warehouse.Repository,
	customers customer.Repository,
	products product.Repository,
	accounts account.Repository,
	stockSvc *stock.Service,
	invoices *invoice.Service,
	ledger *transaction.Service,
	txManager tx.Manager,
	sequences domain.SequenceAllocator,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:       repo,
		stores:     stores,
		warehouses: warehouses,
		customers:  customers,
		products:   products,
		accounts:   accounts,
		stock:      stockSvc,
		invoices:   invoices,
		ledger:     ledger,
		txManager:  txManager,
		sequences:  sequences,
		auditor:    auditor,
	}
}

// ItemInput is one shipped line of the creation payload.
type ItemInput struct {
	ProductID id.ID
	Quantity  int64

	// SalePrice overrides the product's default price when set and
	// positive; zero falls back to the product default
	SalePrice *types.Money
}

// CreateInput is the goods issue creation payload.
type CreateInput struct {
	StoreID      id.ID
	WarehouseID  id.ID
	CustomerID   *id.ID
	CustomerName *string
	AccountID    *id.ID
	PaidAmount   *types.Money
	Notes        *string
	Date         *time.Time
	Items        []ItemInput
}

// Create records a goods issue: inserts the document, decreases stock
// for every item, folds the unpaid remainder into the customer's debt,
// snapshots the invoice and, when the total is positive, spawns the
// sale ledger line toward the receiving account.
func (s *Service) Create(ctx context.Context, in CreateInput) (*StockExit, error) {
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

	e := NewStockExit(storeID, sc.UserID, in.WarehouseID)
	e.CustomerID = in.CustomerID
	e.CustomerName = in.CustomerName
	e.AccountID = in.AccountID
	e.Notes = in.Notes
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.PaidAmount != nil {
		e.PaidAmount = types.RoundMoney(*in.PaidAmount)
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

		number, err := s.sequences.Next(ctx, numerator.ForStore("SOR", st.Code, storeID.String()))
		if err != nil {
			return err
		}
		e.Number = number

		if err := s.repo.Create(ctx, e); err != nil {
			return err
		}

		rec := stock.Recorder{StoreID: storeID, DocumentID: e.ID, DocumentType: DocumentType}
		for _, item := range e.Items {
			if err := s.stock.Decrease(ctx, rec, item.ProductID, e.WarehouseID, item.Quantity); err != nil {
				return err
			}
		}

		// A new exit starts from zero remaining, so the debt delta is
		// the whole remaining amount.
		if err := s.applyDebtDelta(ctx, e, e.RemainingAmount); err != nil {
			return err
		}

		if _, err := s.invoices.CreateForExit(ctx, storeID, st.Code, sc.UserID, e.ID, e.CustomerID, e.CustomerName, e.TotalAmount); err != nil {
			return err
		}

		if e.TotalAmount.IsPositive() {
			if err := s.spawnSale(ctx, sc.UserID, e); err != nil {
				return err
			}
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			storeID, sc.UserID, audit.ActionCreated, "stock_exit", e.ID,
			map[string]any{
				"number": e.Number,
				"total":  e.TotalAmount.String(),
				"paid":   e.PaidAmount.String(),
				"items":  len(e.Items),
			},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock exit created",
		"exit_id", e.ID.String(), "number", e.Number,
		"total", e.TotalAmount.String(), "status", string(e.PaymentStatus))
	return e, nil
}

// AddItem appends a line to an existing exit, decreases stock, syncs the
// header totals and shifts the customer's debt by the change in the
// remaining amount. When the exit had no sale ledger line yet and the
// total is now positive, the line is spawned here.
func (s *Service) AddItem(ctx context.Context, exitID id.ID, in ItemInput) (*StockExit, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var e *StockExit
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		e, err = s.repo.GetByIDForUpdate(ctx, exitID)
		if err != nil {
			return err
		}
		if !sc.CanAccess(e.StoreID) {
			return apperror.NewNotFound("stock exit", exitID)
		}

		for _, existing := range e.Items {
			if existing.ProductID == in.ProductID {
				return apperror.NewDuplicate("stock exit item", "product", in.ProductID.String())
			}
		}

		price, err := s.itemPrice(ctx, e.StoreID, in, len(e.Items)+1)
		if err != nil {
			return err
		}

		oldRemaining := e.RemainingAmount
		item := e.AddItem(in.ProductID, in.Quantity, price)
		if err := e.Validate(ctx); err != nil {
			return err
		}
		if err := s.repo.AddItem(ctx, e, item); err != nil {
			return err
		}

		rec := stock.Recorder{StoreID: e.StoreID, DocumentID: e.ID, DocumentType: DocumentType}
		if err := s.stock.Decrease(ctx, rec, item.ProductID, e.WarehouseID, item.Quantity); err != nil {
			return err
		}

		if err := s.applyDebtDelta(ctx, e, e.RemainingAmount.Sub(oldRemaining)); err != nil {
			return err
		}

		if e.TotalAmount.IsPositive() {
			exists, err := s.ledger.ExistsForSource(ctx, e.ID, transaction.TypeSale)
			if err != nil {
				return err
			}
			if !exists {
				if err := s.spawnSale(ctx, sc.UserID, e); err != nil {
					return err
				}
			}
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			e.StoreID, sc.UserID, audit.ActionUpdated, "stock_exit", e.ID,
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

	logger.Info(ctx, "stock exit item added",
		"exit_id", e.ID.String(), "product_id", in.ProductID.String(), "total", e.TotalAmount.String())
	return e, nil
}

// AddPayment records a payment against the exit and reduces the
// customer's debt by exactly the drop in the remaining amount. The
// payment changes no account balance; settling money into an account is
// the debt-payment ledger operation.
func (s *Service) AddPayment(ctx context.Context, exitID id.ID, amount types.Money) (*StockExit, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var e *StockExit
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		e, err = s.repo.GetByIDForUpdate(ctx, exitID)
		if err != nil {
			return err
		}
		if !sc.CanAccess(e.StoreID) {
			return apperror.NewNotFound("stock exit", exitID)
		}

		oldRemaining := e.RemainingAmount
		if err := e.AddPayment(amount); err != nil {
			return err
		}
		if err := s.repo.UpdatePayment(ctx, e); err != nil {
			return err
		}

		if err := s.applyDebtDelta(ctx, e, e.RemainingAmount.Sub(oldRemaining)); err != nil {
			return err
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			e.StoreID, sc.UserID, audit.ActionPaymentAdded, "stock_exit", e.ID,
			map[string]any{
				"amount":    amount.String(),
				"paid":      e.PaidAmount.String(),
				"remaining": e.RemainingAmount.String(),
				"status":    string(e.PaymentStatus),
			},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock exit payment added",
		"exit_id", e.ID.String(), "amount", amount.String(),
		"remaining", e.RemainingAmount.String(), "status", string(e.PaymentStatus))
	return e, nil
}

// GetByID returns an exit visible to the caller.
func (s *Service) GetByID(ctx context.Context, exitID id.ID) (*StockExit, error) {
	e, err := s.repo.GetByID(ctx, exitID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, e.StoreID, "stock exit", exitID); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns exits visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]StockExit, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}

// ListUnpaidByCustomer returns the customer's exits still carrying a
// remaining amount.
func (s *Service) ListUnpaidByCustomer(ctx context.Context, customerID id.ID) ([]StockExit, error) {
	cust, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, cust.StoreID, "customer", customerID); err != nil {
		return nil, err
	}
	return s.repo.ListUnpaidByCustomer(ctx, customerID)
}

// checkReferences verifies the warehouse and optional customer belong to
// the document's store.
func (s *Service) checkReferences(ctx context.Context, e *StockExit) error {
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

	if e.CustomerID != nil {
		cust, err := s.customers.GetByID(ctx, *e.CustomerID)
		if err != nil {
			return err
		}
		if cust.StoreID != e.StoreID {
			return apperror.NewCrossStoreReference("customer", cust.ID)
		}
	}

	return nil
}

// itemPrice loads the line's product, checks its store and resolves the
// unit price: the explicit positive price when given, the product
// default otherwise.
func (s *Service) itemPrice(ctx context.Context, storeID id.ID, in ItemInput, lineNo int) (types.Money, error) {
	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return types.Zero(), err
	}
	if p.StoreID != storeID {
		return types.Zero(), apperror.NewCrossStoreReference("product", p.ID)
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return types.Zero(), apperror.NewValidation("sale price cannot be negative").
				WithDetail("line_no", lineNo)
		}
		if in.SalePrice.IsPositive() {
			return *in.SalePrice, nil
		}
	}
	return p.SalePrice, nil
}

// applyDebtDelta shifts the registered customer's debt by delta, which
// may be negative. Walk-in exits carry no debt.
func (s *Service) applyDebtDelta(ctx context.Context, e *StockExit, delta types.Money) error {
	if e.CustomerID == nil || delta.IsZero() {
		return nil
	}

	cust, err := s.customers.GetByIDForUpdate(ctx, *e.CustomerID)
	if err != nil {
		return err
	}
	cust.AdjustDebt(delta)
	return s.customers.SetDebt(ctx, cust.ID, cust.Debt)
}

// spawnSale records the sale ledger line for an exit. The receiving
// account is the explicit one, else the store default; with no account
// at all the line still lands, just without a balance effect.
func (s *Service) spawnSale(ctx context.Context, userID id.ID, e *StockExit) error {
	accountID, err := s.resolveAccount(ctx, e.StoreID, e.AccountID)
	if err != nil {
		return err
	}

	t := transaction.New(e.StoreID, userID, transaction.TypeSale, e.TotalAmount).
		WithSource(e.ID, DocumentType)
	t.ToAccountID = accountID
	t.CustomerID = e.CustomerID
	t.Description = "Sale " + e.Number

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
			logger.Warn(ctx, "no receiving account configured, recording without balance effect",
				"store_id", storeID.String())
			return nil, nil
		}
		return nil, err
	}
	return &acc.ID, nil
}
