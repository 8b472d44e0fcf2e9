package transaction

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
	"gestock/pkg/logger"
	"gestock/pkg/numerator"
)

// Service provides business logic for the transaction ledger.
type Service struct {
	repo      Repository
	accounts  account.Repository
	customers customer.Repository
	txManager tx.Manager
	sequences domain.SequenceAllocator
	auditor   audit.Recorder
}

// NewService creates a new transaction service.
func NewService(
	repo Repository,
	accounts account.Repository,
	customers customer.Repository,
	txManager tx.Manager,
	sequences domain.SequenceAllocator,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		accounts:  accounts,
		customers: customers,
		txManager: txManager,
		sequences: sequences,
		auditor:   auditor,
	}
}

// CreateInput is the manual creation payload.
type CreateInput struct {
	Type          Type
	StoreID       id.ID
	Amount        types.Money
	FromAccountID *id.ID
	ToAccountID   *id.ID
	Description   string
	Notes         *string
	Date          *time.Time
}

// Create records a manual transaction: service, expense, transfer or
// adjustment. Document-driven types (purchase, sale, debt_payment) are
// rejected here; they only ever come from their source operations.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Transaction, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !in.Type.IsManual() {
		return nil, apperror.NewValidation("transaction type is created by its source document").
			WithDetail("type", string(in.Type))
	}

	storeID, err := sc.ResolveStore(in.StoreID)
	if err != nil {
		return nil, err
	}

	t := New(storeID, sc.UserID, in.Type, in.Amount)
	t.FromAccountID = in.FromAccountID
	t.ToAccountID = in.ToAccountID
	t.Description = in.Description
	t.Notes = in.Notes
	if in.Date != nil {
		t.Date = *in.Date
	}

	if err := t.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.Record(ctx, t); err != nil {
			return err
		}
		return s.auditor.Record(ctx, audit.NewEntry(
			storeID, sc.UserID, audit.ActionCreated, "transaction", t.ID,
			map[string]any{"type": t.Type, "amount": t.Amount.String(), "number": t.Number},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transaction recorded",
		"transaction_id", t.ID.String(), "number", t.Number, "type", string(t.Type))
	return t, nil
}

// PayCustomerDebt reduces a customer's debt and credits the receiving
// account, recording a debt_payment line. One transaction covers the
// debt change, the balance change and the ledger line.
func (s *Service) PayCustomerDebt(ctx context.Context, customerID, accountID id.ID, amount types.Money, notes *string) (*Transaction, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var t *Transaction
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cust, err := s.customers.GetByIDForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		if !sc.CanAccess(cust.StoreID) {
			return apperror.NewNotFound("customer", customerID)
		}

		if err := cust.PayDebt(amount); err != nil {
			return err
		}
		if err := s.customers.SetDebt(ctx, cust.ID, cust.Debt); err != nil {
			return err
		}

		t = New(cust.StoreID, sc.UserID, TypeDebtPayment, amount)
		t.ToAccountID = &accountID
		t.CustomerID = &customerID
		t.Description = "Customer debt payment: " + cust.Name
		t.Notes = notes

		if err := t.Validate(ctx); err != nil {
			return err
		}
		if err := s.Record(ctx, t); err != nil {
			return err
		}

		return s.auditor.Record(ctx, audit.NewEntry(
			cust.StoreID, sc.UserID, audit.ActionDebtPaid, "customer", customerID,
			map[string]any{"amount": amount.String(), "debt_after": cust.Debt.String(), "number": t.Number},
		))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "customer debt paid",
		"customer_id", customerID.String(), "amount", amount.String(), "number", t.Number)
	return t, nil
}

// Record numerates t, applies its balance effects and appends it to the
// ledger. It must run inside an open transaction: document services call
// it so their stock, debt and ledger writes land or roll back together.
func (s *Service) Record(ctx context.Context, t *Transaction) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}

	number, err := s.sequences.Next(ctx, numerator.ForDay("TRX", t.Date))
	if err != nil {
		return err
	}
	t.Number = number

	if err := s.apply(ctx, t); err != nil {
		return err
	}

	return s.repo.Create(ctx, t)
}

// ExistsForSource reports whether a document already spawned a ledger
// line of the given type. Document services use it to spawn purchase and
// sale lines at most once, even when items arrive after creation.
func (s *Service) ExistsForSource(ctx context.Context, sourceDocumentID id.ID, txType Type) (bool, error) {
	return s.repo.ExistsForSource(ctx, sourceDocumentID, txType)
}

// apply moves the balances. The debit side is checked first so an
// uncovered withdrawal fails before any credit lands.
func (s *Service) apply(ctx context.Context, t *Transaction) error {
	if t.FromAccountID != nil {
		acc, err := s.accounts.GetByIDForUpdate(ctx, *t.FromAccountID)
		if err != nil {
			return err
		}
		if acc.StoreID != t.StoreID {
			return apperror.NewCrossStoreReference("account", acc.ID)
		}
		if err := acc.Debit(t.Amount); err != nil {
			return err
		}
		if err := s.accounts.SetBalance(ctx, acc.ID, acc.Balance); err != nil {
			return err
		}
	}

	if t.ToAccountID != nil {
		acc, err := s.accounts.GetByIDForUpdate(ctx, *t.ToAccountID)
		if err != nil {
			return err
		}
		if acc.StoreID != t.StoreID {
			return apperror.NewCrossStoreReference("account", acc.ID)
		}
		if err := acc.Credit(t.Amount); err != nil {
			return err
		}
		if err := s.accounts.SetBalance(ctx, acc.ID, acc.Balance); err != nil {
			return err
		}
	}

	return nil
}

// GetByID returns a ledger line visible to the caller.
func (s *Service) GetByID(ctx context.Context, transactionID id.ID) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, t.StoreID, "transaction", transactionID); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns ledger lines visible to the caller.
func (s *Service) List(ctx context.Context, f Filter) ([]Transaction, error) {
	storeID, err := catalogs.StoreFilter(ctx, f.StoreID)
	if err != nil {
		return nil, err
	}
	f.StoreID = storeID
	return s.repo.List(ctx, f)
}

// ListByAccount returns the ledger history of one account.
func (s *Service) ListByAccount(ctx context.Context, accountID id.ID, f Filter) ([]Transaction, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := catalogs.CheckAccess(ctx, acc.StoreID, "account", accountID); err != nil {
		return nil, err
	}
	f.AccountID = &accountID
	f.StoreID = &acc.StoreID
	return s.repo.List(ctx, f)
}
