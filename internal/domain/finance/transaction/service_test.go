package transaction

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/scope"
	"gestock/internal/core/types"
	"gestock/internal/domain/audit"
	"gestock/internal/domain/catalogs/account"
	"gestock/internal/domain/catalogs/customer"
	"gestock/pkg/numerator"
)

// --- mocks ---

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockSequences struct{ n int64 }

func (m *mockSequences) Next(ctx context.Context, seq numerator.Sequence) (string, error) {
	m.n++
	return fmt.Sprintf("%s-%s-%04d", seq.Prefix, seq.Label, m.n), nil
}

type mockAuditor struct{ entries []audit.Entry }

func (m *mockAuditor) Record(ctx context.Context, e audit.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

type mockRepo struct {
	created []Transaction
}

func (m *mockRepo) Create(ctx context.Context, t *Transaction) error {
	m.created = append(m.created, *t)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, transactionID id.ID) (*Transaction, error) {
	for i := range m.created {
		if m.created[i].ID == transactionID {
			return &m.created[i], nil
		}
	}
	return nil, apperror.NewNotFound("transaction", transactionID)
}

func (m *mockRepo) List(ctx context.Context, f Filter) ([]Transaction, error) {
	return m.created, nil
}

func (m *mockRepo) ExistsForSource(ctx context.Context, sourceDocumentID id.ID, txType Type) (bool, error) {
	for _, t := range m.created {
		if t.SourceDocumentID != nil && *t.SourceDocumentID == sourceDocumentID && t.Type == txType {
			return true, nil
		}
	}
	return false, nil
}

type mockAccountRepo struct {
	accounts map[id.ID]*account.Account
}

func (m *mockAccountRepo) Create(ctx context.Context, a *account.Account) error { return nil }
func (m *mockAccountRepo) Update(ctx context.Context, a *account.Account) error { return nil }

func (m *mockAccountRepo) GetByID(ctx context.Context, accountID id.ID) (*account.Account, error) {
	if a, ok := m.accounts[accountID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperror.NewNotFound("account", accountID)
}

func (m *mockAccountRepo) GetByIDForUpdate(ctx context.Context, accountID id.ID) (*account.Account, error) {
	return m.GetByID(ctx, accountID)
}

func (m *mockAccountRepo) SetBalance(ctx context.Context, accountID id.ID, balance types.Money) error {
	m.accounts[accountID].Balance = balance
	return nil
}

func (m *mockAccountRepo) GetByName(ctx context.Context, storeID id.ID, name string) (*account.Account, error) {
	for _, a := range m.accounts {
		if a.StoreID == storeID && a.Name == name {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("account", name)
}

func (m *mockAccountRepo) FindDefault(ctx context.Context, storeID id.ID) (*account.Account, error) {
	return nil, apperror.NewNotFound("account", storeID)
}

func (m *mockAccountRepo) List(ctx context.Context, f account.Filter) ([]account.Account, error) {
	return nil, nil
}

type mockCustomerRepo struct {
	customers map[id.ID]*customer.Customer
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *customer.Customer) error { return nil }
func (m *mockCustomerRepo) Update(ctx context.Context, c *customer.Customer) error { return nil }

func (m *mockCustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	if c, ok := m.customers[customerID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperror.NewNotFound("customer", customerID)
}

func (m *mockCustomerRepo) GetByIDForUpdate(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	return m.GetByID(ctx, customerID)
}

func (m *mockCustomerRepo) SetDebt(ctx context.Context, customerID id.ID, debt types.Money) error {
	m.customers[customerID].Debt = debt
	return nil
}

func (m *mockCustomerRepo) List(ctx context.Context, f customer.Filter) ([]customer.Customer, error) {
	return nil, nil
}

// --- fixtures ---

type fixture struct {
	svc       *Service
	repo      *mockRepo
	accounts  *mockAccountRepo
	customers *mockCustomerRepo
	auditor   *mockAuditor
	storeID   id.ID
	userID    id.ID
	ctx       context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	storeID := id.New()
	userID := id.New()
	repo := &mockRepo{}
	accounts := &mockAccountRepo{accounts: make(map[id.ID]*account.Account)}
	customers := &mockCustomerRepo{customers: make(map[id.ID]*customer.Customer)}
	auditor := &mockAuditor{}

	svc := NewService(repo, accounts, customers, &mockTxManager{}, &mockSequences{}, auditor)
	ctx := scope.WithScope(context.Background(), scope.ForStore(userID, "clerk", storeID))

	return &fixture{
		svc: svc, repo: repo, accounts: accounts, customers: customers,
		auditor: auditor, storeID: storeID, userID: userID, ctx: ctx,
	}
}

func (f *fixture) addAccount(balance string) *account.Account {
	a := account.NewAccount(f.storeID, "Till", account.TypeCash)
	a.Balance = types.MustMoney(balance)
	f.accounts.accounts[a.ID] = a
	return a
}

func (f *fixture) addCustomer(debt string) *customer.Customer {
	c := customer.NewCustomer(f.storeID, "ACME")
	c.Debt = types.MustMoney(debt)
	f.customers.customers[c.ID] = c
	return c
}

// --- tests ---

func TestCreate_Expense(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount("100")

	got, err := f.svc.Create(f.ctx, CreateInput{
		Type:          TypeExpense,
		Amount:        types.MustMoney("30"),
		FromAccountID: &acc.ID,
		Description:   "Rent",
	})
	require.NoError(t, err)

	assert.Equal(t, TypeExpense, got.Type)
	assert.NotEmpty(t, got.Number)
	assert.True(t, f.accounts.accounts[acc.ID].Balance.Equal(types.MustMoney("70.00")))
	require.Len(t, f.repo.created, 1)
	require.Len(t, f.auditor.entries, 1)
	assert.Equal(t, audit.ActionCreated, f.auditor.entries[0].Action)
}

func TestCreate_ServiceContribution(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount("100")

	got, err := f.svc.Create(f.ctx, CreateInput{
		Type:        TypeService,
		Amount:      types.MustMoney("15000"),
		ToAccountID: &acc.ID,
		Description: "Prestation de service",
	})
	require.NoError(t, err)

	// A service line credits the receiving account.
	assert.Equal(t, TypeService, got.Type)
	assert.True(t, f.accounts.accounts[acc.ID].Balance.Equal(types.MustMoney("15100.00")))
	require.Len(t, f.repo.created, 1)
}

func TestCreate_ServiceRequiresToAccount(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount("100")

	_, err := f.svc.Create(f.ctx, CreateInput{
		Type:          TypeService,
		Amount:        types.MustMoney("10"),
		FromAccountID: &acc.ID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Empty(t, f.repo.created)
}

func TestCreate_Expense_InsufficientFunds(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount("10")

	_, err := f.svc.Create(f.ctx, CreateInput{
		Type:          TypeExpense,
		Amount:        types.MustMoney("30"),
		FromAccountID: &acc.ID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientFunds))

	// Nothing recorded, balance untouched.
	assert.Empty(t, f.repo.created)
	assert.True(t, f.accounts.accounts[acc.ID].Balance.Equal(types.MustMoney("10")))
}

func TestCreate_Transfer(t *testing.T) {
	f := newFixture(t)
	from := f.addAccount("100")
	to := f.addAccount("5")

	_, err := f.svc.Create(f.ctx, CreateInput{
		Type:          TypeTransfer,
		Amount:        types.MustMoney("40"),
		FromAccountID: &from.ID,
		ToAccountID:   &to.ID,
	})
	require.NoError(t, err)

	assert.True(t, f.accounts.accounts[from.ID].Balance.Equal(types.MustMoney("60.00")))
	assert.True(t, f.accounts.accounts[to.ID].Balance.Equal(types.MustMoney("45.00")))
}

func TestCreate_Transfer_SameAccount(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount("100")

	_, err := f.svc.Create(f.ctx, CreateInput{
		Type:          TypeTransfer,
		Amount:        types.MustMoney("40"),
		FromAccountID: &acc.ID,
		ToAccountID:   &acc.ID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCreate_RejectsDocumentDrivenTypes(t *testing.T) {
	f := newFixture(t)
	for _, tt := range []Type{TypePurchase, TypeSale, TypeDebtPayment} {
		_, err := f.svc.Create(f.ctx, CreateInput{Type: tt, Amount: types.MustMoney("10")})
		require.Error(t, err, string(tt))
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	}
}

func TestCreate_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount("100")

	_, err := f.svc.Create(f.ctx, CreateInput{
		Type:          TypeExpense,
		Amount:        types.Zero(),
		FromAccountID: &acc.ID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCreate_CrossStoreAccount(t *testing.T) {
	f := newFixture(t)
	foreign := account.NewAccount(id.New(), "Other", account.TypeCash)
	foreign.Balance = types.MustMoney("500")
	f.accounts.accounts[foreign.ID] = foreign

	_, err := f.svc.Create(f.ctx, CreateInput{
		Type:          TypeExpense,
		Amount:        types.MustMoney("10"),
		FromAccountID: &foreign.ID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeCrossStoreReference))
}

func TestPayCustomerDebt(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount("0")
	cust := f.addCustomer("80")

	got, err := f.svc.PayCustomerDebt(f.ctx, cust.ID, acc.ID, types.MustMoney("50"), nil)
	require.NoError(t, err)

	assert.Equal(t, TypeDebtPayment, got.Type)
	assert.True(t, f.customers.customers[cust.ID].Debt.Equal(types.MustMoney("30.00")))
	assert.True(t, f.accounts.accounts[acc.ID].Balance.Equal(types.MustMoney("50.00")))
	require.Len(t, f.auditor.entries, 1)
	assert.Equal(t, audit.ActionDebtPaid, f.auditor.entries[0].Action)
}

func TestPayCustomerDebt_Overpayment(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount("0")
	cust := f.addCustomer("20")

	_, err := f.svc.PayCustomerDebt(f.ctx, cust.ID, acc.ID, types.MustMoney("50"), nil)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidPayment))

	// Debt and balance untouched, no ledger line.
	assert.True(t, f.customers.customers[cust.ID].Debt.Equal(types.MustMoney("20")))
	assert.True(t, f.accounts.accounts[acc.ID].Balance.IsZero())
	assert.Empty(t, f.repo.created)
}

func TestPayCustomerDebt_OtherStoreCustomer(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount("0")

	foreign := customer.NewCustomer(id.New(), "Foreign")
	foreign.Debt = types.MustMoney("100")
	f.customers.customers[foreign.ID] = foreign

	_, err := f.svc.PayCustomerDebt(f.ctx, foreign.ID, acc.ID, types.MustMoney("10"), nil)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
