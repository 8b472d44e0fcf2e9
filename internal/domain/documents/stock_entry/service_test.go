package stock_entry

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
	"gestock/internal/domain/catalogs/product"
	"gestock/internal/domain/catalogs/store"
	"gestock/internal/domain/catalogs/supplier"
	"gestock/internal/domain/catalogs/warehouse"
	"gestock/internal/domain/finance/transaction"
	"gestock/internal/domain/registers/stock"
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
	return fmt.Sprintf("%s-%s-%05d", seq.Prefix, seq.Label, m.n), nil
}

type mockAuditor struct{ entries []audit.Entry }

func (m *mockAuditor) Record(ctx context.Context, e audit.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

type mockRepo struct {
	entries map[id.ID]*StockEntry
}

func (m *mockRepo) Create(ctx context.Context, e *StockEntry) error {
	cp := *e
	m.entries[e.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, entryID id.ID) (*StockEntry, error) {
	if e, ok := m.entries[entryID]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, apperror.NewNotFound("stock entry", entryID)
}

func (m *mockRepo) GetByIDForUpdate(ctx context.Context, entryID id.ID) (*StockEntry, error) {
	return m.GetByID(ctx, entryID)
}

func (m *mockRepo) AddItem(ctx context.Context, e *StockEntry, item *Item) error {
	cp := *e
	m.entries[e.ID] = &cp
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter) ([]StockEntry, error) { return nil, nil }

type mockStoreRepo struct {
	stores map[id.ID]*store.Store
}

func (m *mockStoreRepo) Create(ctx context.Context, s *store.Store) error { return nil }
func (m *mockStoreRepo) Update(ctx context.Context, s *store.Store) error { return nil }

func (m *mockStoreRepo) GetByID(ctx context.Context, storeID id.ID) (*store.Store, error) {
	if s, ok := m.stores[storeID]; ok {
		return s, nil
	}
	return nil, apperror.NewNotFound("store", storeID)
}

func (m *mockStoreRepo) GetByCode(ctx context.Context, code string) (*store.Store, error) {
	return nil, apperror.NewNotFound("store", code)
}

func (m *mockStoreRepo) List(ctx context.Context, activeOnly bool) ([]store.Store, error) {
	return nil, nil
}

type mockWarehouseRepo struct {
	warehouses map[id.ID]*warehouse.Warehouse
}

func (m *mockWarehouseRepo) Create(ctx context.Context, w *warehouse.Warehouse) error { return nil }
func (m *mockWarehouseRepo) Update(ctx context.Context, w *warehouse.Warehouse) error { return nil }

func (m *mockWarehouseRepo) GetByID(ctx context.Context, warehouseID id.ID) (*warehouse.Warehouse, error) {
	if w, ok := m.warehouses[warehouseID]; ok {
		return w, nil
	}
	return nil, apperror.NewNotFound("warehouse", warehouseID)
}

func (m *mockWarehouseRepo) GetByName(ctx context.Context, storeID id.ID, name string) (*warehouse.Warehouse, error) {
	return nil, apperror.NewNotFound("warehouse", name)
}

func (m *mockWarehouseRepo) List(ctx context.Context, f warehouse.Filter) ([]warehouse.Warehouse, error) {
	return nil, nil
}

type mockSupplierRepo struct {
	suppliers map[id.ID]*supplier.Supplier
}

func (m *mockSupplierRepo) Create(ctx context.Context, s *supplier.Supplier) error { return nil }
func (m *mockSupplierRepo) Update(ctx context.Context, s *supplier.Supplier) error { return nil }

func (m *mockSupplierRepo) GetByID(ctx context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	if s, ok := m.suppliers[supplierID]; ok {
		return s, nil
	}
	return nil, apperror.NewNotFound("supplier", supplierID)
}

func (m *mockSupplierRepo) GetByName(ctx context.Context, storeID id.ID, name string) (*supplier.Supplier, error) {
	return nil, apperror.NewNotFound("supplier", name)
}

func (m *mockSupplierRepo) List(ctx context.Context, f supplier.Filter) ([]supplier.Supplier, error) {
	return nil, nil
}

type mockProductRepo struct {
	products map[id.ID]*product.Product
}

func (m *mockProductRepo) Create(ctx context.Context, p *product.Product) error { return nil }
func (m *mockProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }

func (m *mockProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	if p, ok := m.products[productID]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("product", productID)
}

func (m *mockProductRepo) GetByReference(ctx context.Context, storeID id.ID, reference string) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", reference)
}

func (m *mockProductRepo) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	return nil, nil
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
	for _, a := range m.accounts {
		if a.StoreID == storeID && a.IsActive && a.Type == account.TypeCash {
			cp := *a
			return &cp, nil
		}
	}
	for _, a := range m.accounts {
		if a.StoreID == storeID && a.IsActive && a.Type == account.TypeBank {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("account", storeID)
}

func (m *mockAccountRepo) List(ctx context.Context, f account.Filter) ([]account.Account, error) {
	return nil, nil
}

type mockCustomerRepo struct{}

func (m *mockCustomerRepo) Create(ctx context.Context, c *customer.Customer) error { return nil }
func (m *mockCustomerRepo) Update(ctx context.Context, c *customer.Customer) error { return nil }

func (m *mockCustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	return nil, apperror.NewNotFound("customer", customerID)
}

func (m *mockCustomerRepo) GetByIDForUpdate(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	return nil, apperror.NewNotFound("customer", customerID)
}

func (m *mockCustomerRepo) SetDebt(ctx context.Context, customerID id.ID, debt types.Money) error {
	return nil
}

func (m *mockCustomerRepo) List(ctx context.Context, f customer.Filter) ([]customer.Customer, error) {
	return nil, nil
}

type mockLedgerRepo struct {
	created []transaction.Transaction
}

func (m *mockLedgerRepo) Create(ctx context.Context, t *transaction.Transaction) error {
	m.created = append(m.created, *t)
	return nil
}

func (m *mockLedgerRepo) GetByID(ctx context.Context, transactionID id.ID) (*transaction.Transaction, error) {
	return nil, apperror.NewNotFound("transaction", transactionID)
}

func (m *mockLedgerRepo) List(ctx context.Context, f transaction.Filter) ([]transaction.Transaction, error) {
	return m.created, nil
}

func (m *mockLedgerRepo) ExistsForSource(ctx context.Context, sourceDocumentID id.ID, txType transaction.Type) (bool, error) {
	for _, t := range m.created {
		if t.SourceDocumentID != nil && *t.SourceDocumentID == sourceDocumentID && t.Type == txType {
			return true, nil
		}
	}
	return false, nil
}

type stockCell struct{ productID, warehouseID id.ID }

type mockStockRepo struct {
	levels    map[stockCell]int64
	movements []stock.Movement
}

func (m *mockStockRepo) GetLevel(ctx context.Context, productID, warehouseID id.ID) (stock.Level, error) {
	return stock.Level{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    m.levels[stockCell{productID, warehouseID}],
	}, nil
}

func (m *mockStockRepo) GetLevelForUpdate(ctx context.Context, productID, warehouseID id.ID) (stock.Level, error) {
	return m.GetLevel(ctx, productID, warehouseID)
}

func (m *mockStockRepo) AddQuantity(ctx context.Context, productID, warehouseID id.ID, qty int64) error {
	m.levels[stockCell{productID, warehouseID}] += qty
	return nil
}

func (m *mockStockRepo) SetQuantity(ctx context.Context, productID, warehouseID id.ID, qty int64) error {
	m.levels[stockCell{productID, warehouseID}] = qty
	return nil
}

func (m *mockStockRepo) GetLevelsByWarehouse(ctx context.Context, warehouseID id.ID, f stock.LevelFilter) ([]stock.Level, error) {
	return nil, nil
}

func (m *mockStockRepo) GetLevelsByProduct(ctx context.Context, productID id.ID) ([]stock.Level, error) {
	return nil, nil
}

func (m *mockStockRepo) RecordMovements(ctx context.Context, movements []stock.Movement) error {
	m.movements = append(m.movements, movements...)
	return nil
}

func (m *mockStockRepo) GetMovementHistory(ctx context.Context, productID id.ID, f stock.MovementFilter) ([]stock.Movement, error) {
	return nil, nil
}

// --- fixture ---

type fixture struct {
	svc *Service

	repo       *mockRepo
	stockRepo  *mockStockRepo
	ledgerRepo *mockLedgerRepo
	accounts   *mockAccountRepo
	auditor    *mockAuditor

	store     *store.Store
	warehouse *warehouse.Warehouse
	supplier  *supplier.Supplier

	products *mockProductRepo

	userID id.ID
	ctx    context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewStore("MAIN", "Main store")
	userID := id.New()

	wh := warehouse.NewWarehouse(st.ID, "Central")
	sup := supplier.NewSupplier(st.ID, "Acme Wholesale")

	repo := &mockRepo{entries: make(map[id.ID]*StockEntry)}
	stockRepo := &mockStockRepo{levels: make(map[stockCell]int64)}
	ledgerRepo := &mockLedgerRepo{}
	accounts := &mockAccountRepo{accounts: make(map[id.ID]*account.Account)}
	products := &mockProductRepo{products: make(map[id.ID]*product.Product)}
	auditor := &mockAuditor{}

	txManager := &mockTxManager{}
	sequences := &mockSequences{}

	ledger := transaction.NewService(ledgerRepo, accounts, &mockCustomerRepo{}, txManager, sequences, auditor)

	svc := NewService(
		repo,
		&mockStoreRepo{stores: map[id.ID]*store.Store{st.ID: st}},
		&mockWarehouseRepo{warehouses: map[id.ID]*warehouse.Warehouse{wh.ID: wh}},
		&mockSupplierRepo{suppliers: map[id.ID]*supplier.Supplier{sup.ID: sup}},
		products,
		accounts,
		stock.NewService(stockRepo),
		ledger,
		txManager,
		sequences,
		auditor,
	)

	ctx := scope.WithScope(context.Background(), scope.ForStore(userID, "clerk", st.ID))

	return &fixture{
		svc:        svc,
		repo:       repo,
		stockRepo:  stockRepo,
		ledgerRepo: ledgerRepo,
		accounts:   accounts,
		auditor:    auditor,
		store:      st,
		warehouse:  wh,
		supplier:   sup,
		products:   products,
		userID:     userID,
		ctx:        ctx,
	}
}

func (f *fixture) addProduct(reference, purchasePrice string) *product.Product {
	p := product.NewProduct(f.store.ID, reference, "Product "+reference)
	p.PurchasePrice = types.MustMoney(purchasePrice)
	f.products.products[p.ID] = p
	return p
}

func (f *fixture) addAccount(accType account.Type, balance string) *account.Account {
	a := account.NewAccount(f.store.ID, "Account "+string(accType), accType)
	a.Balance = types.MustMoney(balance)
	f.accounts.accounts[a.ID] = a
	return a
}

func (f *fixture) stockLevel(productID id.ID) int64 {
	return f.stockRepo.levels[stockCell{productID, f.warehouse.ID}]
}

// --- tests ---

func TestCreate(t *testing.T) {
	f := newFixture(t)
	p1 := f.addProduct("REF-1", "100")
	p2 := f.addProduct("REF-2", "40")
	acc := f.addAccount(account.TypeCash, "1000")
	override := types.MustMoney("90")

	e, err := f.svc.Create(f.ctx, CreateInput{
		SupplierID:  f.supplier.ID,
		WarehouseID: f.warehouse.ID,
		AccountID:   &acc.ID,
		Items: []ItemInput{
			{ProductID: p1.ID, Quantity: 3, PurchasePrice: &override},
			{ProductID: p2.ID, Quantity: 5},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, e.Number, "ENT-MAIN-")
	// 3*90 + 5*40
	assert.True(t, e.TotalAmount.Equal(types.MustMoney("470.00")), e.TotalAmount.String())

	assert.Equal(t, int64(3), f.stockLevel(p1.ID))
	assert.Equal(t, int64(5), f.stockLevel(p2.ID))

	// One purchase line, debiting the explicit account.
	require.Len(t, f.ledgerRepo.created, 1)
	line := f.ledgerRepo.created[0]
	assert.Equal(t, transaction.TypePurchase, line.Type)
	require.NotNil(t, line.FromAccountID)
	assert.Equal(t, acc.ID, *line.FromAccountID)
	require.NotNil(t, line.SourceDocumentID)
	assert.Equal(t, e.ID, *line.SourceDocumentID)
	assert.True(t, f.accounts.accounts[acc.ID].Balance.Equal(types.MustMoney("530.00")))

	require.NotEmpty(t, f.auditor.entries)
	assert.Equal(t, audit.ActionCreated, f.auditor.entries[len(f.auditor.entries)-1].Action)
}

func TestCreate_DefaultAccountFallback(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct("REF-1", "10")
	f.addAccount(account.TypeBank, "1000")
	cash := f.addAccount(account.TypeCash, "1000")

	_, err := f.svc.Create(f.ctx, CreateInput{
		SupplierID:  f.supplier.ID,
		WarehouseID: f.warehouse.ID,
		Items:       []ItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, f.ledgerRepo.created, 1)
	require.NotNil(t, f.ledgerRepo.created[0].FromAccountID)
	assert.Equal(t, cash.ID, *f.ledgerRepo.created[0].FromAccountID)
	assert.True(t, f.accounts.accounts[cash.ID].Balance.Equal(types.MustMoney("980.00")))
}

func TestCreate_NoAccountStillRecordsPurchase(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct("REF-1", "10")

	_, err := f.svc.Create(f.ctx, CreateInput{
		SupplierID:  f.supplier.ID,
		WarehouseID: f.warehouse.ID,
		Items:       []ItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, f.ledgerRepo.created, 1)
	assert.Nil(t, f.ledgerRepo.created[0].FromAccountID)
}

func TestCreate_CrossStoreWarehouse(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct("REF-1", "10")

	foreign := scope.ForStore(f.userID, "clerk", id.New())
	ctx := scope.WithScope(context.Background(), foreign)

	_, err := f.svc.Create(ctx, CreateInput{
		SupplierID:  f.supplier.ID,
		WarehouseID: f.warehouse.ID,
		Items:       []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.Error(t, err)
	// The foreign store itself is unknown to the caller.
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.repo.entries)
	assert.Empty(t, f.ledgerRepo.created)
}

func TestCreate_NoItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.ctx, CreateInput{
		SupplierID:  f.supplier.ID,
		WarehouseID: f.warehouse.ID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestAddItem(t *testing.T) {
	f := newFixture(t)
	p1 := f.addProduct("REF-1", "10")
	p2 := f.addProduct("REF-2", "20")
	f.addAccount(account.TypeCash, "1000")

	e, err := f.svc.Create(f.ctx, CreateInput{
		SupplierID:  f.supplier.ID,
		WarehouseID: f.warehouse.ID,
		Items:       []ItemInput{{ProductID: p1.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, f.ledgerRepo.created, 1)

	e, err = f.svc.AddItem(f.ctx, e.ID, ItemInput{ProductID: p2.ID, Quantity: 3})
	require.NoError(t, err)

	assert.Len(t, e.Items, 2)
	assert.True(t, e.TotalAmount.Equal(types.MustMoney("80.00")), e.TotalAmount.String())
	assert.Equal(t, int64(3), f.stockLevel(p2.ID))

	// The receipt already spawned its purchase line; no second one.
	assert.Len(t, f.ledgerRepo.created, 1)
}

func TestAddItem_DuplicateProduct(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct("REF-1", "10")

	e, err := f.svc.Create(f.ctx, CreateInput{
		SupplierID:  f.supplier.ID,
		WarehouseID: f.warehouse.ID,
		Items:       []ItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.svc.AddItem(f.ctx, e.ID, ItemInput{ProductID: p.ID, Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))
}

func TestAddItem_SpawnsPurchaseOnceTotalTurnsPositive(t *testing.T) {
	f := newFixture(t)
	free := f.addProduct("REF-FREE", "0")
	paid := f.addProduct("REF-PAID", "50")
	f.addAccount(account.TypeCash, "1000")

	e, err := f.svc.Create(f.ctx, CreateInput{
		SupplierID:  f.supplier.ID,
		WarehouseID: f.warehouse.ID,
		Items:       []ItemInput{{ProductID: free.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Empty(t, f.ledgerRepo.created)

	e, err = f.svc.AddItem(f.ctx, e.ID, ItemInput{ProductID: paid.ID, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, f.ledgerRepo.created, 1)
	line := f.ledgerRepo.created[0]
	assert.Equal(t, transaction.TypePurchase, line.Type)
	assert.True(t, line.Amount.Equal(e.TotalAmount))
}
