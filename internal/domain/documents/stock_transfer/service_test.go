package stock_transfer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/scope"
	"gestock/internal/domain/audit"
	"gestock/internal/domain/catalogs/product"
	"gestock/internal/domain/catalogs/store"
	"gestock/internal/domain/catalogs/warehouse"
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
	transfers map[id.ID]*StockTransfer
}

func (m *mockRepo) Create(ctx context.Context, t *StockTransfer) error {
	cp := *t
	m.transfers[t.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, transferID id.ID) (*StockTransfer, error) {
	if t, ok := m.transfers[transferID]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, apperror.NewNotFound("stock transfer", transferID)
}

func (m *mockRepo) GetByIDForUpdate(ctx context.Context, transferID id.ID) (*StockTransfer, error) {
	return m.GetByID(ctx, transferID)
}

func (m *mockRepo) AddItem(ctx context.Context, t *StockTransfer, item *Item) error {
	cp := *t
	m.transfers[t.ID] = &cp
	return nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, t *StockTransfer) error {
	cp := *t
	m.transfers[t.ID] = &cp
	return nil
}

func (m *mockRepo) List(ctx context.Context, f Filter) ([]StockTransfer, error) { return nil, nil }

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

	repo      *mockRepo
	stockRepo *mockStockRepo
	products  *mockProductRepo
	auditor   *mockAuditor

	store *store.Store
	src   *warehouse.Warehouse
	dst   *warehouse.Warehouse

	ctx context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewStore("MAIN", "Main store")
	userID := id.New()
	src := warehouse.NewWarehouse(st.ID, "Central")
	dst := warehouse.NewWarehouse(st.ID, "Annex")

	repo := &mockRepo{transfers: make(map[id.ID]*StockTransfer)}
	stockRepo := &mockStockRepo{levels: make(map[stockCell]int64)}
	products := &mockProductRepo{products: make(map[id.ID]*product.Product)}
	auditor := &mockAuditor{}

	svc := NewService(
		repo,
		&mockStoreRepo{stores: map[id.ID]*store.Store{st.ID: st}},
		&mockWarehouseRepo{warehouses: map[id.ID]*warehouse.Warehouse{src.ID: src, dst.ID: dst}},
		products,
		stock.NewService(stockRepo),
		&mockTxManager{},
		&mockSequences{},
		auditor,
	)

	ctx := scope.WithScope(context.Background(), scope.ForStore(userID, "clerk", st.ID))

	return &fixture{
		svc:       svc,
		repo:      repo,
		stockRepo: stockRepo,
		products:  products,
		auditor:   auditor,
		store:     st,
		src:       src,
		dst:       dst,
		ctx:       ctx,
	}
}

func (f *fixture) addProduct(reference string, srcQty int64) *product.Product {
	p := product.NewProduct(f.store.ID, reference, "Product "+reference)
	f.products.products[p.ID] = p
	f.stockRepo.levels[stockCell{p.ID, f.src.ID}] = srcQty
	return p
}

func (f *fixture) level(productID, warehouseID id.ID) int64 {
	return f.stockRepo.levels[stockCell{productID, warehouseID}]
}

// --- tests ---

func TestCreate(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct("REF-1", 10)

	tr, err := f.svc.Create(f.ctx, CreateInput{
		FromWarehouseID: f.src.ID,
		ToWarehouseID:   f.dst.ID,
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Contains(t, tr.Number, "TRF-MAIN-")
	assert.Equal(t, StatusPending, tr.Status)

	// Creation moves nothing.
	assert.Equal(t, int64(10), f.level(p.ID, f.src.ID))
	assert.Equal(t, int64(0), f.level(p.ID, f.dst.ID))
	assert.Empty(t, f.stockRepo.movements)
}

func TestCreate_SameWarehouse(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct("REF-1", 10)

	_, err := f.svc.Create(f.ctx, CreateInput{
		FromWarehouseID: f.src.ID,
		ToWarehouseID:   f.src.ID,
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeSameWarehouse))
	assert.Empty(t, f.repo.transfers)
}

func TestComplete(t *testing.T) {
	f := newFixture(t)
	p1 := f.addProduct("REF-1", 10)
	p2 := f.addProduct("REF-2", 5)

	tr, err := f.svc.Create(f.ctx, CreateInput{
		FromWarehouseID: f.src.ID,
		ToWarehouseID:   f.dst.ID,
		Items: []ItemInput{
			{ProductID: p1.ID, Quantity: 7},
			{ProductID: p2.ID, Quantity: 5},
		},
	})
	require.NoError(t, err)

	tr, err = f.svc.Complete(f.ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, tr.Status)
	require.NotNil(t, tr.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *tr.CompletedAt, time.Minute)

	assert.Equal(t, int64(3), f.level(p1.ID, f.src.ID))
	assert.Equal(t, int64(7), f.level(p1.ID, f.dst.ID))
	assert.Equal(t, int64(0), f.level(p2.ID, f.src.ID))
	assert.Equal(t, int64(5), f.level(p2.ID, f.dst.ID))

	// Each item journals one out and one in movement.
	assert.Len(t, f.stockRepo.movements, 4)

	assert.Equal(t, audit.ActionCompleted, f.auditor.entries[len(f.auditor.entries)-1].Action)
}

func TestComplete_InsufficientSource(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct("REF-1", 2)

	tr, err := f.svc.Create(f.ctx, CreateInput{
		FromWarehouseID: f.src.ID,
		ToWarehouseID:   f.dst.ID,
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.svc.Complete(f.ctx, tr.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	// The stored transfer stays pending.
	assert.Equal(t, StatusPending, f.repo.transfers[tr.ID].Status)
}

func TestComplete_Twice(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct("REF-1", 10)

	tr, err := f.svc.Create(f.ctx, CreateInput{
		FromWarehouseID: f.src.ID,
		ToWarehouseID:   f.dst.ID,
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.svc.Complete(f.ctx, tr.ID)
	require.NoError(t, err)

	_, err = f.svc.Complete(f.ctx, tr.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidState))

	// No double move.
	assert.Equal(t, int64(8), f.level(p.ID, f.src.ID))
	assert.Equal(t, int64(2), f.level(p.ID, f.dst.ID))
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct("REF-1", 10)

	tr, err := f.svc.Create(f.ctx, CreateInput{
		FromWarehouseID: f.src.ID,
		ToWarehouseID:   f.dst.ID,
		Items:           []ItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	tr, err = f.svc.Cancel(f.ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, tr.Status)
	assert.Nil(t, tr.CompletedAt)
	assert.Empty(t, f.stockRepo.movements)

	// A cancelled transfer cannot complete.
	_, err = f.svc.Complete(f.ctx, tr.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidState))
}

func TestAddItem_LockedAfterCompletion(t *testing.T) {
	f := newFixture(t)
	p1 := f.addProduct("REF-1", 10)
	p2 := f.addProduct("REF-2", 10)

	tr, err := f.svc.Create(f.ctx, CreateInput{
		FromWarehouseID: f.src.ID,
		ToWarehouseID:   f.dst.ID,
		Items:           []ItemInput{{ProductID: p1.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.svc.Complete(f.ctx, tr.ID)
	require.NoError(t, err)

	_, err = f.svc.AddItem(f.ctx, tr.ID, ItemInput{ProductID: p2.ID, Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeTransferLocked))
}

func TestAddItem_Pending(t *testing.T) {
	f := newFixture(t)
	p1 := f.addProduct("REF-1", 10)
	p2 := f.addProduct("REF-2", 10)

	tr, err := f.svc.Create(f.ctx, CreateInput{
		FromWarehouseID: f.src.ID,
		ToWarehouseID:   f.dst.ID,
		Items:           []ItemInput{{ProductID: p1.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	tr, err = f.svc.AddItem(f.ctx, tr.ID, ItemInput{ProductID: p2.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Len(t, tr.Items, 2)
}
