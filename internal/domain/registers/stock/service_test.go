package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
)

type cell struct {
	productID   id.ID
	warehouseID id.ID
}

// mockRepo keeps levels and the journal in memory.
type mockRepo struct {
	levels    map[cell]int64
	movements []Movement

	failAdd error
}

func newMockRepo() *mockRepo {
	return &mockRepo{levels: make(map[cell]int64)}
}

func (m *mockRepo) GetLevel(ctx context.Context, productID, warehouseID id.ID) (Level, error) {
	return Level{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    m.levels[cell{productID, warehouseID}],
	}, nil
}

func (m *mockRepo) GetLevelForUpdate(ctx context.Context, productID, warehouseID id.ID) (Level, error) {
	return m.GetLevel(ctx, productID, warehouseID)
}

func (m *mockRepo) AddQuantity(ctx context.Context, productID, warehouseID id.ID, qty int64) error {
	if m.failAdd != nil {
		return m.failAdd
	}
	m.levels[cell{productID, warehouseID}] += qty
	return nil
}

func (m *mockRepo) SetQuantity(ctx context.Context, productID, warehouseID id.ID, qty int64) error {
	m.levels[cell{productID, warehouseID}] = qty
	return nil
}

func (m *mockRepo) GetLevelsByWarehouse(ctx context.Context, warehouseID id.ID, f LevelFilter) ([]Level, error) {
	var out []Level
	for c, q := range m.levels {
		if c.warehouseID == warehouseID {
			out = append(out, Level{ProductID: c.productID, WarehouseID: c.warehouseID, Quantity: q})
		}
	}
	return out, nil
}

func (m *mockRepo) GetLevelsByProduct(ctx context.Context, productID id.ID) ([]Level, error) {
	var out []Level
	for c, q := range m.levels {
		if c.productID == productID && q != 0 {
			out = append(out, Level{ProductID: c.productID, WarehouseID: c.warehouseID, Quantity: q})
		}
	}
	return out, nil
}

func (m *mockRepo) RecordMovements(ctx context.Context, movements []Movement) error {
	m.movements = append(m.movements, movements...)
	return nil
}

func (m *mockRepo) GetMovementHistory(ctx context.Context, productID id.ID, f MovementFilter) ([]Movement, error) {
	var out []Movement
	for _, mv := range m.movements {
		if mv.ProductID == productID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func testRecorder() Recorder {
	return Recorder{StoreID: id.New(), DocumentID: id.New(), DocumentType: "stock_entry"}
}

func TestService_Increase(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	productID, warehouseID := id.New(), id.New()
	rec := testRecorder()

	require.NoError(t, svc.Increase(ctx, rec, productID, warehouseID, 10))
	require.NoError(t, svc.Increase(ctx, rec, productID, warehouseID, 5))

	level, err := svc.GetLevel(ctx, productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), level.Quantity)

	// Two inbound journal lines, one per increase.
	require.Len(t, repo.movements, 2)
	assert.Equal(t, DirectionIn, repo.movements[0].Direction)
	assert.Equal(t, rec.DocumentID, repo.movements[0].DocumentID)

	err = svc.Increase(ctx, rec, productID, warehouseID, 0)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestService_Decrease(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	productID, warehouseID := id.New(), id.New()
	rec := testRecorder()

	require.NoError(t, svc.Increase(ctx, rec, productID, warehouseID, 10))
	require.NoError(t, svc.Decrease(ctx, rec, productID, warehouseID, 4))

	level, err := svc.GetLevel(ctx, productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), level.Quantity)

	// Draining to exactly zero is allowed.
	require.NoError(t, svc.Decrease(ctx, rec, productID, warehouseID, 6))
	level, _ = svc.GetLevel(ctx, productID, warehouseID)
	assert.Equal(t, int64(0), level.Quantity)
}

func TestService_Decrease_InsufficientStock(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	productID, warehouseID := id.New(), id.New()
	rec := testRecorder()

	require.NoError(t, svc.Increase(ctx, rec, productID, warehouseID, 3))
	journalBefore := len(repo.movements)

	err := svc.Decrease(ctx, rec, productID, warehouseID, 5)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, int64(5), appErr.Details["requested"])
	assert.Equal(t, int64(3), appErr.Details["available"])

	// Level untouched, nothing journaled.
	level, _ := svc.GetLevel(ctx, productID, warehouseID)
	assert.Equal(t, int64(3), level.Quantity)
	assert.Len(t, repo.movements, journalBefore)
}

func TestService_Decrease_MissingCellReadsAsZero(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	err := svc.Decrease(context.Background(), testRecorder(), id.New(), id.New(), 1)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
}

func TestService_Move(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	productID := id.New()
	src, dst := id.New(), id.New()
	rec := Recorder{StoreID: id.New(), DocumentID: id.New(), DocumentType: "stock_transfer"}

	require.NoError(t, svc.Increase(ctx, rec, productID, src, 10))
	require.NoError(t, svc.Move(ctx, rec, productID, src, dst, 7))

	srcLevel, _ := svc.GetLevel(ctx, productID, src)
	dstLevel, _ := svc.GetLevel(ctx, productID, dst)
	assert.Equal(t, int64(3), srcLevel.Quantity)
	assert.Equal(t, int64(7), dstLevel.Quantity)

	// Same warehouse on both sides is rejected.
	err := svc.Move(ctx, rec, productID, src, src, 1)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeSameWarehouse))

	// Conservation: signed journal sum per cell equals the level.
	var sum int64
	for _, mv := range repo.movements {
		if mv.WarehouseID == src {
			if mv.Direction == DirectionIn {
				sum += mv.Quantity
			} else {
				sum -= mv.Quantity
			}
		}
	}
	assert.Equal(t, srcLevel.Quantity, sum)
}
