package stock

import (
	"context"
	"time"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/pkg/logger"
)

// Service mutates and queries the stock register.
//
// Increase never fails on quantity grounds; Decrease fails the whole
// operation when any cell cannot cover the requested quantity. Both
// must run inside the transaction of the document they serve.
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Increase adds qty units to the (product, warehouse) cell and journals
// the inbound movement under rec.
func (s *Service) Increase(ctx context.Context, rec Recorder, productID, warehouseID id.ID, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", qty)
	}

	if err := s.repo.AddQuantity(ctx, productID, warehouseID, qty); err != nil {
		return err
	}

	return s.repo.RecordMovements(ctx, []Movement{s.movement(rec, productID, warehouseID, DirectionIn, qty)})
}

// Decrease removes qty units from the (product, warehouse) cell and
// journals the outbound movement under rec. The cell row is locked for
// the rest of the transaction, so concurrent decrements serialize and
// the level can never go below zero.
func (s *Service) Decrease(ctx context.Context, rec Recorder, productID, warehouseID id.ID, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", qty)
	}

	level, err := s.repo.GetLevelForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return err
	}

	if level.Quantity < qty {
		logger.Warn(ctx, "insufficient stock",
			"product_id", productID.String(),
			"warehouse_id", warehouseID.String(),
			"requested", qty,
			"available", level.Quantity,
		)
		return apperror.NewInsufficientStock(productID.String(), warehouseID.String(), qty, level.Quantity)
	}

	if err := s.repo.SetQuantity(ctx, productID, warehouseID, level.Quantity-qty); err != nil {
		return err
	}

	return s.repo.RecordMovements(ctx, []Movement{s.movement(rec, productID, warehouseID, DirectionOut, qty)})
}

// Move decreases the source cell and increases the destination cell for
// the same product and quantity. Used by transfer completion; either both
// sides land or the caller's transaction rolls back.
func (s *Service) Move(ctx context.Context, rec Recorder, productID, fromWarehouseID, toWarehouseID id.ID, qty int64) error {
	if fromWarehouseID == toWarehouseID {
		return apperror.NewSameWarehouse(fromWarehouseID.String())
	}
	if err := s.Decrease(ctx, rec, productID, fromWarehouseID, qty); err != nil {
		return err
	}
	return s.Increase(ctx, rec, productID, toWarehouseID, qty)
}

// GetLevel returns the current quantity of one cell.
func (s *Service) GetLevel(ctx context.Context, productID, warehouseID id.ID) (Level, error) {
	return s.repo.GetLevel(ctx, productID, warehouseID)
}

// GetLevelsByWarehouse lists the levels of one warehouse.
func (s *Service) GetLevelsByWarehouse(ctx context.Context, warehouseID id.ID, f LevelFilter) ([]Level, error) {
	return s.repo.GetLevelsByWarehouse(ctx, warehouseID, f)
}

// GetLevelsByProduct lists where a product is held.
func (s *Service) GetLevelsByProduct(ctx context.Context, productID id.ID) ([]Level, error) {
	return s.repo.GetLevelsByProduct(ctx, productID)
}

// GetMovementHistory lists the journal of a product, newest first.
func (s *Service) GetMovementHistory(ctx context.Context, productID id.ID, f MovementFilter) ([]Movement, error) {
	return s.repo.GetMovementHistory(ctx, productID, f)
}

func (s *Service) movement(rec Recorder, productID, warehouseID id.ID, dir Direction, qty int64) Movement {
	return Movement{
		ID:           id.New(),
		StoreID:      rec.StoreID,
		ProductID:    productID,
		WarehouseID:  warehouseID,
		Direction:    dir,
		Quantity:     qty,
		DocumentID:   rec.DocumentID,
		DocumentType: rec.DocumentType,
		CreatedAt:    time.Now().UTC(),
	}
}
