package postgres

import (
	"context"

	"gestock/internal/domain"
	"gestock/pkg/numerator"
)

// Compile-time check that SequenceRepo implements the domain port.
var _ domain.SequenceAllocator = (*SequenceRepo)(nil)

// SequenceRepo allocates document numbers from sys_sequences.
// It hands the numerator the querier of the caller's open transaction,
// so the allocation commits or rolls back with the document it numbers.
type SequenceRepo struct {
	txManager *TxManager
	numerator *numerator.Service
}

// NewSequenceRepo creates a sequence repository.
func NewSequenceRepo(txManager *TxManager) *SequenceRepo {
	return &SequenceRepo{
		txManager: txManager,
		numerator: numerator.New(),
	}
}

// Next allocates and formats the next number of seq.
func (r *SequenceRepo) Next(ctx context.Context, seq numerator.Sequence) (string, error) {
	return r.numerator.Next(ctx, r.txManager.GetQuerier(ctx), seq)
}

// SetNext forces the counter so the next allocation returns value+1.
// Used when importing documents that already carry numbers.
func (r *SequenceRepo) SetNext(ctx context.Context, seq numerator.Sequence, value int64) error {
	return r.numerator.SetNext(ctx, r.txManager.GetQuerier(ctx), seq, value)
}
