// Package domain holds the small ports domain services share.
// Implementations live in infrastructure/storage/postgres.
package domain

import (
	"context"

	"gestock/pkg/numerator"
)

// SequenceAllocator allocates document numbers on the caller's open
// transaction, so a rolled-back document burns its number but two
// documents never share one.
type SequenceAllocator interface {
	Next(ctx context.Context, seq numerator.Sequence) (string, error)
}
