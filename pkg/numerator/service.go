// Package numerator provides document auto-numbering backed by per-key
// atomic counters in the sys_sequences table.
//
// A single upsert allocates the next value, so concurrent allocations of
// the same sequence never observe the same number. The querier is passed
// per call: callers hand in the querier of their open transaction, which
// keeps number allocation atomic with the document insert it numbers.
package numerator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the minimal database surface the numerator needs.
// Both a pgx pool and a pgx transaction satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Sequence identifies one independent counter and how its numbers render.
type Sequence struct {
	// Prefix is the document type tag (ENT, SOR, TRF, FAC, TRX).
	Prefix string

	// Label is rendered between the prefix and the counter:
	// the store code for store-scoped documents, the day for
	// financial transactions.
	Label string

	// Key is the sys_sequences row key. Distinct keys count independently.
	Key string

	// PadWidth is the zero-padded counter width.
	PadWidth int
}

// ForStore builds a store-scoped sequence: numbers render as
// PREFIX-STORECODE-00001 and each store counts from 1 independently.
// storeKey must be stable per store (the store ID), storeCode is the
// human-facing code rendered into the number.
func ForStore(prefix, storeCode, storeKey string) Sequence {
	return Sequence{
		Prefix:   prefix,
		Label:    storeCode,
		Key:      fmt.Sprintf("%s_%s", prefix, storeKey),
		PadWidth: 5,
	}
}

// ForDay builds a daily sequence: numbers render as PREFIX-YYYYMMDD-0001
// and the counter resets each day by virtue of the dated key.
func ForDay(prefix string, day time.Time) Sequence {
	d := day.Format("20060102")
	return Sequence{
		Prefix:   prefix,
		Label:    d,
		Key:      fmt.Sprintf("%s_%s", prefix, d),
		PadWidth: 4,
	}
}

// Service allocates sequence numbers.
type Service struct{}

// New creates a numerator service.
func New() *Service {
	return &Service{}
}

// Next allocates and formats the next number of seq using q.
// Run it on the same transaction as the insert the number belongs to.
func (s *Service) Next(ctx context.Context, q Querier, seq Sequence) (string, error) {
	var num int64
	err := q.QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, seq.Key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number for %s: %w", seq.Key, err)
	}
	return s.format(seq, num), nil
}

// SetNext forces the counter so the next allocation returns value+1.
// Used by data migrations importing documents with existing numbers.
func (s *Service) SetNext(ctx context.Context, q Querier, seq Sequence, value int64) error {
	var current int64
	err := q.QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET current_val = $2
        RETURNING current_val
	`, seq.Key, value).Scan(&current)
	if err != nil {
		return fmt.Errorf("set sequence %s: %w", seq.Key, err)
	}
	return nil
}

func (s *Service) format(seq Sequence, num int64) string {
	pad := seq.PadWidth
	if pad <= 0 {
		pad = 5
	}
	if seq.Label == "" {
		return fmt.Sprintf("%s-%0*d", seq.Prefix, pad, num)
	}
	return fmt.Sprintf("%s-%s-%0*d", seq.Prefix, seq.Label, pad, num)
}

// ParseCounter extracts the trailing counter from a formatted number.
// Returns -1 if the number does not end in a numeric segment.
func ParseCounter(formatted string) int64 {
	idx := strings.LastIndex(formatted, "-")
	if idx < 0 || idx == len(formatted)-1 {
		return -1
	}
	num, err := strconv.ParseInt(formatted[idx+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
