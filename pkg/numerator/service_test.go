package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences upsert: one counter per key.
type mockQuerier struct {
	mu     sync.Mutex
	values map[string]int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values == nil {
		m.values = make(map[string]int64)
	}

	key, _ := args[0].(string)
	if len(args) == 2 {
		// SetNext path: forced value.
		if v, ok := args[1].(int64); ok {
			m.values[key] = v
			return &mockRow{val: v}
		}
	}
	m.values[key]++
	return &mockRow{val: m.values[key]}
}

func TestNext_StoreSequence(t *testing.T) {
	q := &mockQuerier{}
	svc := New()
	ctx := context.Background()
	seq := ForStore("ENT", "MAIN", "store-1")

	num, err := svc.Next(ctx, q, seq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ENT-MAIN-00001" {
		t.Errorf("expected ENT-MAIN-00001, got %s", num)
	}

	num, err = svc.Next(ctx, q, seq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ENT-MAIN-00002" {
		t.Errorf("expected ENT-MAIN-00002, got %s", num)
	}
}

func TestNext_IndependentPerStore(t *testing.T) {
	q := &mockQuerier{}
	svc := New()
	ctx := context.Background()

	a := ForStore("SOR", "A", "store-a")
	b := ForStore("SOR", "B", "store-b")

	numA, err := svc.Next(ctx, q, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	numB, err := svc.Next(ctx, q, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both stores start at 1: the counters do not share state.
	if numA != "SOR-A-00001" {
		t.Errorf("expected SOR-A-00001, got %s", numA)
	}
	if numB != "SOR-B-00001" {
		t.Errorf("expected SOR-B-00001, got %s", numB)
	}
}

func TestNext_DailySequence(t *testing.T) {
	q := &mockQuerier{}
	svc := New()
	ctx := context.Background()

	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	seq := ForDay("TRX", day)

	num, err := svc.Next(ctx, q, seq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TRX-20260830-0001" {
		t.Errorf("expected TRX-20260830-0001, got %s", num)
	}

	// Next day keys independently, so the counter restarts.
	nextDay := ForDay("TRX", day.AddDate(0, 0, 1))
	num, err = svc.Next(ctx, q, nextDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TRX-20260831-0001" {
		t.Errorf("expected TRX-20260831-0001, got %s", num)
	}
}

func TestSetNext(t *testing.T) {
	q := &mockQuerier{}
	svc := New()
	ctx := context.Background()
	seq := ForStore("FAC", "MAIN", "store-1")

	if err := svc.SetNext(ctx, q, seq, 41); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num, err := svc.Next(ctx, q, seq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "FAC-MAIN-00042" {
		t.Errorf("expected FAC-MAIN-00042, got %s", num)
	}
}

func TestParseCounter(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"ENT-MAIN-00042", 42},
		{"TRX-20260830-0007", 7},
		{"FAC-00001", 1},
		{"garbage", -1},
		{"ENT-MAIN-", -1},
	}
	for _, tc := range cases {
		if got := ParseCounter(tc.in); got != tc.want {
			t.Errorf("ParseCounter(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
