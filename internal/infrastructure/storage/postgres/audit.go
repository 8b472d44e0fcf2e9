package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	"gestock/internal/domain/audit"
)

// CompressionAlgo specifies how an audit payload is stored.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// auditCompressThreshold is the payload size above which the changes
// snapshot is stored zstd-compressed.
const auditCompressThreshold = 10 * 1024

const auditTable = "sys_audit"

// Compile-time checks against the domain ports.
var (
	_ audit.Recorder = (*AuditRepo)(nil)
	_ audit.Reader   = (*AuditRepo)(nil)
)

// AuditRepo persists the audit trail. Writes happen on the caller's
// open transaction, so a rolled-back document leaves no trail. Large
// change snapshots are stored zstd-compressed.
type AuditRepo struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
}

// NewAuditRepo creates an audit repository.
func NewAuditRepo(txManager *TxManager) (*AuditRepo, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		encoder:   encoder,
		decoder:   decoder,
	}, nil
}

// Record implements audit.Recorder.
func (r *AuditRepo) Record(ctx context.Context, entry audit.Entry) error {
	var changes []byte
	if entry.Changes != nil {
		var err error
		changes, err = json.Marshal(entry.Changes)
		if err != nil {
			return fmt.Errorf("marshal audit changes: %w", err)
		}
	}

	var compressed []byte
	algo := CompressionNone
	if len(changes) > auditCompressThreshold {
		compressed = r.encoder.EncodeAll(changes, nil)
		changes = nil
		algo = CompressionZstd
	}

	q := r.builder.Insert(auditTable).
		Columns(
			"id", "store_id", "user_id", "action",
			"entity_type", "entity_id",
			"changes", "changes_compressed", "compression_algo",
			"created_at",
		).
		Values(
			entry.ID, entry.StoreID, entry.UserID, entry.Action,
			entry.EntityType, entry.EntityID,
			changes, compressed, algo,
			entry.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}

// List implements audit.Reader, newest first.
func (r *AuditRepo) List(ctx context.Context, f audit.Filter) ([]audit.Entry, error) {
	q := r.builder.Select(
		"id", "store_id", "user_id", "action",
		"entity_type", "entity_id",
		"changes", "changes_compressed", "compression_algo",
		"created_at",
	).From(auditTable)

	if f.StoreID != nil {
		q = q.Where(squirrel.Eq{"store_id": *f.StoreID})
	}
	if f.EntityType != nil {
		q = q.Where(squirrel.Eq{"entity_type": *f.EntityType})
	}
	if f.EntityID != nil {
		q = q.Where(squirrel.Eq{"entity_id": *f.EntityID})
	}

	q = q.OrderBy("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			e          audit.Entry
			changes    []byte
			compressed []byte
			algo       CompressionAlgo
		)
		err := rows.Scan(
			&e.ID, &e.StoreID, &e.UserID, &e.Action,
			&e.EntityType, &e.EntityID,
			&changes, &compressed, &algo,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		if algo == CompressionZstd && len(compressed) > 0 {
			changes, err = r.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit changes: %w", err)
			}
		}
		if len(changes) > 0 {
			e.Changes = json.RawMessage(changes)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
