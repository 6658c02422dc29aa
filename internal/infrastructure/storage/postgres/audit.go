package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"paneerflow/internal/domain/audit"
)

// CompressionAlgo specifies the compression algorithm used for a payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// Compile-time check that AuditStore implements audit.Recorder.
var _ audit.Recorder = (*AuditStore)(nil)

// AuditStore persists audit entries. Writes go through the context querier,
// so an entry recorded inside a transaction commits or rolls back with it.
type AuditStore struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int // bytes
}

// NewAuditStore creates a new audit store.
func NewAuditStore(txManager *TxManager) (*AuditStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditStore{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024, // 10KB
	}, nil
}

// Record implements audit.Recorder.
func (s *AuditStore) Record(ctx context.Context, entry audit.Entry) error {
	at := entry.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}

	// Compress large payloads
	algo := CompressionNone
	var compressed []byte
	if len(changes) > s.compressThreshold {
		compressed = s.encoder.EncodeAll(changes, nil)
		changes = nil
		algo = CompressionZstd
	}

	sql := `
		INSERT INTO audit_log (
			entity, entity_id, action,
			changes, changes_compressed, compression_algo,
			actor_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	querier := s.txManager.GetQuerier(ctx)
	_, err = querier.Exec(ctx, sql,
		entry.Entity, entry.EntityID, string(entry.Action),
		changes, compressed, string(algo),
		entry.ActorID, at,
	)
	return err
}

// EntityHistory retrieves the audit trail for an entity, newest first.
func (s *AuditStore) EntityHistory(ctx context.Context, entity string, entityID int64, limit int) ([]audit.Entry, error) {
	sql := `
		SELECT id, entity, entity_id, action,
		       changes, changes_compressed, compression_algo,
		       actor_id, created_at
		FROM audit_log
		WHERE entity = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, entity, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			e          audit.Entry
			action     string
			changes    []byte
			compressed []byte
			algo       string
		)
		err := rows.Scan(
			&e.ID, &e.Entity, &e.EntityID, &action,
			&changes, &compressed, &algo,
			&e.ActorID, &e.At,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Action = audit.Action(action)

		if CompressionAlgo(algo) == CompressionZstd && len(compressed) > 0 {
			changes, err = s.decoder.DecodeAll(compressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress changes: %w", err)
			}
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &e.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal changes: %w", err)
			}
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
