package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"kassa/internal/core/id"
	"kassa/internal/domain/report"
)

// CompressionAlgo specifies the compression algorithm used for a snapshot.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// ArchiveEntry is one immutable report snapshot taken at close time.
type ArchiveEntry struct {
	ID                 id.ID           `db:"id"`
	ReportID           id.ID           `db:"report_id"`
	Snapshot           json.RawMessage `db:"snapshot"`
	SnapshotCompressed []byte          `db:"snapshot_compressed"`
	CompressionAlgo    CompressionAlgo `db:"compression_algo"`
	CreatedAt          time.Time       `db:"created_at"`
}

// ArchiveConfig tunes snapshot compression.
type ArchiveConfig struct {
	// CompressionLevel is a zstd compression level, 1 (fastest) to 11 (best)
	CompressionLevel int

	// CompressThreshold is the snapshot size in bytes above which the
	// snapshot is stored compressed instead of as plain JSONB
	CompressThreshold int
}

// DefaultArchiveConfig returns the default compression settings.
func DefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		CompressionLevel:  3,
		CompressThreshold: 10 * 1024,
	}
}

// ArchiveService stores report snapshots, zstd-compressing large ones.
// It implements report.Archiver.
type ArchiveService struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ report.Archiver = (*ArchiveService)(nil)

// NewArchiveService creates a new archive service. Zero config fields
// fall back to DefaultArchiveConfig values.
func NewArchiveService(txManager *TxManager, cfg ArchiveConfig) (*ArchiveService, error) {
	defaults := DefaultArchiveConfig()
	if cfg.CompressionLevel <= 0 {
		cfg.CompressionLevel = defaults.CompressionLevel
	}
	if cfg.CompressThreshold <= 0 {
		cfg.CompressThreshold = defaults.CompressThreshold
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(cfg.CompressionLevel)))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &ArchiveService{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: cfg.CompressThreshold,
	}, nil
}

// ArchiveReport stores a snapshot of the full report at close time.
func (s *ArchiveService) ArchiveReport(ctx context.Context, details *report.Details) error {
	snapshot, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	entry := ArchiveEntry{
		ID:              id.New(),
		ReportID:        details.ID,
		Snapshot:        snapshot,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	if len(snapshot) > s.compressThreshold {
		entry.SnapshotCompressed = s.encoder.EncodeAll(snapshot, nil)
		entry.Snapshot = nil
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO report_archive (
			id, report_id, snapshot, snapshot_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = s.txManager.GetQuerier(ctx).Exec(ctx, sql,
		entry.ID, entry.ReportID,
		entry.Snapshot, entry.SnapshotCompressed, entry.CompressionAlgo,
		entry.CreatedAt,
	)
	return err
}

// ReportSnapshots retrieves archived snapshots for one report, newest
// first, decompressing as needed.
func (s *ArchiveService) ReportSnapshots(ctx context.Context, reportID id.ID, limit int) ([]ArchiveEntry, error) {
	sql := `
		SELECT id, report_id, snapshot, snapshot_compressed, compression_algo, created_at
		FROM report_archive
		WHERE report_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, reportID, limit)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var entries []ArchiveEntry
	for rows.Next() {
		var e ArchiveEntry
		err := rows.Scan(
			&e.ID, &e.ReportID, &e.Snapshot, &e.SnapshotCompressed,
			&e.CompressionAlgo, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan archive entry: %w", err)
		}

		if e.CompressionAlgo == CompressionZstd && len(e.SnapshotCompressed) > 0 {
			decompressed, err := s.decoder.DecodeAll(e.SnapshotCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress snapshot: %w", err)
			}
			e.Snapshot = decompressed
			e.SnapshotCompressed = nil
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
