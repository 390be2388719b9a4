package postgres

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kassa/internal/core/id"
	"kassa/internal/core/types"
	"kassa/internal/domain/report"
)

func TestArchiveServiceConfig(t *testing.T) {
	svc, err := NewArchiveService(nil, ArchiveConfig{CompressionLevel: 9, CompressThreshold: 512})
	require.NoError(t, err)
	assert.Equal(t, 512, svc.compressThreshold)

	// Zero fields fall back to the defaults.
	svc, err = NewArchiveService(nil, ArchiveConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultArchiveConfig().CompressThreshold, svc.compressThreshold)
}

func TestArchiveSnapshotRoundTrip(t *testing.T) {
	svc, err := NewArchiveService(nil, DefaultArchiveConfig())
	require.NoError(t, err)

	notes := strings.Repeat("evening shift, drawer counted twice. ", 400)
	details := &report.Details{
		Report: report.Report{
			ID:         id.New(),
			ReportDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			LocationID: id.New(),
			TotalSales: types.MustMoney("1250000"),
			Status:     report.StatusClosed,
			Notes:      &notes,
		},
		Payments: []*report.PaymentLine{
			{
				ID:               id.New(),
				PaymentMethodID:  id.New(),
				AccountID:        id.New(),
				Amount:           types.MustMoney("250000"),
				CommissionAmount: types.MustMoney("500"),
				NetAmount:        types.MustMoney("249500"),
			},
		},
	}

	snapshot, err := json.Marshal(details)
	require.NoError(t, err)
	require.Greater(t, len(snapshot), svc.compressThreshold)

	compressed := svc.encoder.EncodeAll(snapshot, nil)
	assert.Less(t, len(compressed), len(snapshot))

	restored, err := svc.decoder.DecodeAll(compressed, nil)
	require.NoError(t, err)
	assert.JSONEq(t, string(snapshot), string(restored))
}
