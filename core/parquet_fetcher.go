package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ValueRecord is the parquet row layout for report values.
type ValueRecord struct {
	Row    int64   `parquet:"row"`
	Column int64   `parquet:"column"`
	Value  float64 `parquet:"value"`
}

// TargetRecord is the parquet row layout of the audit export.
type TargetRecord struct {
	RunID  string `parquet:"run_id"`
	Row    int64  `parquet:"row"`
	Column int64  `parquet:"column"`
	Cell   string `parquet:"cell"`
	Value  string `parquet:"value"`
}

// ParquetDataFetcher reads ValueRecord rows from a parquet file.
type ParquetDataFetcher struct{}

func NewParquetDataFetcher() *ParquetDataFetcher {
	return &ParquetDataFetcher{}
}

func (f *ParquetDataFetcher) Fetch(location string, params map[string]string) ([]map[string]interface{}, error) {
	records, err := parquet.ReadFile[ValueRecord](location)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", location, err)
	}

	result := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		result = append(result, map[string]interface{}{
			"row":    r.Row,
			"column": r.Column,
			"value":  r.Value,
		})
	}
	return result, nil
}

// WriteParquetTargets exports the resolved writes of a run, zstd compressed.
func WriteParquetTargets(path, runID string, writes []TargetCell) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating parquet file: %w", err)
	}
	defer file.Close()

	records := make([]TargetRecord, 0, len(writes))
	for _, w := range writes {
		rec := TargetRecord{RunID: runID, Row: int64(w.Row), Column: int64(w.Column), Value: w.Value}
		rec.Cell = cellName(w.Row, w.Column)
		records = append(records, rec)
	}

	writer := parquet.NewGenericWriter[TargetRecord](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBestCompression}),
	)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("error writing parquet rows: %w", err)
	}
	// Close flushes buffers and writes the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("error closing parquet writer: %w", err)
	}
	return nil
}
