package core

import (
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestParquetDataFetcher_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.parquet")
	records := []ValueRecord{
		{Row: 10, Column: 10, Value: 100},
		{Row: 20, Column: 12, Value: -1234.5},
	}
	if err := parquet.WriteFile(path, records); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	rows, err := NewParquetDataFetcher().Fetch(path, nil)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1]["row"] != int64(20) || rows[1]["value"] != -1234.5 {
		t.Errorf("row = %v", rows[1])
	}
}

func TestWriteParquetTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "run.parquet")
	writes := []TargetCell{
		{Row: 11, Column: 5, Value: "100"},
		{Row: 12, Column: 7, Value: "1,234"},
	}

	if err := WriteParquetTargets(path, "run-1", writes); err != nil {
		t.Fatalf("WriteParquetTargets error: %v", err)
	}

	got, err := parquet.ReadFile[TargetRecord](path)
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	want := []TargetRecord{
		{RunID: "run-1", Row: 11, Column: 5, Cell: "E11", Value: "100"},
		{RunID: "run-1", Row: 12, Column: 7, Cell: "G12", Value: "1,234"},
	}
	if len(got) != len(want) {
		t.Fatalf("records = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
