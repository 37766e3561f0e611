package core

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// TestExcelizeFile_BasicOperations checks the delegation of the thin excelize wrapper.
func TestExcelizeFile_BasicOperations(t *testing.T) {
	f := excelize.NewFile()
	adapter := WrapExcelize(f)
	defer adapter.Close()

	sheet := "Sheet1"
	idx, err := adapter.GetSheetIndex(sheet)
	if err != nil || idx == -1 {
		t.Fatalf("GetSheetIndex(%s) = %d, %v", sheet, idx, err)
	}
	if idx, _ := adapter.GetSheetIndex("Missing"); idx != -1 {
		t.Errorf("GetSheetIndex(Missing) = %d, want -1", idx)
	}

	if err := adapter.SetCellValue(sheet, "B2", "010"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	got, err := adapter.GetCellValue(sheet, "B2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if got != "010" {
		t.Errorf("GetCellValue = %q, want 010", got)
	}

	rows, err := adapter.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	want := [][]string{nil, {"", "010"}}
	if len(rows) != 2 || !reflect.DeepEqual(rows[1], want[1]) {
		t.Errorf("GetRows = %#v, want %#v", rows, want)
	}

	if list := adapter.GetSheetList(); len(list) != 1 || list[0] != sheet {
		t.Errorf("GetSheetList = %v", list)
	}
}

func TestExcelizeFile_SaveAndReopen(t *testing.T) {
	f := excelize.NewFile()
	adapter := WrapExcelize(f)
	if err := adapter.SetCellValue("Sheet1", "C3", "1,234"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := adapter.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	var buf bytes.Buffer
	if err := adapter.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	adapter.Close()

	fromDisk, err := OpenExcelFile(path)
	if err != nil {
		t.Fatalf("OpenExcelFile failed: %v", err)
	}
	defer fromDisk.Close()
	fromMemory, err := OpenExcelReader(&buf)
	if err != nil {
		t.Fatalf("OpenExcelReader failed: %v", err)
	}
	defer fromMemory.Close()

	for _, wb := range []ExcelFile{fromDisk, fromMemory} {
		if v, _ := wb.GetCellValue("Sheet1", "C3"); v != "1,234" {
			t.Errorf("C3 = %q, want 1,234", v)
		}
	}
}

func TestOpenExcelFile_Missing(t *testing.T) {
	if _, err := OpenExcelFile(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestCellName(t *testing.T) {
	if got := cellName(11, 5); got != "E11" {
		t.Errorf("cellName(11,5) = %q, want E11", got)
	}
	if got := cellName(0, 5); got != "" {
		t.Errorf("cellName(0,5) = %q, want empty", got)
	}
}
