package core

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelFile abstracts the workbook operations a merge needs, decoupling the
// scanner and merger from excelize.
type ExcelFile interface {
	Close() error
	GetCellValue(sheet, cell string) (string, error)
	GetRows(sheet string) ([][]string, error)
	GetSheetIndex(name string) (int, error)
	GetSheetList() []string
	SaveAs(name string) error
	SetActiveSheet(index int)
	SetCellValue(sheet, cell string, value interface{}) error
	Write(w io.Writer) error
}

type ExcelizeFile struct {
	file *excelize.File
}

// OpenExcelFile opens a workbook from disk.
func OpenExcelFile(path string) (ExcelFile, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &ExcelizeFile{file: file}, nil
}

// OpenExcelReader reads a workbook from r.
func OpenExcelReader(r io.Reader) (ExcelFile, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	return &ExcelizeFile{file: file}, nil
}

// WrapExcelize adapts an already opened excelize workbook.
func WrapExcelize(f *excelize.File) ExcelFile {
	return &ExcelizeFile{file: f}
}

func (e *ExcelizeFile) Close() error {
	return e.file.Close()
}

func (e *ExcelizeFile) GetCellValue(sheet, cell string) (string, error) {
	return e.file.GetCellValue(sheet, cell)
}

func (e *ExcelizeFile) GetRows(sheet string) ([][]string, error) {
	return e.file.GetRows(sheet)
}

func (e *ExcelizeFile) GetSheetIndex(name string) (int, error) {
	return e.file.GetSheetIndex(name)
}

func (e *ExcelizeFile) GetSheetList() []string {
	return e.file.GetSheetList()
}

func (e *ExcelizeFile) SaveAs(name string) error {
	return e.file.SaveAs(name)
}

func (e *ExcelizeFile) SetActiveSheet(index int) {
	e.file.SetActiveSheet(index)
}

func (e *ExcelizeFile) SetCellValue(sheet, cell string, value interface{}) error {
	return e.file.SetCellValue(sheet, cell, value)
}

func (e *ExcelizeFile) Write(w io.Writer) error {
	return e.file.Write(w)
}

// cellName converts 1-based coordinates to an A1 reference, or "" when out of range.
func cellName(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return name
}
