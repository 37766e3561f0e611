package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid exposes the textual content of a sheet in row-major order.
// Index [i][j] is the cell at physical row i+1, column j+1.
type Grid interface {
	Rows() ([][]string, error)
}

// MemoryGrid is a Grid backed by a plain slice.
type MemoryGrid [][]string

func (g MemoryGrid) Rows() ([][]string, error) {
	return g, nil
}

// SheetGrid reads a single worksheet of an ExcelFile.
type SheetGrid struct {
	File  ExcelFile
	Sheet string
}

func (g SheetGrid) Rows() ([][]string, error) {
	return g.File.GetRows(g.Sheet)
}

// ScanLabelCells returns every cell whose content parses as a base-10 integer,
// in row-major order. Cells that do not parse are skipped; an empty result is
// not an error.
func ScanLabelCells(grid Grid) ([]LabelCell, error) {
	rows, err := grid.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}

	cells := make([]LabelCell, 0)
	for r, row := range rows {
		for c, text := range row {
			v, ok := parseLabel(text)
			if !ok {
				continue
			}
			cells = append(cells, LabelCell{Row: r + 1, Column: c + 1, Value: v})
		}
	}
	return cells, nil
}

// ScanSheet scans one worksheet of f.
func ScanSheet(f ExcelFile, sheet string) ([]LabelCell, error) {
	cells, err := ScanLabelCells(SheetGrid{File: f, Sheet: sheet})
	if err != nil {
		return nil, fmt.Errorf("scanning sheet %s: %w", sheet, err)
	}
	return cells, nil
}

func parseLabel(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return v, true
}
