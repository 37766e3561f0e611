package core

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// MergePayload is the input of a single merge run.
type MergePayload struct {
	Workbook ExcelFile
	Sheet    string
	// Cells are the label cells to resolve against. Nil means scan the sheet.
	Cells []LabelCell
	Items []ValueItem
}

// MergeResult summarises a successful merge run.
type MergeResult struct {
	RunID         string
	LabelCells    int
	RowAnchors    int
	ColumnAnchors int
	Writes        []TargetCell
	Location      string
}

// Merger writes report values into a templated sheet.
type Merger struct {
	Sink Sink
}

// NewMerger creates a merger that persists through sink. A nil sink leaves
// persistence to the caller.
func NewMerger(sink Sink) *Merger {
	return &Merger{Sink: sink}
}

// Merge resolves every item and writes it into the sheet. Resolution happens
// before any cell is touched: if one item fails, the sheet is left unchanged
// and nothing is saved. After writing, the target sheet becomes the workbook's
// active sheet so the saved file opens on it.
func (m *Merger) Merge(p *MergePayload) (*MergeResult, error) {
	if err := validatePayload(p); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := slog.With("run", runID, "sheet", p.Sheet)

	cells := p.Cells
	if cells == nil {
		scanned, err := ScanSheet(p.Workbook, p.Sheet)
		if err != nil {
			return nil, err
		}
		cells = scanned
	}
	log.Info("Merging report values into sheet", "values", len(p.Items), "labelCells", len(cells))

	anchors := ClassifyAnchors(cells)
	log.Info("Classified anchors", "rows", len(anchors.Rows), "columns", len(anchors.Columns))

	writes, err := anchors.Resolve(p.Items)
	if err != nil {
		log.Error("Resolution failed", "error", err)
		return nil, fmt.Errorf("resolving report values: %w", err)
	}

	if err := applyWrites(p.Workbook, p.Sheet, writes); err != nil {
		log.Error("Writing cells failed", "error", err)
		return nil, err
	}

	result := &MergeResult{
		RunID:         runID,
		LabelCells:    len(cells),
		RowAnchors:    len(anchors.Rows),
		ColumnAnchors: len(anchors.Columns),
		Writes:        writes,
	}

	if m.Sink == nil {
		return result, nil
	}

	log.Info("Saving merge result")
	location, err := m.Sink.Save(p.Workbook)
	if err != nil {
		log.Error("Saving merge result failed", "error", err)
		return nil, err
	}
	result.Location = location
	return result, nil
}

func validatePayload(p *MergePayload) error {
	if p == nil {
		return invalidPayload("payload is nil")
	}
	if p.Workbook == nil {
		return invalidPayload("workbook is required")
	}
	if p.Sheet == "" {
		return invalidPayload("sheet name is required")
	}
	if p.Items == nil {
		return invalidPayload("report values are required")
	}
	for i, item := range p.Items {
		if math.IsNaN(item.Value) || math.IsInf(item.Value, 0) {
			return invalidPayload("report value %d is not a finite number", i)
		}
	}
	known := slices.ContainsFunc(p.Workbook.GetSheetList(), func(name string) bool {
		return strings.EqualFold(name, p.Sheet)
	})
	if !known {
		return invalidPayload("sheet %q not found in workbook", p.Sheet)
	}
	return nil
}

func applyWrites(f ExcelFile, sheet string, writes []TargetCell) error {
	names := make([]string, len(writes))
	for i, w := range writes {
		cell, err := excelize.CoordinatesToCellName(w.Column, w.Row)
		if err != nil {
			return fmt.Errorf("invalid target cell (%d,%d): %w", w.Row, w.Column, err)
		}
		names[i] = cell
	}
	for i, w := range writes {
		cell := names[i]
		if err := f.SetCellValue(sheet, cell, w.Value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	if idx, err := f.GetSheetIndex(sheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return nil
}
