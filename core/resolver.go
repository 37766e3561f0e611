package core

// ClassifyAnchors splits label cells into row anchors (alone on their physical
// row) and column anchors (alone on their physical column). Both passes run
// over the full candidate set, so a cell can be both or neither.
func ClassifyAnchors(cells []LabelCell) Anchors {
	perRow := make(map[int]int)
	perColumn := make(map[int]int)
	for _, c := range cells {
		perRow[c.Row]++
		perColumn[c.Column]++
	}

	var anchors Anchors
	for _, c := range cells {
		if perRow[c.Row] == 1 {
			anchors.Rows = append(anchors.Rows, c)
		}
		if perColumn[c.Column] == 1 {
			anchors.Columns = append(anchors.Columns, c)
		}
	}
	return anchors
}

// Resolve classifies cells and resolves every item against the anchors.
func Resolve(cells []LabelCell, items []ValueItem) ([]TargetCell, error) {
	return ClassifyAnchors(cells).Resolve(items)
}

// Resolve maps each item to its target cell, in input order. The first item
// that lacks a unique row or column anchor aborts the whole resolution and no
// targets are returned.
func (a Anchors) Resolve(items []ValueItem) ([]TargetCell, error) {
	rows := indexByValue(a.Rows)
	columns := indexByValue(a.Columns)

	targets := make([]TargetCell, 0, len(items))
	for i, item := range items {
		rowAnchor, err := single(rows, AxisRow, item.Row, i)
		if err != nil {
			return nil, err
		}
		columnAnchor, err := single(columns, AxisColumn, item.Column, i)
		if err != nil {
			return nil, err
		}

		row, column := targetPosition(rowAnchor, columnAnchor)
		targets = append(targets, TargetCell{
			Row:    row,
			Column: column,
			Value:  FormatValue(item.Value),
		})
	}
	return targets, nil
}

// targetPosition picks the data cell addressed by a row anchor and a column anchor.
// A row anchor strictly below and to the right of the column anchor means the
// row labels sit right of the data area, so the column anchor's column wins.
func targetPosition(rowAnchor, columnAnchor LabelCell) (int, int) {
	if rowAnchor.Row > columnAnchor.Row && rowAnchor.Column > columnAnchor.Column {
		return rowAnchor.Row, columnAnchor.Column
	}
	return max(rowAnchor.Row, columnAnchor.Row), max(rowAnchor.Column, columnAnchor.Column)
}

func indexByValue(cells []LabelCell) map[int][]LabelCell {
	idx := make(map[int][]LabelCell, len(cells))
	for _, c := range cells {
		idx[c.Value] = append(idx[c.Value], c)
	}
	return idx
}

func single(idx map[int][]LabelCell, axis Axis, logical, item int) (LabelCell, error) {
	matches := idx[logical]
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return LabelCell{}, &AnchorError{Axis: axis, Index: logical, Item: item, Err: ErrAnchorNotFound}
	default:
		return LabelCell{}, &AnchorError{Axis: axis, Index: logical, Item: item, Matches: len(matches), Err: ErrAnchorAmbiguous}
	}
}
