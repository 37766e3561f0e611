package core

// LabelCell is a grid cell whose content parsed as an integer.
// Row and Column are 1-based physical coordinates.
type LabelCell struct {
	Row    int `json:"row"    yaml:"row"`
	Column int `json:"column" yaml:"column"`
	Value  int `json:"value"  yaml:"value"`
}

// ValueItem is a computed value addressed by logical row/column indices.
type ValueItem struct {
	Row    int     `json:"row"    yaml:"row"`
	Column int     `json:"column" yaml:"column"`
	Value  float64 `json:"value"  yaml:"value"`
}

// TargetCell is a resolved write: physical coordinates plus the formatted value.
type TargetCell struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Value  string `json:"value"`
}

// Anchors holds the label cells that qualify as row and column anchors.
// A cell may appear in both slices.
type Anchors struct {
	Rows    []LabelCell
	Columns []LabelCell
}
