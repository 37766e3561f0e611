package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"sheetmerge/config"
)

// ReportView holds the raw rows of a report source and knows which fields
// carry the logical coordinates and the value.
type ReportView struct {
	Config  *config.ReportSourceConfig
	Data    []map[string]interface{}
	Columns config.ColumnMapping // mapping with defaults applied
}

// NewReportView creates a new ReportView instance.
func NewReportView(conf *config.ReportSourceConfig, data []map[string]interface{}) *ReportView {
	cols := conf.Columns
	if cols.Row == "" {
		cols.Row = "row"
	}
	if cols.Column == "" {
		cols.Column = "column"
	}
	if cols.Value == "" {
		cols.Value = "value"
	}
	return &ReportView{
		Config:  conf,
		Data:    data,
		Columns: cols,
	}
}

// Filter keeps the rows whose fields match every param. Params naming a
// field that a row does not have are ignored for that row.
func (v *ReportView) Filter(params map[string]string) {
	if len(params) == 0 {
		return
	}

	var filtered []map[string]interface{}
	for _, row := range v.Data {
		match := true
		for key, want := range params {
			got, ok := lookupField(row, key)
			if !ok {
				continue
			}
			if fmt.Sprintf("%v", got) != want {
				match = false
				break
			}
		}
		if match {
			filtered = append(filtered, row)
		}
	}
	v.Data = filtered
}

// Items converts the rows into value items. Rows that do not carry usable
// coordinates or a finite value fail with ErrInvalidPayload.
func (v *ReportView) Items() ([]ValueItem, error) {
	items := make([]ValueItem, 0, len(v.Data))
	for i, row := range v.Data {
		item, err := v.item(row)
		if err != nil {
			return nil, invalidPayload("report '%s' row %d: %v", v.Config.Name, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (v *ReportView) item(row map[string]interface{}) (ValueItem, error) {
	r, err := intField(row, v.Columns.Row)
	if err != nil {
		return ValueItem{}, err
	}
	c, err := intField(row, v.Columns.Column)
	if err != nil {
		return ValueItem{}, err
	}
	raw, ok := lookupField(row, v.Columns.Value)
	if !ok {
		return ValueItem{}, fmt.Errorf("missing field '%s'", v.Columns.Value)
	}
	val, err := toFloat(raw)
	if err != nil {
		return ValueItem{}, fmt.Errorf("field '%s': %w", v.Columns.Value, err)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return ValueItem{}, fmt.Errorf("field '%s': %v is not a finite number", v.Columns.Value, raw)
	}
	return ValueItem{Row: r, Column: c, Value: val}, nil
}

// GetRowCount returns the number of rows.
func (v *ReportView) GetRowCount() int {
	return len(v.Data)
}

// Copy returns a view whose rows can be filtered without touching v.
// Config is shared as it is read-only.
func (v *ReportView) Copy() *ReportView {
	data := make([]map[string]interface{}, len(v.Data))
	for i, row := range v.Data {
		cp := make(map[string]interface{}, len(row))
		for k, val := range row {
			cp[k] = val
		}
		data[i] = cp
	}
	return &ReportView{Config: v.Config, Data: data, Columns: v.Columns}
}

// lookupField matches the field name exactly first, then case-insensitively.
func lookupField(row map[string]interface{}, name string) (interface{}, bool) {
	if val, ok := row[name]; ok {
		return val, true
	}
	for k, val := range row {
		if strings.EqualFold(k, name) {
			return val, true
		}
	}
	return nil, false
}

func intField(row map[string]interface{}, name string) (int, error) {
	raw, ok := lookupField(row, name)
	if !ok {
		return 0, fmt.Errorf("missing field '%s'", name)
	}
	f, err := toFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("field '%s': %w", name, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("field '%s': %v is out of range", name, raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("field '%s': %v is not an integer", name, raw)
	}
	return int(f), nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case []byte:
		return parseNumber(string(n))
	case string:
		return parseNumber(n)
	case nil:
		return 0, fmt.Errorf("value is null")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}
