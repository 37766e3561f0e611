package core

import (
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestSQLDataFetcher_BuildQuery(t *testing.T) {
	tests := []struct {
		name      string
		driver    string
		location  string
		params    map[string]string
		wantQuery string
		wantArgs  []interface{}
		wantErr   bool
	}{
		{
			name:      "Table without filter",
			driver:    "mysql",
			location:  "report_values",
			wantQuery: "SELECT * FROM report_values",
		},
		{
			name:      "Table with sorted filter",
			driver:    "mysql",
			location:  "report_values",
			params:    map[string]string{"year": "2024", "sheet": "F 20.04"},
			wantQuery: "SELECT * FROM report_values WHERE sheet = ? AND year = ?",
			wantArgs:  []interface{}{"F 20.04", "2024"},
		},
		{
			name:      "Postgres placeholders",
			driver:    "postgres",
			location:  "public.report_values",
			params:    map[string]string{"year": "2024", "sheet": "F 20.04"},
			wantQuery: "SELECT * FROM public.report_values WHERE sheet = $1 AND year = $2",
			wantArgs:  []interface{}{"F 20.04", "2024"},
		},
		{
			name:      "Select kept as is",
			driver:    "sqlite3",
			location:  "  select row, column, value from v  ",
			wantQuery: "select row, column, value from v",
		},
		{
			name:      "Select wrapped for filter",
			driver:    "sqlite3",
			location:  "SELECT * FROM v",
			params:    map[string]string{"sheet": "A"},
			wantQuery: "SELECT * FROM (SELECT * FROM v) AS report WHERE sheet = ?",
			wantArgs:  []interface{}{"A"},
		},
		{
			name:     "Invalid table",
			driver:   "mysql",
			location: "values; DROP TABLE x",
			wantErr:  true,
		},
		{
			name:     "Invalid filter column",
			driver:   "mysql",
			location: "report_values",
			params:   map[string]string{"a = 1 OR b": "x"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSQLDataFetcher(nil, tt.driver)
			query, args, err := f.buildQuery(tt.location, tt.params)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got query %q", query)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildQuery error: %v", err)
			}
			if query != tt.wantQuery {
				t.Errorf("query = %q, want %q", query, tt.wantQuery)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestSQLDataFetcher_FetchSQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "report.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE report_values (sheet TEXT, row_no INTEGER, col_no INTEGER, amount REAL)`,
		`INSERT INTO report_values VALUES ('F 20.04', 10, 10, 100), ('F 20.04', 20, 11, 500), ('F 01.01', 10, 10, 9)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}

	fetcher := NewSQLDataFetcher(db, "sqlite3")
	rows, err := fetcher.Fetch("report_values", map[string]string{"sheet": "F 20.04"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[1]["sheet"] != "F 20.04" {
		t.Errorf("sheet = %v", rows[1]["sheet"])
	}
	if got, err := toFloat(rows[1]["amount"]); err != nil || got != 500 {
		t.Errorf("amount = %v (%v)", rows[1]["amount"], err)
	}

	if _, err := fetcher.Fetch("missing_table", nil); err == nil {
		t.Fatalf("expected error for missing table")
	}
}
