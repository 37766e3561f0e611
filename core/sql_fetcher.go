package core

import (
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// SQLDataFetcher implements DataFetcher on database/sql (mysql, postgres, sqlite3).
// Location is either a table name or a SELECT query.
type SQLDataFetcher struct {
	DB         *sql.DB
	DriverName string
}

// NewSQLDataFetcher creates a new fetcher.
func NewSQLDataFetcher(db *sql.DB, driverName string) *SQLDataFetcher {
	return &SQLDataFetcher{
		DB:         db,
		DriverName: driverName,
	}
}

// buildQuery returns the statement and arguments for location filtered by
// equality on params. Keys are sorted so the statement is stable.
func (f *SQLDataFetcher) buildQuery(location string, params map[string]string) (string, []interface{}, error) {
	location = strings.TrimSpace(location)
	var query string
	if strings.HasPrefix(strings.ToUpper(location), "SELECT") {
		if len(params) == 0 {
			return location, nil, nil
		}
		query = fmt.Sprintf("SELECT * FROM (%s) AS report", location)
	} else {
		if !identifierPattern.MatchString(location) {
			return "", nil, fmt.Errorf("invalid table name %q", location)
		}
		query = fmt.Sprintf("SELECT * FROM %s", location)
	}

	if len(params) == 0 {
		return query, nil, nil
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if !identifierPattern.MatchString(k) {
			return "", nil, fmt.Errorf("invalid filter column %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for i, k := range keys {
		if f.DriverName == "postgres" {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", k, i+1))
		} else {
			conditions = append(conditions, fmt.Sprintf("%s = ?", k))
		}
		args = append(args, params[k])
	}
	return query + " WHERE " + strings.Join(conditions, " AND "), args, nil
}

// Fetch runs the query and returns each row as a column -> value map.
func (f *SQLDataFetcher) Fetch(location string, params map[string]string) ([]map[string]interface{}, error) {
	query, args, err := f.buildQuery(location, params)
	if err != nil {
		return nil, err
	}

	rows, err := f.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var result []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		entry := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			// MySQL returns most values as []byte
			if b, ok := values[i].([]byte); ok {
				entry[col] = string(b)
			} else {
				entry[col] = values[i]
			}
		}
		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return result, nil
}
