package core

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CsvDataFetcher reads report rows from a CSV file with a header row.
type CsvDataFetcher struct{}

func NewCsvDataFetcher() *CsvDataFetcher {
	return &CsvDataFetcher{}
}

func (f *CsvDataFetcher) Fetch(location string, params map[string]string) ([]map[string]interface{}, error) {
	file, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %s: %w", location, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv content: %w", err)
	}

	if len(records) < 1 {
		return nil, nil // Empty
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var result []map[string]interface{}
	for _, record := range records[1:] {
		item := make(map[string]interface{}, len(header))
		for j, col := range record {
			if j < len(header) {
				item[header[j]] = col
			}
		}

		match := true
		for k, v := range params {
			if colVal, hasCol := item[k]; hasCol && colVal != v {
				match = false
				break
			}
		}
		if match {
			result = append(result, item)
		}
	}

	return result, nil
}
