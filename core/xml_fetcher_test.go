package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleXMLReport = `<?xml version="1.0" encoding="utf-8"?>
<Report Name="F 20.04">
  <Items>
    <Item Row="10" Column="10" Value="100"/>
    <Item Row="10" Column="11" Value="200"/>
    <Item>
      <Row>20</Row>
      <Column>10</Column>
      <Value>600</Value>
    </Item>
  </Items>
</Report>`

func TestDecodeXMLReport(t *testing.T) {
	rows, name, err := DecodeXMLReport(strings.NewReader(sampleXMLReport))
	if err != nil {
		t.Fatalf("DecodeXMLReport error: %v", err)
	}
	if name != "F 20.04" {
		t.Errorf("name = %q, want F 20.04", name)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[1]["column"] != "11" || rows[1]["value"] != "200" {
		t.Errorf("attribute item = %v", rows[1])
	}
	if rows[2]["row"] != "20" || rows[2]["value"] != "600" {
		t.Errorf("element item = %v", rows[2])
	}
}

func TestDecodeXMLReport_Malformed(t *testing.T) {
	if _, _, err := DecodeXMLReport(strings.NewReader(`<Report><Item Row="1"`)); err == nil {
		t.Fatalf("expected error for malformed xml")
	}
}

func TestXMLReportFetcher_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xml")
	if err := os.WriteFile(path, []byte(sampleXMLReport), 0644); err != nil {
		t.Fatalf("write xml: %v", err)
	}

	rows, err := NewXMLReportFetcher().Fetch(path, nil)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for _, row := range rows {
		if row["report"] != "F 20.04" {
			t.Errorf("report = %v, want F 20.04", row["report"])
		}
	}

	if _, err := NewXMLReportFetcher().Fetch(filepath.Join(t.TempDir(), "none.xml"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
