package core

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// XMLReportFetcher reads value items from an XML report such as
//
//	<Report Name="F 20.04">
//	  <Item Row="10" Column="10" Value="100"/>
//	  <Item><Row>20</Row><Column>10</Column><Value>600</Value></Item>
//	</Report>
//
// Item elements are collected wherever they are nested; attributes and child
// elements are both accepted.
type XMLReportFetcher struct{}

func NewXMLReportFetcher() *XMLReportFetcher {
	return &XMLReportFetcher{}
}

type xmlReportItem struct {
	RowAttr    string `xml:"Row,attr"`
	ColumnAttr string `xml:"Column,attr"`
	ValueAttr  string `xml:"Value,attr"`
	RowElem    string `xml:"Row"`
	ColumnElem string `xml:"Column"`
	ValueElem  string `xml:"Value"`
}

func (it xmlReportItem) fields() map[string]interface{} {
	pick := func(attr, elem string) string {
		if strings.TrimSpace(attr) != "" {
			return attr
		}
		return elem
	}
	return map[string]interface{}{
		"row":    pick(it.RowAttr, it.RowElem),
		"column": pick(it.ColumnAttr, it.ColumnElem),
		"value":  pick(it.ValueAttr, it.ValueElem),
	}
}

func (f *XMLReportFetcher) Fetch(location string, params map[string]string) ([]map[string]interface{}, error) {
	file, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open xml report %s: %w", location, err)
	}
	defer file.Close()

	rows, name, err := DecodeXMLReport(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read xml report %s: %w", location, err)
	}
	for _, row := range rows {
		row["report"] = name
	}
	return rows, nil
}

// DecodeXMLReport returns the report's items as rows plus the report name
// (the Name attribute of the first Report element, if any).
func DecodeXMLReport(r io.Reader) ([]map[string]interface{}, string, error) {
	decoder := xml.NewDecoder(r)
	var rows []map[string]interface{}
	name := ""

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case strings.EqualFold(start.Name.Local, "Report") && name == "":
			for _, attr := range start.Attr {
				if strings.EqualFold(attr.Name.Local, "Name") {
					name = attr.Value
				}
			}
		case strings.EqualFold(start.Name.Local, "Item"):
			var item xmlReportItem
			if err := decoder.DecodeElement(&item, &start); err != nil {
				return nil, "", err
			}
			rows = append(rows, item.fields())
		}
	}
	return rows, name, nil
}
