package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"sheetmerge/config"
)

const jobReportXML = `<Report Name="F 20.04">
  <Item Row="10" Column="10" Value="100"/>
  <Item Row="10" Column="11" Value="200"/>
  <Item Row="10" Column="12" Value="0"/>
  <Item Row="20" Column="10" Value="600"/>
  <Item Row="20" Column="11" Value="500"/>
  <Item Row="20" Column="12" Value="0"/>
</Report>`

func setupJob(t *testing.T, report string) (*Job, string) {
	t.Helper()
	root := t.TempDir()
	templates := filepath.Join(root, "templates")
	if err := os.MkdirAll(templates, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := newTemplate(t, 2).SaveAs(filepath.Join(templates, "f2004.xlsx")); err != nil {
		t.Fatalf("save template: %v", err)
	}
	reportPath := filepath.Join(root, "report_2024.xml")
	if err := os.WriteFile(reportPath, []byte(report), 0644); err != nil {
		t.Fatalf("write report: %v", err)
	}

	job := &config.MergeConfig{
		Id:       "f2004",
		Name:     "F2004",
		Template: "f2004.xlsx",
		Sheet:    reportSheet,
		Report:   "values",
		Output: config.OutputConfig{
			Path:  "out/${year}",
			Audit: "audit/${year}.parquet",
		},
		Parameters: map[string]string{"year": "2023"},
	}
	registry := config.NewMemoryConfigRegistry(map[string]*config.ReportSourceConfig{
		"values": {
			Name:     "values",
			Kind:     config.SourceKindXML,
			Location: filepath.Join(root, "report_${year}.xml"),
		},
	})
	ctx := NewJobContext(job, registry, NewXMLReportFetcher(), map[string]string{"year": "2024"})
	return NewJob(ctx, templates, filepath.Join(root, "output")), root
}

func TestJob_Paths(t *testing.T) {
	j, root := setupJob(t, jobReportXML)

	if got, want := j.OutputName(), filepath.Join("out", "2024", "F2004.xlsx"); got != want {
		t.Errorf("OutputName = %s, want %s", got, want)
	}
	if got, want := j.OutputPath(), filepath.Join(root, "output", "out", "2024", "F2004.xlsx"); got != want {
		t.Errorf("OutputPath = %s, want %s", got, want)
	}
	if got, want := j.TemplatePath(), filepath.Join(root, "templates", "f2004.xlsx"); got != want {
		t.Errorf("TemplatePath = %s, want %s", got, want)
	}

	j.Context.Config.Template = filepath.Join(root, "abs.xlsx")
	if got := j.TemplatePath(); got != filepath.Join(root, "abs.xlsx") {
		t.Errorf("absolute TemplatePath = %s", got)
	}
}

func TestJob_Run(t *testing.T) {
	j, _ := setupJob(t, jobReportXML)

	res, err := j.Run(nil)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Location != j.OutputPath() {
		t.Errorf("Location = %s, want %s", res.Location, j.OutputPath())
	}
	if len(res.Writes) != 6 {
		t.Fatalf("writes = %d, want 6", len(res.Writes))
	}

	out, err := OpenExcelFile(j.OutputPath())
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer out.Close()
	want := map[string]string{"E11": "100", "F11": "200", "G11": "0", "E12": "600", "F12": "500", "G12": "0"}
	for cell, v := range want {
		if got, _ := out.GetCellValue(reportSheet, cell); got != v {
			t.Errorf("%s = %q, want %q", cell, got, v)
		}
	}

	audit, err := parquet.ReadFile[TargetRecord](filepath.Join(j.OutputRoot, "audit", "2024.parquet"))
	if err != nil {
		t.Fatalf("read audit: %v", err)
	}
	if len(audit) != 6 || audit[0].RunID != res.RunID || audit[0].Cell != "E11" {
		t.Errorf("audit = %+v", audit)
	}
}

func TestJob_RunAnchorFailure(t *testing.T) {
	j, _ := setupJob(t, `<Report><Item Row="30" Column="10" Value="1"/></Report>`)

	_, err := j.Run(nil)
	if !errors.Is(err, ErrAnchorNotFound) {
		t.Fatalf("Run error = %v, want ErrAnchorNotFound", err)
	}
	if _, statErr := os.Stat(j.OutputPath()); !os.IsNotExist(statErr) {
		t.Errorf("output should not exist, stat err = %v", statErr)
	}
}

func TestJob_RunMissingTemplate(t *testing.T) {
	j, _ := setupJob(t, jobReportXML)
	j.Context.Config.Template = "missing.xlsx"

	if _, err := j.Run(nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}
