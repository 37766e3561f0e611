package core

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// Job runs a configured merge: load report values, open the template,
// merge, persist.
type Job struct {
	Context      *JobContext
	TemplateRoot string
	OutputRoot   string
}

func NewJob(ctx *JobContext, templateRoot, outputRoot string) *Job {
	return &Job{Context: ctx, TemplateRoot: templateRoot, OutputRoot: outputRoot}
}

// OutputName is the output path relative to the output root. A path without
// an extension is treated as a directory holding "<job name>.xlsx".
func (j *Job) OutputName() string {
	conf := j.Context.Config
	name := j.Context.Expand(conf.Output.Path)
	if filepath.Ext(name) == "" {
		name = filepath.Join(name, j.Context.Expand(conf.Name)+".xlsx")
	}
	return name
}

// OutputPath is the local file the default sink writes to.
func (j *Job) OutputPath() string {
	return filepath.Join(j.OutputRoot, j.OutputName())
}

// TemplatePath resolves the template relative to the template root.
func (j *Job) TemplatePath() string {
	tpl := j.Context.Expand(j.Context.Config.Template)
	if filepath.IsAbs(tpl) {
		return tpl
	}
	return filepath.Join(j.TemplateRoot, tpl)
}

// Run executes the job. A nil sink saves to OutputPath.
func (j *Job) Run(sink Sink) (res *MergeResult, err error) {
	conf := j.Context.Config
	if sink == nil {
		sink = &FileSink{Path: j.OutputPath()}
	}

	items, err := j.Context.ValueItems(conf.Report)
	if err != nil {
		return nil, err
	}

	f, err := OpenExcelFile(j.TemplatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer func(f ExcelFile) {
		if closeErr := f.Close(); closeErr != nil {
			if err == nil {
				err = fmt.Errorf("failed to close template file: %w", closeErr)
			} else {
				err = fmt.Errorf("%w; (cleanup error: %v)", err, closeErr)
			}
		}
	}(f)

	res, err = NewMerger(sink).Merge(&MergePayload{
		Workbook: f,
		Sheet:    j.Context.Expand(conf.Sheet),
		Items:    items,
	})
	if err != nil {
		return nil, fmt.Errorf("merging job %s: %w", conf.Name, err)
	}

	if conf.Output.Audit != "" {
		auditPath := filepath.Join(j.OutputRoot, j.Context.Expand(conf.Output.Audit))
		if err := WriteParquetTargets(auditPath, res.RunID, res.Writes); err != nil {
			return nil, err
		}
		slog.Info("Wrote audit file", "path", auditPath, "writes", len(res.Writes))
	}
	return res, nil
}
