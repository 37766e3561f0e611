package core

import (
	"fmt"
	"log/slog"
	"time"

	"sheetmerge/config"
)

// DataFetcher defines the interface for fetching raw report rows.
type DataFetcher interface {
	// Fetch returns the rows found at location, narrowed by params where the
	// backend supports it.
	Fetch(location string, params map[string]string) ([]map[string]interface{}, error)
}

// JobContext holds the state for one merge job.
type JobContext struct {
	Config         *config.MergeConfig
	Parameters     map[string]string
	Fetcher        DataFetcher
	ConfigProvider config.Provider
	// Loaded report views, keyed by source name
	LoadedReports map[string]*ReportView
}

// NewJobContext creates a new context. params override the job's own parameters.
func NewJobContext(job *config.MergeConfig, provider config.Provider, fetcher DataFetcher, params map[string]string) *JobContext {
	return &JobContext{
		Config:         job,
		Parameters:     mergeParams(job.Parameters, params, time.Now()),
		Fetcher:        fetcher,
		ConfigProvider: provider,
		LoadedReports:  make(map[string]*ReportView),
	}
}

// Expand replaces ${name} placeholders with job parameters.
func (ctx *JobContext) Expand(s string) string {
	return replacePlaceholders(s, ctx.Parameters)
}

// GetReportView resolves and loads a report source by name. Views are cached;
// callers get a copy they are free to filter.
func (ctx *JobContext) GetReportView(name string) (*ReportView, error) {
	if cached, ok := ctx.LoadedReports[name]; ok {
		return cached.Copy(), nil
	}

	conf, err := ctx.ConfigProvider.GetReportSource(name)
	if err != nil {
		return nil, err
	}

	location := ctx.Expand(conf.Location)
	data, err := ctx.Fetcher.Fetch(location, ctx.filterFor(conf))
	if err != nil {
		return nil, fmt.Errorf("fetching report '%s' from %s: %w", name, location, err)
	}

	view := NewReportView(conf, data)
	ctx.LoadedReports[name] = view
	return view.Copy(), nil
}

// ValueItems loads the named report and converts it to value items.
func (ctx *JobContext) ValueItems(name string) ([]ValueItem, error) {
	view, err := ctx.GetReportView(name)
	if err != nil {
		return nil, err
	}
	conf := view.Config
	view.Filter(ctx.filterFor(conf))

	items, err := view.Items()
	if err != nil {
		return nil, err
	}
	slog.Debug("Report loaded", "source", name, "kind", conf.Kind, "rows", view.GetRowCount(), "items", len(items))
	return items, nil
}

func (ctx *JobContext) filterFor(conf *config.ReportSourceConfig) map[string]string {
	if len(conf.Filter) == 0 {
		return nil
	}
	filter := make(map[string]string, len(conf.Filter))
	for k, v := range conf.Filter {
		filter[k] = ctx.Expand(v)
	}
	return filter
}

// MockDataFetcher is a simple implementation for testing.
type MockDataFetcher struct {
	Data map[string][]map[string]interface{}
}

func (m *MockDataFetcher) Fetch(location string, params map[string]string) ([]map[string]interface{}, error) {
	if data, ok := m.Data[location]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("report not found: %s", location)
}
