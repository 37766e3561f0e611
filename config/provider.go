package config

import "fmt"

// Provider defines the interface for retrieving report source configurations.
type Provider interface {
	GetReportSource(name string) (*ReportSourceConfig, error)
}

// MemoryConfigRegistry implements Provider using an in-memory map.
type MemoryConfigRegistry struct {
	sources map[string]*ReportSourceConfig
}

// NewMemoryConfigRegistry creates a new registry with the given configurations.
func NewMemoryConfigRegistry(sources map[string]*ReportSourceConfig) *MemoryConfigRegistry {
	if sources == nil {
		sources = make(map[string]*ReportSourceConfig)
	}
	return &MemoryConfigRegistry{sources: sources}
}

// GetReportSource retrieves a ReportSourceConfig by name.
func (r *MemoryConfigRegistry) GetReportSource(name string) (*ReportSourceConfig, error) {
	if conf, ok := r.sources[name]; ok {
		return conf, nil
	}
	return nil, fmt.Errorf("report source config not found: %s", name)
}

// Register adds or replaces a source.
func (r *MemoryConfigRegistry) Register(src *ReportSourceConfig) {
	r.sources[src.Name] = src
}
