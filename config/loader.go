package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Bundle is a job together with the report sources it may reference.
type Bundle struct {
	Job     MergeConfig          `json:"job"               yaml:"job"               toml:"job"`
	Sources []ReportSourceConfig `json:"sources,omitempty" yaml:"sources,omitempty" toml:"sources,omitempty"`
}

type sourcesFile struct {
	Sources []ReportSourceConfig `yaml:"sources" toml:"sources"`
}

// decodeFile parses path as TOML when it has a .toml extension and as YAML otherwise.
func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse toml %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse yaml %s: %w", path, err)
	}
	return nil
}

// LoadMergeConfig loads a single merge job.
func LoadMergeConfig(path string) (*MergeConfig, error) {
	var cfg MergeConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadReportSource loads a single report source.
func LoadReportSource(path string) (*ReportSourceConfig, error) {
	var cfg ReportSourceConfig
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadReportSources loads a file holding a "sources" list.
func LoadReportSources(path string) (map[string]*ReportSourceConfig, error) {
	var f sourcesFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return indexSources(f.Sources)
}

// LoadConfigBundle loads a job and its inline sources from one file and
// validates them together.
func LoadConfigBundle(path string) (*MergeConfig, map[string]*ReportSourceConfig, error) {
	var b Bundle
	if err := decodeFile(path, &b); err != nil {
		return nil, nil, err
	}
	sources, err := indexSources(b.Sources)
	if err != nil {
		return nil, nil, err
	}

	// Sources may also arrive in a separate bundle; only check the job's
	// reference when this file declares any.
	validator := NewValidator(nil)
	if len(sources) > 0 {
		validator.Provider = NewMemoryConfigRegistry(sources)
	}
	for _, src := range sources {
		if err := validator.ValidateReportSource(src); err != nil {
			return nil, nil, err
		}
	}
	if err := validator.ValidateMergeConfig(&b.Job); err != nil {
		return nil, nil, err
	}
	return &b.Job, sources, nil
}

func indexSources(list []ReportSourceConfig) (map[string]*ReportSourceConfig, error) {
	sources := make(map[string]*ReportSourceConfig, len(list))
	for i := range list {
		src := &list[i]
		if _, dup := sources[src.Name]; dup {
			return nil, fmt.Errorf("duplicate report source '%s'", src.Name)
		}
		sources[src.Name] = src
	}
	return sources, nil
}

// LoadAllConfigs loads every job and source below rootDir, laid out as:
//
//	jobs/*.yaml|*.yml|*.toml
//	sources/*.yaml|*.yml|*.toml
func LoadAllConfigs(rootDir string) (map[string]*MergeConfig, map[string]*ReportSourceConfig, error) {
	jobs := make(map[string]*MergeConfig)
	sources := make(map[string]*ReportSourceConfig)

	walkDir := func(subDir string, loader func(string) error) error {
		path := filepath.Join(rootDir, subDir)
		entries, err := os.ReadDir(path)
		if os.IsNotExist(err) {
			return nil // Optional directory
		}
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(entry.Name())) {
			case ".yaml", ".yml", ".toml":
				if err := loader(filepath.Join(path, entry.Name())); err != nil {
					return err
				}
			}
		}
		return nil
	}

	err := walkDir("sources", func(f string) error {
		cfg, err := LoadReportSource(f)
		if err != nil {
			return err
		}
		sources[cfg.Name] = cfg
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("loading sources: %w", err)
	}

	err = walkDir("jobs", func(f string) error {
		cfg, err := LoadMergeConfig(f)
		if err != nil {
			return err
		}
		jobs[cfg.Id] = cfg
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("loading jobs: %w", err)
	}

	return jobs, sources, nil
}
