package core

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Sink persists a merged workbook and reports where it went.
type Sink interface {
	Save(f ExcelFile) (string, error)
}

// FileSink saves the workbook to a local path, creating parent directories.
type FileSink struct {
	Path string
}

func (s *FileSink) Save(f ExcelFile) (string, error) {
	if s.Path == "" {
		return "", fmt.Errorf("file sink has no output path")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := f.SaveAs(s.Path); err != nil {
		return "", fmt.Errorf("failed to save output: %w", err)
	}
	return s.Path, nil
}

// BufferSink serialises the workbook into memory.
type BufferSink struct {
	Buffer bytes.Buffer
}

func (s *BufferSink) Save(f ExcelFile) (string, error) {
	s.Buffer.Reset()
	if err := f.Write(&s.Buffer); err != nil {
		return "", fmt.Errorf("failed to serialise workbook: %w", err)
	}
	return "memory", nil
}

// Bytes returns the last saved workbook.
func (s *BufferSink) Bytes() []byte {
	return s.Buffer.Bytes()
}
