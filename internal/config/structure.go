package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/riordanpawley/blindtimer/internal/domain"
)

// ParseStructure decodes a YAML list of levels and validates it
func ParseStructure(data []byte) (domain.Table, error) {
	var table domain.Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse structure YAML: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadStructure reads a structure file
func LoadStructure(path string) (domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read structure file: %w", err)
	}
	table, err := ParseStructure(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// MarshalStructure encodes a table as YAML
func MarshalStructure(table domain.Table) ([]byte, error) {
	data, err := yaml.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal structure: %w", err)
	}
	return data, nil
}

// SaveStructure writes a table to path, creating parent directories
func SaveStructure(path string, table domain.Table) error {
	data, err := MarshalStructure(table)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create structure directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write structure file: %w", err)
	}
	return nil
}
