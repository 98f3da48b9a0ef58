package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported knowledge format")
	ErrInvalidRecord     = errors.New("invalid knowledge record")
)

// Format identifies a record encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode parses a record without validating it
func Decode(data []byte, format Format) (*Record, error) {
	rec := &Record{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, rec); err != nil {
			return nil, fmt.Errorf("decode json record: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, rec); err != nil {
			return nil, fmt.Errorf("decode yaml record: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return rec, nil
}

// Parse decodes and validates a record
func Parse(data []byte, format Format) (*Record, error) {
	rec, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	if err := Validate(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadFile reads, decodes and validates the record stored at path
func LoadFile(path string) (*Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}

	return Parse(data, format)
}
