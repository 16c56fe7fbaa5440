package jsonvalue

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"jsonview/internal/viewer"
)

// Format selects the parser for a document.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want auto, json or yaml)", s)
}

// Resolve returns the concrete format for a document at path.
func (f Format) Resolve(path string) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode parses data in the given format. FormatAuto is treated as JSON.
func Decode(data []byte, f Format) (viewer.Value, error) {
	if f == FormatYAML {
		return ParseYAML(data)
	}
	return Parse(data)
}

// Read parses the whole of r.
func Read(r io.Reader, f Format) (viewer.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return Decode(data, f)
}

// Load reads and parses the file at path.
func Load(path string, f Format) (viewer.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	v, err := Decode(data, f.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
