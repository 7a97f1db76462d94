package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/fitsunits/pkg/pipeline"
)

// Format is a batch file encoding.
type Format string

// Supported batch formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension: .toml, .yaml or
// .yml, and .json.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported batch file extension %q (must be .toml, .yaml, .yml or .json)", ext)
	}
}

type batch struct {
	Conversions []pipeline.Job `json:"conversion" toml:"conversion" yaml:"conversion"`
}

// ReadJobs decodes a batch in the given format from r and validates every
// job. ReadJobs does not close r.
func ReadJobs(r io.Reader, format Format) ([]pipeline.Job, error) {
	var b batch
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&b)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&b); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&b); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if len(b.Conversions) == 0 {
		return nil, fmt.Errorf("no conversions found")
	}
	for i, job := range b.Conversions {
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("conversion %d (%s): %w", i+1, job.Label(), err)
		}
	}
	return b.Conversions, nil
}

// ImportJobs reads the batch file at path, choosing the format by extension.
func ImportJobs(path string) ([]pipeline.Job, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	jobs, err := ReadJobs(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return jobs, nil
}
