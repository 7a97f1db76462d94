package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/fitsunits/pkg/pipeline"
)

// WriteResults encodes results as an indented JSON array and writes it to w.
// A nil slice is written as an empty array.
func WriteResults(results []pipeline.Result, w io.Writer) error {
	if results == nil {
		results = []pipeline.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportResults writes results to a JSON file at path.
// This is a convenience wrapper around [WriteResults] for file-based output.
func ExportResults(results []pipeline.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteResults(results, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
