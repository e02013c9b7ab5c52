package workload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoadJSON reads a workload file containing a JSON array of descriptors.
func LoadJSON(path string) ([]Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload JSON: %w", err)
	}
	defer f.Close()
	return ParseJSON(f)
}

// ParseJSON parses a JSON descriptor array from a reader.
func ParseJSON(r io.Reader) ([]Descriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading workload JSON: %w", err)
	}
	var descriptors []Descriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("parsing workload JSON: %w", err)
	}
	return descriptors, nil
}

// Load dispatches on the file extension: .json for JSON arrays, anything
// else is treated as CSV.
func Load(path string) ([]Descriptor, error) {
	if len(path) > 5 && path[len(path)-5:] == ".json" {
		return LoadJSON(path)
	}
	return LoadCSV(path)
}
