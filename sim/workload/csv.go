package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSV column headers for workload files. The affinity column is optional;
// workloads without it carry no core-class preference.
var workloadColumns = []string{"id", "arrival_time", "total_work_units", "priority", "affinity_hint"}

// LoadCSV reads a workload file with header
// id,arrival_time,total_work_units,priority[,affinity_hint]
// and returns the parsed descriptors in file order.
func LoadCSV(path string) ([]Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload CSV: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV parses workload CSV content from a reader.
func ParseCSV(r io.Reader) ([]Descriptor, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // affinity column is optional

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading workload header: %w", err)
	}
	if len(header) < 4 {
		return nil, fmt.Errorf("workload header has %d columns, want at least 4 (%v)", len(header), workloadColumns[:4])
	}
	for i, want := range workloadColumns[:4] {
		if header[i] != want {
			return nil, fmt.Errorf("workload column %d is %q, want %q", i, header[i], want)
		}
	}

	var descriptors []Descriptor
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading workload line %d: %w", line, err)
		}
		d, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("workload line %d: %w", line, err)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

func parseRow(row []string) (Descriptor, error) {
	var d Descriptor
	if len(row) < 4 {
		return d, fmt.Errorf("row has %d fields, want at least 4", len(row))
	}
	var err error
	if d.ID, err = strconv.Atoi(row[0]); err != nil {
		return d, fmt.Errorf("id: %w", err)
	}
	if d.Arrival, err = strconv.ParseInt(row[1], 10, 64); err != nil {
		return d, fmt.Errorf("arrival_time: %w", err)
	}
	if d.Work, err = strconv.ParseInt(row[2], 10, 64); err != nil {
		return d, fmt.Errorf("total_work_units: %w", err)
	}
	if d.Priority, err = strconv.Atoi(row[3]); err != nil {
		return d, fmt.Errorf("priority: %w", err)
	}
	if len(row) > 4 && row[4] != "" {
		if d.Affinity, err = strconv.ParseInt(row[4], 10, 64); err != nil {
			return d, fmt.Errorf("affinity_hint: %w", err)
		}
	}
	return d, nil
}
