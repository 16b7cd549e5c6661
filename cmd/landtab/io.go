package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"landtab/table"
)

// readTable loads a table from a .csv or .xlsx path; "-" means stdin
// (CSV).
func readTable(path string) (*table.Table, error) {
	if path == "-" {
		return table.ReadCSV(os.Stdin)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return table.ReadXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return table.ReadCSV(f)
	}
}

// writeTable writes a table as CSV; "-" means stdout.
func writeTable(t *table.Table, path string) error {
	if path == "-" {
		return t.WriteCSV(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := t.WriteCSV(f); err != nil {
		return err
	}
	return f.Close()
}
