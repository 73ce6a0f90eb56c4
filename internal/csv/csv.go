// Package csv provides small helpers over encoding/csv tuned for the
// Book-Crossing dataset files: tolerant reads, header cleanup, and
// append-at-end writes.
package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read parses an entire CSV file into rows of string cells.
// Rows are allowed to have varying field counts; rows that cannot be
// parsed at all (unterminated quotes etc.) are skipped rather than
// failing the whole read, since the legacy dataset files contain the
// occasional damaged line.
func Read(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := stdcsv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Damaged line, skip it.
			var perr *stdcsv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// Write creates (or truncates) path and writes all rows.
func Write(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := stdcsv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Sync()
}

// Append adds a single row at end-of-file. The file must already exist;
// appending never creates a dataset, that is the importer's job.
func Append(path string, row []string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := stdcsv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return f.Sync()
}

// CleanHeader normalizes a header cell: strips a UTF-8 BOM, surrounding
// whitespace, and Excel formula-guard prefixes ("=\"Name\"").
func CleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	if strings.HasPrefix(h, `="`) && strings.HasSuffix(h, `"`) {
		h = h[2 : len(h)-1]
	}
	return h
}

// CleanCell trims surrounding whitespace from a data cell.
func CleanCell(c string) string {
	return strings.TrimSpace(c)
}
