package store

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"bookrate/internal/core"
	"bookrate/internal/csv"
)

// The raw Book-Crossing dumps are semicolon-separated and Latin-1
// encoded. Import* converts them once into the cleaned comma/UTF-8
// files the application serves from.

// rawBookColumns are the columns carried over from the raw books dump.
// The small and large cover URLs are dropped.
var rawBookColumns = []string{"ISBN", "Book-Title", "Book-Author", "Year-Of-Publication", "Publisher", "Image-URL-M"}

// ImportBooks converts a raw Books.csv dump into the cleaned books
// file, returning the number of rows written. Rows missing required
// cells are skipped; the dump contains shifted and truncated lines.
func (s *Store) ImportBooks(rawPath string) (int, error) {
	rows, err := readRaw(rawPath)
	if err != nil {
		return 0, &core.StorageError{Dataset: "books", Op: "import", Err: err}
	}
	if len(rows) == 0 {
		return 0, &core.StorageError{Dataset: "books", Op: "import", Err: fmt.Errorf("%s: empty file", rawPath)}
	}

	idx, err := headerIndex(rows[0], rawBookColumns)
	if err != nil {
		return 0, &core.StorageError{Dataset: "books", Op: "import", Err: fmt.Errorf("%s: %w", rawPath, err)}
	}

	out := [][]string{BookHeader}
	for _, row := range rows[1:] {
		cleaned, ok := selectColumns(row, idx)
		if !ok {
			continue
		}
		out = append(out, cleaned)
	}

	if err := csv.Write(s.booksPath, out); err != nil {
		return 0, &core.StorageError{Dataset: "books", Op: "import", Err: err}
	}
	return len(out) - 1, nil
}

// ImportRatings converts a raw Ratings.csv dump into the cleaned
// ratings file. Zero-valued rows are dropped: the raw dump records an
// implicit interaction as rating 0, and the application only serves
// explicit 1-10 ratings.
func (s *Store) ImportRatings(rawPath string) (int, error) {
	rows, err := readRaw(rawPath)
	if err != nil {
		return 0, &core.StorageError{Dataset: "ratings", Op: "import", Err: err}
	}
	if len(rows) == 0 {
		return 0, &core.StorageError{Dataset: "ratings", Op: "import", Err: fmt.Errorf("%s: empty file", rawPath)}
	}

	idx, err := headerIndex(rows[0], RatingHeader)
	if err != nil {
		return 0, &core.StorageError{Dataset: "ratings", Op: "import", Err: fmt.Errorf("%s: %w", rawPath, err)}
	}

	out := [][]string{RatingHeader}
	for _, row := range rows[1:] {
		cells, ok := selectColumns(row, idx)
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(cells[2], 64)
		if err != nil || value < core.RatingMin || value > core.RatingMax {
			continue
		}
		cells[2] = strconv.FormatFloat(value, 'f', 1, 64)
		out = append(out, cells)
	}

	if err := csv.Write(s.ratingsPath, out); err != nil {
		return 0, &core.StorageError{Dataset: "ratings", Op: "import", Err: err}
	}
	return len(out) - 1, nil
}

// readRaw parses a semicolon-separated Latin-1 file, skipping lines the
// CSV parser rejects.
func readRaw(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := stdcsv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *stdcsv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, err
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// headerIndex maps each wanted column name to its position in the raw
// header row.
func headerIndex(header, want []string) ([]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[csv.CleanHeader(h)] = i
	}

	idx := make([]int, len(want))
	for i, name := range want {
		pos, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		idx[i] = pos
	}
	return idx, nil
}

// selectColumns extracts the indexed cells from a raw row. Returns
// false when the row is too short or the first cell is empty.
func selectColumns(row []string, idx []int) ([]string, bool) {
	out := make([]string, len(idx))
	for i, pos := range idx {
		if pos >= len(row) {
			return nil, false
		}
		out[i] = csv.CleanCell(row[pos])
	}
	if out[0] == "" {
		return nil, false
	}
	return out, true
}
