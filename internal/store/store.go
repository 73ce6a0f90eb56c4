// Package store persists the three Book-Crossing datasets as flat CSV
// files. Reads always re-parse the backing file so every operation sees
// the latest appended rows; writes are single-row appends at
// end-of-file. Nothing is ever updated or deleted.
package store

import (
	"fmt"
	"os"
	"strconv"

	"bookrate/internal/core"
	"bookrate/internal/csv"
)

// Column headers of the cleaned dataset files. Order and spelling are a
// compatibility contract with the existing data; do not change them.
var (
	UserHeader   = []string{"User-ID", "User-Name", "Location", "Age", "Password"}
	RatingHeader = []string{"User-ID", "ISBN", "Book-Rating"}
	BookHeader   = []string{"ISBN", "Book-Title", "Book-Author", "Year-Of-Publication", "Publisher", "Image-URL-M"}
)

// Store reads and appends the dataset CSV files. It holds no in-memory
// copy of the data; each Load re-reads the file.
type Store struct {
	usersPath   string
	ratingsPath string
	booksPath   string
}

// New returns a Store over the given dataset file paths.
func New(usersPath, ratingsPath, booksPath string) *Store {
	return &Store{
		usersPath:   usersPath,
		ratingsPath: ratingsPath,
		booksPath:   booksPath,
	}
}

// LoadUsers re-reads the users file. Malformed rows are skipped; a
// missing file or wrong header fails the whole load.
func (s *Store) LoadUsers() ([]core.User, error) {
	rows, err := s.load("users", s.usersPath, UserHeader)
	if err != nil {
		return nil, err
	}

	users := make([]core.User, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(UserHeader) {
			continue
		}
		id, ok := parseInt(row[0])
		if !ok {
			continue
		}
		users = append(users, core.User{
			ID:       id,
			Name:     csv.CleanCell(row[1]),
			Location: csv.CleanCell(row[2]),
			Age:      parseOptionalInt(row[3]),
			Password: row[4],
		})
	}
	return users, nil
}

// LoadRatings re-reads the ratings file, skipping malformed rows.
func (s *Store) LoadRatings() ([]core.Rating, error) {
	rows, err := s.load("ratings", s.ratingsPath, RatingHeader)
	if err != nil {
		return nil, err
	}

	ratings := make([]core.Rating, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(RatingHeader) {
			continue
		}
		userID, ok := parseInt(row[0])
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(csv.CleanCell(row[2]), 64)
		if err != nil {
			continue
		}
		ratings = append(ratings, core.Rating{
			UserID: userID,
			ISBN:   csv.CleanCell(row[1]),
			Value:  value,
		})
	}
	return ratings, nil
}

// LoadBooks re-reads the books file, skipping malformed rows. The raw
// Book-Crossing dump contains rows with shifted columns (a non-numeric
// year is the usual symptom); those are dropped here.
func (s *Store) LoadBooks() ([]core.Book, error) {
	rows, err := s.load("books", s.booksPath, BookHeader)
	if err != nil {
		return nil, err
	}

	books := make([]core.Book, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(BookHeader) {
			continue
		}
		year, ok := parseInt(row[3])
		if !ok {
			continue
		}
		books = append(books, core.Book{
			ISBN:      csv.CleanCell(row[0]),
			Title:     csv.CleanCell(row[1]),
			Author:    csv.CleanCell(row[2]),
			Year:      year,
			Publisher: csv.CleanCell(row[4]),
			ImageURL:  csv.CleanCell(row[5]),
		})
	}
	return books, nil
}

// AppendUser appends one user row. Age serializes to an empty cell when
// nil, matching how the existing data records unknown ages.
func (s *Store) AppendUser(u core.User) error {
	age := ""
	if u.Age != nil {
		age = strconv.Itoa(*u.Age)
	}
	row := []string{strconv.Itoa(u.ID), u.Name, u.Location, age, u.Password}
	if err := csv.Append(s.usersPath, row); err != nil {
		return &core.StorageError{Dataset: "users", Op: "append", Err: err}
	}
	return nil
}

// AppendRating appends one rating row. The value is written with one
// decimal place ("7.0"), the format the rest of the dataset uses.
func (s *Store) AppendRating(r core.Rating) error {
	row := []string{
		strconv.Itoa(r.UserID),
		r.ISBN,
		strconv.FormatFloat(r.Value, 'f', 1, 64),
	}
	if err := csv.Append(s.ratingsPath, row); err != nil {
		return &core.StorageError{Dataset: "ratings", Op: "append", Err: err}
	}
	return nil
}

// load reads a dataset file, validates its header row, and returns the
// data rows.
func (s *Store) load(dataset, path string, header []string) ([][]string, error) {
	rows, err := csv.Read(path)
	if err != nil {
		return nil, &core.StorageError{Dataset: dataset, Op: "load", Err: err}
	}
	if len(rows) == 0 {
		return nil, &core.StorageError{Dataset: dataset, Op: "load", Err: fmt.Errorf("%s: empty file", path)}
	}
	if err := checkHeader(rows[0], header); err != nil {
		return nil, &core.StorageError{Dataset: dataset, Op: "load", Err: fmt.Errorf("%s: %w", path, err)}
	}
	return rows[1:], nil
}

func checkHeader(got, want []string) error {
	if len(got) < len(want) {
		return fmt.Errorf("header has %d columns, want %d", len(got), len(want))
	}
	for i, name := range want {
		if csv.CleanHeader(got[i]) != name {
			return fmt.Errorf("header column %d is %q, want %q", i, got[i], name)
		}
	}
	return nil
}

// parseInt parses an integer cell, tolerating the float renderings
// pandas leaves behind ("30.0").
func parseInt(cell string) (int, bool) {
	cell = csv.CleanCell(cell)
	if cell == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(cell); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

func parseOptionalInt(cell string) *int {
	if i, ok := parseInt(cell); ok {
		return &i
	}
	return nil
}

// EnsureFiles creates any missing dataset files with just their header
// row. Loads still fail on a genuinely absent file; this is a setup
// helper for the importer and for fresh deployments, not a load-time
// fallback.
func (s *Store) EnsureFiles() error {
	for _, f := range []struct {
		path   string
		header []string
	}{
		{s.usersPath, UserHeader},
		{s.ratingsPath, RatingHeader},
		{s.booksPath, BookHeader},
	} {
		if _, err := os.Stat(f.path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := csv.Write(f.path, [][]string{f.header}); err != nil {
			return err
		}
	}
	return nil
}
