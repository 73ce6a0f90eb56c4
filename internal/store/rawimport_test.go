package store

import (
	"os"
	"path/filepath"
	"testing"
)

// writeLatin1 writes raw bytes so tests can include Latin-1 encoded
// characters the way the raw dumps do.
func writeLatin1(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportBooks(t *testing.T) {
	dir := t.TempDir()

	// "José Saramago" with é as Latin-1 byte 0xE9.
	raw := []byte(`"ISBN";"Book-Title";"Book-Author";"Year-Of-Publication";"Publisher";"Image-URL-S";"Image-URL-M";"Image-URL-L"` + "\n" +
		`"9722034988";"Ensaio sobre a cegueira";"Jos` + "\xe9" + ` Saramago";"1995";"Caminho";"http://img/s.jpg";"http://img/m.jpg";"http://img/l.jpg"` + "\n" +
		`"0452284244";"Blindness";"Jose Saramago";"1999";"Harvest Books";"http://img/s2.jpg";"http://img/m2.jpg";"http://img/l2.jpg"` + "\n")
	rawPath := writeLatin1(t, dir, "Books.csv", raw)

	s := New(
		filepath.Join(dir, "users.csv"),
		filepath.Join(dir, "ratings.csv"),
		filepath.Join(dir, "books.csv"),
	)

	n, err := s.ImportBooks(rawPath)
	if err != nil {
		t.Fatalf("ImportBooks() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("ImportBooks() rows = %d, want 2", n)
	}

	books, err := s.LoadBooks()
	if err != nil {
		t.Fatalf("LoadBooks() after import error = %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("LoadBooks() count = %d, want 2", len(books))
	}

	got := books[0]
	if got.ISBN != "9722034988" || got.Year != 1995 {
		t.Errorf("books[0] = %+v", got)
	}
	if got.Author != "José Saramago" {
		t.Errorf("Author = %q, want Latin-1 decoded %q", got.Author, "José Saramago")
	}
	if got.ImageURL != "http://img/m.jpg" {
		t.Errorf("ImageURL = %q, want the medium URL", got.ImageURL)
	}
}

func TestImportBooks_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	rawPath := writeLatin1(t, dir, "Books.csv",
		[]byte("\"ISBN\";\"Book-Title\"\n\"x\";\"y\"\n"))

	s := New("", "", filepath.Join(dir, "books.csv"))
	if _, err := s.ImportBooks(rawPath); err == nil {
		t.Fatal("ImportBooks() expected error for missing columns")
	}
}

func TestImportRatings(t *testing.T) {
	dir := t.TempDir()

	raw := []byte(`"User-ID";"ISBN";"Book-Rating"` + "\n" +
		`"276725";"034545104X";"0"` + "\n" + // implicit rating, dropped
		`"276726";"0155061224";"5"` + "\n" +
		`"276727";"0446520802";"10"` + "\n" +
		`"junk";"0446520802";"8"` + "\n") // bad user id survives import, skipped on load
	rawPath := writeLatin1(t, dir, "Ratings.csv", raw)

	s := New(
		filepath.Join(dir, "users.csv"),
		filepath.Join(dir, "ratings.csv"),
		filepath.Join(dir, "books.csv"),
	)

	n, err := s.ImportRatings(rawPath)
	if err != nil {
		t.Fatalf("ImportRatings() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("ImportRatings() rows = %d, want 3 (zero rating dropped)", n)
	}

	ratings, err := s.LoadRatings()
	if err != nil {
		t.Fatalf("LoadRatings() after import error = %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("LoadRatings() count = %d, want 2", len(ratings))
	}
	if ratings[0].UserID != 276726 || ratings[0].Value != 5.0 {
		t.Errorf("ratings[0] = %+v", ratings[0])
	}
	if ratings[1].Value != 10.0 {
		t.Errorf("ratings[1].Value = %v, want 10", ratings[1].Value)
	}
}
