// Package core provides the business logic for the book rating
// application: registration, sign-in, book sampling, and rating
// submission over the CSV-backed datasets. This package has no UI
// dependencies and can be used by any frontend.
package core

// User is one row of the users dataset. Age is optional in the source
// data and stays nil when the cell is empty. Passwords are stored and
// compared in plaintext to remain interoperable with the existing
// dataset files; see DESIGN.md for the security note.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"username"`
	Location string `json:"location"`
	Age      *int   `json:"age,omitempty"`
	Password string `json:"-"`
}

// Rating is one row of the ratings dataset. The (UserID, ISBN) pair is
// unique: a user rates a given book at most once.
type Rating struct {
	UserID int     `json:"user_id"`
	ISBN   string  `json:"isbn"`
	Value  float64 `json:"rating"`
}

// Book is one row of the read-only books dataset.
type Book struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Publisher string `json:"publisher"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Stats reports the current size of the three datasets.
type Stats struct {
	Users   int `json:"users"`
	Ratings int `json:"ratings"`
	Books   int `json:"books"`
}

// RatingMin and RatingMax bound the accepted rating scale. The range is
// enforced at the input surface (web handlers), not inside AddRating.
const (
	RatingMin = 1
	RatingMax = 10
)

// DefaultLocation is recorded when a registrant leaves location blank.
const DefaultLocation = "Unknown"
