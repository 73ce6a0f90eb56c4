package core

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Storage is the persistence port the service operates through. Each
// Load re-reads the backing file so the service never acts on stale
// in-memory state; each Append adds exactly one row at end-of-file.
type Storage interface {
	LoadUsers() ([]User, error)
	LoadRatings() ([]Rating, error)
	LoadBooks() ([]Book, error)
	AppendUser(User) error
	AppendRating(Rating) error
}

// Service implements registration, authentication, rating submission,
// and book sampling. The reload-validate-append sequences are
// serialized per dataset so two concurrent requests in this process
// cannot both pass a duplicate check before either writes. Writers in
// other processes remain unsynchronized; that is an accepted property
// of the append-only flat files.
type Service struct {
	storage Storage

	userMu   sync.Mutex
	ratingMu sync.Mutex
}

// NewService returns a Service over the given storage port.
func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// NextUserID reloads the users dataset and returns max(existing ID)+1,
// the ID a new registration should request. An empty dataset starts
// at 1.
func (s *Service) NextUserID() (int, error) {
	users, err := s.storage.LoadUsers()
	if err != nil {
		return 0, err
	}
	maxID := 0
	for _, u := range users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1, nil
}

// Register validates and appends a new user, returning the assigned
// user ID. Duplicate checks run before password strength, so a taken
// username is reported even when the password is also too short.
// Nothing is written unless all checks pass.
func (s *Service) Register(name, password string, requestedID int, location string, age *int) (int, error) {
	s.userMu.Lock()
	defer s.userMu.Unlock()

	users, err := s.storage.LoadUsers()
	if err != nil {
		return 0, err
	}

	for _, u := range users {
		if u.Name == name {
			return 0, fmt.Errorf("username %q: %w", name, ErrDuplicateUser)
		}
		if u.ID == requestedID {
			return 0, fmt.Errorf("user id %d: %w", requestedID, ErrDuplicateUser)
		}
	}

	if len(password) < MinPasswordLen {
		return 0, ErrWeakPassword
	}

	if location == "" {
		location = DefaultLocation
	}

	err = s.storage.AppendUser(User{
		ID:       requestedID,
		Name:     name,
		Location: location,
		Age:      age,
		Password: password,
	})
	if err != nil {
		return 0, err
	}
	return requestedID, nil
}

// Authenticate reloads the users dataset and looks for an exact,
// case-sensitive (name, password) match. It returns the first matching
// user's ID, or ok=false when no row matches. There is no lockout and
// no rate limiting; failures are indistinguishable between unknown
// name and wrong password.
func (s *Service) Authenticate(name, password string) (userID int, ok bool, err error) {
	users, err := s.storage.LoadUsers()
	if err != nil {
		return 0, false, err
	}
	for _, u := range users {
		if u.Name == name && u.Password == password {
			return u.ID, true, nil
		}
	}
	return 0, false, nil
}

// AddRating validates and appends one rating. A (user, book) pair may
// be rated at most once; a re-submission is rejected, never
// overwritten. The [RatingMin, RatingMax] range is the calling
// surface's responsibility and is not re-checked here.
func (s *Service) AddRating(userID int, isbn string, value float64) error {
	s.ratingMu.Lock()
	defer s.ratingMu.Unlock()

	ratings, err := s.storage.LoadRatings()
	if err != nil {
		return err
	}

	rated := ratedISBNs(ratings, userID)
	if _, dup := rated[isbn]; dup {
		return fmt.Errorf("user %d, isbn %s: %w", userID, isbn, ErrDuplicateRating)
	}

	return s.storage.AppendRating(Rating{UserID: userID, ISBN: isbn, Value: value})
}

// ratedISBNs collects the set of ISBNs the user has already rated.
func ratedISBNs(ratings []Rating, userID int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range ratings {
		if r.UserID == userID {
			set[r.ISBN] = struct{}{}
		}
	}
	return set
}

// SampleBooks reloads the books dataset and returns n distinct books
// chosen uniformly at random without replacement. When the dataset
// holds fewer than n books, all of them are returned in random order.
func (s *Service) SampleBooks(n int) ([]Book, error) {
	books, err := s.storage.LoadBooks()
	if err != nil {
		return nil, err
	}
	if n > len(books) {
		n = len(books)
	}

	sample := make([]Book, 0, n)
	for _, i := range rand.Perm(len(books))[:n] {
		sample = append(sample, books[i])
	}
	return sample, nil
}

// Stats loads the three datasets concurrently and reports their row
// counts.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.storage.LoadUsers()
		stats.Users = len(users)
		return err
	})
	g.Go(func() error {
		ratings, err := s.storage.LoadRatings()
		stats.Ratings = len(ratings)
		return err
	})
	g.Go(func() error {
		books, err := s.storage.LoadBooks()
		stats.Books = len(books)
		return err
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
