package web

// handlers.go implements the page flow: sign-in/register when logged
// out, the rated book sample when logged in. Validation failures from
// the services re-render the page with an inline message; only storage
// failures become error responses.

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bookrate/internal/core"
	"bookrate/internal/logging"
)

// authPage is the template data for the signed-out page.
type authPage struct {
	Tab     string // "signin" or "register"
	Message string
}

// booksPage is the template data for the signed-in page.
type booksPage struct {
	Username  string
	UserID    int
	Books     []core.Book
	Message   string
	Submitted bool
	AllSaved  bool
	Results   []ratingOutcome
}

// ratingOutcome reports one book's submission result.
type ratingOutcome struct {
	Title  string
	Value  int
	Saved  bool
	Reason string
}

// handleHome renders the auth page for visitors and the current book
// sample for signed-in users. The sample is drawn once per session and
// kept until the user asks for more books.
func (srv *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess, ok := srv.sessionFromRequest(r)
	if !ok {
		tab := r.URL.Query().Get("tab")
		if tab != "register" {
			tab = "signin"
		}
		srv.render(w, r, http.StatusOK, "auth.html", authPage{Tab: tab})
		return
	}

	if len(sess.Books) == 0 {
		books, err := srv.service.SampleBooks(srv.cfg.Data.SampleSize)
		if err != nil {
			srv.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		srv.sessions.SetBooks(sess.ID, books)
		sess.Books = books
	}

	srv.render(w, r, http.StatusOK, "books.html", booksPage{
		Username: sess.Username,
		UserID:   sess.UserID,
		Books:    sess.Books,
	})
}

// handleSignIn processes the sign-in form.
func (srv *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := strings.TrimSpace(r.FormValue("password"))

	if username == "" || password == "" {
		srv.render(w, r, http.StatusBadRequest, "auth.html", authPage{
			Tab:     "signin",
			Message: "Please enter both username and password",
		})
		return
	}

	userID, ok, err := srv.service.Authenticate(username, password)
	if err != nil {
		srv.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		srv.render(w, r, http.StatusUnauthorized, "auth.html", authPage{
			Tab:     "signin",
			Message: core.BadCredentials().Message,
		})
		return
	}

	sess := srv.sessions.Create(userID, username)
	srv.setSessionCookie(w, sess)

	logging.FromContext(r.Context()).Info("user signed in", "user_id", userID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRegister processes the registration form. The next user ID is
// computed here, max(existing)+1, before calling the service.
func (srv *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := strings.TrimSpace(r.FormValue("password"))
	location := strings.TrimSpace(r.FormValue("location"))

	if username == "" || password == "" {
		srv.render(w, r, http.StatusBadRequest, "auth.html", authPage{
			Tab:     "register",
			Message: "Please enter both username and password",
		})
		return
	}

	age, err := parseAge(r.FormValue("age"))
	if err != nil {
		srv.render(w, r, http.StatusBadRequest, "auth.html", authPage{
			Tab:     "register",
			Message: err.Error(),
		})
		return
	}

	requestedID, err := srv.service.NextUserID()
	if err != nil {
		srv.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	userID, err := srv.service.Register(username, password, requestedID, location, age)
	if err != nil {
		if msg := core.MapError(err); msg.Code != "ERR000" && !isStorage(err) {
			srv.render(w, r, statusForError(err), "auth.html", authPage{
				Tab:     "register",
				Message: msg.Message,
			})
			return
		}
		srv.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	sess := srv.sessions.Create(userID, username)
	srv.setSessionCookie(w, sess)

	logging.FromContext(r.Context()).Info("user registered", "user_id", userID, "username", username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSignOut drops the session and returns to the auth page.
func (srv *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if sess, ok := srv.sessionFromRequest(r); ok {
		srv.sessions.Delete(sess.ID)
	}
	srv.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSubmitRatings saves one rating per sampled book. Each book is
// submitted independently; a duplicate on one does not stop the rest,
// and the page reports the per-book outcomes.
func (srv *Server) handleSubmitRatings(w http.ResponseWriter, r *http.Request) {
	sess, ok := srv.sessionFromRequest(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if len(sess.Books) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	page := booksPage{
		Username:  sess.Username,
		UserID:    sess.UserID,
		Books:     sess.Books,
		Submitted: true,
		AllSaved:  true,
	}

	for _, book := range sess.Books {
		value, err := parseRating(r.FormValue("rating_" + book.ISBN))
		if err != nil {
			page.AllSaved = false
			page.Results = append(page.Results, ratingOutcome{
				Title:  book.Title,
				Reason: core.MapError(err).Message,
			})
			continue
		}

		if err := srv.service.AddRating(sess.UserID, book.ISBN, float64(value)); err != nil {
			page.AllSaved = false
			page.Results = append(page.Results, ratingOutcome{
				Title:  book.Title,
				Reason: core.MapError(err).Message,
			})
			continue
		}

		page.Results = append(page.Results, ratingOutcome{
			Title: book.Title,
			Value: value,
			Saved: true,
		})
	}

	logging.FromContext(r.Context()).Info("ratings submitted",
		"user_id", sess.UserID,
		"books", len(sess.Books),
		"all_saved", page.AllSaved,
	)
	srv.render(w, r, http.StatusOK, "books.html", page)
}

// handleNewSample draws a fresh random sample for the session.
func (srv *Server) handleNewSample(w http.ResponseWriter, r *http.Request) {
	sess, ok := srv.sessionFromRequest(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	books, err := srv.service.SampleBooks(srv.cfg.Data.SampleSize)
	if err != nil {
		srv.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	srv.sessions.SetBooks(sess.ID, books)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseRating enforces the 1-10 scale at the input surface. The rating
// service itself does not re-validate the range.
func parseRating(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, core.ErrRatingRange
	}
	if value < core.RatingMin || value > core.RatingMax {
		return 0, core.ErrRatingRange
	}
	return value, nil
}

// parseAge parses the optional age field. Empty means unknown.
func parseAge(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(raw)
	if err != nil || age < 1 || age > 120 {
		return nil, errors.New("Age must be a number between 1 and 120")
	}
	return &age, nil
}

// isStorage reports whether err is a dataset read/append failure.
func isStorage(err error) bool {
	var storageErr *core.StorageError
	return errors.As(err, &storageErr)
}
