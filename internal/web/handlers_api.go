package web

// handlers_api.go exposes the core operations as a JSON API so the
// page templates are not the only consumer: register, sign-in, rating
// submission, book sampling, and dataset stats.

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"bookrate/internal/core"
	"bookrate/internal/logging"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Location string `json:"location,omitempty"`
	Age      *int   `json:"age,omitempty"`
}

type registerResponse struct {
	UserID int `json:"user_id"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signInResponse struct {
	UserID int `json:"user_id"`
}

type addRatingRequest struct {
	ISBN   string  `json:"isbn"`
	Rating float64 `json:"rating"`
}

// handleAPIRegister registers a user and starts a session.
func (srv *Server) handleAPIRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body","code":"API001"}`, http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)
	if req.Username == "" || req.Password == "" {
		http.Error(w, `{"error":"username and password are required","code":"API002"}`, http.StatusBadRequest)
		return
	}

	requestedID, err := srv.service.NextUserID()
	if err != nil {
		srv.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	userID, err := srv.service.Register(req.Username, req.Password, requestedID, strings.TrimSpace(req.Location), req.Age)
	if err != nil {
		srv.respondError(w, r, err, statusForError(err))
		return
	}

	sess := srv.sessions.Create(userID, req.Username)
	srv.setSessionCookie(w, sess)

	logging.FromContext(r.Context()).Info("user registered", "user_id", userID, "username", req.Username)
	respondJSON(w, http.StatusCreated, registerResponse{UserID: userID})
}

// handleAPISignIn authenticates and starts a session.
func (srv *Server) handleAPISignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body","code":"API001"}`, http.StatusBadRequest)
		return
	}

	userID, ok, err := srv.service.Authenticate(strings.TrimSpace(req.Username), strings.TrimSpace(req.Password))
	if err != nil {
		srv.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		srv.respondUserMessage(w, r, core.BadCredentials(), nil, http.StatusUnauthorized)
		return
	}

	sess := srv.sessions.Create(userID, strings.TrimSpace(req.Username))
	srv.setSessionCookie(w, sess)
	respondJSON(w, http.StatusOK, signInResponse{UserID: userID})
}

// handleAPIAddRating records one rating for the signed-in user. The
// 1-10 range is enforced here, at the input surface.
func (srv *Server) handleAPIAddRating(w http.ResponseWriter, r *http.Request) {
	sess, ok := srv.sessionFromRequest(r)
	if !ok {
		srv.respondUserMessage(w, r, core.BadCredentials(), nil, http.StatusUnauthorized)
		return
	}

	var req addRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body","code":"API001"}`, http.StatusBadRequest)
		return
	}

	req.ISBN = strings.TrimSpace(req.ISBN)
	if req.ISBN == "" {
		http.Error(w, `{"error":"isbn is required","code":"API002"}`, http.StatusBadRequest)
		return
	}
	if req.Rating < core.RatingMin || req.Rating > core.RatingMax {
		srv.respondError(w, r, core.ErrRatingRange, http.StatusBadRequest)
		return
	}

	if err := srv.service.AddRating(sess.UserID, req.ISBN, req.Rating); err != nil {
		srv.respondError(w, r, err, statusForError(err))
		return
	}

	logging.FromContext(r.Context()).Info("rating accepted",
		"user_id", sess.UserID,
		"isbn", req.ISBN,
		"rating", req.Rating,
	)
	w.WriteHeader(http.StatusNoContent)
}

// handleAPIBooks returns a fresh random sample, n defaulting to the
// configured page size.
func (srv *Server) handleAPIBooks(w http.ResponseWriter, r *http.Request) {
	n := srv.cfg.Data.SampleSize
	if raw := r.URL.Query().Get("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}

	books, err := srv.service.SampleBooks(n)
	if err != nil {
		srv.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, books)
}

// handleAPIStats reports the dataset row counts.
func (srv *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	stats, err := srv.service.Stats(r.Context())
	if err != nil {
		srv.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
