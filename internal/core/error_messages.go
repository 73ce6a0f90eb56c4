package core

import "errors"

// MapError converts internal errors into user-facing messages with
// stable codes. When a user reports a code, look it up here to find
// what triggered it and what they were told to do.
//
//	REG001 - Duplicate user: username or user ID already exists
//	REG002 - Weak password: shorter than the 4-character minimum
//	RATE001 - Duplicate rating: this user already rated that book
//	RATE002 - Out of range: rating outside the 1-10 scale
//	AUTH001 - Bad credentials: no user matches the name + password
//	STORE001 - Dataset unavailable: a backing CSV is missing or corrupt
//	ERR000 - Fallback for anything unrecognized
//
// Matching is by errors.Is against the core sentinels, with StorageError
// detected by type; the web layer logs the technical error alongside
// the code for correlation.

// UserMessage provides user-friendly error information with actionable
// guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// MapError maps an error to its UserMessage. A nil error maps to the
// zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	switch {
	case errors.Is(err, ErrDuplicateUser):
		return UserMessage{
			Message: "Username already exists",
			Action:  "Pick a different username and try again.",
			Code:    "REG001",
		}
	case errors.Is(err, ErrWeakPassword):
		return UserMessage{
			Message: "Password must be at least 4 characters long",
			Action:  "Choose a longer password.",
			Code:    "REG002",
		}
	case errors.Is(err, ErrDuplicateRating):
		return UserMessage{
			Message: "You have already rated that book",
			Action:  "Draw a new sample to rate different books.",
			Code:    "RATE001",
		}
	case errors.Is(err, ErrRatingRange):
		return UserMessage{
			Message: "Rating must be between 1 and 10",
			Action:  "Submit a whole number from 1 to 10.",
			Code:    "RATE002",
		}
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return UserMessage{
			Message: "The " + storageErr.Dataset + " dataset is unavailable",
			Action:  "Please try again; if the problem persists the dataset files need attention.",
			Code:    "STORE001",
		}
	}

	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again.",
		Code:    "ERR000",
	}
}

// BadCredentials is the message for a failed sign-in. It is not an
// error in the Go sense (Authenticate reports no-match via ok=false),
// so it gets its own constructor rather than a MapError branch.
func BadCredentials() UserMessage {
	return UserMessage{
		Message: "Invalid username or password",
		Action:  "Check your credentials and try again.",
		Code:    "AUTH001",
	}
}
