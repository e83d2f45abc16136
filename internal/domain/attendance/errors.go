package attendance

import "errors"

var (
	ErrAlreadySignedIn    = errors.New("already signed in today")
	ErrAlreadySignedOut   = errors.New("already signed out today")
	ErrNoActiveSignIn     = errors.New("no active sign-in found for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
