package services

import "errors"

// Base kinds. Controllers switch on these with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrPaymentRequired = errors.New("payment required")
)

// Error is a domain failure: Kind selects the status code, Msg is what the
// client sees.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

var (
	ErrUserNotFound      = newError(ErrNotFound, "User not found")
	ErrModeratorNotFound = newError(ErrNotFound, "Moderator not found")
	ErrPostNotFound      = newError(ErrNotFound, "Post not found")

	ErrEmailTaken        = newError(ErrConflict, "Email already exists")
	ErrUserNameTaken     = newError(ErrConflict, "userName already exists")
	ErrAlreadySubscribed = newError(ErrConflict, "User has already paid for the feed")
	ErrPaymentInProgress = newError(ErrConflict, "A payment for this user is already in progress")

	ErrInvalidCredentials = newError(ErrUnauthorized, "Invalid email or password")
	ErrNotSubscribed      = newError(ErrUnauthorized, "Pay for the feed to see it")

	ErrNotOwner = newError(ErrForbidden, "You are not the owner of this post")

	ErrFollowerMissing     = newError(ErrBadRequest, "User not found")
	ErrFollowTargetMissing = newError(ErrBadRequest, "Requested user not found")
	ErrFollowSelf          = newError(ErrBadRequest, "You cannot follow or unfollow yourself")
	ErrAlreadyFollowing    = newError(ErrBadRequest, "You are already following this user")
	ErrNotFollowing        = newError(ErrBadRequest, "You are not following this user")

	ErrPaymentFailed = newError(ErrPaymentRequired, "Payment Failed")
)

// Message returns the client-facing text of err, or "" when err is not a
// domain error.
func Message(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Msg
	}
	return ""
}
