package services

import "errors"

// Typed failures returned by the service layer. Controllers map each of these
// deterministically to an HTTP status; anything else is treated as an internal
// storage fault.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("not enough permissions")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrInvalidLogin     = errors.New("incorrect email or password")
	ErrInactiveAccount  = errors.New("inactive account")
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrNotLiked         = errors.New("post not liked")
	ErrOwnerCannotLeave = errors.New("community owner cannot leave the community")
	ErrPrivateCommunity = errors.New("this is a private community, contact the administrator")
	ErrSlugExhausted    = errors.New("could not allocate a unique slug")
	ErrInvalidInput     = errors.New("invalid input")
)

// Reason returns the stable machine-readable string for a typed failure.
// Unrecognized errors map to "internal".
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrInvalidLogin):
		return "invalid_credentials"
	case errors.Is(err, ErrInactiveAccount):
		return "inactive_account"
	case errors.Is(err, ErrAlreadyLiked):
		return "already_liked"
	case errors.Is(err, ErrNotLiked):
		return "not_liked"
	case errors.Is(err, ErrOwnerCannotLeave):
		return "owner_cannot_leave"
	case errors.Is(err, ErrPrivateCommunity):
		return "private_community"
	case errors.Is(err, ErrSlugExhausted):
		return "slug_exhausted"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
