package middlewares

import (
	"errors"
	"net/http"
	"regexp"
)

// The SPA identifies its user with the X-User-ID header (or a ?user= query
// when headers are awkward). Absent both, everything lands on "default".
const DefaultUser = "default"

var userRE = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var ErrInvalidUser = errors.New("invalid user id")

// ResolveUser picks the acting user for a request: X-User-ID header first,
// then ?user=, then the default. Bad tokens are rejected rather than used as
// path components downstream.
func ResolveUser(r *http.Request) (string, error) {
	uid := r.Header.Get("X-User-ID")
	if uid == "" {
		uid = r.URL.Query().Get("user")
	}
	if uid == "" {
		uid = DefaultUser
	}
	if !userRE.MatchString(uid) {
		return "", ErrInvalidUser
	}
	return uid, nil
}
