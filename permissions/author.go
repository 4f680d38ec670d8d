// Package permissions implements the author-or-read-only rule applied to
// posts and comments.
package permissions

import (
	"net/http"

	"github.com/yatube/api-go/utils"
)

// Decision is the outcome of a permission check.
type Decision int

const (
	Allow Decision = iota
	// Unauthenticated means the request needs a principal and has none.
	Unauthenticated
	// Forbidden means a principal is present but does not own the target.
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// IsSafeMethod reports whether the method only reads.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// HasPermission is the check made before any instance is loaded: reads are
// open to everyone, writes need a principal.
func HasPermission(method string, principal *utils.UserClaims) Decision {
	if IsSafeMethod(method) || principal != nil {
		return Allow
	}
	return Unauthenticated
}

// HasObjectPermission decides whether principal may run method against an
// instance owned by ownerID.
func HasObjectPermission(method string, principal *utils.UserClaims, ownerID uint) Decision {
	if IsSafeMethod(method) {
		return Allow
	}
	if principal == nil {
		return Unauthenticated
	}
	if principal.UserID != ownerID {
		return Forbidden
	}
	return Allow
}

// Check combines both checks. A nil owner means no instance is targeted.
func Check(method string, principal *utils.UserClaims, owner *uint) Decision {
	if owner == nil {
		return HasPermission(method, principal)
	}
	return HasObjectPermission(method, principal, *owner)
}
