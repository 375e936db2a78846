package domain

import "errors"

// AuthMethod tags which credential path authorized a request.
type AuthMethod string

const (
	// AuthMethodAdmin means the service credential (shared admin secret)
	// matched. Bypasses ownership and staleness checks.
	AuthMethodAdmin AuthMethod = "admin"
	// AuthMethodUser means an end-user bearer token resolved to a principal
	// matching the claimed authUserId.
	AuthMethodUser AuthMethod = "user"
)

// Authorization is the result of a successful credential check. Downstream
// logic (staleness guard, audit labelling) switches on Method rather than on
// a pile of booleans.
type Authorization struct {
	Method    AuthMethod
	Principal string
}

// IsAdmin reports whether the request was authorized by the service
// credential rather than an end-user token.
func (a Authorization) IsAdmin() bool {
	return a.Method == AuthMethodAdmin
}

var ErrUnauthorized = errors.New("authorization failed")
var ErrTokenInvalid = errors.New("invalid or expired token")
