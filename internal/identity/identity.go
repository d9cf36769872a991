package identity

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrUnauthenticated is returned when the request carries no usable identity.
var ErrUnauthenticated = errors.New("identity: unauthenticated")

// Role distinguishes customers from operators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Identity is the caller resolved from the request.
type Identity struct {
	UserID int64
	Role   Role
}

// Admin reports whether the identity may call maintenance endpoints.
func (i Identity) Admin() bool {
	return i.Role == RoleAdmin
}

// Provider resolves the caller's identity from an incoming request.
// Authentication itself happens upstream; this service only consumes the
// result.
type Provider interface {
	Resolve(r *http.Request) (Identity, error)
}

const (
	userIDHeader = "X-User-ID"
	roleHeader   = "X-User-Role"
)

// HeaderProvider trusts identity headers stamped by the API gateway. It must
// only be deployed behind a gateway that strips these headers from client
// traffic.
type HeaderProvider struct{}

func NewHeaderProvider() *HeaderProvider {
	return &HeaderProvider{}
}

func (p *HeaderProvider) Resolve(r *http.Request) (Identity, error) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return Identity{}, ErrUnauthenticated
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, ErrUnauthenticated
	}

	role := RoleCustomer
	if Role(r.Header.Get(roleHeader)) == RoleAdmin {
		role = RoleAdmin
	}
	return Identity{UserID: userID, Role: role}, nil
}
