package domain

import cartdomain "github.com/greencart/storefront/internal/cart/domain"

// AuthState is the session lifecycle. The only way back from Authenticated
// to Guest is an explicit logout; bootstrap runs once per process.
type AuthState int

const (
	Uninitialized AuthState = iota
	Bootstrapping
	Guest
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Bootstrapping:
		return "bootstrapping"
	case Guest:
		return "guest"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// User is the backend's view of the authenticated session. Cart is nil when
// the server holds no saved cart for the user.
type User struct {
	ID   string
	Name string
	Cart cartdomain.Ledger
}
