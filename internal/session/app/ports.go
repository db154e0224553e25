package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/greencart/storefront/internal/session/domain"
)

// AuthStatus is the outcome of a user-auth check. Not being authenticated is
// a normal result, not an error; the error return of CurrentUser is reserved
// for transport-level failure.
type AuthStatus struct {
	Authenticated bool
	User          domain.User
}

// UserFetcher resolves the current session against the backend.
type UserFetcher interface {
	CurrentUser(ctx context.Context) (AuthStatus, error)
}

// SellerAuth checks whether the session may use the seller surface.
type SellerAuth interface {
	SellerAuthorized(ctx context.Context) (bool, error)
}

// LogoutClient asks the backend to end the session.
type LogoutClient interface {
	Logout(ctx context.Context) error
}

// Events are the controller's outbound notifications. Nil fields are
// skipped; callbacks must not call back into the controller.
type Events struct {
	// CartChanged fires with the new derived values after any cart mutation.
	CartChanged func(count int64, total decimal.Decimal)
	// AuthChanged fires on guest/authenticated transitions.
	AuthChanged func(state domain.AuthState)
	// BootstrapComplete fires once, after all initial fetches settle.
	BootstrapComplete func()
	// Notice carries success confirmations, Warning transient problems.
	Notice  func(msg string)
	Warning func(msg string)
}
