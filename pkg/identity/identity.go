// Package identity exposes the login capability consumed by the board.
// The actual OAuth flow runs on the JS side (native SDKs own the
// browser/app-switch dance); the WASM bridge only awaits its result.
package identity

import (
	"context"
	"fmt"
)

// ProviderName is a supported sign-in provider.
type ProviderName string

const (
	ProviderGoogle ProviderName = "google"
	ProviderApple  ProviderName = "apple"
)

// User is the authenticated account record. Maps 1:1 to the TypeScript
// User interface.
type User struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Provider ProviderName `json:"provider"`
}

// Service performs login and logout against the host's auth layer.
// Login failures propagate to the caller; the board never retries.
type Service interface {
	Login(ctx context.Context, provider ProviderName) (User, error)
	Logout(ctx context.Context) error
}

// Static is a Service that always returns a fixed user. Used in tests
// and local development builds.
type Static struct {
	User User
}

// Login returns the fixed user stamped with the requested provider.
func (s Static) Login(_ context.Context, provider ProviderName) (User, error) {
	if provider != ProviderGoogle && provider != ProviderApple {
		return User{}, fmt.Errorf("identity: unknown provider %q", provider)
	}
	u := s.User
	u.Provider = provider
	return u, nil
}

// Logout always succeeds.
func (s Static) Logout(_ context.Context) error { return nil }
