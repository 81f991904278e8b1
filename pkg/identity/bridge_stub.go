//go:build !js && !wasm
// +build !js,!wasm

package identity

import (
	"context"
	"fmt"
)

// Bridge is a stub for non-WASM builds.
type Bridge struct{}

// NewBridge creates a stub bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Login is unavailable outside the browser host.
func (b *Bridge) Login(_ context.Context, _ ProviderName) (User, error) {
	return User{}, fmt.Errorf("identity: login requires WASM environment")
}

// Logout is unavailable outside the browser host.
func (b *Bridge) Logout(_ context.Context) error {
	return fmt.Errorf("identity: logout requires WASM environment")
}

var _ Service = (*Bridge)(nil)
