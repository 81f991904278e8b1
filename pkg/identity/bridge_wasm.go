//go:build js && wasm
// +build js,wasm

package identity

import (
	"context"
	"fmt"
	"syscall/js"
)

// Bridge delegates login/logout to a host-side auth object. The host
// page installs `globalThis.VozAuth` with `login(provider)` returning a
// Promise of {id, name, email, provider} and `logout()` returning a
// Promise of undefined.
type Bridge struct{}

// NewBridge creates a bridge to the host auth object.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Login invokes the host login flow and awaits its Promise.
func (b *Bridge) Login(ctx context.Context, provider ProviderName) (User, error) {
	auth := js.Global().Get("VozAuth")
	if auth.IsUndefined() {
		return User{}, fmt.Errorf("identity: VozAuth not installed on host")
	}

	result, err := await(ctx, auth.Call("login", string(provider)))
	if err != nil {
		return User{}, fmt.Errorf("identity: login failed: %w", err)
	}

	user := User{
		ID:       result.Get("id").String(),
		Name:     result.Get("name").String(),
		Email:    result.Get("email").String(),
		Provider: ProviderName(result.Get("provider").String()),
	}
	if user.ID == "" {
		return User{}, fmt.Errorf("identity: host returned user without id")
	}
	return user, nil
}

// Logout invokes the host logout flow and awaits its Promise.
func (b *Bridge) Logout(ctx context.Context) error {
	auth := js.Global().Get("VozAuth")
	if auth.IsUndefined() {
		return fmt.Errorf("identity: VozAuth not installed on host")
	}

	if _, err := await(ctx, auth.Call("logout")); err != nil {
		return fmt.Errorf("identity: logout failed: %w", err)
	}
	return nil
}

// await blocks until a JS Promise settles, using a channel between the
// promise callbacks and the calling goroutine.
func await(ctx context.Context, promise js.Value) (js.Value, error) {
	type settled struct {
		value js.Value
		err   error
	}
	resultCh := make(chan settled, 1)

	then := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		value := js.Undefined()
		if len(args) > 0 {
			value = args[0]
		}
		resultCh <- settled{value: value}
		return nil
	})
	defer then.Release()

	catch := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		msg := "rejected"
		if len(args) > 0 {
			reason := args[0]
			if m := reason.Get("message"); !m.IsUndefined() {
				msg = m.String()
			} else {
				msg = reason.String()
			}
		}
		resultCh <- settled{err: fmt.Errorf("%s", msg)}
		return nil
	})
	defer catch.Release()

	promise.Call("then", then).Call("catch", catch)

	select {
	case r := <-resultCh:
		return r.value, r.err
	case <-ctx.Done():
		return js.Undefined(), ctx.Err()
	}
}

var _ Service = (*Bridge)(nil)
