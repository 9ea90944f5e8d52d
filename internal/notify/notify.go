// Package notify models the host's desktop notification capability: a
// three-state permission plus a fire-and-forget Notify.
package notify

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnsupported means the host cannot show notifications at all.
	ErrUnsupported = errors.New("notifications are not supported on this host")
	// ErrPermissionDenied is returned by Notify when permission is not granted.
	ErrPermissionDenied = errors.New("notification permission not granted")
)

type Permission int

const (
	Default Permission = iota
	Granted
	Denied
)

func (p Permission) String() string {
	switch p {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	}
	return "default"
}

// ParsePermission reads the stored form of a permission. Unknown values are Default.
func ParsePermission(s string) Permission {
	switch s {
	case "granted":
		return Granted
	case "denied":
		return Denied
	}
	return Default
}

type Notifier interface {
	Permission() Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Notify(title, body string) error
}

// Unsupported is the notifier for hosts without a notification backend.
type Unsupported struct{}

func (Unsupported) Permission() Permission { return Denied }

func (Unsupported) RequestPermission(context.Context) (Permission, error) {
	return Denied, ErrUnsupported
}

func (Unsupported) Notify(string, string) error { return ErrUnsupported }

// New picks a notifier for the configured backend name.
func New(backend string, perms PermissionStore) (Notifier, error) {
	switch backend {
	case "", "desktop":
		return NewDesktop(perms), nil
	case "none":
		return Unsupported{}, nil
	}
	return nil, fmt.Errorf("unknown notification backend %q", backend)
}
