package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"
)

// PermissionKey is the settings key the desktop permission is kept under.
const PermissionKey = "notification_permission"

// PermissionStore persists the host-side permission outside the checklist record.
type PermissionStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

type sendFunc func(title, body string) error

// Desktop shows notifications through the OS notification service.
type Desktop struct {
	perms PermissionStore
	send  sendFunc

	mu   sync.Mutex
	perm Permission
}

func NewDesktop(perms PermissionStore) *Desktop {
	return newDesktop(perms, func(title, body string) error {
		return beeep.Notify(title, body, "")
	})
}

func newDesktop(perms PermissionStore, send sendFunc) *Desktop {
	d := &Desktop{perms: perms, send: send}
	if perms != nil {
		if v, err := perms.GetSetting(PermissionKey); err == nil {
			d.perm = ParsePermission(v)
		}
	}
	return d
}

func (d *Desktop) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.perm
}

// RequestPermission probes the notification service with a confirmation
// message. A working service grants permission; a failing one denies it.
func (d *Desktop) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return d.Permission(), err
	}

	perm := Granted
	if err := d.send("Sorriso Kids", "Lembretes diários ativados."); err != nil {
		perm = Denied
	}

	d.mu.Lock()
	d.perm = perm
	d.mu.Unlock()

	if d.perms != nil {
		if err := d.perms.SetSetting(PermissionKey, perm.String()); err != nil {
			return perm, fmt.Errorf("persist permission: %w", err)
		}
	}
	return perm, nil
}

func (d *Desktop) Notify(title, body string) error {
	if d.Permission() != Granted {
		return ErrPermissionDenied
	}
	if err := d.send(title, body); err != nil {
		return fmt.Errorf("desktop notify: %w", err)
	}
	return nil
}
