package notify

import (
	"context"
	"sync"
)

// Sent is one notification captured by Fake.
type Sent struct {
	Title string
	Body  string
}

// Fake is an in-memory Notifier for tests. RequestPermission moves to
// Answer; Notify records messages while Granted.
type Fake struct {
	mu     sync.Mutex
	perm   Permission
	Answer Permission
	Err    error
	sent   []Sent
}

func NewFake(perm Permission) *Fake {
	return &Fake{perm: perm, Answer: perm}
}

func (f *Fake) Permission() Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.perm
}

func (f *Fake) RequestPermission(context.Context) (Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.perm, f.Err
	}
	f.perm = f.Answer
	return f.perm, nil
}

func (f *Fake) Notify(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.perm != Granted {
		return ErrPermissionDenied
	}
	f.sent = append(f.sent, Sent{Title: title, Body: body})
	return nil
}

// Sent returns a copy of everything delivered so far.
func (f *Fake) Sent() []Sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Sent, len(f.sent))
	copy(out, f.sent)
	return out
}
