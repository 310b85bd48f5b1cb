package resource

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/fonovalabs/fonova-web/internal/cms/client"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/logging"
)

const (
	ConfirmPrompt = "Are you sure?"

	msgSaveFailed   = "Failed to save"
	msgDeleteFailed = "Failed to delete"
	msgSessionEnded = "Session expired, please log in again"
)

// Backend is the REST collection a Controller drives.
type Backend[T any] interface {
	List(ctx context.Context, token string) ([]T, error)
	Create(ctx context.Context, token string, draft any) error
	Update(ctx context.Context, token, id string, draft any) error
	Delete(ctx context.Context, token, id string) error
}

// Session supplies the bearer token and is ended when the backend rejects it.
type Session interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context, reason string)
}

// Confirmer asks the user before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Controller keeps the local copy of one collection in sync with the
// backend. Every successful mutation is followed by a full re-fetch.
type Controller[T Item, D Draft] struct {
	kind    Kind[T, D]
	backend Backend[T]
	session Session
	form    *Form[T, D]

	mu    sync.RWMutex
	items []T

	busy atomic.Bool
}

func NewController[T Item, D Draft](kind Kind[T, D], backend Backend[T], session Session) *Controller[T, D] {
	return &Controller[T, D]{
		kind:    kind,
		backend: backend,
		session: session,
		form:    NewForm(kind),
		items:   []T{},
	}
}

func (c *Controller[T, D]) Kind() Kind[T, D] {
	return c.kind
}

func (c *Controller[T, D]) Form() *Form[T, D] {
	return c.form
}

// Busy reports whether a mutation is in flight.
func (c *Controller[T, D]) Busy() bool {
	return c.busy.Load()
}

// Items returns a copy of the collection in server order.
func (c *Controller[T, D]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Controller[T, D]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Controller[T, D]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.ItemID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Edit opens the form on the item with the given id.
func (c *Controller[T, D]) Edit(id string) error {
	item, ok := c.Find(id)
	if !ok {
		return domain.ErrItemNotFound
	}
	c.form.BeginEdit(item)
	return nil
}

// List replaces the local collection with the server's.
func (c *Controller[T, D]) List(ctx context.Context) error {
	token, err := c.session.Token(ctx)
	if err != nil {
		return err
	}
	return c.refresh(ctx, token)
}

func (c *Controller[T, D]) refresh(ctx context.Context, token string) error {
	items, err := c.backend.List(ctx, token)
	if err != nil {
		return c.fail(ctx, "list", err, c.kind.FetchFailed, c.kind.FetchFailed)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Create validates draft, posts it and re-fetches the collection.
func (c *Controller[T, D]) Create(ctx context.Context, draft D) error {
	return c.mutate(ctx, "create", draft.Validate, func(token string) error {
		return c.backend.Create(ctx, token, draft)
	}, msgSaveFailed, c.kind.SaveFailed)
}

// Update validates draft, replaces item id with it and re-fetches.
func (c *Controller[T, D]) Update(ctx context.Context, id string, draft D) error {
	if id == "" {
		return domain.ErrItemNotFound
	}
	return c.mutate(ctx, "update", draft.Validate, func(token string) error {
		return c.backend.Update(ctx, token, id, draft)
	}, msgSaveFailed, c.kind.SaveFailed)
}

// Submit saves the form: an update when editing, a create otherwise.
func (c *Controller[T, D]) Submit(ctx context.Context) error {
	draft := *c.form.Draft()
	if id := c.form.EditingID(); id != "" {
		return c.Update(ctx, id, draft)
	}
	return c.Create(ctx, draft)
}

// Delete removes item id once confirmer agrees. A nil confirmer declines.
func (c *Controller[T, D]) Delete(ctx context.Context, id string, confirmer Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(ConfirmPrompt) {
		return domain.ErrCancelled
	}
	return c.mutate(ctx, "delete", nil, func(token string) error {
		return c.backend.Delete(ctx, token, id)
	}, msgDeleteFailed, msgDeleteFailed)
}

// mutate runs call under the busy guard. Once the backend has accepted the
// change, a failed re-fetch is reported wrapped in domain.ErrRefreshFailed.
func (c *Controller[T, D]) mutate(ctx context.Context, op string, validate func() error, call func(token string) error, rejected, unreachable string) error {
	if validate != nil {
		if err := validate(); err != nil {
			return err
		}
	}

	token, err := c.session.Token(ctx)
	if err != nil {
		return err
	}

	if !c.busy.CompareAndSwap(false, true) {
		return domain.ErrBusy
	}
	defer c.busy.Store(false)

	if err := call(token); err != nil {
		return c.fail(ctx, op, err, rejected, unreachable)
	}

	if op != "delete" {
		c.form.Cancel()
	}
	if err := c.refresh(ctx, token); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
	}
	return nil
}

// fail turns a backend error into what the user sees. A rejected token
// ends the session.
func (c *Controller[T, D]) fail(ctx context.Context, op string, err error, rejected, unreachable string) error {
	logger := logging.NewLogger(ctx)

	switch {
	case client.IsAuthFailure(err):
		logger.LogWarnf(op+" "+c.kind.Name, "token rejected, ending session")
		c.session.Invalidate(ctx, "server rejected token")
		return domain.NewError(domain.KindAuthorization, msgSessionEnded, err)
	case errors.Is(err, client.ErrUnreachable):
		return domain.NewError(domain.KindConnectivity, unreachable, err)
	}

	msg := client.BackendMessage(err)
	if msg == "" || op == "list" || op == "delete" {
		msg = rejected
	}
	return domain.NewError(domain.KindBackend, msg, err)
}
