package mutation

import (
	"context"
	"errors"
	"sync"

	apperrors "shree-admin/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	msgMutationFailed = "Something went wrong"
	msgCancelled      = "Request cancelled"
	msgRefreshFailed  = "Could not refresh the list"

	reorderKey = "\x00reorder"
)

// Outcome is what every controller operation reports. Failures never escape
// as errors or panics.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func succeeded() Outcome {
	return Outcome{Success: true}
}

func failed(err error) Outcome {
	if errors.Is(err, context.Canceled) {
		return Outcome{Message: msgCancelled}
	}
	return Outcome{Message: apperrors.Message(err, msgMutationFailed)}
}

// ListSource loads the authoritative list from the backend.
type ListSource[T Item] func(ctx context.Context) ([]T, error)

// Commit performs a mutation on the backend. A non-nil item is the
// server's canonical representation and replaces the local copy.
type Commit[T Item] func(ctx context.Context) (*T, error)

// Action is a mutation whose response carries no item.
type Action func(ctx context.Context) error

// Controller owns one resource list. Its mutex is never held across a
// backend call; concurrent mutations of the same key run one at a time in
// arrival order.
type Controller[T Item] struct {
	mu        sync.Mutex
	items     []T
	confirmed []T
	stale     bool

	source           ListSource[T]
	queue            *keyQueue
	refetchOnSuccess bool
	logger           echo.Logger
	name             string
}

type Option func(*options)

type options struct {
	refetchOnSuccess bool
	logger           echo.Logger
	name             string
}

// WithRefetchOnSuccess reloads the whole list after every successful
// mutation instead of trusting the local patch.
func WithRefetchOnSuccess() Option {
	return func(o *options) { o.refetchOnSuccess = true }
}

func WithLogger(logger echo.Logger, name string) Option {
	return func(o *options) {
		o.logger = logger
		o.name = name
	}
}

func New[T Item](source ListSource[T], opts ...Option) *Controller[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[T]{
		source:           source,
		queue:            newKeyQueue(),
		refetchOnSuccess: o.refetchOnSuccess,
		logger:           o.logger,
		name:             o.name,
	}
}

// Items returns a copy of the current list.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clone(c.items)
}

// Find returns the current copy of the item with key.
func (c *Controller[T]) Find(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.ItemKey() == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Lookup is Find for a list that may not be loaded yet, such as a fresh
// workspace. On a miss it refreshes once and looks again. A failed refresh
// is reported in the Outcome.
func (c *Controller[T]) Lookup(ctx context.Context, key string) (T, bool, Outcome) {
	if it, ok := c.Find(key); ok {
		return it, true, succeeded()
	}
	if out := c.Refresh(ctx); !out.Success {
		var zero T
		return zero, false, out
	}
	it, ok := c.Find(key)
	return it, ok, succeeded()
}

// Stale reports whether the last reconciliation could not reach the
// backend, so the list shows the last confirmed state.
func (c *Controller[T]) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

// Refresh replaces the list with the backend's. On failure the list is kept
// and marked stale.
func (c *Controller[T]) Refresh(ctx context.Context) Outcome {
	list, err := c.source(ctx)
	if err != nil {
		c.mu.Lock()
		c.stale = true
		c.mu.Unlock()
		c.logf("%s refresh failed: %v", c.name, err)
		out := failed(err)
		if out.Message == msgMutationFailed {
			out.Message = msgRefreshFailed
		}
		return out
	}
	c.set(list)
	return succeeded()
}

// Patch applies patch locally at once, then commits. On success the patch
// (or the returned canonical item) is confirmed; on failure the list is
// reconciled with the backend.
func (c *Controller[T]) Patch(ctx context.Context, key string, patch func(T) T, commit Commit[T]) Outcome {
	if err := c.queue.acquire(ctx, key); err != nil {
		return failed(err)
	}
	defer c.queue.release(key)

	c.mu.Lock()
	c.items = ApplyOptimistic(c.items, key, patch)
	c.mu.Unlock()

	canonical, err := commit(ctx)
	if err != nil {
		c.logf("%s patch %s failed: %v", c.name, key, err)
		c.reconcile(ctx)
		return failed(err)
	}

	c.mu.Lock()
	if canonical != nil {
		c.items = Replace(c.items, *canonical)
		c.confirmed = Replace(c.confirmed, *canonical)
	} else {
		c.items = ApplyOptimistic(c.items, key, patch)
		c.confirmed = ApplyOptimistic(c.confirmed, key, patch)
	}
	c.mu.Unlock()

	c.afterSuccess(ctx)
	return succeeded()
}

// Delete removes the item only once the backend confirms.
func (c *Controller[T]) Delete(ctx context.Context, key string, commit Action) Outcome {
	if err := c.queue.acquire(ctx, key); err != nil {
		return failed(err)
	}
	defer c.queue.release(key)

	if err := commit(ctx); err != nil {
		c.logf("%s delete %s failed: %v", c.name, key, err)
		c.reconcile(ctx)
		return failed(err)
	}

	c.mu.Lock()
	c.items = Remove(c.items, key)
	c.confirmed = Remove(c.confirmed, key)
	c.mu.Unlock()

	c.afterSuccess(ctx)
	return succeeded()
}

// Create adds the backend's canonical item, or refetches when none was
// returned. Ids and timestamps are never made up locally.
func (c *Controller[T]) Create(ctx context.Context, commit Commit[T]) Outcome {
	created, err := commit(ctx)
	if err != nil {
		c.logf("%s create failed: %v", c.name, err)
		return failed(err)
	}

	if created == nil || c.refetchOnSuccess {
		c.refreshQuietly(ctx)
		return succeeded()
	}

	c.mu.Lock()
	c.items = append(Remove(c.items, (*created).ItemKey()), *created)
	c.confirmed = append(Remove(c.confirmed, (*created).ItemKey()), *created)
	c.mu.Unlock()
	return succeeded()
}

// Update is a non-optimistic edit: nothing changes locally until the
// backend confirms.
func (c *Controller[T]) Update(ctx context.Context, key string, commit Commit[T]) Outcome {
	if err := c.queue.acquire(ctx, key); err != nil {
		return failed(err)
	}
	defer c.queue.release(key)

	updated, err := commit(ctx)
	if err != nil {
		c.logf("%s update %s failed: %v", c.name, key, err)
		return failed(err)
	}

	if updated == nil || c.refetchOnSuccess {
		c.refreshQuietly(ctx)
		return succeeded()
	}

	c.mu.Lock()
	c.items = Replace(c.items, *updated)
	c.confirmed = Replace(c.confirmed, *updated)
	c.mu.Unlock()
	return succeeded()
}

// Reorder moves items into the order of keys at once, then commits.
func (c *Controller[T]) Reorder(ctx context.Context, keys []string, commit Action) Outcome {
	if err := c.queue.acquire(ctx, reorderKey); err != nil {
		return failed(err)
	}
	defer c.queue.release(reorderKey)

	c.mu.Lock()
	c.items = Reorder(c.items, keys)
	c.mu.Unlock()

	if err := commit(ctx); err != nil {
		c.logf("%s reorder failed: %v", c.name, err)
		c.reconcile(ctx)
		return failed(err)
	}

	c.mu.Lock()
	c.items = Reorder(c.items, keys)
	c.confirmed = Reorder(c.confirmed, keys)
	c.mu.Unlock()

	c.afterSuccess(ctx)
	return succeeded()
}

func (c *Controller[T]) set(list []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = clone(list)
	c.confirmed = clone(list)
	c.stale = false
}

// reconcile reloads after a failed commit. If the reload fails too, the
// list falls back to the last confirmed snapshot.
func (c *Controller[T]) reconcile(ctx context.Context) {
	list, err := c.source(context.WithoutCancel(ctx))
	if err != nil {
		c.logf("%s reconcile failed, restoring last confirmed list: %v", c.name, err)
		c.mu.Lock()
		c.items = clone(c.confirmed)
		c.stale = true
		c.mu.Unlock()
		return
	}
	c.set(list)
}

func (c *Controller[T]) afterSuccess(ctx context.Context) {
	if c.refetchOnSuccess {
		c.refreshQuietly(ctx)
	}
}

// refreshQuietly reloads after a confirmed success. A failure keeps the
// locally confirmed list.
func (c *Controller[T]) refreshQuietly(ctx context.Context) {
	list, err := c.source(context.WithoutCancel(ctx))
	if err != nil {
		c.logf("%s refresh after success failed: %v", c.name, err)
		c.mu.Lock()
		c.stale = true
		c.mu.Unlock()
		return
	}
	c.set(list)
}

func (c *Controller[T]) logf(format string, args ...interface{}) {
	if c.logger == nil {
		return
	}
	c.logger.Warnf(format, args...)
}
