package mutation

import (
	"context"
	"sync"
)

// keyQueue serialises mutations per item key in arrival order. The head of
// each line holds the turn; everyone behind it waits on their own channel.
type keyQueue struct {
	mu    sync.Mutex
	lines map[string][]chan struct{}
}

func newKeyQueue() *keyQueue {
	return &keyQueue{lines: make(map[string][]chan struct{})}
}

// acquire blocks until key is free for the caller or ctx is done.
func (q *keyQueue) acquire(ctx context.Context, key string) error {
	q.mu.Lock()
	ch := make(chan struct{})
	line := append(q.lines[key], ch)
	q.lines[key] = line
	if len(line) == 1 {
		q.mu.Unlock()
		return nil
	}
	q.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	select {
	case <-ch:
		// The turn arrived while cancelling: pass it on.
		q.releaseLocked(key)
	default:
		q.removeLocked(key, ch)
	}
	return ctx.Err()
}

func (q *keyQueue) release(key string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.releaseLocked(key)
}

func (q *keyQueue) releaseLocked(key string) {
	line := q.lines[key]
	if len(line) <= 1 {
		delete(q.lines, key)
		return
	}
	line = line[1:]
	q.lines[key] = line
	close(line[0])
}

func (q *keyQueue) removeLocked(key string, ch chan struct{}) {
	line := q.lines[key]
	for i := 1; i < len(line); i++ {
		if line[i] == ch {
			q.lines[key] = append(line[:i:i], line[i+1:]...)
			return
		}
	}
}

// pending reports how many callers hold or wait for key.
func (q *keyQueue) pending(key string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lines[key])
}
