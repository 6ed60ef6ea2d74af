package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"shree-admin/internal/auth"
	"shree-admin/internal/backend"
	"shree-admin/internal/notify"
	apperrors "shree-admin/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	cleanupInterval = 5 * time.Minute

	msgSessionRejected = "Session is no longer valid"
)

// Store maps session ids to workspaces and evicts the idle ones in the
// background.
type Store struct {
	workspaces sync.Map // session id -> *Workspace
	createMu   sync.Mutex

	removeMu sync.Mutex
	onRemove []func(sessionID string)

	client       *backend.Client
	scheduler    *notify.Scheduler
	pollInterval time.Duration
	idleTTL      time.Duration
	logger       echo.Logger
	now          func() time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewStore(ctx context.Context, client *backend.Client, scheduler *notify.Scheduler, pollInterval, idleTTL time.Duration, logger echo.Logger) *Store {
	cleanupCtx, cancel := context.WithCancel(ctx)
	s := &Store{
		client:       client,
		scheduler:    scheduler,
		pollInterval: pollInterval,
		idleTTL:      idleTTL,
		logger:       logger,
		now:          time.Now,
		ctx:          cleanupCtx,
		cancel:       cancel,
		stopped:      make(chan struct{}),
	}

	go s.cleanupLoop()

	return s
}

// Stop ends the cleanup loop and tears down every workspace.
func (s *Store) Stop() {
	s.cancel()
	<-s.stopped

	s.workspaces.Range(func(key, value any) bool {
		value.(*Workspace).close()
		s.workspaces.Delete(key)
		return true
	})
}

func (s *Store) cleanupLoop() {
	defer close(s.stopped)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if n := s.CleanupIdle(); n > 0 && s.logger != nil {
				s.logger.Infof("evicted %d idle session workspaces", n)
			}
		}
	}
}

// Open returns the workspace for a credential that was just verified, for
// example by a successful login, creating it and starting its notification
// poller on first use.
func (s *Store) Open(credential string) *Workspace {
	id := auth.SessionID(credential)
	now := s.now()

	if w, ok := s.load(id, now); ok {
		return w
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()
	if w, ok := s.load(id, now); ok {
		return w
	}

	w := newWorkspace(id, s.client.For(credential), s.scheduler, s.pollInterval, s.logger)
	w.touch(now)
	if err := w.Notifications.Start(); err != nil && s.logger != nil {
		s.logger.Errorf("failed to schedule notification polling: %v", err)
	}
	s.workspaces.Store(id, w)
	return w
}

// Resolve returns the workspace of credential. A credential without one is
// checked against the backend first: a rejected credential is an
// Unauthorized error, an accepted one gets a workspace. When the backend
// cannot answer, the request is served from a throwaway workspace that is
// neither stored nor polled.
func (s *Store) Resolve(ctx context.Context, credential string) (*Workspace, error) {
	id := auth.SessionID(credential)
	if w, ok := s.load(id, s.now()); ok {
		return w, nil
	}

	api := s.client.For(credential)
	if _, err := api.Notifications(ctx); err != nil {
		if rejected(err) {
			return nil, apperrors.Unauthorized(msgSessionRejected)
		}
		w := newWorkspace(id, api, s.scheduler, s.pollInterval, s.logger)
		w.close()
		return w, nil
	}
	return s.Open(credential), nil
}

// Has reports whether sessionID has a live workspace.
func (s *Store) Has(sessionID string) bool {
	_, ok := s.workspaces.Load(sessionID)
	return ok
}

// OnRemove registers fn to run with the session id of every workspace that
// is removed or evicted.
func (s *Store) OnRemove(fn func(sessionID string)) {
	s.removeMu.Lock()
	defer s.removeMu.Unlock()
	s.onRemove = append(s.onRemove, fn)
}

func (s *Store) load(id string, now time.Time) (*Workspace, bool) {
	v, ok := s.workspaces.Load(id)
	if !ok {
		return nil, false
	}
	w := v.(*Workspace)
	w.touch(now)
	return w, true
}

func (s *Store) removed(id string) {
	s.removeMu.Lock()
	hooks := append([]func(string){}, s.onRemove...)
	s.removeMu.Unlock()
	for _, fn := range hooks {
		fn(id)
	}
}

func rejected(err error) bool {
	status := apperrors.StatusOf(err)
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// Remove tears down the workspace of credential, if any.
func (s *Store) Remove(credential string) {
	id := auth.SessionID(credential)
	if v, ok := s.workspaces.LoadAndDelete(id); ok {
		v.(*Workspace).close()
		s.removed(id)
	}
}

// CleanupIdle evicts workspaces unused for longer than the idle TTL.
func (s *Store) CleanupIdle() int {
	now := s.now()
	evicted := 0
	s.workspaces.Range(func(key, value any) bool {
		w := value.(*Workspace)
		if w.idleSince(now) > s.idleTTL {
			if _, ok := s.workspaces.LoadAndDelete(key); ok {
				w.close()
				s.removed(key.(string))
				evicted++
			}
		}
		return true
	})
	return evicted
}

func (s *Store) Len() int {
	n := 0
	s.workspaces.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
