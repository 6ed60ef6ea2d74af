// Package notify keeps the unseen-notification badge of each admin session
// up to date by polling the backend on a schedule.
package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"shree-admin/internal/domain/notification"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
)

// Source is the backend side of notifications.
type Source interface {
	Notifications(ctx context.Context) (notification.Counts, error)
	MarkNotificationsSeen(ctx context.Context, t notification.Type) error
}

// Poller owns the counts of one session. Polls run on the shared Scheduler
// until Stop; a poll that overlaps a running one is skipped.
type Poller struct {
	mu         sync.Mutex
	counts     notification.Counts
	generation uint64
	subs       map[int]chan notification.View
	nextSub    int
	entry      cron.EntryID
	running    bool

	source    Source
	scheduler *Scheduler
	interval  time.Duration
	logger    echo.Logger

	polling atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewPoller(source Source, scheduler *Scheduler, interval time.Duration, logger echo.Logger) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		subs:      make(map[int]chan notification.View),
		source:    source,
		scheduler: scheduler,
		interval:  interval,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start schedules polling and runs a first poll in the background. Calling
// it again is a no-op.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}

	id, err := p.scheduler.Every(p.interval, func() {
		_ = p.Poll(p.ctx)
	})
	if err != nil {
		return err
	}
	p.entry = id
	p.running = true

	go func() { _ = p.Poll(p.ctx) }()
	return nil
}

// Stop cancels the schedule and any poll in flight, and closes every
// subscription.
func (p *Poller) Stop() {
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.scheduler.Remove(p.entry)
		p.running = false
	}
	for id, ch := range p.subs {
		close(ch)
		delete(p.subs, id)
	}
}

// Counts returns the current local counts.
func (p *Poller) Counts() notification.Counts {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts
}

// Poll fetches fresh counts. A failed poll keeps the previous counts.
func (p *Poller) Poll(ctx context.Context) error {
	if !p.polling.CompareAndSwap(false, true) {
		return nil
	}
	defer p.polling.Store(false)

	p.mu.Lock()
	gen := p.generation
	p.mu.Unlock()

	counts, err := p.source.Notifications(ctx)
	if err != nil {
		if p.logger != nil && ctx.Err() == nil {
			p.logger.Warnf("notification poll failed: %v", err)
		}
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// A MarkSeen raced with this poll; its answer predates the reset.
	if gen != p.generation {
		return nil
	}
	p.counts = counts
	p.publishLocked()
	return nil
}

// MarkSeen clears t locally before telling the backend, so the badge drops
// at once and stays down until the next poll.
func (p *Poller) MarkSeen(ctx context.Context, t notification.Type) error {
	if err := t.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	p.counts = p.counts.Seen(t)
	p.generation++
	p.publishLocked()
	p.mu.Unlock()

	return p.source.MarkNotificationsSeen(ctx, t)
}

// Subscribe returns a channel receiving the latest counts after each
// change, starting with the current ones. Slow readers only see the newest
// value. The returned func unsubscribes. After Stop the channel comes back
// already closed.
func (p *Poller) Subscribe() (<-chan notification.View, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan notification.View, 1)
	if p.ctx.Err() != nil {
		close(ch)
		return ch, func() {}
	}
	ch <- p.counts.View()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch

	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if c, ok := p.subs[id]; ok {
			close(c)
			delete(p.subs, id)
		}
	}
}

func (p *Poller) publishLocked() {
	view := p.counts.View()
	for _, ch := range p.subs {
		select {
		case ch <- view:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}
