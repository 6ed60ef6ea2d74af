package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shree-admin/internal/domain/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	counts  notification.Counts
	err     error
	seen    []notification.Type
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeSource) Notifications(ctx context.Context) (notification.Counts, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts, f.err
}

func (f *fakeSource) MarkNotificationsSeen(ctx context.Context, t notification.Type) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, t)
	return nil
}

func TestPoller_TotalAndMarkSeen(t *testing.T) {
	src := &fakeSource{counts: notification.Counts{Reviews: 2, Enquiries: 1, Support: 0}}
	p := NewPoller(src, NewScheduler(), time.Minute, nil)

	require.NoError(t, p.Poll(context.Background()))
	assert.Equal(t, 3, p.Counts().Total())

	require.NoError(t, p.MarkSeen(context.Background(), notification.TypeReviews))
	assert.Equal(t, 1, p.Counts().Total())
	assert.Equal(t, []notification.Type{notification.TypeReviews}, src.seen)
}

func TestPoller_FailedPollKeepsCounts(t *testing.T) {
	src := &fakeSource{counts: notification.Counts{Support: 4}}
	p := NewPoller(src, NewScheduler(), time.Minute, nil)
	require.NoError(t, p.Poll(context.Background()))

	src.mu.Lock()
	src.err = errors.New("down")
	src.mu.Unlock()

	assert.Error(t, p.Poll(context.Background()))
	assert.Equal(t, 4, p.Counts().Total())
}

func TestPoller_PollOlderThanMarkSeenIsDiscarded(t *testing.T) {
	block := make(chan struct{})
	src := &fakeSource{
		counts:  notification.Counts{Reviews: 2, Enquiries: 1},
		block:   block,
		entered: make(chan struct{}, 1),
	}
	p := NewPoller(src, NewScheduler(), time.Minute, nil)

	done := make(chan error, 1)
	go func() { done <- p.Poll(context.Background()) }()
	<-src.entered

	require.NoError(t, p.MarkSeen(context.Background(), notification.TypeReviews))
	close(block)
	require.NoError(t, <-done)

	assert.Equal(t, 0, p.Counts().Reviews)
}

func TestPoller_SubscribeReceivesUpdates(t *testing.T) {
	src := &fakeSource{counts: notification.Counts{Enquiries: 5}}
	p := NewPoller(src, NewScheduler(), time.Minute, nil)

	ch, unsubscribe := p.Subscribe()
	first := <-ch
	assert.Equal(t, 0, first.Total)

	require.NoError(t, p.Poll(context.Background()))
	next := <-ch
	assert.Equal(t, 5, next.Enquiries)
	assert.Equal(t, 5, next.Total)

	unsubscribe()
	_, ok := <-ch
	assert.False(t, ok)
}

func TestPoller_StartStop(t *testing.T) {
	src := &fakeSource{counts: notification.Counts{Reviews: 1}}
	s := NewScheduler()
	p := NewPoller(src, s, time.Minute, nil)

	require.NoError(t, p.Start())
	require.NoError(t, p.Start())
	assert.Equal(t, 1, s.Len())

	ch, _ := p.Subscribe()
	p.Stop()
	assert.Equal(t, 0, s.Len())

	for range ch {
	}
}

func TestPoller_SubscribeAfterStopIsClosed(t *testing.T) {
	p := NewPoller(&fakeSource{}, NewScheduler(), time.Minute, nil)
	p.Stop()

	ch, unsubscribe := p.Subscribe()
	defer unsubscribe()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription on a stopped poller never closed")
	}
}

func TestPoller_RejectsUnknownType(t *testing.T) {
	p := NewPoller(&fakeSource{}, NewScheduler(), time.Minute, nil)

	assert.Error(t, p.MarkSeen(context.Background(), notification.Type("blogs")))
}

func TestScheduler_EveryRejectsNonPositive(t *testing.T) {
	_, err := NewScheduler().Every(0, func() {})

	assert.Error(t, err)
}
