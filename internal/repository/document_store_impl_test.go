package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

// --- fakeFeed ---
var _ changeFeed = (*fakeFeed)(nil)

type fakeFeed struct {
	ch         chan *redis.Message
	once       sync.Once
	closeCount int32
}

func newFakeFeed(buffer int) *fakeFeed {
	return &fakeFeed{ch: make(chan *redis.Message, buffer)}
}

func (f *fakeFeed) Channel(...redis.ChannelOption) <-chan *redis.Message {
	return f.ch
}

func (f *fakeFeed) Close() error {
	f.once.Do(func() {
		atomic.AddInt32(&f.closeCount, 1)
		close(f.ch)
	})
	return nil
}

func (f *fakeFeed) notify() {
	f.ch <- &redis.Message{Channel: ChangeChannelPrefix + "appointments", Payload: "a1"}
}

// recorder collects live query callbacks.
type recorder struct {
	snapshots chan entity.Snapshot
	errs      chan error
}

func newRecorder() *recorder {
	return &recorder{
		snapshots: make(chan entity.Snapshot, 16),
		errs:      make(chan error, 16),
	}
}

func (r *recorder) onSnapshot(s entity.Snapshot) { r.snapshots <- s }
func (r *recorder) onError(err error) { r.errs <- err }

func (r *recorder) nextSnapshot(t *testing.T) entity.Snapshot {
	t.Helper()
	select {
	case s := <-r.snapshots:
		return s
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for snapshot")
		return entity.Snapshot{}
	}
}

func (r *recorder) nextError(t *testing.T) error {
	t.Helper()
	select {
	case err := <-r.errs:
		return err
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for error")
		return nil
	}
}

func newTestStore() *DocumentStore {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &DocumentStore{log: log, now: time.Now}
}

var appointmentsQuery = domainRepo.Query{Collection: entity.CollectionAppointments, OrderBy: entity.FieldCreatedAt, Descending: true}

// countingLoad returns one more document on every call.
func countingLoad(calls *int32) loadFunc {
	return func(context.Context) ([]entity.Document, error) {
		n := atomic.AddInt32(calls, 1)
		docs := make([]entity.Document, n)
		for i := range docs {
			docs[i] = entity.Document{ID: fmt.Sprintf("d%d", i+1)}
		}
		return docs, nil
	}
}

func TestTimestamp_SortsLexicallyWithinOneSecond(t *testing.T) {
	base := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	s := newTestStore()

	stamp := func(offset time.Duration) string {
		s.now = func() time.Time { return base.Add(offset) }
		return s.timestamp()
	}

	whole := stamp(0)
	earlier := stamp(500 * time.Millisecond)
	later := stamp(510 * time.Millisecond)

	assert.Equal(t, "2025-03-10T09:30:00.500000000Z", earlier)
	assert.Less(t, whole, earlier)
	assert.Less(t, earlier, later)
	assert.Len(t, later, len(whole))
}

func TestTimestamp_NormalizesToUTC(t *testing.T) {
	s := newTestStore()
	s.now = func() time.Time {
		return time.Date(2025, time.March, 10, 19, 30, 0, 0, time.FixedZone("UTC+10", 10*60*60))
	}

	assert.Equal(t, "2025-03-10T09:30:00.000000000Z", s.timestamp())
}

func TestLiveQuery_InitialSnapshotThenOnePerChange(t *testing.T) {
	s := newTestStore()
	feed := newFakeFeed(1)
	rec := newRecorder()
	var loads int32

	lq := s.startLive(context.Background(), appointmentsQuery, feed, countingLoad(&loads), rec.onSnapshot, rec.onError)

	first := rec.nextSnapshot(t)
	assert.Equal(t, entity.CollectionAppointments, first.Collection)
	assert.Len(t, first.Documents, 1)

	feed.notify()
	second := rec.nextSnapshot(t)
	assert.Len(t, second.Documents, 2, "each snapshot is a full result set")

	lq.Unsubscribe()
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
	assert.Equal(t, int32(1), atomic.LoadInt32(&feed.closeCount))
	_, registered := s.live.Load(lq.id)
	assert.False(t, registered)
}

func TestLiveQuery_CoalescesBurstOfChanges(t *testing.T) {
	s := newTestStore()
	feed := newFakeFeed(3)
	rec := newRecorder()
	release := make(chan struct{})
	var loads int32
	load := func(ctx context.Context) ([]entity.Document, error) {
		if atomic.AddInt32(&loads, 1) == 1 {
			<-release
		}
		return nil, nil
	}

	lq := s.startLive(context.Background(), appointmentsQuery, feed, load, rec.onSnapshot, rec.onError)
	feed.notify()
	feed.notify()
	feed.notify()
	close(release)

	rec.nextSnapshot(t)
	rec.nextSnapshot(t)
	lq.Unsubscribe()

	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
	assert.Empty(t, rec.snapshots)
	assert.Empty(t, rec.errs)
}

func TestLiveQuery_FeedClosedSignalsError(t *testing.T) {
	s := newTestStore()
	feed := newFakeFeed(1)
	rec := newRecorder()
	var loads int32

	lq := s.startLive(context.Background(), appointmentsQuery, feed, countingLoad(&loads), rec.onSnapshot, rec.onError)
	rec.nextSnapshot(t)

	feed.Close()

	assert.ErrorIs(t, rec.nextError(t), errChangeFeedClosed)
	lq.Unsubscribe()
	assert.Empty(t, rec.snapshots)
}

func TestLiveQuery_LoadErrorSignalsError(t *testing.T) {
	s := newTestStore()
	feed := newFakeFeed(1)
	rec := newRecorder()
	errQuery := errors.New("relation does not exist")
	load := func(context.Context) ([]entity.Document, error) { return nil, errQuery }

	lq := s.startLive(context.Background(), appointmentsQuery, feed, load, rec.onSnapshot, rec.onError)

	assert.ErrorIs(t, rec.nextError(t), errQuery)
	lq.Unsubscribe()
	assert.Empty(t, rec.snapshots)
}

func TestLiveQuery_NoCallbackAfterUnsubscribe(t *testing.T) {
	s := newTestStore()
	feed := newFakeFeed(1)
	rec := newRecorder()
	started := make(chan struct{})
	load := func(ctx context.Context) ([]entity.Document, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}

	lq := s.startLive(context.Background(), appointmentsQuery, feed, load, rec.onSnapshot, rec.onError)
	<-started

	lq.Unsubscribe()
	lq.Unsubscribe()

	assert.Empty(t, rec.snapshots)
	assert.Empty(t, rec.errs)
	assert.Equal(t, int32(1), atomic.LoadInt32(&feed.closeCount))
}

func TestDocumentStore_CloseDetachesEveryLiveQuery(t *testing.T) {
	s := newTestStore()
	feeds := []*fakeFeed{newFakeFeed(1), newFakeFeed(1)}
	rec := newRecorder()
	var loads int32

	for _, feed := range feeds {
		s.startLive(context.Background(), appointmentsQuery, feed, countingLoad(&loads), rec.onSnapshot, rec.onError)
	}
	rec.nextSnapshot(t)
	rec.nextSnapshot(t)

	s.Close()
	s.Close()

	for _, feed := range feeds {
		assert.Equal(t, int32(1), atomic.LoadInt32(&feed.closeCount))
	}
	assert.Empty(t, rec.errs)

	_, err := s.Subscribe(context.Background(), appointmentsQuery, rec.onSnapshot, rec.onError)
	require.Error(t, err)
}
