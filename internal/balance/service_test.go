package balance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestService(reader Reader) (*service, *fakeClock, *recordingPublisher) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	pub := &recordingPublisher{}
	svc := NewService(reader, Options{Freshness: 10 * time.Second, Publisher: pub, Clock: clock.Now}).(*service)
	return svc, clock, pub
}

func TestFormatMinor(t *testing.T) {
	tests := []struct {
		minor uint64
		want  string
	}{
		{0, "0.000"},
		{100_000_000, "1.000"},
		{123_456_789, "1.235"},
		{50_000, "0.001"},
		{1_000_000_000_000, "10000.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinor(tt.minor), "minor=%d", tt.minor)
	}
}

func TestGet_ReadsThroughThenCaches(t *testing.T) {
	reader := new(MockReader)
	reader.On("Balance", mock.Anything, "0xabc").Return(uint64(250_000_000), nil).Once()
	svc, _, pub := newTestService(reader)

	b := svc.Get(context.Background(), "0xabc")
	assert.Equal(t, uint64(250_000_000), b.Minor)
	assert.Equal(t, "2.500", b.Display)
	assert.False(t, b.Stale)

	again := svc.Get(context.Background(), "0xabc")
	assert.Equal(t, b, again)
	reader.AssertExpectations(t)
	assert.Equal(t, 1, pub.count())
}

func TestGet_StaleAfterFreshnessWindow(t *testing.T) {
	reader := new(MockReader)
	reader.On("Balance", mock.Anything, "0xabc").Return(uint64(1), nil).Once()
	reader.On("Balance", mock.Anything, "0xabc").Return(uint64(0), errors.New("rpc down")).Once()
	svc, clock, _ := newTestService(reader)

	first := svc.Get(context.Background(), "0xabc")
	require.False(t, first.Stale)

	clock.now = clock.now.Add(time.Minute)
	b := svc.Get(context.Background(), "0xabc")
	assert.True(t, b.Stale)
	assert.Equal(t, uint64(1), b.Minor)
	reader.AssertExpectations(t)
}

func TestGet_DegradesToZero(t *testing.T) {
	reader := new(MockReader)
	reader.On("Balance", mock.Anything, "0xnew").Return(uint64(0), errors.New("rpc down"))
	svc, _, pub := newTestService(reader)

	b := svc.Get(context.Background(), "0xnew")
	assert.True(t, b.Stale)
	assert.Equal(t, uint64(0), b.Minor)
	assert.Equal(t, "0.000", b.Display)
	assert.Equal(t, 0, pub.count())
}

func TestRefresh_PublishesOnlyOnChange(t *testing.T) {
	reader := new(MockReader)
	reader.On("Balance", mock.Anything, "0xabc").Return(uint64(5), nil).Twice()
	reader.On("Balance", mock.Anything, "0xabc").Return(uint64(9), nil).Once()
	svc, _, pub := newTestService(reader)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx, "0xabc"))
	require.NoError(t, svc.Refresh(ctx, "0xabc"))
	require.NoError(t, svc.Refresh(ctx, "0xabc"))

	assert.Equal(t, 2, pub.count())
	last := pub.events[1]
	assert.Equal(t, event.BalanceUpdated, last.Type)
	assert.Equal(t, "0xabc", last.Player())
	assert.Equal(t, uint64(9), last.Payload.(event.BalancePayloadV1).Minor)
}

func TestRefresh_Error(t *testing.T) {
	reader := new(MockReader)
	boom := errors.New("boom")
	reader.On("Balance", mock.Anything, "0xabc").Return(uint64(0), boom)
	svc, _, _ := newTestService(reader)

	err := svc.Refresh(context.Background(), "0xabc")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), ErrContextReadFailed)
}

func TestRefreshJob(t *testing.T) {
	reader := new(MockReader)
	reader.On("Balance", mock.Anything, "0xa").Return(uint64(1), nil).Once()
	reader.On("Balance", mock.Anything, "0xb").Return(uint64(0), errors.New("down")).Once()
	svc, _, _ := newTestService(reader)

	svc.Track("0xa")
	svc.Track("0xa")
	svc.Track("0xb")
	svc.Track("")
	assert.Equal(t, []string{"0xa", "0xb"}, svc.trackedPlayers())

	job := svc.RefreshJob()
	named, ok := job.(worker.Named)
	require.True(t, ok)
	assert.Equal(t, JobNameRefresh, named.Name())

	err := job.Process(context.Background())
	assert.Error(t, err)
	reader.AssertExpectations(t)

	b, ok := svc.cache.Get("0xa")
	require.True(t, ok)
	assert.Equal(t, uint64(1), b.Minor)
}

func TestRefreshJob_StopsOnCancel(t *testing.T) {
	reader := new(MockReader)
	svc, _, _ := newTestService(reader)
	svc.Track("0xa")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := svc.RefreshJob().Process(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	reader.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
}

func TestTrack_BoundedSet(t *testing.T) {
	svc := NewService(new(MockReader), Options{TrackLimit: 2}).(*service)

	svc.Track("0xa")
	svc.Track("0xb")
	svc.Track("0xa")
	svc.Track("0xc")

	// 0xb was the least recently seen
	assert.Equal(t, []string{"0xa", "0xc"}, svc.trackedPlayers())
}

func TestTrack_IdlePlayersExpire(t *testing.T) {
	svc := NewService(new(MockReader), Options{TrackIdle: 20 * time.Millisecond}).(*service)

	svc.Track("0xa")
	require.Equal(t, []string{"0xa"}, svc.trackedPlayers())

	require.Eventually(t, func() bool { return len(svc.trackedPlayers()) == 0 }, time.Second, 5*time.Millisecond)
}
