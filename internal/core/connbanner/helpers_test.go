package connbanner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/samsmith08/netbanner/internal/core/bannerstore"
	"github.com/samsmith08/netbanner/internal/core/eventbus"
	"github.com/samsmith08/netbanner/pkg/interfaces"
)

var (
	mainnetRef = interfaces.NetworkRef{
		NetworkName:     "Ethereum Mainnet",
		NetworkClientID: "mainnet",
		ChainID:         "0x1",
	}
	lineaRef = interfaces.NetworkRef{
		NetworkName:     "Linea Mainnet",
		NetworkClientID: "linea-mainnet",
		ChainID:         "0xe708",
	}
)

// ============================================================================
//                              fakeSignal
// ============================================================================

// fakeSignal 手动控制的可用性信号，Set 不发通知，需调用 Notify
type fakeSignal struct {
	mu    sync.Mutex
	ref   *interfaces.NetworkRef
	topic *eventbus.Topic[*interfaces.NetworkRef]
}

func newFakeSignal(ref *interfaces.NetworkRef) *fakeSignal {
	s := &fakeSignal{topic: eventbus.NewTopic[*interfaces.NetworkRef]("fake-signal")}
	s.Set(ref)
	return s
}

func (s *fakeSignal) Set(ref *interfaces.NetworkRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ref == nil {
		s.ref = nil
		return
	}
	cp := *ref
	s.ref = &cp
}

func (s *fakeSignal) Notify() {
	s.topic.Emit(s.FirstUnavailableNetwork())
}

func (s *fakeSignal) FirstUnavailableNetwork() *interfaces.NetworkRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ref == nil {
		return nil
	}
	cp := *s.ref
	return &cp
}

func (s *fakeSignal) Subscribe() (<-chan *interfaces.NetworkRef, func()) {
	return s.topic.Subscribe()
}

// ============================================================================
//                              recordingReporter
// ============================================================================

type reportedEvent struct {
	Event           string
	NetworkClientID string
}

type recordingReporter struct {
	mu     sync.Mutex
	events []reportedEvent
	err    error
}

func (r *recordingReporter) ReportBannerEvent(eventName, networkClientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, reportedEvent{eventName, networkClientID})
	return r.err
}

func (r *recordingReporter) Events() []reportedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]reportedEvent(nil), r.events...)
}

// ============================================================================
//                              flakyStore
// ============================================================================

var errStoreUnavailable = errors.New("store unavailable")

// flakyStore 对指定状态的写入返回错误
type flakyStore struct {
	*bannerstore.MemoryStore
	failOn interfaces.BannerStatus
}

func (s *flakyStore) SetBannerState(state interfaces.BannerState) error {
	if state.Status == s.failOn {
		return errStoreUnavailable
	}
	return s.MemoryStore.SetBannerState(state)
}

// ============================================================================
//                              harness
// ============================================================================

type harness struct {
	t        *testing.T
	clock    *clock.Mock
	signal   *fakeSignal
	store    interfaces.BannerStore
	reporter *recordingReporter
	mon      *Monitor
}

type harnessOption func(h *harness)

func withStore(store interfaces.BannerStore) harnessOption {
	return func(h *harness) { h.store = store }
}

func withReporterError(err error) harnessOption {
	return func(h *harness) { h.reporter.err = err }
}

// newHarness 创建并启动监控器，时钟为 mock
func newHarness(t *testing.T, initial *interfaces.NetworkRef, opts ...harnessOption) *harness {
	t.Helper()

	mem := bannerstore.NewMemoryStore()
	h := &harness{
		t:        t,
		clock:    clock.NewMock(),
		signal:   newFakeSignal(initial),
		store:    mem,
		reporter: &recordingReporter{},
	}
	for _, opt := range opts {
		opt(h)
	}

	mon, err := NewMonitor(DefaultConfig(), h.signal, h.store,
		WithClock(h.clock),
		WithReporter(h.reporter),
	)
	require.NoError(t, err)
	h.mon = mon

	require.NoError(t, mon.Start(context.Background()))
	t.Cleanup(func() {
		_ = mon.Stop()
		_ = mem.Close()
		h.signal.topic.Close()
	})
	return h
}

// advance 推进 mock 时钟
func (h *harness) advance(d time.Duration) {
	h.clock.Add(d)
}

// waitStatus 等待监控器到达指定状态（计时器回调在独立 goroutine 中执行）
func (h *harness) waitStatus(status interfaces.BannerStatus) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		return h.mon.BannerState().Status == status
	}, time.Second, time.Millisecond, "expected status %s, got %s", status, h.mon.BannerState().Status)
}

// neverStatus 断言短时间内不会进入指定状态
func (h *harness) neverStatus(status interfaces.BannerStatus) {
	h.t.Helper()
	require.Never(h.t, func() bool {
		return h.mon.BannerState().Status == status
	}, 50*time.Millisecond, 5*time.Millisecond, "unexpected status %s", status)
}

// waitPending 等待计时器状态
func (h *harness) waitPending(slow, unavailable bool) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		s, u := h.mon.pending()
		return s == slow && u == unavailable
	}, time.Second, time.Millisecond)
}

// toSlow 从 unknown 推进到 slow
func (h *harness) toSlow() {
	h.t.Helper()
	h.advance(DefaultSlowDelay)
	h.waitStatus(interfaces.BannerSlow)
}

// toUnavailable 从 unknown 推进到 unavailable
func (h *harness) toUnavailable() {
	h.t.Helper()
	h.toSlow()
	h.advance(DefaultUnavailableDelay - DefaultSlowDelay)
	h.waitStatus(interfaces.BannerUnavailable)
}
