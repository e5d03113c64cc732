package connbanner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/lib/log"
)

var logger = log.Logger("core/connbanner")

// ============================================================================
//                              Monitor
// ============================================================================

// pendingTimers 当前评估周期的计时器，每种最多一个
type pendingTimers struct {
	slow        *clock.Timer
	unavailable *clock.Timer
}

// stopAll 取消全部计时器
func (p *pendingTimers) stopAll() {
	if p.slow != nil {
		p.slow.Stop()
		p.slow = nil
	}
	if p.unavailable != nil {
		p.unavailable.Stop()
		p.unavailable = nil
	}
}

// Monitor 网络连接横幅监控器
type Monitor struct {
	mu sync.Mutex

	config   *Config
	clock    clock.Clock
	signal   interfaces.AvailabilitySignal
	store    interfaces.BannerStore
	reporter BannerEventReporter

	timers pendingTimers

	// generation 每次评估和 Stop 时递增，旧周期的计时器回调据此放弃
	generation uint64

	// echoes 自身写入后尚未从存储订阅中收到的变更，按写入顺序排列
	echoes []interfaces.BannerState

	started bool
	stopped bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// 确保实现接口
var _ interfaces.ConnectionBannerMonitor = (*Monitor)(nil)

// Option 监控器选项
type Option func(*Monitor)

// WithClock 设置时钟（测试中使用 clock.NewMock）
func WithClock(c clock.Clock) Option {
	return func(m *Monitor) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithReporter 设置埋点发送器
func WithReporter(r BannerEventReporter) Option {
	return func(m *Monitor) {
		m.reporter = r
	}
}

// NewMonitor 创建横幅监控器
func NewMonitor(cfg *Config, signal interfaces.AvailabilitySignal, store interfaces.BannerStore, opts ...Option) (*Monitor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if signal == nil || store == nil {
		return nil, errors.New("connbanner: availability signal and banner store are required")
	}

	m := &Monitor{
		config: cfg,
		clock:  clock.New(),
		signal: signal,
		store:  store,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Start 启动监控
//
// 将横幅状态重置为 unknown，立即评估一次，
// 之后在可用性信号或横幅状态变化时重新评估。
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return ErrStopped
	}
	if m.started {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	m.started = true

	signalCh, cancelSignal := m.signal.Subscribe()
	storeCh, cancelStore := m.store.Subscribe()
	m.writeLocked(interfaces.UnknownBanner())

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()

	logger.Info("横幅监控已启动",
		"slowDelay", m.config.SlowDelay,
		"unavailableDelay", m.config.UnavailableDelay)

	m.Evaluate()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancelSignal()
		defer cancelStore()
		m.watchLoop(ctx, signalCh, storeCh)
	}()
	return nil
}

// Stop 停止监控并取消全部计时器
//
// 横幅状态保留在存储中。
func (m *Monitor) Stop() error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true
	m.generation++
	m.timers.stopAll()
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()

	logger.Info("横幅监控已停止")
	return nil
}

// Evaluate 按当前信号和横幅状态重新评估一次
func (m *Monitor) Evaluate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started || m.stopped {
		return
	}

	m.generation++
	m.timers.stopAll()

	signal := m.signal.FirstUnavailableNetwork()
	prior := m.store.BannerState()
	d := Evaluate(signal, prior, m.config)

	if d.Write != nil {
		m.writeLocked(*d.Write)
	}
	switch d.Timer {
	case TimerSlow:
		m.scheduleSlowLocked(*d.Network, d.Delay)
	case TimerUnavailable:
		m.scheduleUnavailableLocked(*d.Network, d.Delay)
	}

	logger.Debug("横幅评估",
		"prior", prior.Status.String(),
		"unreachable", signal != nil,
		"timer", d.Timer.String())
}

// BannerState 返回当前横幅状态
func (m *Monitor) BannerState() interfaces.BannerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.BannerState()
}

// TrackBannerEvent 供展示层在用户交互时发送横幅埋点
func (m *Monitor) TrackBannerEvent(eventName, networkClientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportLocked(eventName, networkClientID)
}

// ============================================================================
//                              计时器
// ============================================================================

func (m *Monitor) scheduleSlowLocked(ref interfaces.NetworkRef, delay time.Duration) {
	gen := m.generation
	m.timers.slow = m.clock.AfterFunc(delay, func() {
		m.onSlowTimer(gen, ref)
	})
}

func (m *Monitor) scheduleUnavailableLocked(ref interfaces.NetworkRef, delay time.Duration) {
	gen := m.generation
	m.timers.unavailable = m.clock.AfterFunc(delay, func() {
		m.onUnavailableTimer(gen, ref)
	})
}

// onSlowTimer 写入 slow 状态，发送埋点，并启动剩余时间的 unavailable 计时器
func (m *Monitor) onSlowTimer(gen uint64, ref interfaces.NetworkRef) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation || m.stopped {
		return
	}
	m.timers.slow = nil

	if m.writeLocked(interfaces.SlowBanner(ref)) {
		m.reportLocked(interfaces.EventSlowRpcBannerShown, ref.NetworkClientID)
	}
	m.scheduleUnavailableLocked(ref, m.config.RemainingDelay())
}

// onUnavailableTimer 写入 unavailable 状态并发送埋点
func (m *Monitor) onUnavailableTimer(gen uint64, ref interfaces.NetworkRef) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation || m.stopped {
		return
	}
	m.timers.unavailable = nil

	if m.writeLocked(interfaces.UnavailableBanner(ref)) {
		m.reportLocked(interfaces.EventUnavailableRpcBannerShown, ref.NetworkClientID)
	}
}

// pending 返回是否有待触发的 slow/unavailable 计时器
func (m *Monitor) pending() (slow, unavailable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timers.slow != nil, m.timers.unavailable != nil
}

// ============================================================================
//                              写入与埋点
// ============================================================================

// writeLocked 写入横幅状态，失败时记录日志并返回 false
func (m *Monitor) writeLocked(state interfaces.BannerState) bool {
	changed := m.store.BannerState() != state
	if err := m.store.SetBannerState(state); err != nil {
		logger.Warn("写入横幅状态失败", "status", state.Status.String(), "error", err)
		return false
	}
	if changed {
		m.echoes = append(m.echoes, state)
	}
	logger.Info("横幅状态已更新",
		"status", state.Status.String(),
		"networkClientId", state.NetworkClientID,
		"chainId", state.ChainID)
	return true
}

// reportLocked 发送埋点，错误不向上传递
func (m *Monitor) reportLocked(eventName, networkClientID string) {
	if m.reporter == nil {
		return
	}
	if err := m.reporter.ReportBannerEvent(eventName, networkClientID); err != nil {
		logger.Debug("横幅埋点未发送", "event", eventName, "networkClientId", networkClientID, "error", err)
	}
}

// ============================================================================
//                              事件循环
// ============================================================================

// watchLoop 在信号或横幅状态变化时重新评估
func (m *Monitor) watchLoop(ctx context.Context, signalCh <-chan *interfaces.NetworkRef, storeCh <-chan interfaces.BannerStateChange) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signalCh:
			if !ok {
				signalCh = nil
				continue
			}
			m.Evaluate()
		case change, ok := <-storeCh:
			if !ok {
				storeCh = nil
				continue
			}
			if m.isOwnWrite(change) {
				continue
			}
			logger.Debug("横幅状态被外部修改", "status", change.Current.Status.String())
			m.Evaluate()
		}
	}
}

// isOwnWrite 变更是否为监控器自身写入的回显
//
// 订阅缓冲满时回显可能丢失，匹配时一并丢弃更早的记录。
func (m *Monitor) isOwnWrite(change interfaces.BannerStateChange) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.echoes {
		if s == change.Current {
			m.echoes = m.echoes[i+1:]
			return true
		}
	}
	return false
}
