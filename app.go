package netbanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/samsmith08/netbanner/internal/core/availability"
	"github.com/samsmith08/netbanner/internal/core/bannerstore"
	"github.com/samsmith08/netbanner/internal/core/connbanner"
	"github.com/samsmith08/netbanner/internal/core/eventbus"
	"github.com/samsmith08/netbanner/internal/core/metametrics"
	"github.com/samsmith08/netbanner/internal/core/netconfig"
	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/lib/log"
)

var logger = log.Logger("netbanner")

const (
	// startTimeout Fx App 启动超时
	startTimeout = 15 * time.Second

	// stopTimeout Fx App 停止超时
	stopTimeout = 10 * time.Second
)

// App 横幅监控应用
type App struct {
	mu sync.Mutex

	app *fx.App

	// 由 Fx 注入
	monitor  *connbanner.Monitor
	tracker  *availability.Tracker
	store    interfaces.BannerStore
	registry *netconfig.Registry
	bus      *metametrics.BusSink

	started bool
	closed  bool
}

// New 创建应用，不会启动监控
func New(opts ...Option) (*App, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	a := &App{}
	fxApp, err := buildFxApp(o, a)
	if err != nil {
		return nil, err
	}
	if err := fxApp.Err(); err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	a.app = fxApp
	return a, nil
}

// Start 启动所有组件
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrAppClosed
	}
	if a.started {
		return ErrAlreadyStarted
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	if err := a.app.Start(startCtx); err != nil {
		logger.Error("应用启动失败", "error", err)
		return fmt.Errorf("start failed: %w", err)
	}
	a.started = true
	logger.Info("应用已启动", "version", Version, "banner", a.store.BannerState().Status.String())
	return nil
}

// Stop 停止所有组件，之后不能再次启动
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	if !a.started {
		return nil
	}

	stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()

	if err := a.app.Stop(stopCtx); err != nil {
		logger.Warn("应用停止时出错", "error", err)
		return fmt.Errorf("stop failed: %w", err)
	}
	logger.Info("应用已停止")
	return nil
}

// Monitor 返回横幅监控器
func (a *App) Monitor() interfaces.ConnectionBannerMonitor {
	return a.monitor
}

// Tracker 返回可用性跟踪器，宿主程序通过它上报端点状态
func (a *App) Tracker() *availability.Tracker {
	return a.tracker
}

// Store 返回横幅状态存储
func (a *App) Store() interfaces.BannerStore {
	return a.store
}

// Networks 返回网络配置注册表
func (a *App) Networks() *netconfig.Registry {
	return a.registry
}

// SubscribeEvents 订阅埋点事件
func (a *App) SubscribeEvents(opts ...eventbus.SubscriptionOption) (<-chan interfaces.MetricsEvent, func()) {
	return a.bus.Subscribe(opts...)
}

// History 返回最近的横幅变更（新的在前），仅持久化存储可用
func (a *App) History(limit int) ([]bannerstore.Transition, error) {
	kvs, ok := a.store.(*bannerstore.KVStore)
	if !ok {
		return nil, ErrHistoryUnavailable
	}
	return kvs.History(limit)
}
