package connbanner

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/pkg/interfaces"
)

// Params connbanner 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config         `optional:"true"`
	Clock      clock.Clock            `optional:"true"`
	Sink       interfaces.MetricsSink `optional:"true"`
	Signal     interfaces.AvailabilitySignal
	Store      interfaces.BannerStore
	Networks   interfaces.NetworkConfigurationSource
}

// Result connbanner 模块提供的结果
type Result struct {
	fx.Out

	Monitor       *Monitor
	BannerMonitor interfaces.ConnectionBannerMonitor
	Reporter      *Reporter
}

// Module 返回 connbanner Fx 模块
//
// 提供:
//   - *Monitor: 横幅监控器
//   - interfaces.ConnectionBannerMonitor: 监控器接口
//   - *Reporter: 横幅埋点发送器
//
// 生命周期:
//   - OnStart: 启动监控
//   - OnStop: 停止监控，取消计时器
func Module() fx.Option {
	return fx.Module("connbanner",
		fx.Provide(ProvideMonitor),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideMonitor 提供横幅监控器
func ProvideMonitor(p Params) (Result, error) {
	reporter := NewReporter(ReporterConfigFromUnified(p.UnifiedCfg), p.Networks, p.Sink)

	m, err := NewMonitor(ConfigFromUnified(p.UnifiedCfg), p.Signal, p.Store,
		WithClock(p.Clock),
		WithReporter(reporter),
	)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Monitor:       m,
		BannerMonitor: m,
		Reporter:      reporter,
	}, nil
}

func registerLifecycle(lc fx.Lifecycle, m *Monitor) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// OnStart 的 ctx 只覆盖启动阶段，监控循环需要独立的生命周期
			return m.Start(context.Background())
		},
		OnStop: func(_ context.Context) error {
			return m.Stop()
		},
	})
}
