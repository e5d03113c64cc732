package metametrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/pkg/interfaces"
)

// Params metametrics 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config         `optional:"true"`
	Registerer prometheus.Registerer  `optional:"true"`
	External   interfaces.MetricsSink `name:"external_metrics_sink" optional:"true"`
}

// Result metametrics 模块提供的结果
type Result struct {
	fx.Out

	Bus  *BusSink
	Sink interfaces.MetricsSink
}

// Module 返回 metametrics Fx 模块
//
// 提供:
//   - *BusSink: 进程内事件总线接收端
//   - interfaces.MetricsSink: 组合后的接收端
func Module() fx.Option {
	return fx.Module("metametrics",
		fx.Provide(ProvideSinks),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideSinks 根据配置组合埋点接收端
func ProvideSinks(p Params) (Result, error) {
	telemetry := config.DefaultTelemetryConfig()
	if p.UnifiedCfg != nil {
		telemetry = p.UnifiedCfg.Telemetry
	}

	bus := NewBusSink()
	sinks := MultiSink{bus}

	if telemetry.Prometheus {
		ps, err := NewPrometheusSink(p.Registerer)
		if err != nil {
			return Result{}, err
		}
		sinks = append(sinks, ps)
	}
	if p.External != nil {
		sinks = append(sinks, p.External)
	}

	logger.Debug("埋点接收端已装配", "sinks", len(sinks), "prometheus", telemetry.Prometheus)
	return Result{Bus: bus, Sink: sinks}, nil
}

func registerLifecycle(lc fx.Lifecycle, bus *BusSink) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			bus.Close()
			return nil
		},
	})
}
