package availability

import (
	"context"

	"go.uber.org/fx"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/types"
)

// Params 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Networks   interfaces.NetworkConfigurationSource
}

// Result 模块提供的结果
type Result struct {
	fx.Out

	Tracker *Tracker
	Signal  interfaces.AvailabilitySignal
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("availability",
		fx.Provide(ProvideTracker),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideTracker 提供可用性信号
func ProvideTracker(p Params) Result {
	var enabled []types.ChainID
	if p.UnifiedCfg != nil {
		for _, id := range p.UnifiedCfg.EnabledNetworks {
			enabled = append(enabled, types.ChainID(id))
		}
	}
	t := NewTracker(p.Networks, enabled)
	return Result{Tracker: t, Signal: t}
}

func registerLifecycle(lc fx.Lifecycle, t *Tracker) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			t.Close()
			return nil
		},
	})
}
