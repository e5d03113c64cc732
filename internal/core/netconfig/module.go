package netconfig

import (
	"go.uber.org/fx"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/pkg/interfaces"
)

// Params 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result 模块提供的结果
type Result struct {
	fx.Out

	Registry *Registry
	Source   interfaces.NetworkConfigurationSource
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("netconfig",
		fx.Provide(ProvideRegistry),
	)
}

// ProvideRegistry 从统一配置提供网络配置注册表
func ProvideRegistry(p Params) (Result, error) {
	r, err := FromUnified(p.UnifiedCfg)
	if err != nil {
		return Result{}, err
	}
	return Result{Registry: r, Source: r}, nil
}
