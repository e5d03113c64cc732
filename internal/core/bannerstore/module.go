package bannerstore

import (
	"context"

	"go.uber.org/fx"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/internal/core/storage/engine"
	"github.com/samsmith08/netbanner/pkg/interfaces"
)

// Params bannerstore 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Engine     engine.Engine  `optional:"true"`
}

// Result bannerstore 模块提供的结果
type Result struct {
	fx.Out

	Store interfaces.BannerStore
}

// Module 返回 bannerstore Fx 模块
//
// 提供存储引擎时使用 KVStore，否则使用 MemoryStore。
func Module() fx.Option {
	return fx.Module("bannerstore",
		fx.Provide(ProvideStore),
	)
}

type closableStore interface {
	interfaces.BannerStore
	Close() error
}

// ProvideStore 提供横幅状态存储
func ProvideStore(lc fx.Lifecycle, p Params) (Result, error) {
	var store closableStore
	if p.Engine != nil {
		limit := config.DefaultStorageConfig().HistoryLimit
		if p.UnifiedCfg != nil {
			limit = p.UnifiedCfg.Storage.HistoryLimit
		}
		kvs, err := OpenKVStore(p.Engine, limit)
		if err != nil {
			return Result{}, err
		}
		logger.Info("使用持久化横幅存储",
			"status", kvs.BannerState().Status.String(),
			"historyLimit", limit)
		store = kvs
	} else {
		store = NewMemoryStore()
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})
	return Result{Store: store}, nil
}
