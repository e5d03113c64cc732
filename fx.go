package netbanner

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/samsmith08/netbanner/internal/core/availability"
	"github.com/samsmith08/netbanner/internal/core/bannerstore"
	"github.com/samsmith08/netbanner/internal/core/connbanner"
	"github.com/samsmith08/netbanner/internal/core/metametrics"
	"github.com/samsmith08/netbanner/internal/core/netconfig"
	"github.com/samsmith08/netbanner/internal/core/storage"
	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/lib/log"
)

var fxLogger = log.Logger("netbanner/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. 配置注入与可选的外部依赖（时钟、注册器、埋点接收端）
//  2. netconfig → availability
//  3. storage（仅持久化时）→ bannerstore
//  4. metametrics → connbanner
func buildFxApp(o *options, app *App) (*fx.App, error) {
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		fx.Supply(o.config),
	}

	if o.clock != nil {
		c := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return c }))
	}
	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	if o.sink != nil {
		sink := o.sink
		modules = append(modules, fx.Provide(fx.Annotated{
			Name:   "external_metrics_sink",
			Target: func() interfaces.MetricsSink { return sink },
		}))
	}

	modules = append(modules,
		netconfig.Module(),
		availability.Module(),
	)

	if o.config.Storage.Persistent {
		modules = append(modules, storage.Module())
	}
	modules = append(modules,
		bannerstore.Module(),
		metametrics.Module(),
		connbanner.Module(),
	)

	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	modules = append(modules,
		fx.Populate(&app.monitor, &app.tracker, &app.store, &app.registry, &app.bus),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	fxLogger.Debug("构建 Fx 应用", "modules", len(modules), "persistent", o.config.Storage.Persistent)
	return fx.New(modules...), nil
}
