// Package netbanner 网络连接横幅监控
//
// netbanner 监听钱包所启用网络的 RPC 可达性，按两级延迟决定何时展示
// "slow" 或 "unavailable" 横幅，并在横幅出现时发送脱敏后的埋点事件。
//
// # 快速开始
//
//	app, err := netbanner.New(netbanner.WithConfigFile("netbanner.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Stop(context.Background())
//
//	// 宿主程序上报端点状态
//	app.Tracker().SetStatus("mainnet", availability.StatusUnavailable)
//
//	// 展示层读取横幅状态
//	state := app.Monitor().BannerState()
//
// # 架构
//
// 各组件以 Fx 模块组装（见 fx.go）：
//
//	netconfig ──► availability ──┐
//	                             ├──► connbanner ──► metametrics
//	storage ──► bannerstore ─────┘
//
// 横幅状态的计时与迁移规则见 internal/core/connbanner。
package netbanner
