// Package interfaces 定义 NetBanner 的公共接口
//
// 一个接口文件对应一个实现目录：
//   - banner.go     - 横幅状态、可用性信号、状态存储（internal/core/connbanner, availability, bannerstore）
//   - network.go    - 网络配置与 RPC 端点（internal/core/netconfig）
//   - metrics.go    - 埋点事件与接收端（internal/core/metametrics）
//
// 实现包只依赖本包和 pkg/types，不互相引用具体类型。
package interfaces
