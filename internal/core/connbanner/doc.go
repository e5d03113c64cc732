// Package connbanner 实现网络连接横幅监控
//
// 监控器订阅外部可用性信号与横幅状态存储，在每次变化时重新评估一次，
// 通过两级延迟（slow/unavailable）决定何时展示横幅，并在状态迁移时发送埋点。
//
// # 状态机
//
//	unknown ──► available ⇄ slow ──► unavailable
//	                ▲                     │
//	                └─────────────────────┘
//
// 评估规则见 Evaluate。计时以首次检测为起点：
// 已处于 slow 时只需等待 UnavailableDelay - SlowDelay。
//
// # 并发模型
//
// 评估与计时器回调共用一把锁，并以代号（generation）区分评估周期。
// 新评估开始时取消上一周期的计时器并递增代号，
// 已触发但尚未拿到锁的旧回调会因代号不符而放弃。
// Stop 之后不会再有写入或埋点。
//
// # 埋点脱敏
//
// Reporter 将 RPC 端点还原为主机名（公共端点）或 "custom"（其他端点），
// 链 ID 转为 eip155:<十进制> 形式。埋点失败只记录日志，不影响横幅状态。
package connbanner
