// Package metametrics 实现横幅埋点事件的接收端
//
// 埋点为即发即弃语义：TrackEvent 不返回错误，也不阻塞调用方。
//
// 提供的接收端:
//   - BusSink: 发布到进程内事件总线，供 CLI 或其他组件订阅
//   - PrometheusSink: 按事件、链和端点计数
//   - MultiSink: 广播到多个接收端
//   - RecordingSink: 记录全部事件（测试用）
package metametrics
