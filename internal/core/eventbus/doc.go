// Package eventbus 实现进程内类型化事件主题
//
// 每个 Topic[T] 承载一种事件类型，支持：
//   - 多订阅者，每个订阅者独立缓冲
//   - 有状态模式（新订阅者立即收到最后一个事件）
//   - 慢消费者丢弃计数与告警
//   - 幂等关闭
//
// # 使用示例
//
//	topic := eventbus.NewTopic[interfaces.BannerStateChange]("banner")
//	ch, cancel := topic.Subscribe()
//	defer cancel()
//
//	topic.Emit(change)
//
// # 并发安全
//
// 发射和订阅均由 Topic 内部互斥锁保护；发射从不阻塞，
// 订阅者缓冲区满时事件被丢弃并计数。
package eventbus
