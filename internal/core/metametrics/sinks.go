package metametrics

import (
	"sync"

	"github.com/samsmith08/netbanner/internal/core/eventbus"
	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/lib/log"
)

var logger = log.Logger("core/metametrics")

// ============================================================================
//                              BusSink
// ============================================================================

// BusSink 将埋点事件发布到事件总线
type BusSink struct {
	topic *eventbus.Topic[interfaces.MetricsEvent]
}

// NewBusSink 创建总线接收端
func NewBusSink() *BusSink {
	return &BusSink{topic: eventbus.NewTopic[interfaces.MetricsEvent]("metametrics")}
}

// TrackEvent 发布事件，订阅者缓冲满时丢弃
func (s *BusSink) TrackEvent(event interfaces.MetricsEvent) {
	s.topic.Emit(event)
	logger.Debug("埋点事件",
		"event", event.Event,
		"category", string(event.Category),
		"messageId", event.MessageID)
}

// Subscribe 订阅埋点事件
func (s *BusSink) Subscribe(opts ...eventbus.SubscriptionOption) (<-chan interfaces.MetricsEvent, func()) {
	return s.topic.Subscribe(opts...)
}

// Close 关闭所有订阅
func (s *BusSink) Close() {
	s.topic.Close()
}

// ============================================================================
//                              MultiSink
// ============================================================================

// MultiSink 将事件广播到多个接收端
type MultiSink []interfaces.MetricsSink

// TrackEvent 依次转发给每个接收端
func (m MultiSink) TrackEvent(event interfaces.MetricsEvent) {
	for _, s := range m {
		if s != nil {
			s.TrackEvent(event)
		}
	}
}

// ============================================================================
//                              RecordingSink
// ============================================================================

// RecordingSink 记录收到的所有事件
type RecordingSink struct {
	mu     sync.Mutex
	events []interfaces.MetricsEvent
}

// TrackEvent 记录事件
func (r *RecordingSink) TrackEvent(event interfaces.MetricsEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events 返回已记录事件的副本
func (r *RecordingSink) Events() []interfaces.MetricsEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]interfaces.MetricsEvent(nil), r.events...)
}

// Len 已记录事件数
func (r *RecordingSink) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset 清空记录
func (r *RecordingSink) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
