// Package eventbus 实现进程内类型化事件主题
package eventbus

import (
	"sync"
	"sync/atomic"

	"github.com/samsmith08/netbanner/pkg/lib/log"
)

var logger = log.Logger("core/eventbus")

// DefaultBuffer 订阅者默认缓冲区大小
const DefaultBuffer = 16

// ============================================================================
// 选项
// ============================================================================

type topicSettings struct {
	stateful bool
}

// TopicOption 主题选项
type TopicOption func(*topicSettings)

// Stateful 保留最后一个事件，新订阅者订阅时立即收到
func Stateful() TopicOption {
	return func(s *topicSettings) {
		s.stateful = true
	}
}

type subscriptionSettings struct {
	buffer int
}

// SubscriptionOption 订阅选项
type SubscriptionOption func(*subscriptionSettings)

// BufSize 设置订阅缓冲区大小
func BufSize(n int) SubscriptionOption {
	return func(s *subscriptionSettings) {
		if n > 0 {
			s.buffer = n
		}
	}
}

// ============================================================================
// Topic 实现
// ============================================================================

// Topic 单一事件类型的主题
type Topic[T any] struct {
	name string

	mu       sync.Mutex
	sinks    []chan T
	stateful bool
	last     *T
	closed   bool

	dropCount atomic.Int64
}

// NewTopic 创建主题
func NewTopic[T any](name string, opts ...TopicOption) *Topic[T] {
	settings := &topicSettings{}
	for _, opt := range opts {
		opt(settings)
	}
	return &Topic[T]{
		name:     name,
		stateful: settings.stateful,
	}
}

// Subscribe 订阅主题
//
// 返回事件通道和取消函数；取消函数可多次调用。
// 主题已关闭时返回已关闭的通道。
func (t *Topic[T]) Subscribe(opts ...SubscriptionOption) (<-chan T, func()) {
	settings := &subscriptionSettings{buffer: DefaultBuffer}
	for _, opt := range opts {
		opt(settings)
	}

	ch := make(chan T, settings.buffer)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		close(ch)
		return ch, func() {}
	}

	if t.stateful && t.last != nil {
		ch <- *t.last
	}
	t.sinks = append(t.sinks, ch)

	var once sync.Once
	return ch, func() {
		once.Do(func() { t.remove(ch) })
	}
}

// Emit 发射事件到所有订阅者，返回被丢弃的份数
func (t *Topic[T]) Emit(evt T) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0
	}

	if t.stateful {
		t.last = &evt
	}

	dropped := 0
	for _, ch := range t.sinks {
		select {
		case ch <- evt:
		default:
			dropped++
			total := t.dropCount.Add(1)
			// 每丢弃 100 个事件警告一次，避免日志泛滥
			if total%100 == 1 {
				logger.Warn("慢消费者检测",
					"topic", t.name,
					"dropped", total,
					"reason", "subscriber buffer full")
			}
		}
	}
	return dropped
}

// Last 返回最后一个事件（仅有状态主题）
func (t *Topic[T]) Last() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.last == nil {
		var zero T
		return zero, false
	}
	return *t.last, true
}

// NumSubscribers 当前订阅者数量
func (t *Topic[T]) NumSubscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sinks)
}

// Dropped 累计丢弃事件数
func (t *Topic[T]) Dropped() int64 {
	return t.dropCount.Load()
}

// Close 关闭主题及所有订阅通道
func (t *Topic[T]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	for _, ch := range t.sinks {
		close(ch)
	}
	t.sinks = nil
}

func (t *Topic[T]) remove(ch chan T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, sink := range t.sinks {
		if sink == ch {
			lastIdx := len(t.sinks) - 1
			t.sinks[i] = t.sinks[lastIdx]
			t.sinks = t.sinks[:lastIdx]
			close(ch)
			return
		}
	}
}
