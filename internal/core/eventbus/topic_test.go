package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Value int
}

// TestTopic_EmitToSubscribers 测试多订阅者接收事件
func TestTopic_EmitToSubscribers(t *testing.T) {
	topic := NewTopic[testEvent]("test")

	ch1, cancel1 := topic.Subscribe()
	defer cancel1()
	ch2, cancel2 := topic.Subscribe()
	defer cancel2()

	dropped := topic.Emit(testEvent{Value: 7})
	assert.Zero(t, dropped)

	assert.Equal(t, testEvent{Value: 7}, <-ch1)
	assert.Equal(t, testEvent{Value: 7}, <-ch2)
	assert.Equal(t, 2, topic.NumSubscribers())
}

// TestTopic_Cancel 测试取消订阅
func TestTopic_Cancel(t *testing.T) {
	topic := NewTopic[testEvent]("test")

	ch, cancel := topic.Subscribe()
	cancel()
	cancel() // 重复调用安全

	_, ok := <-ch
	assert.False(t, ok, "取消后通道应关闭")
	assert.Equal(t, 0, topic.NumSubscribers())

	// 取消后发射不应 panic
	topic.Emit(testEvent{Value: 1})
}

// TestTopic_Stateful 测试有状态主题
func TestTopic_Stateful(t *testing.T) {
	topic := NewTopic[testEvent]("test", Stateful())

	_, ok := topic.Last()
	assert.False(t, ok)

	topic.Emit(testEvent{Value: 1})
	topic.Emit(testEvent{Value: 2})

	ch, cancel := topic.Subscribe()
	defer cancel()

	select {
	case evt := <-ch:
		assert.Equal(t, 2, evt.Value)
	default:
		t.Fatal("有状态主题应立即投递最后一个事件")
	}

	last, ok := topic.Last()
	require.True(t, ok)
	assert.Equal(t, 2, last.Value)
}

// TestTopic_DropWhenFull 测试缓冲区满时丢弃
func TestTopic_DropWhenFull(t *testing.T) {
	topic := NewTopic[testEvent]("test")

	_, cancel := topic.Subscribe(BufSize(1))
	defer cancel()

	assert.Zero(t, topic.Emit(testEvent{Value: 1}))
	assert.Equal(t, 1, topic.Emit(testEvent{Value: 2}))
	assert.Equal(t, int64(1), topic.Dropped())
}

// TestTopic_Close 测试关闭主题
func TestTopic_Close(t *testing.T) {
	topic := NewTopic[testEvent]("test")

	ch, cancel := topic.Subscribe()
	topic.Close()
	topic.Close()

	_, ok := <-ch
	assert.False(t, ok)

	// 关闭后取消不应 panic
	cancel()

	late, lateCancel := topic.Subscribe()
	defer lateCancel()
	_, ok = <-late
	assert.False(t, ok, "关闭后的订阅应返回已关闭通道")
	assert.Zero(t, topic.Emit(testEvent{}))
}
