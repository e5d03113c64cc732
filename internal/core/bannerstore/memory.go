// Package bannerstore 保存当前网络连接横幅状态
//
// 两种实现：
//   - MemoryStore: 进程内存储
//   - KVStore: 基于存储引擎持久化当前状态和变更历史
//
// 两者都只在状态实际变化时发布 BannerStateChange。
package bannerstore

import (
	"sync"
	"time"

	"github.com/samsmith08/netbanner/internal/core/eventbus"
	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/lib/log"
)

var logger = log.Logger("core/bannerstore")

// MemoryStore 内存横幅状态存储
type MemoryStore struct {
	mu    sync.RWMutex
	state interfaces.BannerState
	topic *eventbus.Topic[interfaces.BannerStateChange]
	now   func() time.Time
}

// 确保实现接口
var _ interfaces.BannerStore = (*MemoryStore)(nil)

// NewMemoryStore 创建内存存储，初始状态为 unknown
func NewMemoryStore() *MemoryStore {
	return newMemoryStore(interfaces.UnknownBanner())
}

func newMemoryStore(initial interfaces.BannerState) *MemoryStore {
	return &MemoryStore{
		state: initial,
		topic: eventbus.NewTopic[interfaces.BannerStateChange]("bannerstore"),
		now:   time.Now,
	}
}

// BannerState 读取当前横幅状态
func (s *MemoryStore) BannerState() interfaces.BannerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetBannerState 写入横幅状态
func (s *MemoryStore) SetBannerState(state interfaces.BannerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == state {
		return nil
	}
	change := interfaces.BannerStateChange{
		Previous:  s.state,
		Current:   state,
		Timestamp: s.now(),
	}
	s.state = state
	s.topic.Emit(change)

	logger.Debug("横幅状态已写入",
		"previous", change.Previous.Status.String(),
		"current", state.Status.String())
	return nil
}

// Subscribe 订阅状态变更
func (s *MemoryStore) Subscribe() (<-chan interfaces.BannerStateChange, func()) {
	return s.topic.Subscribe()
}

// Close 关闭所有订阅
func (s *MemoryStore) Close() error {
	s.topic.Close()
	return nil
}
