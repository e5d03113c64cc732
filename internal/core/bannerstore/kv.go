package bannerstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samsmith08/netbanner/internal/core/storage/engine"
	"github.com/samsmith08/netbanner/internal/core/storage/kv"
	"github.com/samsmith08/netbanner/pkg/interfaces"
)

// KeyPrefix 横幅数据在存储引擎中的键前缀
var KeyPrefix = []byte("b/")

var (
	keyCurrent    = []byte("current")
	keySeq        = []byte("seq")
	historyPrefix = []byte("history/")
)

// Transition 一条持久化的横幅变更记录
type Transition struct {
	Seq       uint64                 `json:"seq"`
	From      interfaces.BannerState `json:"from"`
	To        interfaces.BannerState `json:"to"`
	Timestamp time.Time              `json:"timestamp"`
}

// KVStore 持久化横幅状态存储
//
// 当前状态保存在 b/current，每次变更追加到 b/history/<seq>，
// 只保留最近 historyLimit 条。
type KVStore struct {
	mu           sync.Mutex
	kv           *kv.Store
	mem          *MemoryStore
	historyLimit int
}

// 确保实现接口
var _ interfaces.BannerStore = (*KVStore)(nil)

// OpenKVStore 打开持久化存储并加载上次的状态
func OpenKVStore(eng engine.Engine, historyLimit int) (*KVStore, error) {
	store := kv.New(eng, KeyPrefix)

	initial := interfaces.UnknownBanner()
	err := store.GetJSON(keyCurrent, &initial)
	switch {
	case err == nil:
	case engine.IsNotFound(err):
		initial = interfaces.UnknownBanner()
	default:
		return nil, fmt.Errorf("load banner state: %w", err)
	}

	return &KVStore{
		kv:           store,
		mem:          newMemoryStore(initial),
		historyLimit: historyLimit,
	}, nil
}

// BannerState 读取当前横幅状态
func (s *KVStore) BannerState() interfaces.BannerState {
	return s.mem.BannerState()
}

// SetBannerState 持久化并写入横幅状态
func (s *KVStore) SetBannerState(state interfaces.BannerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.mem.BannerState()
	if prev == state {
		return nil
	}

	if err := s.kv.PutJSON(keyCurrent, state); err != nil {
		return fmt.Errorf("persist banner state: %w", err)
	}
	if s.historyLimit > 0 {
		if err := s.appendHistory(prev, state); err != nil {
			// 历史记录失败不影响当前状态
			logger.Warn("记录横幅变更历史失败", "error", err)
		}
	}
	return s.mem.SetBannerState(state)
}

func (s *KVStore) appendHistory(from, to interfaces.BannerState) error {
	seq, err := s.kv.IncrUint64(keySeq, 1)
	if err != nil {
		return err
	}
	t := Transition{Seq: seq, From: from, To: to, Timestamp: s.mem.now()}
	if err := s.kv.PutJSON(historyKey(seq), t); err != nil {
		return err
	}
	if seq > uint64(s.historyLimit) {
		stale := seq - uint64(s.historyLimit)
		if err := s.kv.Delete(historyKey(stale)); err != nil && !engine.IsNotFound(err) {
			return err
		}
	}
	return nil
}

// History 返回最近的横幅变更，新的在前
func (s *KVStore) History(limit int) ([]Transition, error) {
	var out []Transition
	err := s.kv.Scan(historyPrefix, true, func(_, value []byte) error {
		if limit > 0 && len(out) >= limit {
			return engine.ErrStopScan
		}
		var t Transition
		if err := json.Unmarshal(value, &t); err != nil {
			return errors.Join(engine.ErrCorrupted, err)
		}
		out = append(out, t)
		return nil
	})
	return out, err
}

// Subscribe 订阅状态变更
func (s *KVStore) Subscribe() (<-chan interfaces.BannerStateChange, func()) {
	return s.mem.Subscribe()
}

// Close 关闭订阅（存储引擎由 storage 模块关闭）
func (s *KVStore) Close() error {
	return s.mem.Close()
}

func historyKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", historyPrefix, seq))
}
