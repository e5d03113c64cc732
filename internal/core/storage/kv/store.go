// Package kv 提供带前缀隔离的 KV 存储抽象层
//
// Store 在底层存储引擎之上提供命名空间隔离，
// 每个组件使用不同的前缀隔离数据。
//
// # 键空间设计
//
//   - b/ - 横幅状态（bannerstore）
//
// # 使用示例
//
//	eng, _ := badger.New(engine.InMemoryConfig())
//	banner := kv.New(eng, []byte("b/"))
//	banner.PutJSON([]byte("current"), state) // 实际键: b/current
package kv

import (
	"encoding/binary"
	"encoding/json"
	"sync"

	"github.com/samsmith08/netbanner/internal/core/storage/engine"
)

// Store 带前缀隔离的 KV 存储
type Store struct {
	engine engine.Engine
	prefix []byte
	mu     sync.Mutex
}

// New 创建新的 KVStore
//
// 参数:
//   - eng: 底层存储引擎
//   - prefix: 键前缀（所有操作会自动添加此前缀）
func New(eng engine.Engine, prefix []byte) *Store {
	return &Store{
		engine: eng,
		prefix: append([]byte{}, prefix...),
	}
}

// prefixKey 为键添加前缀
func (s *Store) prefixKey(key []byte) []byte {
	prefixed := make([]byte, len(s.prefix)+len(key))
	copy(prefixed, s.prefix)
	copy(prefixed[len(s.prefix):], key)
	return prefixed
}

// Get 获取指定键的值
func (s *Store) Get(key []byte) ([]byte, error) {
	return s.engine.Get(s.prefixKey(key))
}

// Put 设置键值对
func (s *Store) Put(key, value []byte) error {
	return s.engine.Put(s.prefixKey(key), value)
}

// Delete 删除指定键
func (s *Store) Delete(key []byte) error {
	return s.engine.Delete(s.prefixKey(key))
}

// Has 检查键是否存在
func (s *Store) Has(key []byte) (bool, error) {
	return s.engine.Has(s.prefixKey(key))
}

// GetJSON 获取并反序列化 JSON 值
func (s *Store) GetJSON(key []byte, v interface{}) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// PutJSON 序列化并存储 JSON 值
func (s *Store) PutJSON(key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, data)
}

// IncrUint64 递增 uint64 计数器
//
// 如果键不存在，从 0 开始递增。返回递增后的值。
func (s *Store) IncrUint64(key []byte, delta uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current uint64
	data, err := s.Get(key)
	switch {
	case err == nil:
		if len(data) < 8 {
			return 0, engine.ErrCorrupted
		}
		current = binary.BigEndian.Uint64(data)
	case engine.IsNotFound(err):
	default:
		return 0, err
	}

	next := current + delta
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, next)
	if err := s.Put(key, buf); err != nil {
		return 0, err
	}
	return next, nil
}

// Scan 遍历带子前缀的键值对，回调中的键已去掉本 Store 的前缀
func (s *Store) Scan(prefix []byte, reverse bool, fn func(key, value []byte) error) error {
	full := s.prefixKey(prefix)
	return s.engine.Scan(full, reverse, func(key, value []byte) error {
		return fn(key[len(s.prefix):], value)
	})
}
