// Package engine 定义存储引擎接口
//
// 上层（kv、bannerstore）只依赖本包接口，具体实现见 engine/badger。
//
// # 线程安全
//
// 所有接口实现必须保证线程安全。
package engine

import (
	"errors"
	"os"
	"time"
)

// 存储引擎错误定义
var (
	// ErrNotFound 键不存在
	ErrNotFound = errors.New("storage: key not found")

	// ErrEmptyKey 空键
	ErrEmptyKey = errors.New("storage: empty key")

	// ErrClosed 引擎已关闭
	ErrClosed = errors.New("storage: engine closed")

	// ErrReadOnly 只读模式
	ErrReadOnly = errors.New("storage: read-only mode")

	// ErrInvalidConfig 无效配置
	ErrInvalidConfig = errors.New("storage: invalid configuration")

	// ErrCorrupted 数据损坏
	ErrCorrupted = errors.New("storage: data corrupted")
)

// IsNotFound 检查是否为 key not found 错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Engine 键值存储引擎
type Engine interface {
	// Get 获取指定键的值，不存在时返回 ErrNotFound
	Get(key []byte) ([]byte, error)

	// Put 设置键值对
	Put(key, value []byte) error

	// Delete 删除指定键
	Delete(key []byte) error

	// Has 检查键是否存在
	Has(key []byte) (bool, error)

	// Scan 按键序遍历带指定前缀的键值对
	//
	// reverse 为 true 时从大到小遍历；fn 返回 ErrStopScan 可提前结束。
	Scan(prefix []byte, reverse bool, fn func(key, value []byte) error) error

	// Start 启动后台任务（如 GC）
	Start() error

	// Close 关闭引擎
	Close() error
}

// ErrStopScan 由 Scan 回调返回以提前结束遍历，不会作为错误向上传递
var ErrStopScan = errors.New("storage: stop scan")

// Config 存储引擎配置
type Config struct {
	// Path 数据目录路径，InMemory 为 false 时必需
	Path string

	// InMemory 使用纯内存模式（测试和无状态部署）
	InMemory bool

	// SyncWrites 是否同步写入
	SyncWrites bool

	// ReadOnly 是否只读模式
	ReadOnly bool

	// GCInterval 值日志垃圾回收间隔，0 表示禁用
	GCInterval time.Duration

	// GCDiscardRatio 垃圾回收丢弃比例
	GCDiscardRatio float64
}

// DefaultConfig 返回默认配置
func DefaultConfig(path string) *Config {
	return &Config{
		Path:           path,
		GCInterval:     10 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig 返回内存模式配置
func InMemoryConfig() *Config {
	return &Config{InMemory: true}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return ErrInvalidConfig
	}
	if c.InMemory && c.ReadOnly {
		return ErrInvalidConfig
	}
	if c.GCInterval > 0 && (c.GCDiscardRatio <= 0 || c.GCDiscardRatio >= 1) {
		c.GCDiscardRatio = 0.5
	}
	return nil
}

// EnsureDir 确保数据目录存在
func (c *Config) EnsureDir() error {
	if c.InMemory {
		return nil
	}
	return os.MkdirAll(c.Path, 0o755)
}
