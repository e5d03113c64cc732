package storage

import (
	"time"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/internal/core/storage/engine"
)

// Config 存储模块配置
type Config struct {
	// Path 数据目录
	Path string

	// InMemory 使用 BadgerDB 内存模式
	InMemory bool

	// SyncWrites 同步写入
	SyncWrites bool

	// GCInterval 值日志 GC 间隔
	GCInterval time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置提取存储配置
func ConfigFromUnified(cfg *config.Config) Config {
	sc := config.DefaultStorageConfig()
	if cfg != nil {
		sc = cfg.Storage
	}
	return Config{
		Path:       sc.Path,
		InMemory:   sc.InMemory,
		SyncWrites: sc.SyncWrites,
		GCInterval: sc.GCInterval.Duration(),
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	return c.ToEngineConfig().Validate()
}

// ToEngineConfig 转换为引擎配置
func (c Config) ToEngineConfig() *engine.Config {
	if c.InMemory {
		return engine.InMemoryConfig()
	}
	ec := engine.DefaultConfig(c.Path)
	ec.SyncWrites = c.SyncWrites
	ec.GCInterval = c.GCInterval
	return ec
}
