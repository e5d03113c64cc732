// Package config 提供统一的配置管理
package config

import (
	"errors"
	"time"
)

// StorageConfig 横幅状态存储配置
type StorageConfig struct {
	// Persistent 是否使用 BadgerDB 持久化横幅状态和变更历史
	// false 时使用内存存储
	// 默认值: false
	Persistent bool `json:"persistent"`

	// InMemory 持久化存储使用 BadgerDB 内存模式（测试用）
	InMemory bool `json:"in_memory,omitempty"`

	// Path BadgerDB 数据目录
	// 默认值: ./data/netbanner
	Path string `json:"path"`

	// SyncWrites 是否同步写入
	SyncWrites bool `json:"sync_writes"`

	// GCInterval 值日志垃圾回收间隔
	// 默认值: 10m
	GCInterval Duration `json:"gc_interval"`

	// HistoryLimit 保留的横幅变更历史条数，0 表示不记录
	// 默认值: 100
	HistoryLimit int `json:"history_limit"`
}

// DefaultStorageConfig 返回默认的存储配置
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Path:         "./data/netbanner",
		GCInterval:   Duration(10 * time.Minute),
		HistoryLimit: 100,
	}
}

// Validate 验证存储配置
func (c *StorageConfig) Validate() error {
	if c.Persistent && !c.InMemory && c.Path == "" {
		return errors.New("storage.path is required when persistent storage is enabled")
	}
	if c.HistoryLimit < 0 {
		return errors.New("storage.history_limit must not be negative")
	}
	return nil
}
