// Package config 提供统一的配置管理
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// FromJSON 从 JSON 创建配置
//
// 未出现在 JSON 中的字段保持默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	// 结构体切片解码时会复用旧元素，先清空再回填默认值
	cfg.Networks = nil
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Networks == nil {
		cfg.Networks = DefaultNetworks()
	}
	return cfg, nil
}

// LoadFile 从文件加载并验证配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为缩进 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
