// Package config 提供统一的配置管理
package config

import (
	"fmt"
	"time"
)

// BannerConfig 网络连接横幅配置
type BannerConfig struct {
	// SlowDelay 网络持续不可达多久后展示 slow 横幅
	// 默认值: 5s
	SlowDelay Duration `json:"slow_delay"`

	// UnavailableDelay 从首次检测到不可达起，多久后展示 unavailable 横幅
	// 必须大于 SlowDelay
	// 默认值: 30s
	UnavailableDelay Duration `json:"unavailable_delay"`
}

// DefaultBannerConfig 返回默认的横幅配置
func DefaultBannerConfig() BannerConfig {
	return BannerConfig{
		SlowDelay:        Duration(5 * time.Second),
		UnavailableDelay: Duration(30 * time.Second),
	}
}

// Validate 验证横幅配置
func (c *BannerConfig) Validate() error {
	if c.SlowDelay <= 0 {
		return fmt.Errorf("banner.slow_delay must be positive, got %s", c.SlowDelay)
	}
	if c.UnavailableDelay <= c.SlowDelay {
		return fmt.Errorf("banner.unavailable_delay (%s) must be greater than slow_delay (%s)",
			c.UnavailableDelay, c.SlowDelay)
	}
	return nil
}
