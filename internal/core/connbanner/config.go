package connbanner

import (
	"fmt"
	"time"

	"github.com/samsmith08/netbanner/config"
)

// ============================================================================
//                              监控配置
// ============================================================================

// 默认延迟
const (
	// DefaultSlowDelay 首次检测到不可达后展示 slow 横幅的等待时间
	DefaultSlowDelay = 5 * time.Second

	// DefaultUnavailableDelay 首次检测到不可达后展示 unavailable 横幅的等待时间
	DefaultUnavailableDelay = 30 * time.Second
)

// Config 横幅监控配置
type Config struct {
	// SlowDelay slow 横幅延迟
	// 默认值: 5s
	SlowDelay time.Duration

	// UnavailableDelay unavailable 横幅延迟，从首次检测起算
	// 默认值: 30s
	UnavailableDelay time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		SlowDelay:        DefaultSlowDelay,
		UnavailableDelay: DefaultUnavailableDelay,
	}
}

// ConfigFromUnified 从统一配置提取监控配置
func ConfigFromUnified(cfg *config.Config) *Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	c.SlowDelay = cfg.Banner.SlowDelay.Duration()
	c.UnavailableDelay = cfg.Banner.UnavailableDelay.Duration()
	return c
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.SlowDelay <= 0 {
		return fmt.Errorf("%w: slow delay must be positive", ErrInvalidConfig)
	}
	if c.UnavailableDelay <= c.SlowDelay {
		return fmt.Errorf("%w: unavailable delay %s must exceed slow delay %s",
			ErrInvalidConfig, c.UnavailableDelay, c.SlowDelay)
	}
	return nil
}

// RemainingDelay 从 slow 到 unavailable 的剩余等待时间
func (c *Config) RemainingDelay() time.Duration {
	return c.UnavailableDelay - c.SlowDelay
}

// WithSlowDelay 设置 slow 延迟
func (c *Config) WithSlowDelay(d time.Duration) *Config {
	c.SlowDelay = d
	return c
}

// WithUnavailableDelay 设置 unavailable 延迟
func (c *Config) WithUnavailableDelay(d time.Duration) *Config {
	c.UnavailableDelay = d
	return c
}
