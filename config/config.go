// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Telemetry.InfuraProjectID = "..."
//
//	// 从文件加载
//	cfg, err := config.LoadFile("netbanner.json")
package config

import (
	"errors"
	"fmt"
)

// Config 是 NetBanner 的完整配置结构
//
//   - Banner: 横幅计时
//   - Telemetry: 埋点与端点脱敏
//   - Storage: 横幅状态存储
//   - Networks: 网络配置
//   - EnabledNetworks: 参与可用性检测的网络（按顺序）
type Config struct {
	// Banner 横幅计时配置
	Banner BannerConfig `json:"banner"`

	// Telemetry 埋点配置
	Telemetry TelemetryConfig `json:"telemetry"`

	// Storage 存储配置
	Storage StorageConfig `json:"storage"`

	// Networks 网络配置
	Networks []NetworkConfig `json:"networks"`

	// EnabledNetworks 启用的网络链 ID，顺序决定"第一个不可达网络"
	EnabledNetworks []string `json:"enabled_networks"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Banner:          DefaultBannerConfig(),
		Telemetry:       DefaultTelemetryConfig(),
		Storage:         DefaultStorageConfig(),
		Networks:        DefaultNetworks(),
		EnabledNetworks: DefaultEnabledNetworks(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if err := c.Banner.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}

	chains := make(map[string]struct{}, len(c.Networks))
	clients := make(map[string]string)
	for i := range c.Networks {
		n := &c.Networks[i]
		if err := n.Validate(); err != nil {
			return err
		}
		if _, dup := chains[n.ChainID]; dup {
			return fmt.Errorf("duplicate network for chain %s", n.ChainID)
		}
		chains[n.ChainID] = struct{}{}
		for _, ep := range n.RPCEndpoints {
			if owner, dup := clients[ep.NetworkClientID]; dup {
				return fmt.Errorf("network client id %q used by both %s and %s",
					ep.NetworkClientID, owner, n.ChainID)
			}
			clients[ep.NetworkClientID] = n.ChainID
		}
	}

	for _, chainID := range c.EnabledNetworks {
		if _, ok := chains[chainID]; !ok {
			return fmt.Errorf("enabled network %s has no configuration", chainID)
		}
	}
	return nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if c == nil {
		panic(errors.New("config is nil"))
	}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}
