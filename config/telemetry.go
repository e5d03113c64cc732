// Package config 提供统一的配置管理
package config

import "os"

// InfuraProjectIDEnv 未在配置文件中设置时读取的环境变量
const InfuraProjectIDEnv = "INFURA_PROJECT_ID"

// TelemetryConfig 埋点配置
type TelemetryConfig struct {
	// Enabled 是否上报横幅埋点
	// 默认值: true
	Enabled bool `json:"enabled"`

	// InfuraProjectID Infura 项目 ID
	// 为空时不上报横幅埋点（无法判断端点是否为公共端点）
	InfuraProjectID string `json:"infura_project_id,omitempty"`

	// QuicknodeEndpoints 托管的 QuickNode 端点完整 URL
	QuicknodeEndpoints []string `json:"quicknode_endpoints,omitempty"`

	// KnownPublicEndpoints 已知的公共自定义端点完整 URL
	KnownPublicEndpoints []string `json:"known_public_endpoints,omitempty"`

	// Prometheus 是否把埋点事件计入 Prometheus 计数器
	// 默认值: true
	Prometheus bool `json:"prometheus"`
}

// DefaultTelemetryConfig 返回默认的埋点配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:    true,
		Prometheus: true,
		KnownPublicEndpoints: []string{
			"https://mainnet.base.org",
			"https://arb1.arbitrum.io/rpc",
			"https://mainnet.optimism.io",
			"https://polygon-rpc.com",
			"https://rpc.linea.build",
			"https://bsc-dataseed.binance.org",
		},
	}
}

// ResolveInfuraProjectID 返回配置或环境变量中的项目 ID
func (c *TelemetryConfig) ResolveInfuraProjectID() string {
	if c.InfuraProjectID != "" {
		return c.InfuraProjectID
	}
	return os.Getenv(InfuraProjectIDEnv)
}

// Validate 验证埋点配置
func (c *TelemetryConfig) Validate() error {
	return nil
}
