// Package config 提供统一的配置管理
package config

import (
	"fmt"
	"strings"
)

// InfuraProjectIDPlaceholder Infura 端点 URL 中的项目 ID 占位符
const InfuraProjectIDPlaceholder = "{infuraProjectId}"

// RPCEndpointConfig RPC 端点配置
type RPCEndpointConfig struct {
	// NetworkClientID 网络客户端 ID，全局唯一
	NetworkClientID string `json:"network_client_id"`

	// URL 端点地址，Infura 端点可使用 {infuraProjectId} 占位符
	URL string `json:"url"`

	// Type 端点类型：infura 或 custom
	Type string `json:"type"`

	// Name 端点显示名（可选）
	Name string `json:"name,omitempty"`
}

// NetworkConfig 单条链的网络配置
type NetworkConfig struct {
	// ChainID 十六进制链 ID，如 "0x1"
	ChainID string `json:"chain_id"`

	// Name 网络名称，横幅中展示
	Name string `json:"name"`

	// NativeCurrency 原生代币符号
	NativeCurrency string `json:"native_currency"`

	// RPCEndpoints RPC 端点列表
	RPCEndpoints []RPCEndpointConfig `json:"rpc_endpoints"`

	// DefaultRPCEndpointIndex 默认端点下标
	DefaultRPCEndpointIndex int `json:"default_rpc_endpoint_index"`

	// BlockExplorerURLs 区块浏览器地址
	BlockExplorerURLs []string `json:"block_explorer_urls,omitempty"`
}

// DefaultNetworks 返回内置的网络配置
func DefaultNetworks() []NetworkConfig {
	return []NetworkConfig{
		infuraNetwork("0x1", "Ethereum Mainnet", "ETH", "mainnet", "https://etherscan.io"),
		infuraNetwork("0xe708", "Linea Mainnet", "ETH", "linea-mainnet", "https://lineascan.build"),
		infuraNetwork("0xaa36a7", "Sepolia", "SepoliaETH", "sepolia", "https://sepolia.etherscan.io"),
	}
}

// DefaultEnabledNetworks 默认启用的网络（按检测顺序）
func DefaultEnabledNetworks() []string {
	return []string{"0x1"}
}

func infuraNetwork(chainID, name, currency, infuraName, explorer string) NetworkConfig {
	return NetworkConfig{
		ChainID:        chainID,
		Name:           name,
		NativeCurrency: currency,
		RPCEndpoints: []RPCEndpointConfig{{
			NetworkClientID: infuraName,
			URL:             fmt.Sprintf("https://%s.infura.io/v3/%s", infuraName, InfuraProjectIDPlaceholder),
			Type:            "infura",
		}},
		BlockExplorerURLs: []string{explorer},
	}
}

// Validate 验证网络配置
func (n *NetworkConfig) Validate() error {
	if !strings.HasPrefix(n.ChainID, "0x") {
		return fmt.Errorf("network %q: chain_id must be hex with 0x prefix, got %q", n.Name, n.ChainID)
	}
	if n.Name == "" {
		return fmt.Errorf("network %s: name is required", n.ChainID)
	}
	if len(n.RPCEndpoints) == 0 {
		return fmt.Errorf("network %s: at least one rpc endpoint is required", n.ChainID)
	}
	if n.DefaultRPCEndpointIndex < 0 || n.DefaultRPCEndpointIndex >= len(n.RPCEndpoints) {
		return fmt.Errorf("network %s: default_rpc_endpoint_index %d out of range",
			n.ChainID, n.DefaultRPCEndpointIndex)
	}
	for _, ep := range n.RPCEndpoints {
		if ep.NetworkClientID == "" || ep.URL == "" {
			return fmt.Errorf("network %s: rpc endpoint requires network_client_id and url", n.ChainID)
		}
		if ep.Type != "infura" && ep.Type != "custom" {
			return fmt.Errorf("network %s: unknown rpc endpoint type %q", n.ChainID, ep.Type)
		}
	}
	return nil
}
