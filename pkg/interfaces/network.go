// Package interfaces 定义 NetBanner 公共接口
//
// 本文件定义网络配置接口，对应 internal/core/netconfig/ 实现。
package interfaces

import (
	"github.com/samsmith08/netbanner/pkg/types"
)

// RpcEndpointType RPC 端点类型
type RpcEndpointType string

const (
	// RpcEndpointInfura 由 Infura 托管的端点，URL 中可带 {infuraProjectId} 占位符
	RpcEndpointInfura RpcEndpointType = "infura"

	// RpcEndpointCustom 用户自定义端点
	RpcEndpointCustom RpcEndpointType = "custom"
)

// RpcEndpoint 单个 RPC 端点
type RpcEndpoint struct {
	NetworkClientID string          `json:"networkClientId"`
	URL             string          `json:"url"`
	Type            RpcEndpointType `json:"type"`
	Name            string          `json:"name,omitempty"`
}

// NetworkConfiguration 一条链的网络配置
type NetworkConfiguration struct {
	ChainID                      types.ChainID `json:"chainId"`
	Name                         string        `json:"name"`
	NativeCurrency               string        `json:"nativeCurrency"`
	RpcEndpoints                 []RpcEndpoint `json:"rpcEndpoints"`
	DefaultRpcEndpointIndex      int           `json:"defaultRpcEndpointIndex"`
	BlockExplorerURLs            []string      `json:"blockExplorerUrls,omitempty"`
	DefaultBlockExplorerURLIndex *int          `json:"defaultBlockExplorerUrlIndex,omitempty"`
}

// DefaultRpcEndpoint 返回默认 RPC 端点
func (c NetworkConfiguration) DefaultRpcEndpoint() (RpcEndpoint, bool) {
	if c.DefaultRpcEndpointIndex < 0 || c.DefaultRpcEndpointIndex >= len(c.RpcEndpoints) {
		return RpcEndpoint{}, false
	}
	return c.RpcEndpoints[c.DefaultRpcEndpointIndex], true
}

// RpcEndpointByClientID 按网络客户端 ID 查找端点
func (c NetworkConfiguration) RpcEndpointByClientID(networkClientID string) (RpcEndpoint, bool) {
	for _, ep := range c.RpcEndpoints {
		if ep.NetworkClientID == networkClientID {
			return ep, true
		}
	}
	return RpcEndpoint{}, false
}

// NetworkConfigurationSource 网络配置来源
//
// 实现位置：internal/core/netconfig/
type NetworkConfigurationSource interface {
	// NetworkConfigurationsByChainID 返回按链 ID 索引的网络配置快照
	NetworkConfigurationsByChainID() map[types.ChainID]NetworkConfiguration
}
