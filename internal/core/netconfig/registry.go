// Package netconfig 维护按链 ID 索引的网络配置
//
// Registry 是 interfaces.NetworkConfigurationSource 的实现，
// 为可用性检测提供网络名称与默认端点，为埋点脱敏提供端点 URL。
package netconfig

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/lib/log"
	"github.com/samsmith08/netbanner/pkg/types"
)

var logger = log.Logger("core/netconfig")

var (
	// ErrNetworkNotFound 链 ID 未配置
	ErrNetworkNotFound = errors.New("network configuration not found")

	// ErrNetworkClientNotFound 网络客户端 ID 未配置
	ErrNetworkClientNotFound = errors.New("network client not found")

	// ErrDuplicateClientID 网络客户端 ID 已被其他网络使用
	ErrDuplicateClientID = errors.New("duplicate network client id")

	// ErrInvalidConfiguration 网络配置不完整
	ErrInvalidConfiguration = errors.New("invalid network configuration")
)

// Registry 网络配置注册表
type Registry struct {
	mu       sync.RWMutex
	networks map[types.ChainID]interfaces.NetworkConfiguration

	// clientIndex 网络客户端 ID → 链 ID
	clientIndex map[string]types.ChainID
}

// 确保实现接口
var _ interfaces.NetworkConfigurationSource = (*Registry)(nil)

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		networks:    make(map[types.ChainID]interfaces.NetworkConfiguration),
		clientIndex: make(map[string]types.ChainID),
	}
}

// FromUnified 从统一配置构建注册表
func FromUnified(cfg *config.Config) (*Registry, error) {
	r := NewRegistry()
	if cfg == nil {
		return r, nil
	}
	for _, n := range cfg.Networks {
		if err := r.Add(convertNetwork(n)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func convertNetwork(n config.NetworkConfig) interfaces.NetworkConfiguration {
	endpoints := make([]interfaces.RpcEndpoint, 0, len(n.RPCEndpoints))
	for _, ep := range n.RPCEndpoints {
		endpoints = append(endpoints, interfaces.RpcEndpoint{
			NetworkClientID: ep.NetworkClientID,
			URL:             ep.URL,
			Type:            interfaces.RpcEndpointType(ep.Type),
			Name:            ep.Name,
		})
	}
	return interfaces.NetworkConfiguration{
		ChainID:                 types.ChainID(n.ChainID),
		Name:                    n.Name,
		NativeCurrency:          n.NativeCurrency,
		RpcEndpoints:            endpoints,
		DefaultRpcEndpointIndex: n.DefaultRPCEndpointIndex,
		BlockExplorerURLs:       append([]string(nil), n.BlockExplorerURLs...),
	}
}

// Add 添加或替换一条链的网络配置
func (r *Registry) Add(nc interfaces.NetworkConfiguration) error {
	if nc.ChainID == "" || len(nc.RpcEndpoints) == 0 {
		return fmt.Errorf("%w: chain %q", ErrInvalidConfiguration, nc.ChainID)
	}
	if _, ok := nc.DefaultRpcEndpoint(); !ok {
		return fmt.Errorf("%w: chain %s default endpoint index %d out of range",
			ErrInvalidConfiguration, nc.ChainID, nc.DefaultRpcEndpointIndex)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(nc.RpcEndpoints))
	for _, ep := range nc.RpcEndpoints {
		if ep.NetworkClientID == "" {
			return fmt.Errorf("%w: chain %s has endpoint without client id", ErrInvalidConfiguration, nc.ChainID)
		}
		if _, dup := seen[ep.NetworkClientID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateClientID, ep.NetworkClientID)
		}
		seen[ep.NetworkClientID] = struct{}{}
		if owner, ok := r.clientIndex[ep.NetworkClientID]; ok && owner != nc.ChainID {
			return fmt.Errorf("%w: %s already belongs to %s", ErrDuplicateClientID, ep.NetworkClientID, owner)
		}
	}

	r.removeLocked(nc.ChainID)
	nc.RpcEndpoints = append([]interfaces.RpcEndpoint(nil), nc.RpcEndpoints...)
	r.networks[nc.ChainID] = nc
	for _, ep := range nc.RpcEndpoints {
		r.clientIndex[ep.NetworkClientID] = nc.ChainID
	}

	logger.Debug("网络配置已注册", "chainId", nc.ChainID, "name", nc.Name, "endpoints", len(nc.RpcEndpoints))
	return nil
}

// Remove 删除一条链的网络配置
func (r *Registry) Remove(chainID types.ChainID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(chainID)
}

func (r *Registry) removeLocked(chainID types.ChainID) bool {
	old, ok := r.networks[chainID]
	if !ok {
		return false
	}
	for _, ep := range old.RpcEndpoints {
		delete(r.clientIndex, ep.NetworkClientID)
	}
	delete(r.networks, chainID)
	return true
}

// Get 按链 ID 获取网络配置
func (r *Registry) Get(chainID types.ChainID) (interfaces.NetworkConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nc, ok := r.networks[chainID]
	if !ok {
		return interfaces.NetworkConfiguration{}, fmt.Errorf("%w: %s", ErrNetworkNotFound, chainID)
	}
	return nc, nil
}

// DefaultEndpoint 返回指定链的默认 RPC 端点
func (r *Registry) DefaultEndpoint(chainID types.ChainID) (interfaces.RpcEndpoint, error) {
	nc, err := r.Get(chainID)
	if err != nil {
		return interfaces.RpcEndpoint{}, err
	}
	ep, _ := nc.DefaultRpcEndpoint()
	return ep, nil
}

// FindByNetworkClientID 查找包含指定客户端 ID 的网络配置及对应端点
func (r *Registry) FindByNetworkClientID(networkClientID string) (interfaces.NetworkConfiguration, interfaces.RpcEndpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chainID, ok := r.clientIndex[networkClientID]
	if !ok {
		return interfaces.NetworkConfiguration{}, interfaces.RpcEndpoint{},
			fmt.Errorf("%w: %s", ErrNetworkClientNotFound, networkClientID)
	}
	nc := r.networks[chainID]
	ep, _ := nc.RpcEndpointByClientID(networkClientID)
	return nc, ep, nil
}

// ChainIDs 返回所有已注册链 ID（有序）
func (r *Registry) ChainIDs() []types.ChainID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]types.ChainID, 0, len(r.networks))
	for id := range r.networks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NetworkConfigurationsByChainID 返回网络配置快照
func (r *Registry) NetworkConfigurationsByChainID() map[types.ChainID]interfaces.NetworkConfiguration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[types.ChainID]interfaces.NetworkConfiguration, len(r.networks))
	for id, nc := range r.networks {
		out[id] = nc
	}
	return out
}
