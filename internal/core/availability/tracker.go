// Package availability 根据各网络客户端的 RPC 状态计算可用性信号
//
// Tracker 只汇总外部探测器上报的状态，不自行探测网络。
// 信号定义为：按启用顺序遍历网络，第一个默认端点处于
// degraded 或 unavailable 状态的网络；全部可达时为 nil。
package availability

import (
	"sync"

	"github.com/samsmith08/netbanner/internal/core/eventbus"
	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/lib/log"
	"github.com/samsmith08/netbanner/pkg/types"
)

var logger = log.Logger("core/availability")

// Tracker 可用性信号
type Tracker struct {
	mu       sync.Mutex
	networks interfaces.NetworkConfigurationSource
	enabled  []types.ChainID
	statuses map[string]RpcStatus

	// last 最近一次计算出的信号，用于判断是否变化
	last *interfaces.NetworkRef

	topic *eventbus.Topic[*interfaces.NetworkRef]
}

// 确保实现接口
var _ interfaces.AvailabilitySignal = (*Tracker)(nil)

// NewTracker 创建可用性信号
//
// enabled 为参与检测的链 ID，顺序决定"第一个"不可达网络。
func NewTracker(networks interfaces.NetworkConfigurationSource, enabled []types.ChainID) *Tracker {
	return &Tracker{
		networks: networks,
		enabled:  append([]types.ChainID(nil), enabled...),
		statuses: make(map[string]RpcStatus),
		topic:    eventbus.NewTopic[*interfaces.NetworkRef]("availability"),
	}
}

// SetStatus 更新某个网络客户端的 RPC 状态
//
// 返回信号是否因此发生变化。
func (t *Tracker) SetStatus(networkClientID string, status RpcStatus) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.statuses[networkClientID]
	if prev == status {
		return false
	}
	t.statuses[networkClientID] = status

	logger.Debug("RPC 状态更新",
		"networkClientId", networkClientID,
		"previous", prev.String(),
		"current", status.String())

	return t.recomputeLocked()
}

// Status 返回某个网络客户端的 RPC 状态
func (t *Tracker) Status(networkClientID string) RpcStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statuses[networkClientID]
}

// SetEnabledNetworks 替换参与检测的网络列表
func (t *Tracker) SetEnabledNetworks(enabled []types.ChainID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = append([]types.ChainID(nil), enabled...)
	return t.recomputeLocked()
}

// Refresh 网络配置变化后重新计算信号
func (t *Tracker) Refresh() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recomputeLocked()
}

// FirstUnavailableNetwork 返回第一个不可达网络，全部可达时返回 nil
//
// 每次调用返回新的副本，调用方可以自由持有。
func (t *Tracker) FirstUnavailableNetwork() *interfaces.NetworkRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.computeLocked()
}

// Subscribe 订阅信号变化
func (t *Tracker) Subscribe() (<-chan *interfaces.NetworkRef, func()) {
	return t.topic.Subscribe()
}

// Close 关闭订阅通道
func (t *Tracker) Close() {
	t.topic.Close()
}

func (t *Tracker) computeLocked() *interfaces.NetworkRef {
	if len(t.enabled) == 0 {
		return nil
	}
	configs := t.networks.NetworkConfigurationsByChainID()
	for _, chainID := range t.enabled {
		nc, ok := configs[chainID]
		if !ok {
			continue
		}
		ep, ok := nc.DefaultRpcEndpoint()
		if !ok {
			continue
		}
		if t.statuses[ep.NetworkClientID].IsUnreachable() {
			return &interfaces.NetworkRef{
				NetworkName:     nc.Name,
				NetworkClientID: ep.NetworkClientID,
				ChainID:         nc.ChainID,
			}
		}
	}
	return nil
}

func (t *Tracker) recomputeLocked() bool {
	next := t.computeLocked()
	if sameRef(t.last, next) {
		return false
	}
	t.last = next

	var evt *interfaces.NetworkRef
	if next != nil {
		cp := *next
		evt = &cp
	}
	t.topic.Emit(evt)
	return true
}

func sameRef(a, b *interfaces.NetworkRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
