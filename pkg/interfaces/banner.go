// Package interfaces 定义 NetBanner 公共接口
//
// 本文件定义网络连接横幅相关接口，对应 internal/core/connbanner/ 实现。
package interfaces

import (
	"context"
	"fmt"
	"time"

	"github.com/samsmith08/netbanner/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
// 横幅状态
// ════════════════════════════════════════════════════════════════════════════

// BannerStatus 网络连接横幅状态
type BannerStatus int

const (
	// BannerUnknown 初始状态，尚未做出任何判断
	BannerUnknown BannerStatus = iota

	// BannerAvailable 所有监控的网络均可达
	BannerAvailable

	// BannerSlow 网络持续不可达超过慢速阈值
	BannerSlow

	// BannerUnavailable 网络持续不可达超过不可用阈值
	BannerUnavailable
)

// String 返回状态的字符串表示
func (s BannerStatus) String() string {
	switch s {
	case BannerUnknown:
		return "unknown"
	case BannerAvailable:
		return "available"
	case BannerSlow:
		return "slow"
	case BannerUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("BannerStatus(%d)", int(s))
	}
}

// IsDegraded 横幅是否正在展示告警（slow 或 unavailable）
func (s BannerStatus) IsDegraded() bool {
	return s == BannerSlow || s == BannerUnavailable
}

// MarshalText 实现 encoding.TextMarshaler
func (s BannerStatus) MarshalText() ([]byte, error) {
	switch s {
	case BannerUnknown, BannerAvailable, BannerSlow, BannerUnavailable:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid banner status %d", int(s))
	}
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (s *BannerStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseBannerStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseBannerStatus 解析状态字符串
func ParseBannerStatus(s string) (BannerStatus, error) {
	switch s {
	case "unknown":
		return BannerUnknown, nil
	case "available":
		return BannerAvailable, nil
	case "slow":
		return BannerSlow, nil
	case "unavailable":
		return BannerUnavailable, nil
	default:
		return BannerUnknown, fmt.Errorf("unknown banner status %q", s)
	}
}

// NetworkRef 第一个不可达网络的标识
//
// 由可用性信号在每次评估时重新生成，监控器不会修改它。
type NetworkRef struct {
	NetworkName     string        `json:"networkName,omitempty"`
	NetworkClientID string        `json:"networkClientId,omitempty"`
	ChainID         types.ChainID `json:"chainId,omitempty"`
}

// BannerState 横幅状态记录
//
// slow/unavailable 状态总是携带引发它的 NetworkRef，
// unknown/available 状态不携带网络信息。
type BannerState struct {
	Status BannerStatus `json:"status"`
	NetworkRef
}

// UnknownBanner 返回初始状态
func UnknownBanner() BannerState {
	return BannerState{Status: BannerUnknown}
}

// AvailableBanner 返回可用状态（清除网络信息）
func AvailableBanner() BannerState {
	return BannerState{Status: BannerAvailable}
}

// SlowBanner 返回携带网络信息的慢速状态
func SlowBanner(ref NetworkRef) BannerState {
	return BannerState{Status: BannerSlow, NetworkRef: ref}
}

// UnavailableBanner 返回携带网络信息的不可用状态
func UnavailableBanner(ref NetworkRef) BannerState {
	return BannerState{Status: BannerUnavailable, NetworkRef: ref}
}

// HasNetwork 状态是否携带网络信息
func (b BannerState) HasNetwork() bool {
	return b.NetworkClientID != ""
}

// BannerStateChange 横幅状态变更事件
type BannerStateChange struct {
	Previous  BannerState
	Current   BannerState
	Timestamp time.Time
}

// ════════════════════════════════════════════════════════════════════════════
// 外部协作者
// ════════════════════════════════════════════════════════════════════════════

// AvailabilitySignal 网络可用性信号
//
// 实现位置：internal/core/availability/
type AvailabilitySignal interface {
	// FirstUnavailableNetwork 返回第一个不可达网络，全部可达时返回 nil
	FirstUnavailableNetwork() *NetworkRef

	// Subscribe 订阅信号变化通知
	Subscribe() (<-chan *NetworkRef, func())
}

// BannerStore 横幅状态存储
//
// 实现位置：internal/core/bannerstore/
type BannerStore interface {
	// BannerState 读取当前横幅状态
	BannerState() BannerState

	// SetBannerState 写入横幅状态，与当前状态相同时不产生变更事件
	SetBannerState(state BannerState) error

	// Subscribe 订阅状态变更
	Subscribe() (<-chan BannerStateChange, func())
}

// ConnectionBannerMonitor 网络连接横幅监控器
//
// 实现位置：internal/core/connbanner/
type ConnectionBannerMonitor interface {
	Start(ctx context.Context) error
	Stop() error

	// Evaluate 触发一次重新评估
	Evaluate()

	// BannerState 返回当前横幅状态
	BannerState() BannerState

	// TrackBannerEvent 供展示层在用户交互时上报埋点
	TrackBannerEvent(eventName string, networkClientID string)
}
