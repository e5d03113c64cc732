// Package interfaces 定义 NetBanner 公共接口
//
// 本文件定义埋点接口，对应 internal/core/metametrics/ 实现。
package interfaces

import "time"

// MetricsEventCategory 埋点事件分类
type MetricsEventCategory string

// CategoryNetwork 网络类事件
const CategoryNetwork MetricsEventCategory = "Network"

// 横幅相关事件名
const (
	EventSlowRpcBannerShown        = "Slow RPC Banner Shown"
	EventUnavailableRpcBannerShown = "Unavailable RPC Banner Shown"
	EventRpcBannerUpdateRpcClicked = "RPC Banner Update RPC Clicked"
	EventRpcBannerSwitchClicked    = "RPC Banner Switch To Infura Clicked"
)

// 事件属性键（Segment 约定的下划线命名）
const (
	PropChainIDCAIP    = "chain_id_caip"
	PropRpcEndpointURL = "rpc_endpoint_url"
)

// MetricsEvent 结构化埋点事件
type MetricsEvent struct {
	MessageID  string               `json:"messageId"`
	Category   MetricsEventCategory `json:"category"`
	Event      string               `json:"event"`
	Properties map[string]string    `json:"properties"`
	Timestamp  time.Time            `json:"timestamp"`
}

// MetricsSink 埋点接收端，即发即弃
//
// 实现位置：internal/core/metametrics/
type MetricsSink interface {
	TrackEvent(event MetricsEvent)
}
