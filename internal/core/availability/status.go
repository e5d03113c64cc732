package availability

import "fmt"

// RpcStatus 单个网络客户端的 RPC 可达状态
type RpcStatus int

const (
	// StatusUnknown 尚无探测结果
	StatusUnknown RpcStatus = iota

	// StatusAvailable 请求正常
	StatusAvailable

	// StatusDegraded 请求部分失败或明显变慢
	StatusDegraded

	// StatusUnavailable 请求持续失败
	StatusUnavailable
)

// String 返回状态的字符串表示
func (s RpcStatus) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusAvailable:
		return "available"
	case StatusDegraded:
		return "degraded"
	case StatusUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("RpcStatus(%d)", int(s))
	}
}

// IsUnreachable 是否视为不可达
func (s RpcStatus) IsUnreachable() bool {
	return s == StatusDegraded || s == StatusUnavailable
}

// ParseRpcStatus 解析状态字符串
func ParseRpcStatus(s string) (RpcStatus, error) {
	switch s {
	case "unknown":
		return StatusUnknown, nil
	case "available":
		return StatusAvailable, nil
	case "degraded":
		return StatusDegraded, nil
	case "unavailable":
		return StatusUnavailable, nil
	default:
		return StatusUnknown, fmt.Errorf("unknown rpc status %q", s)
	}
}
