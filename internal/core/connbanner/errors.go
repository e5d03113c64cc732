package connbanner

import "errors"

var (
	// ErrAlreadyStarted 监控器已启动
	ErrAlreadyStarted = errors.New("connbanner: monitor already started")

	// ErrStopped 监控器已停止，不能再次启动
	ErrStopped = errors.New("connbanner: monitor stopped")

	// ErrInvalidConfig 无效配置
	ErrInvalidConfig = errors.New("connbanner: invalid config")

	// ErrTelemetryDisabled 埋点已关闭
	ErrTelemetryDisabled = errors.New("connbanner: telemetry disabled")

	// ErrMissingProjectID 未配置 Infura 项目 ID
	ErrMissingProjectID = errors.New("connbanner: infura project id not configured")

	// ErrNetworkNotFound 找不到包含该客户端 ID 的网络配置
	ErrNetworkNotFound = errors.New("connbanner: network configuration not found")

	// ErrMalformedChainID 链 ID 无法转换
	ErrMalformedChainID = errors.New("connbanner: malformed chain id")
)
