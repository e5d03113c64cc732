package netbanner

import "errors"

// 公共错误定义
var (
	// ErrNotStarted 应用未启动
	ErrNotStarted = errors.New("app not started")

	// ErrAlreadyStarted 应用已启动
	ErrAlreadyStarted = errors.New("app already started")

	// ErrAppClosed 应用已关闭
	ErrAppClosed = errors.New("app closed")

	// ErrHistoryUnavailable 内存存储不记录横幅历史
	ErrHistoryUnavailable = errors.New("banner history requires persistent storage")
)
