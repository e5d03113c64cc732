package connbanner

import (
	"time"

	"github.com/samsmith08/netbanner/pkg/interfaces"
)

// TimerKind 评估后需要启动的计时器
type TimerKind int

const (
	// TimerNone 不启动计时器
	TimerNone TimerKind = iota
	// TimerSlow 启动 slow 计时器
	TimerSlow
	// TimerUnavailable 启动 unavailable 计时器
	TimerUnavailable
)

// String 返回计时器名称
func (k TimerKind) String() string {
	switch k {
	case TimerSlow:
		return "slow"
	case TimerUnavailable:
		return "unavailable"
	default:
		return "none"
	}
}

// Decision 一次评估的结果
type Decision struct {
	// Write 需要立即写入的横幅状态，nil 表示不写
	Write *interfaces.BannerState

	// Timer 需要启动的计时器
	Timer TimerKind

	// Delay 计时器延迟
	Delay time.Duration

	// Network 计时器触发时使用的网络（评估时捕获）
	Network *interfaces.NetworkRef
}

// Evaluate 根据当前信号和横幅状态决定下一步动作
//
// 调用方负责在应用决策前取消上一周期的全部计时器。
//
//   - 信号非空且状态为 slow：启动 unavailable 计时器，延迟为剩余时间
//   - 信号非空且状态为 unknown/available：启动 slow 计时器
//   - 信号非空且状态为 unavailable：无动作
//   - 信号为空且状态不是 available：立即写入 available，不发埋点
func Evaluate(signal *interfaces.NetworkRef, prior interfaces.BannerState, cfg *Config) Decision {
	if signal == nil {
		if prior.Status == interfaces.BannerAvailable {
			return Decision{}
		}
		available := interfaces.AvailableBanner()
		return Decision{Write: &available}
	}

	ref := *signal
	switch prior.Status {
	case interfaces.BannerSlow:
		return Decision{Timer: TimerUnavailable, Delay: cfg.RemainingDelay(), Network: &ref}
	case interfaces.BannerUnknown, interfaces.BannerAvailable:
		return Decision{Timer: TimerSlow, Delay: cfg.SlowDelay, Network: &ref}
	default:
		// unavailable 保持到信号恢复，不切换到新的不可达网络
		return Decision{}
	}
}
