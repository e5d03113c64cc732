package metametrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/samsmith08/netbanner/pkg/interfaces"
)

// PrometheusSink 以计数器记录埋点事件
type PrometheusSink struct {
	events *prometheus.CounterVec
}

// NewPrometheusSink 创建并注册计数器
//
// reg 为 nil 时使用 prometheus.DefaultRegisterer。
// 重复注册时复用已有的计数器。
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netbanner",
		Subsystem: "metametrics",
		Name:      "events_total",
		Help:      "Number of connection banner telemetry events emitted.",
	}, []string{"category", "event", interfaces.PropChainIDCAIP, interfaces.PropRpcEndpointURL})

	if err := reg.Register(events); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		events = existing
	}
	return &PrometheusSink{events: events}, nil
}

// TrackEvent 递增对应标签的计数
func (s *PrometheusSink) TrackEvent(event interfaces.MetricsEvent) {
	s.events.WithLabelValues(
		string(event.Category),
		event.Event,
		event.Properties[interfaces.PropChainIDCAIP],
		event.Properties[interfaces.PropRpcEndpointURL],
	).Inc()
}

// Counter 返回指定标签的计数器
func (s *PrometheusSink) Counter(category interfaces.MetricsEventCategory, event, chainIDCAIP, endpoint string) prometheus.Counter {
	return s.events.WithLabelValues(string(category), event, chainIDCAIP, endpoint)
}
