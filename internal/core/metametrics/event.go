package metametrics

import (
	"time"

	"github.com/google/uuid"

	"github.com/samsmith08/netbanner/pkg/interfaces"
)

// NewEvent 构造埋点事件，生成唯一消息 ID
func NewEvent(category interfaces.MetricsEventCategory, event string, props map[string]string) interfaces.MetricsEvent {
	copied := make(map[string]string, len(props))
	for k, v := range props {
		copied[k] = v
	}
	return interfaces.MetricsEvent{
		MessageID:  uuid.NewString(),
		Category:   category,
		Event:      event,
		Properties: copied,
		Timestamp:  time.Now(),
	}
}
