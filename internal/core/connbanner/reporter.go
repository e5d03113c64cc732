package connbanner

import (
	"fmt"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/internal/core/metametrics"
	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/types"
)

// BannerEventReporter 发送横幅埋点
type BannerEventReporter interface {
	ReportBannerEvent(eventName, networkClientID string) error
}

// ReporterConfig 埋点配置
type ReporterConfig struct {
	// Enabled 是否发送埋点
	Enabled bool

	// InfuraProjectID Infura 项目 ID，为空时不发送埋点
	InfuraProjectID string

	// QuicknodeEndpoints 视为公共端点的 QuickNode URL
	QuicknodeEndpoints []string

	// KnownPublicEndpoints 其他视为公共端点的 URL
	KnownPublicEndpoints []string
}

// ReporterConfigFromUnified 从统一配置提取埋点配置
func ReporterConfigFromUnified(cfg *config.Config) ReporterConfig {
	tc := config.DefaultTelemetryConfig()
	if cfg != nil {
		tc = cfg.Telemetry
	}
	return ReporterConfig{
		Enabled:              tc.Enabled,
		InfuraProjectID:      tc.ResolveInfuraProjectID(),
		QuicknodeEndpoints:   append([]string(nil), tc.QuicknodeEndpoints...),
		KnownPublicEndpoints: append([]string(nil), tc.KnownPublicEndpoints...),
	}
}

// Reporter 脱敏并发送横幅埋点
type Reporter struct {
	cfg        ReporterConfig
	networks   interfaces.NetworkConfigurationSource
	sink       interfaces.MetricsSink
	classifier *EndpointClassifier

	// sanitized 端点 URL → 脱敏结果
	sanitized *lru.Cache[string, string]

	// 缺少项目 ID 时每次评估都会触发告警，限制日志频率
	warnMissing rate.Sometimes
}

// 确保实现接口
var _ BannerEventReporter = (*Reporter)(nil)

// NewReporter 创建埋点发送器
func NewReporter(cfg ReporterConfig, networks interfaces.NetworkConfigurationSource, sink interfaces.MetricsSink) *Reporter {
	// 仅在 size <= 0 时返回错误
	cache, _ := lru.New[string, string](sanitizedCacheSize)
	return &Reporter{
		cfg:         cfg,
		networks:    networks,
		sink:        sink,
		classifier:  NewEndpointClassifier(cfg.InfuraProjectID, cfg.QuicknodeEndpoints, cfg.KnownPublicEndpoints),
		sanitized:   cache,
		warnMissing: rate.Sometimes{First: 1, Interval: time.Minute},
	}
}

// sanitizedCacheSize 脱敏结果缓存条数
const sanitizedCacheSize = 256

// sanitize 返回端点 URL 的脱敏结果
func (r *Reporter) sanitize(endpointURL string) string {
	if v, ok := r.sanitized.Get(endpointURL); ok {
		return v
	}
	v := r.classifier.Sanitize(endpointURL)
	r.sanitized.Add(endpointURL, v)
	return v
}

// ReportBannerEvent 查找端点所属网络并发送一条 Network 类埋点
//
// 返回的错误仅供调用方记录，不应影响横幅状态。
func (r *Reporter) ReportBannerEvent(eventName, networkClientID string) error {
	if !r.cfg.Enabled || r.sink == nil {
		return ErrTelemetryDisabled
	}
	if r.cfg.InfuraProjectID == "" {
		r.warnMissing.Do(func() {
			logger.Warn("未配置 Infura 项目 ID，跳过横幅埋点", "event", eventName)
		})
		return ErrMissingProjectID
	}

	network, endpoint, err := r.lookup(networkClientID)
	if err != nil {
		logger.Warn("横幅埋点找不到网络配置", "networkClientId", networkClientID, "error", err)
		return err
	}

	caip, err := network.ChainID.CAIP()
	if err != nil {
		logger.Warn("横幅埋点链 ID 无法转换", "chainId", network.ChainID, "error", err)
		return fmt.Errorf("%w: %s: %v", ErrMalformedChainID, network.ChainID, err)
	}

	props := map[string]string{
		interfaces.PropChainIDCAIP:    caip,
		interfaces.PropRpcEndpointURL: r.sanitize(endpoint.URL),
	}
	r.sink.TrackEvent(metametrics.NewEvent(interfaces.CategoryNetwork, eventName, props))

	logger.Debug("横幅埋点已发送",
		"event", eventName,
		"chainIdCaip", caip,
		"rpcEndpointUrl", props[interfaces.PropRpcEndpointURL])
	return nil
}

// lookup 在全部网络配置中查找包含该客户端 ID 的端点
func (r *Reporter) lookup(networkClientID string) (interfaces.NetworkConfiguration, interfaces.RpcEndpoint, error) {
	if r.networks == nil {
		return interfaces.NetworkConfiguration{}, interfaces.RpcEndpoint{}, ErrNetworkNotFound
	}
	configs := r.networks.NetworkConfigurationsByChainID()

	// 按链 ID 排序遍历，保证多个网络共享客户端 ID 时结果稳定
	ids := make([]types.ChainID, 0, len(configs))
	for id := range configs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		nc := configs[id]
		if ep, ok := nc.RpcEndpointByClientID(networkClientID); ok {
			return nc, ep, nil
		}
	}
	return interfaces.NetworkConfiguration{}, interfaces.RpcEndpoint{},
		fmt.Errorf("%w: client %s", ErrNetworkNotFound, networkClientID)
}
