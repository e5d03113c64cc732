package connbanner

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/samsmith08/netbanner/config"
)

// CustomEndpoint 非公共端点在埋点中的替代值
const CustomEndpoint = "custom"

// infuraEndpointPattern 匹配 MetaMask 自带的 Infura 端点（占位符或真实项目 ID）
func infuraEndpointPattern(projectID string) *regexp.Regexp {
	return regexp.MustCompile(`^https://[^.]+\.infura\.io/v3/(?:` +
		regexp.QuoteMeta(config.InfuraProjectIDPlaceholder) + `|` +
		regexp.QuoteMeta(projectID) + `)$`)
}

// EndpointClassifier 判断 RPC 端点是否为公共端点
type EndpointClassifier struct {
	infura    *regexp.Regexp
	quicknode map[string]struct{}
	known     map[string]struct{}
}

// NewEndpointClassifier 创建分类器
//
// projectID 为空时只有带占位符的 Infura 端点被识别。
func NewEndpointClassifier(projectID string, quicknode, known []string) *EndpointClassifier {
	c := &EndpointClassifier{
		infura:    infuraEndpointPattern(projectID),
		quicknode: make(map[string]struct{}, len(quicknode)),
		known:     make(map[string]struct{}, len(known)),
	}
	for _, u := range quicknode {
		if u != "" {
			c.quicknode[u] = struct{}{}
		}
	}
	for _, u := range known {
		c.known[u] = struct{}{}
	}
	return c
}

// IsPublic 端点是否为 Infura、QuickNode 或已知的公共端点
func (c *EndpointClassifier) IsPublic(endpointURL string) bool {
	if c.infura.MatchString(endpointURL) {
		return true
	}
	if _, ok := c.quicknode[endpointURL]; ok {
		return true
	}
	_, ok := c.known[endpointURL]
	return ok
}

// Sanitize 公共端点只保留主机名，其余替换为 "custom"
func (c *EndpointClassifier) Sanitize(endpointURL string) string {
	if !c.IsPublic(endpointURL) {
		return CustomEndpoint
	}
	host, ok := OnlyKeepHost(endpointURL)
	if !ok {
		return CustomEndpoint
	}
	return host
}

// OnlyKeepHost 返回 URL 的主机部分（含端口）
func OnlyKeepHost(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}
	return u.Host, true
}
