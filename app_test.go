package netbanner

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/internal/core/availability"
	"github.com/samsmith08/netbanner/internal/core/metametrics"
	"github.com/samsmith08/netbanner/pkg/interfaces"
)

func newTestApp(t *testing.T, cfg *config.Config) (*App, *clock.Mock, *metametrics.RecordingSink) {
	t.Helper()
	mock := clock.NewMock()
	sink := &metametrics.RecordingSink{}

	app, err := New(
		WithConfig(cfg),
		WithClock(mock),
		WithMetricsSink(sink),
		WithRegisterer(prometheus.NewRegistry()),
	)
	require.NoError(t, err)
	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() { _ = app.Stop(context.Background()) })
	return app, mock, sink
}

// waitStatus 逐步推进 mock 时钟直到到达指定状态
func waitStatus(t *testing.T, app *App, mock *clock.Mock, status interfaces.BannerStatus) {
	t.Helper()
	require.Eventually(t, func() bool {
		if app.Monitor().BannerState().Status == status {
			return true
		}
		mock.Add(time.Second)
		return false
	}, 2*time.Second, 5*time.Millisecond)
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Telemetry.InfuraProjectID = "test-project"
	return cfg
}

// TestApp_BannerLifecycle 测试从可达到不可达再恢复的完整流程
func TestApp_BannerLifecycle(t *testing.T) {
	app, mock, sink := newTestApp(t, testConfig())

	assert.Equal(t, interfaces.AvailableBanner(), app.Monitor().BannerState())

	app.Tracker().SetStatus("mainnet", availability.StatusUnavailable)
	waitStatus(t, app, mock, interfaces.BannerSlow)
	waitStatus(t, app, mock, interfaces.BannerUnavailable)

	state := app.Store().BannerState()
	assert.Equal(t, "mainnet", state.NetworkClientID)
	assert.Equal(t, "Ethereum Mainnet", state.NetworkName)

	app.Tracker().SetStatus("mainnet", availability.StatusAvailable)
	require.Eventually(t, func() bool {
		return app.Monitor().BannerState().Status == interfaces.BannerAvailable
	}, time.Second, time.Millisecond)

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, interfaces.EventSlowRpcBannerShown, events[0].Event)
	assert.Equal(t, interfaces.EventUnavailableRpcBannerShown, events[1].Event)
	for _, e := range events {
		assert.Equal(t, "eip155:1", e.Properties[interfaces.PropChainIDCAIP])
		assert.Equal(t, "mainnet.infura.io", e.Properties[interfaces.PropRpcEndpointURL])
	}
}

// TestApp_PersistentHistory 测试持久化存储记录横幅历史
func TestApp_PersistentHistory(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Persistent = true
	cfg.Storage.InMemory = true

	app, mock, _ := newTestApp(t, cfg)

	app.Tracker().SetStatus("mainnet", availability.StatusDegraded)
	waitStatus(t, app, mock, interfaces.BannerSlow)

	history, err := app.History(10)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, interfaces.BannerSlow, history[0].To.Status)
}

// TestApp_HistoryRequiresPersistence 测试内存存储没有历史
func TestApp_HistoryRequiresPersistence(t *testing.T) {
	app, _, _ := newTestApp(t, testConfig())

	_, err := app.History(10)
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
}

// TestApp_Lifecycle 测试启动与停止状态
func TestApp_Lifecycle(t *testing.T) {
	app, err := New(WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)

	require.NoError(t, app.Start(context.Background()))
	assert.ErrorIs(t, app.Start(context.Background()), ErrAlreadyStarted)

	require.NoError(t, app.Stop(context.Background()))
	require.NoError(t, app.Stop(context.Background()))
	assert.ErrorIs(t, app.Start(context.Background()), ErrAppClosed)
}

// TestNew_InvalidConfig 测试非法配置
func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.EnabledNetworks = []string{"0x89"}

	_, err := New(WithConfig(cfg))
	assert.Error(t, err)

	_, err = New(WithConfig(nil))
	assert.Error(t, err)

	_, err = New(WithConfigFile("/nonexistent/netbanner.json"))
	assert.Error(t, err)
}

// TestVersionInfo 测试版本信息
func TestVersionInfo(t *testing.T) {
	assert.Contains(t, VersionInfo(), Version)
}
