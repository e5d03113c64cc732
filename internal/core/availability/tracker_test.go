package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/internal/core/netconfig"
	"github.com/samsmith08/netbanner/pkg/interfaces"
	"github.com/samsmith08/netbanner/pkg/types"
)

func newTestTracker(t *testing.T, enabled ...types.ChainID) *Tracker {
	t.Helper()
	registry, err := netconfig.FromUnified(config.NewConfig())
	require.NoError(t, err)
	tr := NewTracker(registry, enabled)
	t.Cleanup(tr.Close)
	return tr
}

// TestTracker_AllAvailable 测试全部可达时信号为 nil
func TestTracker_AllAvailable(t *testing.T) {
	tr := newTestTracker(t, "0x1", "0xe708")

	assert.Nil(t, tr.FirstUnavailableNetwork())

	tr.SetStatus("mainnet", StatusAvailable)
	tr.SetStatus("linea-mainnet", StatusAvailable)
	assert.Nil(t, tr.FirstUnavailableNetwork())
}

// TestTracker_FirstUnavailableInOrder 测试按启用顺序返回第一个不可达网络
func TestTracker_FirstUnavailableInOrder(t *testing.T) {
	tr := newTestTracker(t, "0x1", "0xe708")

	tr.SetStatus("linea-mainnet", StatusUnavailable)
	ref := tr.FirstUnavailableNetwork()
	require.NotNil(t, ref)
	assert.Equal(t, interfaces.NetworkRef{
		NetworkName:     "Linea Mainnet",
		NetworkClientID: "linea-mainnet",
		ChainID:         "0xe708",
	}, *ref)

	tr.SetStatus("mainnet", StatusDegraded)
	ref = tr.FirstUnavailableNetwork()
	require.NotNil(t, ref)
	assert.Equal(t, "mainnet", ref.NetworkClientID)
}

// TestTracker_IgnoresDisabledNetworks 测试未启用网络不参与检测
func TestTracker_IgnoresDisabledNetworks(t *testing.T) {
	tr := newTestTracker(t, "0x1")

	tr.SetStatus("sepolia", StatusUnavailable)
	assert.Nil(t, tr.FirstUnavailableNetwork())

	changed := tr.SetEnabledNetworks([]types.ChainID{"0x1", "0xaa36a7"})
	assert.True(t, changed)
	require.NotNil(t, tr.FirstUnavailableNetwork())
	assert.Equal(t, "Sepolia", tr.FirstUnavailableNetwork().NetworkName)
}

// TestTracker_NotifiesOnlyOnSignalChange 测试只在信号变化时通知
func TestTracker_NotifiesOnlyOnSignalChange(t *testing.T) {
	tr := newTestTracker(t, "0x1", "0xe708")
	ch, cancel := tr.Subscribe()
	defer cancel()

	assert.True(t, tr.SetStatus("mainnet", StatusUnavailable))
	ref := <-ch
	require.NotNil(t, ref)
	assert.Equal(t, "mainnet", ref.NetworkClientID)

	// 状态变化但信号不变
	assert.False(t, tr.SetStatus("mainnet", StatusDegraded))
	assert.False(t, tr.SetStatus("linea-mainnet", StatusUnavailable))
	// 重复写入
	assert.False(t, tr.SetStatus("linea-mainnet", StatusUnavailable))

	assert.True(t, tr.SetStatus("mainnet", StatusAvailable))
	ref = <-ch
	require.NotNil(t, ref)
	assert.Equal(t, "linea-mainnet", ref.NetworkClientID)

	assert.True(t, tr.SetStatus("linea-mainnet", StatusAvailable))
	assert.Nil(t, <-ch)

	select {
	case extra := <-ch:
		t.Fatalf("unexpected notification: %+v", extra)
	default:
	}
}

// TestTracker_ReturnsCopies 测试返回值互不影响
func TestTracker_ReturnsCopies(t *testing.T) {
	tr := newTestTracker(t, "0x1")
	tr.SetStatus("mainnet", StatusUnavailable)

	a := tr.FirstUnavailableNetwork()
	a.NetworkName = "mutated"
	b := tr.FirstUnavailableNetwork()
	assert.Equal(t, "Ethereum Mainnet", b.NetworkName)
}

// TestParseRpcStatus 测试状态解析
func TestParseRpcStatus(t *testing.T) {
	for _, s := range []RpcStatus{StatusUnknown, StatusAvailable, StatusDegraded, StatusUnavailable} {
		parsed, err := ParseRpcStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseRpcStatus("offline")
	assert.Error(t, err)
	assert.False(t, StatusAvailable.IsUnreachable())
	assert.True(t, StatusDegraded.IsUnreachable())
}
