package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/internal/core/availability"
	"github.com/samsmith08/netbanner/internal/core/netconfig"
	"github.com/samsmith08/netbanner/pkg/types"
)

// TestAllRunnableCommandsHaveArgsValidator 所有可执行子命令都要声明参数校验
func TestAllRunnableCommandsHaveArgsValidator(t *testing.T) {
	var walk func(cmd *cobra.Command)
	walk = func(cmd *cobra.Command) {
		if cmd.Runnable() {
			assert.NotNil(t, cmd.Args, "%s missing Args validator", cmd.CommandPath())
		}
		for _, child := range cmd.Commands() {
			walk(child)
		}
	}
	walk(newRootCmd())
}

// TestParseStatusLine 测试输入行解析
func TestParseStatusLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		clientID string
		status   availability.RpcStatus
		wantErr  bool
	}{
		{name: "不可达", line: "mainnet unavailable", clientID: "mainnet", status: availability.StatusUnavailable},
		{name: "多余空白", line: "  linea-mainnet\tdegraded  ", clientID: "linea-mainnet", status: availability.StatusDegraded},
		{name: "空行", line: "   "},
		{name: "注释", line: "# mainnet unavailable"},
		{name: "缺少状态", line: "mainnet", wantErr: true},
		{name: "未知状态", line: "mainnet offline", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientID, status, err := parseStatusLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.clientID, clientID)
			if tt.clientID != "" {
				assert.Equal(t, tt.status, status)
			}
		})
	}
}

// TestReadStatusLines 测试从输入流更新跟踪器
func TestReadStatusLines(t *testing.T) {
	registry, err := netconfig.FromUnified(config.NewConfig())
	require.NoError(t, err)
	tracker := availability.NewTracker(registry, []types.ChainID{"0x1"})
	defer tracker.Close()

	input := strings.Join([]string{
		"# 状态输入",
		"mainnet degraded",
		"garbage",
		"",
	}, "\n")
	require.NoError(t, readStatusLines(strings.NewReader(input), tracker))

	ref := tracker.FirstUnavailableNetwork()
	require.NotNil(t, ref)
	assert.Equal(t, "mainnet", ref.NetworkClientID)
	assert.Equal(t, availability.StatusDegraded, tracker.Status("mainnet"))
}

// TestCheckConfig 测试配置检查输出
func TestCheckConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Telemetry.InfuraProjectID = "abc"
	data, err := cfg.ToJSON()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "netbanner.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"check-config", "--config", path, "--log-level", "error"})
	require.NoError(t, root.Execute())

	got := out.String()
	assert.Contains(t, got, "eip155:1")
	assert.Contains(t, got, "mainnet.infura.io")
	assert.Contains(t, got, "config ok")
}

// TestCheckConfig_Invalid 测试非法配置
func TestCheckConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"enabled_networks": ["0x89"]}`), 0o600))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"check-config", "--config", path})
	assert.Error(t, root.Execute())
}

// TestRootCmd_UnknownLogLevel 测试非法日志级别
func TestRootCmd_UnknownLogLevel(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"check-config", "--log-level", "loud"})
	assert.Error(t, root.Execute())
}
