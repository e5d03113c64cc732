// Package main 提供 netbanner 命令行入口
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samsmith08/netbanner"
	"github.com/samsmith08/netbanner/config"
	"github.com/samsmith08/netbanner/pkg/lib/log"
)

var logger = log.Logger("netbanner/cmd")

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		return 1
	}
	return 0
}

// rootFlags 全局参数
type rootFlags struct {
	configFile string
	logLevel   string
	logFormat  string
}

// loadConfig 加载配置文件，未指定时使用默认配置
func (f *rootFlags) loadConfig() (*config.Config, error) {
	if f.configFile == "" {
		return config.NewConfig(), nil
	}
	return config.LoadFile(f.configFile)
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "netbanner",
		Short:         "网络连接横幅监控",
		Long:          "netbanner 根据 RPC 端点可达性决定何时展示 slow/unavailable 横幅，并发送脱敏埋点。",
		Version:       netbanner.VersionInfo(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "配置文件路径（JSON）")
	pf.StringVar(&flags.logLevel, "log-level", "info", "日志级别 (debug/info/warn/error)")
	pf.StringVar(&flags.logFormat, "log-format", "text", "日志格式 (text/json)")

	rootCmd.AddCommand(
		newRunCmd(flags),
		newCheckConfigCmd(flags),
	)
	return rootCmd
}

// setupLogging 日志输出到 stderr，stdout 留给横幅与埋点输出
func setupLogging(cmd *cobra.Command, flags *rootFlags) error {
	level, ok := log.ParseLevel(flags.logLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", flags.logLevel)
	}
	switch flags.logFormat {
	case "text":
		log.SetOutputWithLevel(cmd.ErrOrStderr(), level)
	case "json":
		log.SetDefault(log.NewJSON(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	default:
		return fmt.Errorf("unknown log format %q", flags.logFormat)
	}
	return nil
}
