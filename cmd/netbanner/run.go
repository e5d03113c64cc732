package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/samsmith08/netbanner"
	"github.com/samsmith08/netbanner/internal/core/availability"
	"github.com/samsmith08/netbanner/pkg/interfaces"
)

// runFlags run 子命令参数
type runFlags struct {
	metricsAddr string
	dataDir     string
	exitOnEOF   bool
	printEvents bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "启动横幅监控，从标准输入读取端点状态",
		Long: `启动横幅监控。

标准输入每行一条状态：

  <networkClientId> <available|degraded|unavailable|unknown>

横幅变化和埋点事件输出到标准输出。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMonitor(cmd, root, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.metricsAddr, "metrics-addr", "", "Prometheus 指标监听地址（如 :9090），为空时不启用")
	f.StringVar(&flags.dataDir, "data-dir", "", "持久化横幅状态的数据目录，为空时使用配置文件设置")
	f.BoolVar(&flags.exitOnEOF, "exit-on-eof", false, "标准输入结束时退出")
	f.BoolVar(&flags.printEvents, "print-events", true, "输出埋点事件（JSON）")
	return cmd
}

func runMonitor(cmd *cobra.Command, root *rootFlags, flags *runFlags) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if flags.dataDir != "" {
		cfg.Storage.Persistent = true
		cfg.Storage.InMemory = false
		cfg.Storage.Path = flags.dataDir
	}

	reg := prometheus.NewRegistry()
	app, err := netbanner.New(
		netbanner.WithConfig(cfg),
		netbanner.WithRegisterer(reg),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	// 启动前订阅，避免错过启动时的状态写入
	changes, cancelChanges := app.Store().Subscribe()
	defer cancelChanges()
	events, cancelEvents := app.SubscribeEvents()
	defer cancelEvents()

	if err := app.Start(ctx); err != nil {
		return err
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	if flags.metricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(gctx, flags.metricsAddr, reg)
		})
	}

	// 标准输入无法被取消，读取 goroutine 随进程退出
	inputDone := make(chan error, 1)
	go func() {
		inputDone <- readStatusLines(cmd.InOrStdin(), app.Tracker())
	}()

	printState(out, app.Monitor().BannerState())

loop:
	for {
		select {
		case <-gctx.Done():
			break loop
		case change, ok := <-changes:
			if !ok {
				break loop
			}
			printState(out, change.Current)
		case evt, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if flags.printEvents {
				printEvent(out, evt)
			}
		case err := <-inputDone:
			inputDone = nil
			if err != nil {
				logger.Warn("读取标准输入失败", "error", err)
			}
			if flags.exitOnEOF {
				break loop
			}
		}
	}
	cancelRun()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return multierr.Combine(g.Wait(), app.Stop(shutdownCtx))
}

// serveMetrics 提供 /metrics，ctx 结束时关闭
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("指标服务已启动", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// readStatusLines 逐行读取端点状态并写入跟踪器
//
// 空行和 # 开头的行被忽略，格式错误的行记录日志后跳过。
func readStatusLines(r io.Reader, tracker *availability.Tracker) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		clientID, status, err := parseStatusLine(scanner.Text())
		if err != nil {
			logger.Warn("忽略无效输入", "line", scanner.Text(), "error", err)
			continue
		}
		if clientID == "" {
			continue
		}
		tracker.SetStatus(clientID, status)
	}
	return scanner.Err()
}

// parseStatusLine 解析 "<networkClientId> <status>"，空行返回空 clientID
func parseStatusLine(line string) (string, availability.RpcStatus, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", availability.StatusUnknown, nil
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", availability.StatusUnknown, fmt.Errorf("expected <networkClientId> <status>, got %d fields", len(fields))
	}
	status, err := availability.ParseRpcStatus(fields[1])
	if err != nil {
		return "", availability.StatusUnknown, err
	}
	return fields[0], status, nil
}

func printState(w io.Writer, state interfaces.BannerState) {
	if !state.HasNetwork() {
		fmt.Fprintf(w, "banner %s\n", state.Status)
		return
	}
	fmt.Fprintf(w, "banner %s network=%q client=%s chain=%s\n",
		state.Status, state.NetworkName, state.NetworkClientID, state.ChainID)
}

func printEvent(w io.Writer, evt interfaces.MetricsEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		logger.Warn("序列化埋点事件失败", "error", err)
		return
	}
	fmt.Fprintf(w, "event %s\n", data)
}
