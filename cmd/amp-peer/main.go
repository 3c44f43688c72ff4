// Command amp-peer is a demonstration AMP peer: it can listen for incoming
// connections and answer Sum/Echo requests, or dial a peer and issue a Sum
// call, wiring the engine to structured logging, lifecycle hooks, and
// Prometheus metrics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alxayo/go-amp/internal/config"
	"github.com/alxayo/go-amp/internal/hooks"
	"github.com/alxayo/go-amp/internal/logger"
	"github.com/alxayo/go-amp/internal/metrics"
)

func main() {
	cli, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if cli.showVersion {
		fmt.Println(version)
		return
	}

	if err := config.LoadDotenv(cli.envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fileCfg, err := config.LoadFile(cli.configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := config.Merge(config.Default(), fileCfg)
	cfg = config.ApplyEnv(cfg)
	cfg = config.Merge(cfg, cli.toConfigOverride())

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.Init()
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		fmt.Printf("Warning: invalid log level %q, using default\n", cfg.LogLevel)
	}
	log := logger.Logger().With("component", "cli")

	hookMgr := buildHookManager(cfg, log)
	defer hookMgr.Close()

	var reg *metrics.Registry
	if cfg.MetricsAddr != "" {
		reg = metrics.New()
		go serveMetrics(cfg.MetricsAddr, reg, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case cfg.DialAddr != "":
		runDial(ctx, cfg, hookMgr, reg, log)
	default:
		runListen(ctx, cfg, hookMgr, reg, log)
	}
}

func buildHookManager(cfg config.Config, log *slog.Logger) *hooks.Manager {
	hc := hooks.DefaultConfig()
	hc.Timeout = cfg.HookTimeout
	hc.Concurrency = cfg.HookConcurrency
	hc.StdioFormat = cfg.HookStdioFormat

	timeout, err := time.ParseDuration(cfg.HookTimeout)
	if err != nil {
		timeout = 30 * time.Second
	}

	mgr := hooks.NewManager(hc, nil)
	for _, entry := range cfg.HookScripts {
		h := hooks.NewShellHook(entry.EventType+":"+entry.Target, entry.Target, timeout)
		if err := mgr.RegisterHook(hooks.EventType(entry.EventType), h); err != nil {
			log.Error("register hook script failed", "error", err)
		}
	}
	for _, entry := range cfg.HookWebhooks {
		h := hooks.NewWebhookHook(entry.EventType+":"+entry.Target, entry.Target, timeout)
		if err := mgr.RegisterHook(hooks.EventType(entry.EventType), h); err != nil {
			log.Error("register hook webhook failed", "error", err)
		}
	}
	return mgr
}

func serveMetrics(addr string, reg *metrics.Registry, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics server stopped", "error", err)
	}
}

func runListen(ctx context.Context, cfg config.Config, hookMgr *hooks.Manager, reg *metrics.Registry, log *slog.Logger) {
	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Error("listen failed", "addr", cfg.ListenAddr, "error", err)
		os.Exit(1)
	}
	log.Info("listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				log.Error("accept failed", "error", err)
				return
			}
		}
		p := newPeer(conn, hookMgr, reg)
		go func() {
			if err := p.serve(ctx); err != nil {
				log.Debug("peer connection closed", "peer_id", p.id, "error", err)
			}
		}()
	}
}

func runDial(ctx context.Context, cfg config.Config, hookMgr *hooks.Manager, reg *metrics.Registry, log *slog.Logger) {
	conn, err := net.Dial("tcp", cfg.DialAddr)
	if err != nil {
		log.Error("dial failed", "addr", cfg.DialAddr, "error", err)
		os.Exit(1)
	}
	p := newPeer(conn, hookMgr, reg)
	go func() {
		_ = p.serve(ctx)
	}()

	sum, err := p.callSum(2, 40, 5*time.Second)
	if err != nil {
		log.Error("Sum call failed", "error", err)
		os.Exit(1)
	}
	log.Info("Sum call completed", "result", sum)
}
