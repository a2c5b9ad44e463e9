// cmd/replicator/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-points/internal/client"
	"github.com/tamzrod/modbus-points/internal/config"
	"github.com/tamzrod/modbus-points/internal/poller"
	"github.com/tamzrod/modbus-points/internal/writer"
)

func main() {
	debug := flag.Bool("debug", false, "log every transaction")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: replicator [-debug] <config.yaml>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	cfgPath := flag.Arg(0)

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	if err := config.Validate(cfg); err != nil {
		logger.Fatal("config validation failed", zap.Error(err))
	}
	config.Normalize(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Connect every device
	// --------------------

	clients := make(map[string]*client.Client, len(cfg.Devices))
	var closers []func() error
	defer func() {
		for _, fn := range closers {
			_ = fn()
		}
	}()

	for _, d := range cfg.Devices {
		c, closeFn, err := buildClient(d, logger)
		if err != nil {
			logger.Fatal("device connect failed", zap.String("device", d.ID), zap.Error(err))
		}
		clients[d.ID] = c
		closers = append(closers, closeFn)

		logger.Info("device ready",
			zap.String("device", d.ID),
			zap.String("transport", d.Transport.Kind),
			zap.Int("points", len(d.Points)))
	}

	// --------------------
	// Build per-device pipelines
	// --------------------

	for _, d := range cfg.Devices {
		if d.Poll == nil {
			continue
		}
		dlog := logger.With(zap.String("device", d.ID))

		// ---- poller ----
		p, err := poller.Build(d, clients[d.ID])
		if err != nil {
			dlog.Fatal("poller build failed", zap.Error(err))
		}

		// ---- writer plan (optional) ----
		plan, mirrored, err := writer.BuildPlan(d)
		if err != nil {
			dlog.Fatal("writer plan failed", zap.Error(err))
		}

		var (
			dataWriter   writer.Writer
			statusWriter writer.StatusWriter
		)
		if mirrored {
			target := clients[plan.Target]
			dataWriter = writer.New(plan, target)
			if sw, ok := writer.NewStatusWriter(plan, target); ok {
				statusWriter = sw
			}
			dlog = dlog.With(zap.String("target", plan.Target))
		}

		// ---- channel between poller and orchestrator ----
		out := make(chan poller.PollResult)

		go orchestrate(ctx, dlog, out, dataWriter, statusWriter)
		go p.Run(ctx, out)

		dlog.Info("polling started", zap.Int("interval_ms", d.Poll.IntervalMs))
	}

	<-ctx.Done()
	logger.Info("shutdown signal received")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
