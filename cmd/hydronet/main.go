// Command hydronet serves a hydraulic network calculation engine over HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/hydronet/internal/api"
	"github.com/talgya/hydronet/internal/config"
	"github.com/talgya/hydronet/internal/hydro"
	"github.com/talgya/hydronet/internal/network"
	"github.com/talgya/hydronet/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// ── Configuration ─────────────────────────────────────────────────
	cfg, cfgPath, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfgPath != "" {
		slog.Info("config loaded", "path", cfgPath)
	} else {
		slog.Info("no config file found, using defaults")
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		slog.Error("bad engine config", "error", err)
		os.Exit(1)
	}
	eng := hydro.New(opts)
	slog.Info("engine ready",
		"erosional_constant", opts.ErosionalConstant,
		"gas_model", cfg.Engine.GasModel,
	)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Load or Seed Network ──────────────────────────────────────────
	net, err := db.LatestSnapshot()
	if err != nil {
		slog.Error("failed to load latest snapshot", "error", err)
		os.Exit(1)
	}
	if net != nil {
		slog.Info("network restored from snapshot",
			"nodes", len(net.Nodes), "pipes", len(net.Pipes))
	} else {
		slog.Info("no saved network, seeding demo network")
		var source network.NodeID
		net, source = network.Sample()

		// Prime the demo with a full propagation so results are browsable
		// immediately.
		res, err := eng.Propagate(net, source)
		if err != nil {
			slog.Error("demo propagation failed", "error", err)
			os.Exit(1)
		}
		net = res.Network
		for _, warn := range res.Warnings {
			slog.Warn("propagation warning",
				"kind", warn.Kind, "node", warn.Node, "message", warn.Message)
		}

		if id, err := db.SaveSnapshot("seed", net); err != nil {
			slog.Error("initial snapshot failed", "error", err)
		} else if err := db.SetMeta("active_snapshot", id); err != nil {
			slog.Error("meta update failed", "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := cfg.AdminKey
	if env := os.Getenv("HYDRONET_ADMIN_KEY"); env != "" {
		adminKey = env
	}
	if adminKey == "" {
		slog.Warn("no admin key set — admin POST endpoints will be disabled")
	}

	srv := api.NewServer(eng, db, net, cfg.Port, adminKey)
	srv.Start()

	fmt.Printf("hydronet: %d nodes, %d pipes.\n", len(net.Nodes), len(net.Pipes))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.Port)
	fmt.Println("Running... (Ctrl+C to stop)")

	// ── Shutdown ──────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	if id, err := db.SaveSnapshot("shutdown", srv.Network()); err != nil {
		slog.Error("final snapshot failed", "error", err)
	} else if err := db.SetMeta("active_snapshot", id); err != nil {
		slog.Error("meta update failed", "error", err)
	}
	fmt.Println("Stopped. Network snapshot saved.")
}
