// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - HTTP API server command.
//
// Command: pathforge serve
// Short:   Run the roadmap HTTP API
//
// Examples:
//   pathforge serve
//   pathforge serve --addr 0.0.0.0:9090
//
// The server picks up config file changes while running and shuts down
// gracefully on SIGINT or SIGTERM.

package cli

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jeranaias/pathforge/internal/config"
	"github.com/jeranaias/pathforge/internal/plan"
	"github.com/jeranaias/pathforge/internal/server"
)

// HandleServe handles the "serve" command.
func HandleServe(args Args) error {
	cfg, err := loadConfig("serve")
	if err != nil {
		return err
	}

	if args.Addr != "" {
		host, port, err := net.SplitHostPort(args.Addr)
		if err != nil {
			return NewValidationError("addr", args.Addr, "expected HOST:PORT", "--addr 0.0.0.0:9090")
		}
		portNum, err := strconv.Atoi(port)
		if err != nil || portNum < 1 || portNum > 65535 {
			return NewValidationError("addr", args.Addr, "port must be 1-65535", "--addr 0.0.0.0:9090")
		}
		cfg.Server.Host = host
		cfg.Server.Port = portNum
	}

	srv := server.NewServer(cfg)
	if cfg.LLM.APIKey != "" {
		srv.WithGenerator(plan.NewGenerator(buildClient(cfg)))
		status(args, "%s generator ready, model %s", RenderStatus(true, false), cfg.LLM.Model)
	} else {
		StderrPrintln("%s no API key configured; roadmap requests will fail unless fallback is enabled",
			RenderStatus(false, true))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if w := watchConfig(srv, args); w != nil {
		defer w.Close()
	}

	status(args, "%s", InfoStyle.Render("Listening on http://"+srv.Addr()))
	return srv.Serve(ctx)
}

// watchConfig starts the config file watcher for hot reload. Returns
// nil when there is no config file or watching is unavailable; the
// server runs fine without it.
func watchConfig(srv *server.Server, args Args) *config.Watcher {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	w, err := config.NewWatcher(path, config.DefaultDebounce, func(next *config.Config) {
		srv.UpdateConfig(next)
		if next.LLM.APIKey != "" {
			srv.WithGenerator(plan.NewGenerator(buildClient(next)))
		}
		StderrPrintln("Config reloaded from %s", path)
	})
	if err != nil {
		StderrPrintln("Warning: config watch disabled: %v", err)
		return nil
	}
	if err := w.Watch(); err != nil {
		StderrPrintln("Warning: config watch disabled: %v", err)
		w.Close()
		return nil
	}

	status(args, "Watching %s for changes", path)
	return w
}
