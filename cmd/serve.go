package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/gridx/internal/server"
	"github.com/desertthunder/gridx/internal/shared"
	"github.com/desertthunder/gridx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API over the workspace editor until interrupted.
//
// With --watch the file is imported once at startup and again each time it is saved.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	editor, err := r.loadEditor()
	if err != nil {
		return err
	}

	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}

	router := r.newRouter(editor)
	srv := server.NewServer(cfg.Addr(), router)
	logger := shared.WithLogger(r.logger, "component", "server")

	if path := cmd.String("watch"); path != "" {
		pallete := r.pallete(cmd.String("pallete"))
		if err := r.reload(ctx, path, pallete); err != nil {
			return err
		}
		go func() {
			err := tasks.Watch(ctx, path, func(p string, err error) {
				if err != nil {
					logger.Warn("watch error", "error", err)
					return
				}
				if err := r.reload(ctx, p, pallete); err != nil {
					logger.Error("reload failed", "file", p, "error", err)
				}
			})
			if err != nil {
				logger.Error("watch stopped", "error", err)
			}
		}()
		logger.Info("watching import file", "file", path, "pallete", pallete)
	}

	if cmd.Bool("open") {
		url := fmt.Sprintf("http://%s/board", cfg.Addr())
		if err := shared.OpenBrowser(url); err != nil {
			logger.Warn("could not open browser", "url", url, "error", err)
		}
	}

	return server.Serve(ctx, srv, logger)
}

// newRouter wires the board API behind recovery, request logging and rate limiting.
func (r *Runner) newRouter(editor server.BoardEditor) *server.BasicRouter {
	router := server.NewBasicRouter()
	router.Use(
		server.Recover(r.logger),
		server.Logging(r.logger),
		server.RateLimit(server.NewLimiter(r.config.Server.RateLimit, r.config.Server.RateBurst)),
	)
	router.HandleFunc(http.MethodGet, "/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}` + "\n"))
	})
	router.Handler(server.NewBoardHandler(editor, r.logger))
	return router
}

// reload imports path into pallete on the workspace editor.
func (r *Runner) reload(ctx context.Context, path, pallete string) error {
	result, err := r.runImport(ctx, path, pallete)
	if err != nil {
		return err
	}
	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	editor.LoadPallete(result.Pallete, result.Albums)
	return nil
}
