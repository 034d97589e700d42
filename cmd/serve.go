package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/desertthunder/mvx/internal/server"
	"github.com/desertthunder/mvx/internal/web"
)

// Serve starts the HTTP server hosting the web app, REST API and media files.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)
	if host := cmd.String("host"); host != "" {
		r.config.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		r.config.Server.Port = int(port)
	}

	db, closeDB, err := r.openDB()
	if err != nil {
		return err
	}
	defer closeDB()

	store, err := r.openStore()
	if err != nil {
		return fmt.Errorf("failed to open media store: %w", err)
	}

	engine := r.newEngine(db, store)

	webHandler, err := web.NewWebHandler(db, store, engine, r.logger)
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	apiMiddleware := []server.Middleware{server.BearerAuth(r.config.API.Token)}
	if r.config.API.RateLimit > 0 {
		burst := r.config.API.Burst
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(r.config.API.RateLimit), burst)
		apiMiddleware = append([]server.Middleware{server.RateLimit(limiter)}, apiMiddleware...)
	}

	router := server.NewBasicRouter()
	router.Use(server.Recovery(r.logger), server.Logging(r.logger))
	router.Handler(server.Wrap(server.NewAPIHandler(db, r.logger), apiMiddleware...))
	router.Handler(server.NewMediaHandler(store))
	router.Handler(webHandler)

	srv := &http.Server{Addr: r.config.Server.Addr(), Handler: router}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	r.logger.Info("server listening", "addr", r.config.Server.Addr())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
