package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ngrash/go-zdump/internal/api"
	"github.com/ngrash/go-zdump/internal/config"
	"github.com/ngrash/go-zdump/internal/logging"
)

// ServeCmd serves zone queries over HTTP.
type ServeCmd struct {
	Addr  string `name:"addr" help:"Listen address (default from config, :8080)"`
	Watch bool   `name:"watch" help:"Reload the configuration file when it changes"`
}

func (c *ServeCmd) Run(g *Globals, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}
	srv := api.New(newSource(cfg), cfg.QueryOptions()...)
	log := logging.Logger()

	if c.Watch && g.Config != "" {
		loader, err := config.NewLoader(g.Config)
		if err != nil {
			return err
		}
		go func() {
			err := loader.Watch(ctx, func(loaded *config.Config) {
				next := *loaded
				g.apply(&next)
				if err := next.Validate(); err != nil {
					log.Warn("ignoring configuration", "error", err)
					return
				}
				if err := initLogging(&next); err != nil {
					log.Warn("ignoring log settings", "error", err)
				}
				srv.SetSource(newSource(&next), next.QueryOptions()...)
			})
			if err != nil {
				log.Error("config watch stopped", "error", err)
			}
		}()
	}

	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	log.Info("server_startup", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
