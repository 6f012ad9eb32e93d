package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-survey-admin/components/surveys/gorouter"
	"github.com/goliatone/go-survey-admin/components/surveys/httpapi"
	"github.com/goliatone/go-survey-admin/pkg/config"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	Listen    string `help:"Listen address (overrides the configuration)."`
	Transport string `help:"HTTP stack: fiber (go-router) or chi (net/http)."`
}

func (cmd *serveCmd) Run(ctx context.Context, root *cli) error {
	cfg, logger, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if cmd.Listen != "" {
		cfg.Listen = cmd.Listen
	}
	if cmd.Transport != "" {
		cfg.Transport = cmd.Transport
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app, err := newApplication(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("survey admin listening",
		"addr", cfg.Listen,
		"transport", cfg.Transport,
		"base_path", cfg.BasePath,
		"graphql", cfg.GraphQL.Endpoint,
	)
	switch cfg.Transport {
	case config.TransportChi:
		return serveChi(ctx, app)
	default:
		return serveFiber(ctx, app)
	}
}

func serveFiber(ctx context.Context, app *application) error {
	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: app.controller,
		Logger:     app.logger,
	}); err != nil {
		return fmt.Errorf("surveyadmin: register routes: %w", err)
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.Serve(app.cfg.Listen)
	}()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func serveChi(ctx context.Context, app *application) error {
	handlers := &httpapi.Handlers{Controller: app.controller, Logger: app.logger}
	server := &http.Server{
		Addr:              app.cfg.Listen,
		Handler:           handlers.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()
	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
