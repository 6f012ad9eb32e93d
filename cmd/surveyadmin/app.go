package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goliatone/go-users/pkg/types"

	"github.com/goliatone/go-survey-admin/components/surveys"
	"github.com/goliatone/go-survey-admin/components/surveys/commands"
	"github.com/goliatone/go-survey-admin/components/surveys/queries"
	"github.com/goliatone/go-survey-admin/pkg/activity"
	"github.com/goliatone/go-survey-admin/pkg/activity/usersink"
	"github.com/goliatone/go-survey-admin/pkg/config"
	"github.com/goliatone/go-survey-admin/pkg/graphql"
	"github.com/goliatone/go-survey-admin/pkg/session"
)

const userAgent = "go-survey-admin"

// application is the wired object graph shared by every subcommand.
type application struct {
	cfg        config.Config
	logger     *slog.Logger
	catalog    *surveys.Catalog
	sessions   *session.CookieResolver
	pages      *surveys.PageService
	controller *surveys.Controller
}

func loadConfig(path string) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, cfg.NewLogger(os.Stderr), nil
}

func newApplication(cfg config.Config, logger *slog.Logger) (*application, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	sessions, err := session.NewCookieResolver(session.Config{
		CookieName:  cfg.Session.CookieName,
		Secret:      cfg.Session.Secret,
		AllowBearer: cfg.Session.AllowBearer,
	})
	if err != nil {
		return nil, err
	}
	client, err := graphql.New(graphql.Config{
		Endpoint:  cfg.GraphQL.Endpoint,
		Timeout:   cfg.GraphQL.Timeout,
		UserAgent: userAgent,
	})
	if err != nil {
		return nil, err
	}

	telemetry := surveys.NewSlogTelemetry(logger)
	emitter := activity.NewEmitter(activity.Hooks{
		usersink.Hook{Sink: auditSink{logger: logger}},
	}, activity.Config{Enabled: cfg.Activity.Enabled, Channel: cfg.Activity.Channel})

	charts := surveys.NewChartRenderer(
		surveys.WithChartCache(surveys.NewChartCache(cfg.Charts.CacheTTL)),
		surveys.WithChartAssetsHost(cfg.Charts.AssetsHost),
		surveys.WithChartTheme(cfg.Charts.Theme),
	)

	pages, err := surveys.NewPageService(surveys.PageServiceOptions{
		Backend:       queries.NewQueryBackend(client),
		Sessions:      sessions,
		Translations:  catalog,
		Charts:        charts,
		Telemetry:     telemetry,
		BasePath:      cfg.BasePath,
		DefaultLocale: cfg.DefaultLocale,
		SignInURL:     cfg.Session.SignInURL,
	})
	if err != nil {
		return nil, err
	}
	actions, err := surveys.NewActionDispatcher(surveys.ActionDispatcherOptions{
		Sessions: sessions,
		Commands: commands.Registry(commands.Deps{
			Backend:   client,
			Telemetry: telemetry,
			Activity:  emitter,
		}),
		BasePath:  cfg.BasePath,
		Telemetry: telemetry,
	})
	if err != nil {
		return nil, err
	}
	renderer, err := surveys.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("surveyadmin: load templates: %w", err)
	}
	controller, err := surveys.NewController(surveys.ControllerOptions{
		Pages:    pages,
		Actions:  actions,
		Renderer: renderer,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	return &application{
		cfg:        cfg,
		logger:     logger,
		catalog:    catalog,
		sessions:   sessions,
		pages:      pages,
		controller: controller,
	}, nil
}

// loadCatalog layers the optional translations directory and app name over
// the embedded catalogs.
func loadCatalog(cfg config.Config) (*surveys.Catalog, error) {
	catalog, err := surveys.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	if cfg.Translations != "" {
		if err := catalog.LoadFS(os.DirFS(cfg.Translations), "."); err != nil {
			return nil, err
		}
	}
	if cfg.AppName != "" {
		catalog.SetMessage("common.app_name", cfg.AppName)
	}
	return catalog, nil
}

// auditSink writes go-users activity records to the structured log.
type auditSink struct {
	logger *slog.Logger
}

func (s auditSink) Log(ctx context.Context, record types.ActivityRecord) error {
	s.logger.InfoContext(ctx, "surveys audit",
		"verb", record.Verb,
		"object_type", record.ObjectType,
		"object_id", record.ObjectID,
		"channel", record.Channel,
		"actor_id", record.ActorID.String(),
		"occurred_at", record.OccurredAt,
		"data", record.Data,
	)
	return nil
}

func writeBody(w io.Writer, resp surveys.Response) error {
	if _, err := w.Write(resp.Body); err != nil {
		return err
	}
	if resp.Status >= 400 {
		return fmt.Errorf("surveyadmin: page returned status %d", resp.Status)
	}
	return nil
}
