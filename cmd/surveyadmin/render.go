package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/goliatone/go-survey-admin/components/surveys"
)

// SurveyFlags address one survey and authenticate the CLI caller.
type SurveyFlags struct {
	Event  string   `required:"" help:"Event slug."`
	Survey string   `required:"" help:"Survey slug."`
	Locale string   `default:"en" help:"Page locale."`
	Token  string   `env:"SURVEY_ADMIN_TOKEN" help:"Access token forwarded to the GraphQL API."`
	Filter []string `help:"Dimension filter as dimension=value[,value] (repeatable)."`
}

func (f SurveyFlags) request() (surveys.PageRequest, error) {
	query, err := parseFilters(f.Filter)
	if err != nil {
		return surveys.PageRequest{}, err
	}
	return surveys.PageRequest{
		Locale:     f.Locale,
		EventSlug:  f.Event,
		SurveySlug: f.Survey,
		Query:      query,
	}, nil
}

// withSession signs the caller in when a token is given; without one the pages
// render their sign-in surface.
func (f SurveyFlags) withSession(ctx context.Context) context.Context {
	if f.Token == "" {
		return ctx
	}
	return surveys.ContextWithSession(ctx, &surveys.Session{UserID: "cli", AccessToken: f.Token})
}

func parseFilters(raw []string) (url.Values, error) {
	query := url.Values{}
	for _, item := range raw {
		dimension, values, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(dimension) == "" {
			return nil, fmt.Errorf("surveyadmin: filter %q must look like dimension=value", item)
		}
		query.Add(strings.TrimSpace(dimension), values)
	}
	return query, nil
}

type renderCmd struct {
	Dimensions renderDimensionsCmd `cmd:"" help:"Render the dimensions editor."`
	Summary    renderSummaryCmd    `cmd:"" help:"Render the response summary."`
	Title      renderTitleCmd      `cmd:"" help:"Print the document title of the dimensions or summary page."`
}

type renderDimensionsCmd struct {
	SurveyFlags
}

func (cmd *renderDimensionsCmd) Run(ctx context.Context, root *cli) error {
	return renderPage(ctx, root, cmd.SurveyFlags, (*surveys.Controller).DimensionsPage)
}

type renderSummaryCmd struct {
	SurveyFlags
}

func (cmd *renderSummaryCmd) Run(ctx context.Context, root *cli) error {
	return renderPage(ctx, root, cmd.SurveyFlags, (*surveys.Controller).SummaryPage)
}

type pageFunc func(*surveys.Controller, context.Context, surveys.PageRequest) surveys.Response

func renderPage(ctx context.Context, root *cli, flags SurveyFlags, page pageFunc) error {
	app, req, err := prepare(root, flags)
	if err != nil {
		return err
	}
	return writeBody(os.Stdout, page(app.controller, flags.withSession(ctx), req))
}

type renderTitleCmd struct {
	SurveyFlags
	Page string `enum:"dimensions,summary" default:"dimensions" help:"Page whose title to print."`
}

func (cmd *renderTitleCmd) Run(ctx context.Context, root *cli) error {
	app, req, err := prepare(root, cmd.SurveyFlags)
	if err != nil {
		return err
	}
	ctx = cmd.withSession(ctx)
	var (
		meta   surveys.PageMetadata
		status int
	)
	if cmd.Page == "summary" {
		meta, status = app.controller.SummaryMetadata(ctx, req)
	} else {
		meta, status = app.controller.DimensionsMetadata(ctx, req)
	}
	fmt.Fprintln(os.Stdout, meta.Title)
	if status >= 400 {
		return fmt.Errorf("surveyadmin: %s title returned status %d", cmd.Page, status)
	}
	return nil
}

func prepare(root *cli, flags SurveyFlags) (*application, surveys.PageRequest, error) {
	req, err := flags.request()
	if err != nil {
		return nil, surveys.PageRequest{}, err
	}
	cfg, logger, err := loadConfig(root.Config)
	if err != nil {
		return nil, surveys.PageRequest{}, err
	}
	app, err := newApplication(cfg, logger)
	if err != nil {
		return nil, surveys.PageRequest{}, err
	}
	return app, req, nil
}

type exportCmd struct {
	SurveyFlags
	Out string `short:"o" type:"path" help:"Output file (defaults to <event>-<survey>-summary.xlsx)."`
}

func (cmd *exportCmd) Run(ctx context.Context, root *cli) error {
	app, req, err := prepare(root, cmd.SurveyFlags)
	if err != nil {
		return err
	}
	resp := app.controller.ExportSummary(cmd.withSession(ctx), req)
	if resp.Filename == "" {
		return writeBody(os.Stderr, resp)
	}
	out := cmd.Out
	if out == "" {
		out = resp.Filename
	}
	if err := os.WriteFile(out, resp.Body, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("surveyadmin: write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote %s\n", out)
	return nil
}
