package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"

	"github.com/goliatone/go-survey-admin/components/surveys"
	"github.com/goliatone/go-survey-admin/pkg/config"
)

func TestParseFilters(t *testing.T) {
	query, err := parseFilters([]string{"region=north,south", " venue =main"})
	if err != nil {
		t.Fatalf("parseFilters: %v", err)
	}
	if got := query.Get("region"); got != "north,south" {
		t.Fatalf("expected region filter, got %q", got)
	}
	if got := query.Get("venue"); got != "main" {
		t.Fatalf("expected trimmed dimension key, got %v", query)
	}

	if _, err := parseFilters([]string{"novalue"}); err == nil {
		t.Fatalf("expected error for filter without '='")
	}
	if _, err := parseFilters([]string{"=north"}); err == nil {
		t.Fatalf("expected error for filter without dimension")
	}
}

func TestSurveyFlagsContext(t *testing.T) {
	flags := SurveyFlags{Event: "tracon", Survey: "feedback", Locale: "fi"}
	if surveys.SessionFromContext(flags.withSession(context.Background())) != nil {
		t.Fatalf("expected anonymous context without token")
	}
	flags.Token = "secret"
	session := surveys.SessionFromContext(flags.withSession(context.Background()))
	if session == nil || session.AccessToken != "secret" {
		t.Fatalf("expected session carrying the token, got %+v", session)
	}

	req, err := flags.request()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.Locale != "fi" || req.EventSlug != "tracon" || req.SurveySlug != "feedback" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestLoadCatalogAppName(t *testing.T) {
	cfg := config.Default()
	cfg.AppName = "Desucon"
	catalog, err := loadCatalog(cfg)
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	got, err := catalog.Translate(context.Background(), "common.app_name", "fi", nil)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Desucon" {
		t.Fatalf("expected app name override, got %q", got)
	}
}

func TestReportMissing(t *testing.T) {
	var buf bytes.Buffer
	if err := reportMissing(&buf, []string{"en", "fi"}, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "2 locales") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	err := reportMissing(&buf, []string{"en", "fi"}, map[string][]string{"fi": {"survey.a", "survey.b"}})
	if err == nil {
		t.Fatalf("expected error for missing keys")
	}
	if !strings.Contains(buf.String(), "fi: survey.b") {
		t.Fatalf("expected missing key listing, got %q", buf.String())
	}
}

func TestAuditSinkLogsRecord(t *testing.T) {
	var buf bytes.Buffer
	sink := auditSink{logger: slog.New(slog.NewTextHandler(&buf, nil))}
	err := sink.Log(context.Background(), types.ActivityRecord{
		ActorID:    uuid.New(),
		Verb:       "survey.dimension.deleted",
		ObjectType: "survey_dimension",
		ObjectID:   "region",
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if !strings.Contains(buf.String(), "verb=survey.dimension.deleted") {
		t.Fatalf("expected verb in log output, got %q", buf.String())
	}
}

func TestWriteBodyStatus(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBody(&buf, surveys.Response{Status: 200, Body: []byte("ok")}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := writeBody(&buf, surveys.Response{Status: 404, Body: []byte("missing")}); err == nil {
		t.Fatalf("expected error for 404")
	}
	if buf.String() != "okmissing" {
		t.Fatalf("expected both bodies written, got %q", buf.String())
	}
}
