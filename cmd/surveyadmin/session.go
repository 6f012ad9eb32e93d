package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goliatone/go-survey-admin/components/surveys"
	"github.com/goliatone/go-survey-admin/pkg/session"
)

type sessionCmd struct {
	Sign sessionSignCmd `cmd:"" help:"Print a signed session cookie for local testing."`
}

type sessionSignCmd struct {
	UserID string        `name:"user-id" required:"" help:"Subject of the session."`
	Email  string        `help:"Email shown in the page header."`
	Name   string        `help:"Display name shown in the page header."`
	Token  string        `help:"Access token forwarded to the GraphQL API."`
	TTL    time.Duration `name:"ttl" default:"12h" help:"Cookie lifetime."`
}

func (cmd *sessionSignCmd) Run(root *cli) error {
	cfg, _, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	resolver, err := session.NewCookieResolver(session.Config{
		CookieName:  cfg.Session.CookieName,
		Secret:      cfg.Session.Secret,
		AllowBearer: cfg.Session.AllowBearer,
	})
	if err != nil {
		return err
	}
	value, err := resolver.Sign(surveys.Session{
		UserID:      cmd.UserID,
		Email:       cmd.Email,
		DisplayName: cmd.Name,
		AccessToken: cmd.Token,
	}, cmd.TTL)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s=%s\n", resolver.CookieName(), value)
	return nil
}
