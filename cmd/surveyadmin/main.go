package main

import (
	"context"

	"github.com/alecthomas/kong"
)

type cli struct {
	Config string `short:"c" type:"path" env:"SURVEY_ADMIN_CONFIG" help:"Path to the YAML configuration file."`

	Serve        serveCmd        `cmd:"" help:"Serve the survey admin pages."`
	Render       renderCmd       `cmd:"" help:"Render one survey page to stdout."`
	Export       exportCmd       `cmd:"" help:"Write the summary spreadsheet of one survey."`
	Translations translationsCmd `cmd:"" help:"Inspect the translation catalogs."`
	Session      sessionCmd      `cmd:"" help:"Session cookie utilities."`
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("surveyadmin"),
		kong.Description("Survey dimension editor and response summary for event admins."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background(), &app)
	ctx.FatalIfErrorf(err)
}
