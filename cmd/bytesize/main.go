// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/optable/bytesize/cli"
	sizeio "github.com/optable/bytesize/io"
)

const appName = "bytesize"

// Globals are the flags shared by every command. Commands receive them in
// their Run method.
type Globals struct {
	LogLevel    string `help:"Log level." enum:"debug,info,warn,error" default:"info"`
	LogJSON     bool   `help:"Log JSON lines instead of a console format."`
	ProfileName string `name:"profile" short:"p" help:"Format profile, the current one when empty." placeholder:"NAME"`
	ConfigDir   string `help:"Directory holding the format profiles." type:"path" env:"BYTESIZE_CONFIG_DIR" placeholder:"DIR"`

	cli.Profiling `embed:""`

	ctx context.Context `kong:"-"`
	out io.Writer       `kong:"-"`
}

type CLI struct {
	Globals

	Parse    ParseCmd   `cmd:"" help:"Print the exact byte count of sizes."`
	Format   FormatCmd  `cmd:"" help:"Display sizes in human readable form."`
	Sum      SumCmd     `cmd:"" help:"Add the sizes of newline delimited files."`
	Convert  ConvertCmd `cmd:"" help:"Express a size exactly in another unit."`
	Profiles ProfileCmd `cmd:"" name:"profile" help:"Manage format profiles."`
	Serve    ServeCmd   `cmd:"" help:"Serve the size gRPC service and its metrics."`
}

func newLogger(level string, json bool, w io.Writer) zerolog.Logger {
	if !json {
		w = zerolog.ConsoleWriter{Out: w}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// run executes the selected command, writing its results to stdout and its
// logs to stderr.
func run(kctx *kong.Context, app *CLI, stdout, stderr io.Writer) error {
	logger := newLogger(app.LogLevel, app.LogJSON, stderr)
	app.ctx = logger.WithContext(context.Background())

	out := sizeio.NewBufferWriteCloser(sizeio.KeepOpen(stdout))
	app.out = out

	stop := app.Profiling.Start()
	defer stop()

	err := kctx.Run(&app.Globals)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

func main() {
	var app CLI
	kctx := kong.Parse(&app,
		kong.Name(appName),
		kong.Description("Exact byte sizes: parse, display, add and convert."),
		kong.UsageOnError(),
	)

	kctx.FatalIfErrorf(run(kctx, &app, os.Stdout, os.Stderr))
}
