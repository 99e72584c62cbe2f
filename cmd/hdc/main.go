package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	chlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/hdc302x/config"
)

func main() {
	os.Exit(run())
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "hdc"
	app.EnableBashCompletion = true
	app.Version = config.VersionString()
	app.Usage = "HDC302x humidity and temperature sensor cli"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable verbose logging",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "yaml profile",
			EnvVars: []string{"HDC_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Usage:   "bus adapter: mcp2221, generic, nanopi or sim",
			Value:   config.AdapterMCP2221,
		},
		&cli.StringFlag{
			Name:  "device",
			Usage: "periph bus name for the generic adapter, e.g. /dev/i2c-1",
		},
		&cli.IntFlag{
			Name:  "bus",
			Usage: "gobot bus number for the nanopi adapter",
			Value: -1,
		},
		&cli.StringFlag{
			Name:  "address",
			Usage: "sensor address (0x44-0x47)",
			Value: "0x44",
		},
	}
	// exit codes are handled by run
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.Before = func(ctx *cli.Context) error {
		charm := chlog.NewWithOptions(os.Stderr, chlog.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
			Prefix:          "hdc",
		})
		charm.SetColorProfile(termenv.TrueColor)
		charm.SetLevel(chlog.InfoLevel)
		if ctx.Bool("verbose") {
			charm.SetLevel(chlog.DebugLevel)
		}
		slog.SetDefault(slog.New(charm))
		return nil
	}
	app.Commands = cli.Commands{
		&readCmd,
		&autoCmd,
		&heaterCmd,
		&statusCmd,
		&serialCmd,
		&manufacturerCmd,
		&resetCmd,
		&usbCmd,
		&mcp2221Cmd,
	}
	return app
}

func run() int {
	app := newApp()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		var exerr cli.ExitCoder
		if errors.As(err, &exerr) {
			log.Printf("unexpected error: %v", err)
			return exerr.ExitCode()
		}
		log.Printf("unexpected error: %v", err)
		return 1
	}
	return 0
}
