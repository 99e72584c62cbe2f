package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/hdc302x"
	"github.com/mklimuk/hdc302x/cmd/hdc/console"
	"github.com/mklimuk/hdc302x/snsctx"
)

var autoCmd = cli.Command{
	Name:  "auto",
	Usage: "control auto (self-timed) sampling",
	Subcommands: cli.Commands{
		&autoStartCmd,
		&autoStopCmd,
		&autoReadCmd,
	},
}

var autoStartCmd = cli.Command{
	Name:  "start",
	Usage: "start sampling at a fixed rate",
	Flags: []cli.Flag{
		lpmFlag,
		&cli.StringFlag{
			Name:  "rate",
			Usage: "0.5Hz, 1Hz, 2Hz, 4Hz or 10Hz",
			Value: hdc302x.Auto1Hz.String(),
		},
	},
	Action: func(c *cli.Context) error {
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		rate, err := hdc302x.ParseSampleRate(c.String("rate"))
		if err != nil {
			return console.ExitErr("invalid rate", err)
		}
		dev, release, err := openDevice(c)
		if err != nil {
			return console.ExitErr("setup error", err)
		}
		defer release()
		if err := dev.AutoStart(ctx, rate, hdc302x.LowPowerMode(c.Int("lpm"))); err != nil {
			return console.ExitErr("could not start auto mode", err)
		}
		console.Infof("auto mode started at %s", console.White(rate))
		return nil
	},
}

var autoStopCmd = cli.Command{
	Name:  "stop",
	Usage: "stop auto sampling",
	Action: func(c *cli.Context) error {
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		dev, release, err := openDevice(c)
		if err != nil {
			return console.ExitErr("setup error", err)
		}
		defer release()
		if err := dev.AutoStop(ctx); err != nil {
			return console.ExitErr("could not stop auto mode", err)
		}
		console.Infof("auto mode stopped")
		return nil
	},
}

var autoReadCmd = cli.Command{
	Name:      "read",
	Usage:     "read the latest result or a tracked extreme",
	ArgsUsage: "[last|min-temp|max-temp|min-humidity|max-humidity]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "fahrenheit", Aliases: []string{"f"}},
		&cli.BoolFlag{Name: "raw", Usage: "print raw sensor codes"},
		&cli.DurationFlag{Name: "watch", Aliases: []string{"w"}, Usage: "repeat at the given interval"},
	},
	Action: func(c *cli.Context) error {
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		target := hdc302x.LastTempAndRelHumid
		if c.Args().Present() {
			var err error
			target, err = hdc302x.ParseAutoReadTarget(c.Args().First())
			if err != nil {
				return console.ExitErr("invalid target", err)
			}
		}
		// auto mode was started by an earlier invocation
		dev, release, err := openDevice(c, hdc302x.WithModeEnforcement(false))
		if err != nil {
			return console.ExitErr("setup error", err)
		}
		defer release()
		return watch(c, c.Duration("watch"), func() error {
			d, err := dev.AutoRead(ctx, target)
			if err != nil {
				return console.ExitErr("auto read failed", err)
			}
			if c.Duration("watch") > 0 {
				console.Printf("%s\n", console.Bold(time.Now().Format(time.TimeOnly)))
			}
			printDatum(d, c.Bool("fahrenheit"), c.Bool("raw"))
			return nil
		})
	},
}
