package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/hdc302x"
	"github.com/mklimuk/hdc302x/cmd/hdc/console"
	"github.com/mklimuk/hdc302x/snsctx"
)

var heaterCmd = cli.Command{
	Name:      "heater",
	Usage:     "set the condensation heater power",
	ArgsUsage: "<off|25|50|100>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return console.Exit(console.ExitInvalidInput, "usage: hdc heater <off|25|50|100>")
		}
		level, err := hdc302x.ParseHeaterLevel(c.Args().First())
		if err != nil {
			return console.ExitErr("invalid heater level", err)
		}
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		dev, release, err := openDevice(c)
		if err != nil {
			return console.ExitErr("setup error", err)
		}
		defer release()
		if err := dev.Heater(ctx, level); err != nil {
			return console.ExitErr("heater command failed", err)
		}
		if level == hdc302x.HeaterOff {
			console.PInfof(console.PictoStop, "heater disabled")
			return nil
		}
		console.PInfof(console.PictoFlame, "heater enabled at %s", console.White(level))
		return nil
	},
}
