package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/hdc302x/cmd/hdc/console"
	"github.com/mklimuk/hdc302x/snsctx"
)

var resetCmd = cli.Command{
	Name:  "reset",
	Usage: "soft reset the sensor",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
	},
	Action: func(c *cli.Context) error {
		if !c.Bool("yes") {
			ok, err := console.Confirm("reset the sensor? auto mode and heater settings are lost")
			if err != nil {
				return console.Exit(console.ExitFailure, "prompt error: %s", console.Red(err))
			}
			if !ok {
				console.Infof("aborted")
				return nil
			}
		}
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		dev, release, err := openDevice(c)
		if err != nil {
			return console.ExitErr("setup error", err)
		}
		defer release()
		if err := dev.SoftReset(ctx); err != nil {
			return console.ExitErr("soft reset failed", err)
		}
		console.Infof("sensor %s reset", console.White(dev))
		return nil
	},
}
