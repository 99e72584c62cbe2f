package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mklimuk/hdc302x/cmd/hdc/console"
	"github.com/mklimuk/hdc302x/snsctx"
)

var serialCmd = cli.Command{
	Name:  "serial",
	Usage: "read the NIST-traceable serial number",
	Flags: []cli.Flag{yamlFlag},
	Action: func(c *cli.Context) error {
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		dev, release, err := openDevice(c)
		if err != nil {
			return console.ExitErr("setup error", err)
		}
		defer release()
		serial, err := dev.ReadSerialNumber(ctx)
		if err != nil {
			return console.ExitErr("serial number read failed", err)
		}
		if c.Bool("yaml") {
			return encodeOrExit(map[string]any{"serial": serial})
		}
		console.PInfof(console.PictoKey, "%s", console.White(serial))
		return nil
	},
}

var manufacturerCmd = cli.Command{
	Name:  "manufacturer",
	Usage: "read the manufacturer ID",
	Flags: []cli.Flag{yamlFlag},
	Action: func(c *cli.Context) error {
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		dev, release, err := openDevice(c)
		if err != nil {
			return console.ExitErr("setup error", err)
		}
		defer release()
		id, err := dev.ReadManufacturerID(ctx)
		if err != nil {
			return console.ExitErr("manufacturer id read failed", err)
		}
		if c.Bool("yaml") {
			return encodeOrExit(map[string]any{"manufacturer": id})
		}
		console.Printf("%s\n", console.White(id))
		return nil
	},
}

func encodeOrExit(v any) error {
	if err := encodeYAML(v); err != nil {
		return console.Exit(console.ExitFailure, "encoding error: %s", console.Red(err))
	}
	return nil
}
