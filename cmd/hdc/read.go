package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/hdc302x"
	"github.com/mklimuk/hdc302x/cmd/hdc/console"
	"github.com/mklimuk/hdc302x/snsctx"
)

var lpmFlag = &cli.IntFlag{
	Name:  "lpm",
	Usage: "low power mode, 0 (lowest noise) to 3 (lowest power)",
}

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"temp"},
	Usage:   "trigger a one-shot measurement",
	Flags: []cli.Flag{
		lpmFlag,
		&cli.BoolFlag{Name: "fahrenheit", Aliases: []string{"f"}},
		&cli.BoolFlag{Name: "raw", Usage: "print raw sensor codes"},
	},
	Action: func(c *cli.Context) error {
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		dev, release, err := openDevice(c)
		if err != nil {
			return console.ExitErr("setup error", err)
		}
		defer release()

		lpm := hdc302x.LowPowerMode(c.Int("lpm"))
		d, err := dev.OneShot(ctx, lpm)
		if err != nil {
			return console.ExitErr("error getting measurement", err)
		}
		printDatum(d, c.Bool("fahrenheit"), c.Bool("raw"))
		return nil
	},
}

func printDatum(d hdc302x.RawDatum, fahrenheit bool, raw bool) {
	if raw {
		if _, ok := d.Celsius(); ok {
			console.Printf("T  %#04x\n", d.Temperature)
		}
		if _, ok := d.HumidityPercent(); ok {
			console.Printf("RH %#04x\n", d.Humidity)
		}
		return
	}
	if fahrenheit {
		if t, ok := d.Fahrenheit(); ok {
			console.Printf("%s %s\n", console.PictoThermometer, console.White(formatFloat(t, "°F")))
		}
	} else if t, ok := d.Celsius(); ok {
		console.Printf("%s %s\n", console.PictoThermometer, console.White(formatFloat(t, "°C")))
	}
	if h, ok := d.HumidityPercent(); ok {
		console.Printf("%s %s\n", console.PictoHumidity, console.White(formatFloat(h, "%RH")))
	}
}

// watch calls read every interval until the context is cancelled.
func watch(c *cli.Context, interval time.Duration, read func() error) error {
	if err := read(); err != nil {
		return err
	}
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.Context.Done():
			return nil
		case <-ticker.C:
			if err := read(); err != nil {
				return err
			}
		}
	}
}
