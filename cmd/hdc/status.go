package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/hdc302x"
	"github.com/mklimuk/hdc302x/cmd/hdc/console"
	"github.com/mklimuk/hdc302x/snsctx"
)

var yamlFlag = &cli.BoolFlag{Name: "yaml", Usage: "print as yaml"}

var statusCmd = cli.Command{
	Name:  "status",
	Usage: "read the status register",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "clear", Usage: "clear the status register after reading"},
		yamlFlag,
	},
	Action: func(c *cli.Context) error {
		ctx := snsctx.SetVerbose(c.Context, c.Bool("verbose"))
		dev, release, err := openDevice(c)
		if err != nil {
			return console.ExitErr("setup error", err)
		}
		defer release()
		status, err := dev.ReadStatus(ctx, c.Bool("clear"))
		// a failed clear still returns the status read before it
		if err != nil && !errors.Is(err, hdc302x.ErrStatusClear) {
			return console.ExitErr("status read failed", err)
		}
		if c.Bool("yaml") {
			if encErr := encodeYAML(status); encErr != nil {
				return console.Exit(console.ExitFailure, "encoding error: %s", console.Red(encErr))
			}
		} else {
			printStatus(status)
		}
		if err != nil {
			return console.ExitErr("status clear failed", err)
		}
		return nil
	},
}

func printStatus(s hdc302x.StatusBits) {
	w := tabwriter.NewWriter(console.Output(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "raw\t%#04x\n", s.Raw())
	rows := []struct {
		name string
		set  bool
	}{
		{"at least one alert", s.AtLeastOneAlert},
		{"heater enabled", s.HeaterEnabled},
		{"RH tracking alert", s.RHTrackingAlert},
		{"T tracking alert", s.TTrackingAlert},
		{"RH high tracking alert", s.RHHighTrackingAlert},
		{"RH low tracking alert", s.RHLowTrackingAlert},
		{"T high tracking alert", s.THighTrackingAlert},
		{"T low tracking alert", s.TLowTrackingAlert},
		{"reset since clear", s.ResetSinceClear},
		{"checksum failure", s.ChecksumFailure},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", r.name, console.Flag(r.set))
	}
	_ = w.Flush()
}

func encodeYAML(v any) error {
	enc := yaml.NewEncoder(console.Output())
	defer func() { _ = enc.Close() }()
	return enc.Encode(v)
}
