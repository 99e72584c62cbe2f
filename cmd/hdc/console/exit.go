package console

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/hdc302x"
)

// Exit codes by failure kind.
const (
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitBus          = 3
	ExitChecksum     = 4
	ExitInvalidMode  = 5
)

func Exit(code int, msg string, args ...interface{}) cli.ExitCoder {
	return cli.Exit(fmt.Sprintf(msg, args...), code)
}

// ExitErr reports err in red with an exit code matching its kind.
func ExitErr(what string, err error) cli.ExitCoder {
	return Exit(ExitCode(err), "%s: %s", what, Red(err))
}

func ExitCode(err error) int {
	switch {
	case errors.Is(err, hdc302x.ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, hdc302x.ErrChecksumMismatch):
		return ExitChecksum
	case errors.Is(err, hdc302x.ErrInvalidMode):
		return ExitInvalidMode
	case errors.Is(err, hdc302x.ErrBus), errors.Is(err, hdc302x.ErrBusUnresponsive):
		return ExitBus
	default:
		return ExitFailure
	}
}
