package main

import (
	"fmt"
	"strconv"
	"strings"
)

func formatFloat(v float32, unit string) string {
	return fmt.Sprintf("%.2f%s", v, unit)
}

// parseAddress accepts decimal or 0x-prefixed hex.
func parseAddress(s string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint8(v), nil
}
