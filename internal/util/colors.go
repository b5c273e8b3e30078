package util

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var colorsOptions = map[string]color.Attribute{
	"red":       color.FgHiRed,
	"green":     color.FgGreen,
	"underline": color.Underline,
	"bold":      color.Bold,
	"bgRed":     color.BgRed,
	"bgGreen":   color.BgGreen,
}

func ColorOutput(text string, colorOptions ...string) string {
	attributes := []color.Attribute{}
	for _, option := range colorOptions {
		if o, ok := colorsOptions[option]; ok {
			attributes = append(attributes, o)
		}
	}
	c := color.New(attributes...)
	return c.Sprint(text)
}

// ColorHex paints text with a "#RRGGBB" category colour. Malformed colours
// leave the text untouched.
func ColorHex(text, hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return text
	}
	return color.RGB(r, g, b).Sprint(text)
}

func parseHex(hex string) (int, int, int, bool) {
	const hexLen = 6

	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != hexLen {
		return 0, 0, 0, false
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return int(value >> 16 & 0xFF), int(value >> 8 & 0xFF), int(value & 0xFF), true
}
