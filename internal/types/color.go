package types

import "fmt"

// RGB is a color with 8-bit channels, as stored in DrawingML srgbClr values.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the six-digit uppercase hex form used by srgbClr val attributes.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses a six-digit hex color (with or without a leading '#').
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q: expected 6 digits", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: r, G: g, B: b}, nil
}

// ColorPair is a foreground/background combination under contrast evaluation.
type ColorPair struct {
	Foreground RGB `json:"foreground"`
	Background RGB `json:"background"`
}
