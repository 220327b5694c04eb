package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Gray  = RGB{156, 163, 175}
)

// ParseColor reads "#rrggbb" or "#rgb", returning fallback otherwise.
func ParseColor(s string, fallback RGB) RGB {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// OptionalColor returns nil for an empty or invalid color.
func OptionalColor(s string) *RGB {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	c := ParseColor(s, RGB{})
	if c == (RGB{}) && !isBlack(s) {
		return nil
	}
	return &c
}

func isBlack(s string) bool {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	return s == "000" || s == "000000"
}

// Lighten mixes c with white; f in [0,1].
func (c RGB) Lighten(f float64) RGB {
	mix := func(v uint8) uint8 { return uint8(float64(v) + (255-float64(v))*f) }
	return RGB{R: mix(c.R), G: mix(c.G), B: mix(c.B)}
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *RGB) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseColor(s, Black)
	return nil
}
