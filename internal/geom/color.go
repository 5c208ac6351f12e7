package geom

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// HexToRGBA parses "#rgb" or "#rrggbb" and applies alpha in [0, 1].
// The result is only used to weight rendering; it carries no logic.
func HexToRGBA(hex string, alpha float64) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: alphaByte(alpha),
	}, nil
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = alphaByte(alpha)
	return n
}

func alphaByte(alpha float64) uint8 {
	if alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return 255
	}
	return uint8(alpha*255 + 0.5)
}
