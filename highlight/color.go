package highlight

import (
	"math"
	"strconv"
	"strings"
)

// ColorCategory classifies a hex color like "#ffd400" into a coarse named
// bucket (red, orange, yellow, green, cyan, blue, purple, magenta, or gray)
// so highlights can be grouped by intent regardless of exact shade. Unknown
// or unparsable values return "unknown".
func ColorCategory(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "unknown"
	}

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	// Low saturation reads as gray regardless of hue.
	if delta < 0.08 || max < 0.12 {
		return "gray"
	}

	var hue float64
	switch max {
	case r:
		hue = math.Mod((g-b)/delta, 6)
	case g:
		hue = (b-r)/delta + 2
	default:
		hue = (r-g)/delta + 4
	}
	hue *= 60
	if hue < 0 {
		hue += 360
	}

	switch {
	case hue < 20 || hue >= 330:
		return "red"
	case hue < 45:
		return "orange"
	case hue < 70:
		return "yellow"
	case hue < 160:
		return "green"
	case hue < 200:
		return "cyan"
	case hue < 260:
		return "blue"
	case hue < 290:
		return "purple"
	default:
		return "magenta"
	}
}

// parseHex parses #rgb or #rrggbb into components in [0, 1]
func parseHex(hex string) (r, g, b float64, ok bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	r = float64(v>>16&0xff) / 255
	g = float64(v>>8&0xff) / 255
	b = float64(v&0xff) / 255
	return r, g, b, true
}
