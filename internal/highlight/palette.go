// Package highlight locates scored phrases in abstract text and splits the
// text into plain and color-annotated segments.
package highlight

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hyperjump/shirushi/pkg/utils"
)

// Five-step background ramps, keyed by rounded absolute score 1..5.
var excitedColors = map[int]string{
	5: "#2f9e44", 4: "#40c057", 3: "#69db7c", 2: "#b2f2bb", 1: "#ebfbee",
}

var worriedColors = map[int]string{
	5: "#e03131", 4: "#fa5252", 3: "#ff8787", 2: "#ffc9c9", 1: "#fff5f5",
}

// ColorFor maps a phrase score to a hex color on one of the two ramps.
// The rounded absolute score saturates at the ramp ends (1 and 5).
func ColorFor(score float64, worried bool) string {
	step := int(utils.Clamp(math.Round(math.Abs(score)), 1, 5))
	if worried {
		return worriedColors[step]
	}
	return excitedColors[step]
}

// CSSColor renders a hex color as a CSS rgba() value with the given opacity,
// clamped to [0,1]. Returns the input unchanged when it is not a parseable
// #rgb or #rrggbb color.
func CSSColor(hex string, opacity float64) string {
	r, g, b, ok := hexToRGB(hex)
	if !ok {
		return hex
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, utils.Clamp01(opacity))
}

func hexToRGB(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff), true
}
