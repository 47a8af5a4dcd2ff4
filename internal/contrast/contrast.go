// Package contrast implements WCAG relative luminance and contrast ratio math,
// plus a minimal-change search that nudges a color pair toward a target ratio.
package contrast

import (
	"math"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

// sRGB linearization breakpoint and channel weights from the WCAG 2.1 definition
// of relative luminance.
const (
	srgbBreakpoint = 0.03928
	weightR        = 0.2126
	weightG        = 0.7152
	weightB        = 0.0722
)

func linearize(channel uint8) float64 {
	c := float64(channel) / 255.0
	if c <= srgbBreakpoint {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// RelativeLuminance returns the WCAG relative luminance of a color, in [0, 1].
func RelativeLuminance(c types.RGB) float64 {
	return weightR*linearize(c.R) + weightG*linearize(c.G) + weightB*linearize(c.B)
}

// Ratio returns the WCAG contrast ratio between two colors.
// The result is symmetric in its arguments and always >= 1.
func Ratio(a, b types.RGB) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// PairRatio returns the contrast ratio of a foreground/background pair.
func PairRatio(p types.ColorPair) float64 {
	return Ratio(p.Foreground, p.Background)
}

// RequiredRatio returns the minimum contrast ratio for text of the given size.
// Large text (>= the large threshold, or >= the bold threshold when bold)
// qualifies for the lower bar.
func RequiredRatio(cfg *config.Config, sizePt float64, bold bool) float64 {
	if sizePt >= cfg.LargeTextPt || (bold && sizePt >= cfg.BoldLargeTextPt) {
		return cfg.ContrastLarge
	}
	return cfg.ContrastNormal
}

// lightnessStep is the HSL lightness increment used by the fix search. Small
// enough to land close to the minimal compliant change, large enough to keep
// the search bounded.
const lightnessStep = 0.02

// Fix searches for the nearest color pair satisfying the target ratio.
//
// Policy: the darker color of the pair moves further toward black in small
// lightness steps — the foreground when it is the darker one, otherwise the
// background. Foreground and background are never swapped, and only the HSL
// lightness channel moves, so the hue intent of the original colors is
// preserved. The returned ratio is never below the input pair's ratio.
//
// When the lightness floor is reached without meeting the target, Fix returns
// the closest achievable pair and ok=false; the caller decides how to
// escalate, there is no silent success.
func Fix(pair types.ColorPair, target float64) (types.ColorPair, bool) {
	if PairRatio(pair) >= target {
		return pair, true
	}

	darkenFg := RelativeLuminance(pair.Foreground) < RelativeLuminance(pair.Background)

	best := pair
	for {
		if PairRatio(best) >= target {
			return best, true
		}
		var moved bool
		if darkenFg {
			best.Foreground, moved = shiftLightness(best.Foreground, -lightnessStep)
		} else {
			best.Background, moved = shiftLightness(best.Background, -lightnessStep)
		}
		if !moved {
			return best, PairRatio(best) >= target
		}
	}
}

// shiftLightness moves a color's HSL lightness by delta, clamped to [0, 1].
// The second return value reports whether the color actually changed.
func shiftLightness(c types.RGB, delta float64) (types.RGB, bool) {
	h, s, l := rgbToHSL(c)
	next := math.Max(0, math.Min(1, l+delta))
	if next == l {
		return c, false
	}
	out := hslToRGB(h, s, next)
	return out, out != c
}

func rgbToHSL(c types.RGB) (h, s, l float64) {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2

	if maxC == minC {
		return 0, 0, l // achromatic
	}

	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6
	return h, s, l
}

func hslToRGB(h, s, l float64) types.RGB {
	if s == 0 {
		v := clampChannel(l)
		return types.RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return types.RGB{
		R: clampChannel(hueToChannel(p, q, h+1.0/3.0)),
		G: clampChannel(hueToChannel(p, q, h)),
		B: clampChannel(hueToChannel(p, q, h-1.0/3.0)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

func clampChannel(v float64) uint8 {
	scaled := math.Round(v * 255)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
