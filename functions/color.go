package functions

import (
	"math"

	"github.com/Vallentin/textmation/value"
)

// rgb builds an opaque color from channel values in [0, 255].
func rgb(args []value.Value) (value.Value, error) {
	return value.RGBA(number(args[0]), number(args[1]), number(args[2]), 255), nil
}

func rgba(args []value.Value) (value.Value, error) {
	return value.RGBA(number(args[0]), number(args[1]), number(args[2]), number(args[3])), nil
}

// hsl builds an opaque color from hue, saturation and lightness, each a
// fraction in [0, 1]. Hue wraps around the color wheel.
func hsl(args []value.Value) (value.Value, error) {
	r, g, b := hlsToRGB(number(args[0]), number(args[2]), number(args[1]))

	return value.RGBA(r*255, g*255, b*255, 255), nil
}

// hsla is hsl with an explicit alpha channel in [0, 255].
func hsla(args []value.Value) (value.Value, error) {
	r, g, b := hlsToRGB(number(args[0]), number(args[2]), number(args[1]))

	return value.RGBA(r*255, g*255, b*255, number(args[3])), nil
}

const (
	oneThird  = 1.0 / 3.0
	oneSixth  = 1.0 / 6.0
	twoThirds = 2.0 / 3.0
)

// hlsToRGB converts hue, lightness and saturation fractions to RGB
// fractions.
func hlsToRGB(h, l, s float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}

	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}

	m1 := 2*l - m2

	return hueChannel(m1, m2, h+oneThird),
		hueChannel(m1, m2, h),
		hueChannel(m1, m2, h-oneThird)
}

func hueChannel(m1, m2, hue float64) float64 {
	hue = math.Mod(hue, 1)
	if hue < 0 {
		hue++
	}

	switch {
	case hue < oneSixth:
		return m1 + (m2-m1)*hue*6
	case hue < 0.5:
		return m2
	case hue < twoThirds:
		return m1 + (m2-m1)*(twoThirds-hue)*6
	default:
		return m1
	}
}
