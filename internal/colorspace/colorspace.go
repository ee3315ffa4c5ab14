package colorspace

import "github.com/chewxy/math32"

// RGBA is a straight (not premultiplied) color with components in [0,1].
type RGBA struct {
	R, G, B, A float32
}

// HSV is a hue/saturation/value triple. H is in turns, S and V in [0,1].
type HSV struct {
	H, S, V float32
}

// Valid reports whether every component lies in [0,1].
func (c RGBA) Valid() bool {
	for _, v := range [...]float32{c.R, c.G, c.B, c.A} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// HSV converts the color's RGB part. Alpha is ignored.
func (c RGBA) HSV() HSV {
	return RGBToHSV(c.R, c.G, c.B)
}

// RGBToHSV converts an RGB triple to HSV.
func RGBToHSV(r, g, b float32) HSV {
	v := math32.Max(math32.Max(r, g), b)
	delta := v - math32.Min(math32.Min(r, g), b)

	var hsv HSV
	hsv.V = v
	if v > 0 {
		hsv.S = delta / v
	}
	if delta == 0 {
		return hsv
	}

	var h float32
	switch v {
	case r:
		h = (g - b) / delta
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h /= 6
	if h >= 1 {
		h = 0
	}
	hsv.H = h
	return hsv
}

// HSVToRGB converts an HSV triple back to RGB with the given alpha.
func HSVToRGB(c HSV, alpha float32) RGBA {
	if c.S == 0 {
		return RGBA{c.V, c.V, c.V, alpha}
	}
	h := c.H * 6
	i := math32.Floor(h)
	f := h - i
	p := c.V * (1 - c.S)
	q := c.V * (1 - f*c.S)
	t := c.V * (1 - (1-f)*c.S)
	switch int(i) % 6 {
	case 0:
		return RGBA{c.V, t, p, alpha}
	case 1:
		return RGBA{q, c.V, p, alpha}
	case 2:
		return RGBA{p, c.V, t, alpha}
	case 3:
		return RGBA{p, q, c.V, alpha}
	case 4:
		return RGBA{t, p, c.V, alpha}
	default:
		return RGBA{c.V, p, q, alpha}
	}
}

// Degrees converts a hue in turns to degrees in [0,360).
func Degrees(h float32) float32 {
	return h * 360
}
