package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ambient draws a drifting particle field. Particle positions come from a
// seeded value-noise field, so the same frame always renders the same way;
// density grows with intensity.
type Ambient struct {
	Seed   uint32
	Glyphs []rune
	Style  lipgloss.Style
}

var defaultGlyphs = []rune{'·', '∙', '°', '˚', '*'}

// Render draws frame of the field into a width×height block.
func (a Ambient) Render(width, height int, intensity float64, frame int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := a.Grid(width, height, intensity, frame)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = a.Style.Render(line)
	}
	return strings.Join(out, "\n")
}

// Grid returns the unstyled rows of the field.
func (a Ambient) Grid(width, height int, intensity float64, frame int) []string {
	glyphs := a.Glyphs
	if len(glyphs) == 0 {
		glyphs = defaultGlyphs
	}
	threshold := AmbientThreshold(intensity)
	drift := float64(frame) * 0.15

	rows := make([]string, 0, height)
	row := make([]rune, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := valueNoise(float64(x)*0.31+drift, float64(y)*0.57-drift*0.5, a.Seed)
			if n < threshold {
				row[x] = ' '
				continue
			}
			idx := int((n - threshold) / (1 - threshold) * float64(len(glyphs)))
			if idx >= len(glyphs) {
				idx = len(glyphs) - 1
			}
			row[x] = glyphs[idx]
		}
		rows = append(rows, string(row))
	}
	return rows
}

// AmbientThreshold is the noise level above which a cell shows a particle.
func AmbientThreshold(intensity float64) float64 {
	if math.IsNaN(intensity) || intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	return 0.9 - 0.3*intensity
}

func valueNoise(x, y float64, seed uint32) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	tx, ty := smooth(x-x0), smooth(y-y0)
	ix, iy := int32(x0), int32(y0)

	top := lerp(lattice(ix, iy, seed), lattice(ix+1, iy, seed), tx)
	bottom := lerp(lattice(ix, iy+1, seed), lattice(ix+1, iy+1, seed), tx)
	return lerp(top, bottom, ty)
}

// lattice hashes a grid point to [0,1).
func lattice(x, y int32, seed uint32) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + seed*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h) / float64(math.MaxUint32+1)
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
