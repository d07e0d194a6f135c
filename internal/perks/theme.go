package perks

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Themes are the bonus families assigned to randomized perks. Neighboring
// perks tend to share a family because the choice samples smooth noise at
// the perk's position on the plot.
var Themes = []string{"Vitality", "Ferocity", "Celerity", "Precision", "Arcana", "Warding"}

const keystoneTheme = "Keystone"

// themeField maps plot positions (stat units) to a theme.
type themeField struct {
	noise opensimplex.Noise
}

func newThemeField(seed int64) themeField {
	return themeField{noise: opensimplex.NewNormalized(seed)}
}

// at picks the theme for a perk at (angle, radius).
func (f themeField) at(angle, radius float64) string {
	x := radius * math.Cos(angle)
	y := radius * math.Sin(angle)
	v := octaveNoise(f.noise, x, y, 2, 0.03, 0.5)

	i := int(v * float64(len(Themes)))
	if i < 0 {
		i = 0
	}
	if i >= len(Themes) {
		i = len(Themes) - 1
	}
	return Themes[i]
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
