package veglib

import "image/color"

// 渐变色带，由若干颜色站点插值得到256级色表
type Palette struct {
	Name    string
	Colours []color.RGBA
}

var (
	// matplotlib同名色带的11个站点
	paletteRdYlGn = &Palette{Name: CMAP_RD_YL_GN, Colours: []color.RGBA{
		{165, 0, 38, 255},
		{215, 48, 39, 255},
		{244, 109, 67, 255},
		{253, 174, 97, 255},
		{254, 224, 139, 255},
		{255, 255, 191, 255},
		{217, 239, 139, 255},
		{166, 217, 106, 255},
		{102, 189, 99, 255},
		{26, 152, 80, 255},
		{0, 104, 55, 255},
	}}
	paletteBwr = &Palette{Name: CMAP_BWR, Colours: []color.RGBA{
		{0, 0, 255, 255},
		{255, 255, 255, 255},
		{255, 0, 0, 255},
	}}
	paletteGray = &Palette{Name: CMAP_GRAY, Colours: []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
	}}

	palettes = map[string]*Palette{
		CMAP_RD_YL_GN: paletteRdYlGn,
		CMAP_BWR:      paletteBwr,
		CMAP_GRAY:     paletteGray,
	}
)

func LookupPalette(name string) (p *Palette, err error) {
	p, ok := palettes[name]
	if !ok {
		err = ErrUnknownColormap
	}
	return
}

func interpolateUint8(a, b uint8, i, sectionLength int) uint8 {
	return uint8(int(a) + i*(int(b)-int(a))/sectionLength)
}

func interpolateColor(a, b color.RGBA, i, sectionLength int) color.RGBA {
	return color.RGBA{
		interpolateUint8(a.R, b.R, i, sectionLength),
		interpolateUint8(a.G, b.G, i, sectionLength),
		interpolateUint8(a.B, b.B, i, sectionLength),
		255,
	}
}

// Ramp 在各颜色站点间线性插值，生成256色色表
func (p *Palette) Ramp() []color.RGBA {
	ramp := make([]color.RGBA, 256)
	bins := len(p.Colours) - 1
	if bins < 1 {
		var c color.RGBA
		if len(p.Colours) == 1 {
			c = p.Colours[0]
		}
		for i := range ramp {
			ramp[i] = c
		}
		return ramp
	}
	sectionLength := 256 / bins
	bonus := 256 - sectionLength*bins
	index := 0
	for section, upperColour := range p.Colours[1:] {
		n := sectionLength
		if section < bonus {
			n++
		}
		for i := 0; i < n; i++ {
			ramp[index] = interpolateColor(p.Colours[section], upperColour, i, sectionLength)
			index++
		}
	}
	return ramp
}
