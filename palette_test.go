package veglib

import "testing"

func TestPaletteRamp(t *testing.T) {
	for name, p := range palettes {
		ramp := p.Ramp()
		if len(ramp) != 256 {
			t.Fatalf("%s ramp size = %d", name, len(ramp))
		}
		if ramp[0] != p.Colours[0] {
			t.Fatalf("%s ramp[0] = %v, want %v", name, ramp[0], p.Colours[0])
		}
		for i, c := range ramp {
			if c.A != 255 {
				t.Fatalf("%s ramp[%d] not opaque", name, i)
			}
		}
	}
}

func TestPaletteRampGrayMidpoint(t *testing.T) {
	ramp := paletteGray.Ramp()
	mid := ramp[128]
	if mid.R < 120 || mid.R > 136 || mid.R != mid.G || mid.G != mid.B {
		t.Fatalf("gray midpoint = %v", mid)
	}
}

func TestLookupPalette(t *testing.T) {
	if _, err := LookupPalette(CMAP_RD_YL_GN); err != nil {
		t.Fatal(err)
	}
	if _, err := LookupPalette("viridis"); err != ErrUnknownColormap {
		t.Fatalf("err = %v, want ErrUnknownColormap", err)
	}
}
