package veglib

import (
	"os"
	"path/filepath"
	"testing"
)

const testTif = "testdata/west_campus.tif"

func TestNdviFromRaster(t *testing.T) {
	if _, err := os.Stat(testTif); err != nil {
		t.Skip("tif fixture not present")
	}
	g := NewVegToolbox()
	ndvi, err := g.NdviFromRaster(testTif)
	if err != nil {
		t.Fatal(err)
	}
	s := GridStats(ndvi)
	t.Logf("ndvi range [%v, %v], finite %d, nonFinite %d", s.Min, s.Max, s.Finite, s.NonFinite)
	if s.Finite > 0 && (s.Min < -1 || s.Max > 1) {
		t.Fatalf("finite ndvi out of [-1,1]: [%v, %v]", s.Min, s.Max)
	}
}

func TestParseBandOutOfRange(t *testing.T) {
	if _, err := os.Stat(testTif); err != nil {
		t.Skip("tif fixture not present")
	}
	g := NewVegToolbox()
	if _, err := g.ParseBand(testTif, 99); err != ErrBandOutOfRange {
		t.Fatalf("err = %v, want ErrBandOutOfRange", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	g := NewVegToolbox()
	if _, err := g.Run(Job{Input: filepath.Join(t.TempDir(), "void.tif")}); err != ErrInvalidTif {
		t.Fatalf("err = %v, want ErrInvalidTif", err)
	}
}

func TestRasterExtentWkt(t *testing.T) {
	if _, err := os.Stat(testTif); err != nil {
		t.Skip("tif fixture not present")
	}
	g := NewVegToolbox()
	wkt, err := g.RasterExtentWkt(testTif)
	if err != nil {
		t.Fatal(err)
	}
	span, err := g.GetWktSpan(wkt, UNIVERSAL_SRID)
	if err != nil {
		t.Fatal(err)
	}
	t.Log(wkt, span)
	if span[0] < -180 || span[1] > 180 || span[2] < -90 || span[3] > 90 {
		t.Fatalf("extent out of lon/lat range: %v", span)
	}
}
