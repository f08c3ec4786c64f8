package veglib

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRasterizeMasksNonFinite(t *testing.T) {
	grid := mat.NewDense(2, 2, []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0})
	bad := badGray
	img := rasterize(grid, paletteBwr.Ramp(), -1, 1, &bad)
	// 所有非有限像元必须一致地置为bad色
	for _, pt := range []image.Point{{0, 0}, {1, 0}, {0, 1}} {
		if c := img.RGBAAt(pt.X, pt.Y); c != badGray {
			t.Fatalf("pixel %v = %v, want %v", pt, c, badGray)
		}
	}
	if c := img.RGBAAt(1, 1); c == badGray {
		t.Fatalf("finite pixel masked: %v", c)
	}
}

func TestRasterizeRange(t *testing.T) {
	grid := mat.NewDense(1, 3, []float64{-1, 0, 1})
	ramp := paletteBwr.Ramp()
	img := rasterize(grid, ramp, -1, 1, nil)
	if c := img.RGBAAt(0, 0); c != ramp[0] {
		t.Fatalf("vmin pixel = %v, want %v", c, ramp[0])
	}
	if c := img.RGBAAt(1, 0); c != ramp[127] {
		t.Fatalf("mid pixel = %v, want %v", c, ramp[127])
	}
	if c := img.RGBAAt(2, 0); c != ramp[255] {
		t.Fatalf("vmax pixel = %v, want %v", c, ramp[255])
	}
}

func TestUpscaleTo(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	dst := upscaleTo(src, targetImgSide)
	if dst.Bounds().Dx() != 3*maxCellScale || dst.Bounds().Dy() != 2*maxCellScale {
		t.Fatalf("upscaled bounds = %v", dst.Bounds())
	}
	big := image.NewRGBA(image.Rect(0, 0, 600, 600))
	if got := upscaleTo(big, targetImgSide); got != big {
		t.Fatal("large image should not be rescaled")
	}
}

func TestRenderNdviThresholdFile(t *testing.T) {
	grid := mat.NewDense(2, 2, []float64{math.NaN(), 0.5, -0.5, math.NaN()})
	out := filepath.Join(t.TempDir(), "ndvi_threshold.png")
	if err := RenderNdviThreshold(grid, 0.5, out); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	fig, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	cx, cy := figMargin, figMargin+titleBand
	// 左上象限为NaN像元，应为bad灰色
	if c := color.RGBAModel.Convert(fig.At(cx+32, cy+16)); c != color.Color(badGray) {
		t.Fatalf("masked pixel = %v, want %v", c, badGray)
	}
	// 右上象限0.5映射至固定[-1,1]值域的色表高段
	want := paletteBwr.Ramp()[191]
	if c := color.RGBAModel.Convert(fig.At(cx+96, cy+16)); c != color.Color(want) {
		t.Fatalf("value pixel = %v, want %v", c, want)
	}
	// 参考线固定位于0.5行，与阈值无关
	if c := color.RGBAModel.Convert(fig.At(cx, cy+32)); c != color.Color(figFg) {
		t.Fatalf("reference line pixel = %v, want %v", c, figFg)
	}
}

func TestRenderNdviFile(t *testing.T) {
	grid := mat.NewDense(2, 2, []float64{0.1, 0.5, -0.2, 0.9})
	out := filepath.Join(t.TempDir(), "ndvi_visualization.png")
	if err := RenderNdvi(grid, CMAP_RD_YL_GN, out); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		t.Fatalf("bad output file: %v", err)
	}
}

func TestRenderNdviUnknownColormap(t *testing.T) {
	grid := mat.NewDense(1, 1, []float64{0})
	if err := RenderNdvi(grid, "viridis", "unused.png"); err != ErrUnknownColormap {
		t.Fatalf("err = %v, want ErrUnknownColormap", err)
	}
}

func TestRenderCompositeFile(t *testing.T) {
	r := mat.NewDense(2, 2, []float64{0, 100, 200, 300})
	g := mat.NewDense(2, 2, []float64{300, 200, 100, 0})
	b := mat.NewDense(2, 2, []float64{50, 50, 50, 50})
	out := filepath.Join(t.TempDir(), "composite.png")
	if err := RenderComposite(r, g, b, "False Color Image", out); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		t.Fatalf("bad output file: %v", err)
	}
}

func TestRenderCompositeShapeMismatch(t *testing.T) {
	r := mat.NewDense(2, 2, nil)
	g := mat.NewDense(2, 3, nil)
	b := mat.NewDense(2, 2, nil)
	if err := RenderComposite(r, g, b, "x", "x.png"); err != ErrShapeMismatch {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestRenderPanelGridFile(t *testing.T) {
	grids := make([]BandGrid, 4)
	captions := make([]string, 4)
	for i := range grids {
		grids[i] = mat.NewDense(2, 2, []float64{0, 1, 2, float64(i)})
		captions[i] = "Channel"
	}
	out := filepath.Join(t.TempDir(), "color_channels.png")
	if err := RenderPanelGrid(grids, captions, "Color Channels", out); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		t.Fatalf("bad output file: %v", err)
	}
}

func TestSaveImageUnsupportedExt(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	out := filepath.Join(t.TempDir(), "out.bmp")
	if err := SaveImage(img, out); err != ErrUnsupportedExt {
		t.Fatalf("err = %v, want ErrUnsupportedExt", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatal("no file should be left behind")
	}
}
