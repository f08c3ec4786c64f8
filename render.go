package veglib

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wgdzlh/veglib/log"
	"github.com/wgdzlh/veglib/utils"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	figMargin     = 16
	titleBand     = 32
	captionBand   = 24
	colorbarW     = 20
	colorbarGap   = 12
	colorbarTextW = 56
	panelGap      = 10
	barTicks      = 5
	minFigWidth   = 240

	// 小格网放大渲染的目标边长与放大上限
	targetImgSide   = 512
	targetPanelSide = 256
	maxCellScale    = 64

	dashOn  = 6
	dashOff = 4
)

var (
	figBg   = color.RGBA{255, 255, 255, 255}
	figFg   = color.RGBA{0, 0, 0, 255}
	badGray = color.RGBA{128, 128, 128, 255}

	figFace font.Face
)

func init() {
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	figFace, err = opentype.NewFace(ft, &opentype.FaceOptions{Size: 13, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		panic(err)
	}
}

// 热力图渲染参数
type Heatmap struct {
	Grid     BandGrid
	Palette  *Palette
	Title    string
	BarLabel string      // 色标注记，空则不画色标
	VMin     float64     // Fixed为true时生效
	VMax     float64
	Fixed    bool        // 固定值域，不随数据伸缩
	BadColor *color.RGBA // 非有限值像元的颜色，nil则按背景处理
	LineRow  float64     // 横向虚线参考线所在行，NaN则不画
}

type colorbar struct {
	ramp  []color.RGBA
	vmin  float64
	vmax  float64
	label string
}

// 渲染单格网热力图并落盘
func RenderHeatmap(h *Heatmap, out string) (err error) {
	if h.Grid == nil {
		return ErrEmptyGrid
	}
	rows, cols := h.Grid.Dims()
	if rows == 0 || cols == 0 {
		return ErrEmptyGrid
	}
	vmin, vmax := h.VMin, h.VMax
	if !h.Fixed {
		s := GridStats(h.Grid)
		if s.Finite > 0 {
			vmin, vmax = s.Min, s.Max
		} else {
			vmin, vmax = -1, 1
		}
	}
	ramp := h.Palette.Ramp()
	disp := upscaleTo(rasterize(h.Grid, ramp, vmin, vmax, h.BadColor), targetImgSide)
	if !math.IsNaN(h.LineRow) {
		scale := disp.Bounds().Dy() / rows
		drawDashedHLine(disp, int(h.LineRow*float64(scale)))
	}
	fig := composeFigure(disp, h.Title, &colorbar{ramp: ramp, vmin: vmin, vmax: vmax, label: h.BarLabel})
	return SaveImage(fig, out)
}

// 三个波段按各自有限值范围拉伸至0~255后合成RGB影像并落盘
func RenderComposite(r, g, b BandGrid, title, out string) (err error) {
	img, err := compositeRGB(r, g, b)
	if err != nil {
		return
	}
	fig := composeFigure(upscaleTo(img, targetImgSide), title, nil)
	return SaveImage(fig, out)
}

// 多个波段的灰度图按两列排布并落盘
func RenderPanelGrid(grids []BandGrid, captions []string, title, out string) (err error) {
	if len(grids) == 0 || len(grids) != len(captions) {
		return ErrEmptyGrid
	}
	ramp := paletteGray.Ramp()
	panels := make([]*image.RGBA, len(grids))
	cellW, cellH := 0, 0
	for i, grid := range grids {
		rows, cols := grid.Dims()
		if rows == 0 || cols == 0 {
			return ErrEmptyGrid
		}
		vmin, vmax := -1.0, 1.0
		if s := GridStats(grid); s.Finite > 0 {
			vmin, vmax = s.Min, s.Max
		}
		panels[i] = upscaleTo(rasterize(grid, ramp, vmin, vmax, nil), targetPanelSide)
		if w := panels[i].Bounds().Dx(); w > cellW {
			cellW = w
		}
		if h := panels[i].Bounds().Dy(); h > cellH {
			cellH = h
		}
	}
	const ncols = 2
	nrows := (len(panels) + ncols - 1) / ncols
	figW := 2*figMargin + ncols*cellW + (ncols-1)*panelGap
	if figW < minFigWidth {
		figW = minFigWidth
	}
	figH := 2*figMargin + titleBand + nrows*(cellH+captionBand) + (nrows-1)*panelGap
	fig := image.NewRGBA(image.Rect(0, 0, figW, figH))
	draw.Draw(fig, fig.Bounds(), image.NewUniform(figBg), image.Point{}, draw.Src)
	drawText(fig, (figW-textWidth(title))/2, figMargin+18, title, figFg)
	for i, panel := range panels {
		row, col := i/ncols, i%ncols
		cx := figMargin + col*(cellW+panelGap) + (cellW-panel.Bounds().Dx())/2
		cy := figMargin + titleBand + row*(cellH+captionBand+panelGap)
		draw.Draw(fig, image.Rect(cx, cy, cx+panel.Bounds().Dx(), cy+panel.Bounds().Dy()), panel, panel.Bounds().Min, draw.Src)
		capX := figMargin + col*(cellW+panelGap) + (cellW-textWidth(captions[i]))/2
		drawText(fig, capX, cy+cellH+16, captions[i], figFg)
	}
	return SaveImage(fig, out)
}

// 按扩展名编码输出，先写同目录唯一临时文件再改名
func SaveImage(img image.Image, out string) (err error) {
	tmp := utils.TmpSibling(out)
	f, err := os.Create(tmp)
	if err != nil {
		log.Error("create image file failed", zap.String("out", out), zap.Error(err))
		return
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case FILE_EXT_PNG:
		err = png.Encode(f, img)
	case FILE_EXT_JPG, FILE_EXT_JPEG:
		err = jpeg.Encode(f, img, nil)
	default:
		err = ErrUnsupportedExt
	}
	if e := f.Close(); err == nil {
		err = e
	}
	if err == nil {
		err = os.Rename(tmp, out)
	}
	if err != nil {
		os.Remove(tmp)
		log.Error("save image failed", zap.String("out", out), zap.Error(err))
		return
	}
	log.Info("image saved", zap.String("out", out))
	return
}

// 值域线性映射至256级色表；非有限值取bad色（未指定则取背景色）
func rasterize(grid BandGrid, ramp []color.RGBA, vmin, vmax float64, bad *color.RGBA) *image.RGBA {
	rows, cols := grid.Dims()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	span := vmax - vmin
	for i := 0; i < rows; i++ {
		for j, v := range grid.RawRowView(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				if bad != nil {
					img.SetRGBA(j, i, *bad)
				} else {
					img.SetRGBA(j, i, figBg)
				}
				continue
			}
			idx := 127
			if span > 0 {
				idx = int((v - vmin) / span * 255)
				if idx < 0 {
					idx = 0
				} else if idx > 255 {
					idx = 255
				}
			}
			img.SetRGBA(j, i, ramp[idx])
		}
	}
	return img
}

func compositeRGB(r, g, b BandGrid) (img *image.RGBA, err error) {
	rows, cols := r.Dims()
	if gr, gc := g.Dims(); gr != rows || gc != cols {
		err = ErrShapeMismatch
		return
	}
	if br, bc := b.Dims(); br != rows || bc != cols {
		err = ErrShapeMismatch
		return
	}
	if rows == 0 || cols == 0 {
		err = ErrEmptyGrid
		return
	}
	planes := [3]BandGrid{r, g, b}
	var mins, spans [3]float64
	for k, p := range planes {
		s := GridStats(p)
		if s.Finite == 0 {
			mins[k], spans[k] = 0, 0
			continue
		}
		mins[k], spans[k] = s.Min, s.Max-s.Min
	}
	img = image.NewRGBA(image.Rect(0, 0, cols, rows))
	var c [3]uint8
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			for k, p := range planes {
				v := p.At(i, j)
				if math.IsNaN(v) || math.IsInf(v, 0) || spans[k] <= 0 {
					c[k] = 0
					continue
				}
				n := (v - mins[k]) / spans[k] * 255
				if n < 0 {
					n = 0
				} else if n > 255 {
					n = 255
				}
				c[k] = uint8(n)
			}
			img.SetRGBA(j, i, color.RGBA{c[0], c[1], c[2], 255})
		}
	}
	return
}

// 小格网近邻放大，保证单像元在成图中可见
func upscaleTo(src *image.RGBA, target int) *image.RGBA {
	b := src.Bounds()
	side := b.Dx()
	if b.Dy() > side {
		side = b.Dy()
	}
	if side >= target {
		return src
	}
	scale := target / side
	if scale > maxCellScale {
		scale = maxCellScale
	}
	if scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

func composeFigure(content *image.RGBA, title string, bar *colorbar) *image.RGBA {
	cw, ch := content.Bounds().Dx(), content.Bounds().Dy()
	innerW := cw
	bottom := 0
	if bar != nil {
		innerW += colorbarGap + colorbarW + colorbarTextW
		bottom = captionBand
	}
	figW := innerW + 2*figMargin
	if figW < minFigWidth {
		figW = minFigWidth
	}
	figH := 2*figMargin + titleBand + ch + bottom
	fig := image.NewRGBA(image.Rect(0, 0, figW, figH))
	draw.Draw(fig, fig.Bounds(), image.NewUniform(figBg), image.Point{}, draw.Src)
	drawText(fig, (figW-textWidth(title))/2, figMargin+18, title, figFg)
	cx, cy := figMargin, figMargin+titleBand
	draw.Draw(fig, image.Rect(cx, cy, cx+cw, cy+ch), content, content.Bounds().Min, draw.Src)
	if bar != nil {
		drawColorbar(fig, cx+cw+colorbarGap, cy, ch, bar)
	}
	return fig
}

func drawColorbar(fig *image.RGBA, x, y, h int, bar *colorbar) {
	if h < 2 {
		h = 2
	}
	for dy := 0; dy < h; dy++ {
		c := bar.ramp[255-255*dy/(h-1)]
		for dx := 0; dx < colorbarW; dx++ {
			fig.SetRGBA(x+dx, y+dy, c)
		}
	}
	for dx := -1; dx <= colorbarW; dx++ {
		fig.SetRGBA(x+dx, y-1, figFg)
		fig.SetRGBA(x+dx, y+h, figFg)
	}
	for dy := -1; dy <= h; dy++ {
		fig.SetRGBA(x-1, y+dy, figFg)
		fig.SetRGBA(x+colorbarW, y+dy, figFg)
	}
	for k := 0; k < barTicks; k++ {
		frac := float64(k) / float64(barTicks-1)
		v := bar.vmax - frac*(bar.vmax-bar.vmin)
		ty := y + int(frac*float64(h-1))
		for dx := 1; dx <= 3; dx++ {
			fig.SetRGBA(x+colorbarW+dx, ty, figFg)
		}
		drawText(fig, x+colorbarW+6, ty+4, strconv.FormatFloat(v, 'f', 2, 64), figFg)
	}
	if bar.label != "" {
		drawText(fig, x, y+h+16, bar.label, figFg)
	}
}

func drawDashedHLine(img *image.RGBA, y int) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		if (x-b.Min.X)%(dashOn+dashOff) < dashOn {
			img.SetRGBA(x, y, figFg)
		}
	}
}

func drawText(dst *image.RGBA, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: figFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(figFace, s).Ceil()
}
