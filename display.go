package veglib

import (
	"fmt"
	"math"
)

// 渲染原始影像：前三波段按读取顺序作为RGB
func (g *VegToolbox) RenderOriginal(tif, out string) (err error) {
	grids, err := g.ParseBands(tif, 1, 2, 3)
	if err != nil {
		return
	}
	return RenderComposite(grids[0], grids[1], grids[2], "Original Image", out)
}

// 渲染分波段灰度图：前四波段两列排布
func (g *VegToolbox) RenderChannels(tif, out string) (err error) {
	grids, err := g.ParseBands(tif, 1, 2, 3, 4)
	if err != nil {
		return
	}
	captions := make([]string, len(grids))
	for i := range captions {
		captions[i] = fmt.Sprintf("Channel %d", i+1)
	}
	return RenderPanelGrid(grids, captions, "Color Channels", out)
}

// 渲染假彩色影像：近红外/红/绿波段（4,3,2）作为RGB
func (g *VegToolbox) RenderFalseColor(tif, out string) (err error) {
	grids, err := g.ParseBands(tif, BAND_NIR, BAND_RED, 2)
	if err != nil {
		return
	}
	return RenderComposite(grids[0], grids[1], grids[2], "False Color Image", out)
}

// 渲染NDVI连续热力图，值域取数据实际范围
func RenderNdvi(ndvi BandGrid, cmap, out string) (err error) {
	p, err := LookupPalette(cmap)
	if err != nil {
		return
	}
	return RenderHeatmap(&Heatmap{
		Grid:     ndvi,
		Palette:  p,
		Title:    "NDVI Visualization",
		BarLabel: "NDVI",
		LineRow:  math.NaN(),
	}, out)
}

// 渲染NDVI阈值图：固定[-1,1]值域的蓝白红色带，无效像元置灰
// 阈值仅用于标题注记，不参与像元分类；参考线行位置为固定常量
func RenderNdviThreshold(ndvi BandGrid, threshold float64, out string) (err error) {
	bad := badGray
	return RenderHeatmap(&Heatmap{
		Grid:     ndvi,
		Palette:  paletteBwr,
		Title:    fmt.Sprintf("NDVI Threshold (%.2f)", threshold),
		BarLabel: "NDVI",
		VMin:     -1,
		VMax:     1,
		Fixed:    true,
		BadColor: &bad,
		LineRow:  THRESHOLD_LINE_ROW,
	}, out)
}
