package veglib

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/wgdzlh/veglib/log"
	"github.com/wgdzlh/veglib/utils"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 按参考流程执行全部渲染：原图、分波段、假彩色、NDVI连续图、NDVI阈值图
// 各渲染步骤相互独立，单步失败不阻断其余步骤，最终返回聚合错误
func (g *VegToolbox) Run(job Job) (sum Summary, err error) {
	if job.OutDir == "" {
		job.OutDir = "."
	}
	if job.Colormap == "" {
		job.Colormap = DEFAULT_CMAP
	}
	if job.Threshold < -1 || job.Threshold > 1 {
		log.Warn(g.logTag+"threshold out of [-1,1]", zap.Float64("threshold", job.Threshold))
	}
	log.Info(g.logTag+"start veg detect", zap.String("img", utils.GetFilenameWithoutExt(job.Input)),
		zap.String("outDir", job.OutDir), zap.Float64("threshold", job.Threshold))
	if sum.Info, err = g.ReadInfo(job.Input); err != nil {
		return
	}
	if sum.Info.Bands < MIN_BANDS {
		log.Warn(g.logTag+"tif bands not enough", zap.Int("bands", sum.Info.Bands), zap.Int("wanted", MIN_BANDS))
	}
	if wkt, e := g.RasterExtentWkt(job.Input); e == nil {
		sum.ExtentWkt = wkt
	} else {
		log.Warn(g.logTag+"no usable georeference", zap.Error(e))
	}
	step := func(name string, render func(out string) error) {
		out := filepath.Join(job.OutDir, name)
		if e := render(out); e != nil {
			log.Error(g.logTag+"render step failed", zap.String("out", name), zap.Error(e))
			err = multierr.Append(err, fmt.Errorf("%s: %w", name, e))
			return
		}
		sum.Outputs = append(sum.Outputs, out)
	}
	step(OUT_ORIGINAL, func(out string) error { return g.RenderOriginal(job.Input, out) })
	step(OUT_CHANNELS, func(out string) error { return g.RenderChannels(job.Input, out) })
	step(OUT_FALSE_COLOR, func(out string) error { return g.RenderFalseColor(job.Input, out) })
	ndvi, e := g.NdviFromRaster(job.Input)
	if e != nil {
		// 两张NDVI图都依赖计算结果，计算失败则一并跳过
		err = multierr.Append(err, fmt.Errorf("ndvi: %w", e))
		return
	}
	sum.Stats = GridStats(ndvi)
	log.Info(g.logTag+"ndvi computed", zap.Float64("min", sum.Stats.Min), zap.Float64("max", sum.Stats.Max),
		zap.Float64("mean", sum.Stats.Mean), zap.Int("nonFinite", sum.Stats.NonFinite))
	step(OUT_NDVI, func(out string) error { return RenderNdvi(ndvi, job.Colormap, out) })
	step(OUT_THRESHOLD, func(out string) error { return RenderNdviThreshold(ndvi, job.Threshold, out) })
	return
}

// 输出任务概要
func (s Summary) Print(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "raster: %s (%d x %d, %d bands)\n", s.Info.Path, s.Info.Width, s.Info.Height, s.Info.Bands)
	if s.ExtentWkt != "" {
		p.Fprintf(w, "extent (EPSG:%d): %s\n", UNIVERSAL_SRID, s.ExtentWkt)
	}
	if s.Stats.Finite+s.Stats.NonFinite > 0 {
		p.Fprintf(w, "ndvi: min %.4f, max %.4f, mean %.4f\n", s.Stats.Min, s.Stats.Max, s.Stats.Mean)
		p.Fprintf(w, "pixels: %d finite, %d non-finite\n", s.Stats.Finite, s.Stats.NonFinite)
	}
	for _, out := range s.Outputs {
		p.Fprintf(w, "saved: %s\n", out)
	}
}
