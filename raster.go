package veglib

import (
	"github.com/wgdzlh/veglib/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// 读取tif元信息
func (g *VegToolbox) ReadInfo(tif string) (info RasterInfo, err error) {
	sds, err := gdal.Open(tif, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	st := sds.Structure()
	info = RasterInfo{
		Path:   tif,
		Width:  st.SizeX,
		Height: st.SizeY,
		Bands:  st.NBands,
	}
	if info.Width <= 0 || info.Height <= 0 || info.Bands == 0 {
		log.Error(g.logTag+"tif is empty", zap.String("tif", tif))
		err = ErrWrongTif
	}
	return
}

// 读取tif中单个波段为浮点格网（波段号从1起始）
func (g *VegToolbox) ParseBand(tif string, band int) (grid BandGrid, err error) {
	grids, err := g.ParseBands(tif, band)
	if err != nil {
		return
	}
	grid = grids[0]
	return
}

// 读取tif中若干波段为浮点格网。整型波段数据在读取时即放大为float64，避免后续整除
func (g *VegToolbox) ParseBands(tif string, bands ...int) (grids []BandGrid, err error) {
	sds, err := gdal.Open(tif, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	tifBands := sds.Bands()
	bc := len(tifBands)
	log.Info(g.logTag+"start read tif", zap.String("tif", tif), zap.Int("bands", bc), zap.Ints("wanted", bands))
	grids = make([]BandGrid, len(bands))
	for i, bn := range bands {
		if bn < 1 || bn > bc {
			log.Error(g.logTag+"band index out of range", zap.Int("band", bn), zap.Int("bands", bc))
			grids = nil
			err = ErrBandOutOfRange
			return
		}
		band := tifBands[bn-1]
		bandStruct := band.Structure()
		x := bandStruct.SizeX
		y := bandStruct.SizeY
		if x <= 0 || y <= 0 {
			log.Error(g.logTag+"tif band is empty", zap.Int("band", bn))
			grids = nil
			err = ErrWrongTif
			return
		}
		buf := make([]float64, x*y)
		if err = band.Read(0, 0, buf, x, y); err != nil {
			log.Error(g.logTag+"read tif band failed", zap.Int("band", bn), zap.Error(err))
			grids = nil
			err = ErrTifReadFailed
			return
		}
		grids[i] = mat.NewDense(y, x, buf)
	}
	return
}
