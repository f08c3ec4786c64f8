package veglib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wgdzlh/veglib/log"

	godal "github.com/airbusgeo/godal"
	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// 获取srid对应的坐标系（可复用，故无需回收）
func (g *VegToolbox) getSridRef(srid int) (ref gdal.SpatialReference, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	ref, ok := g.refMap[srid]
	if ok {
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromEPSG(srid); err != nil { // 设定坐标系ID
		log.Error(g.logTag+"set ref srid failed", zap.Int("srid", srid), zap.Error(err))
		ref.Destroy()
		return
	}
	// 数据轴次序固定为传统GIS坐标序(经度,纬度)，避免转换坐标系时次序倒置
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	g.refMap[srid] = ref
	return
}

func (g *VegToolbox) getSrid(sp gdal.SpatialReference) (srid int, err error) {
	wkt, _ := sp.ToWKT()
	rawId, ok := sp.AttrValue("AUTHORITY", 1)
	if !ok {
		if strings.Contains(wkt, "CGCS_2000") {
			rawId = "4490"
		} else {
			err = ErrVoidSrid
			return
		}
	}
	srid, err = strconv.Atoi(rawId)
	log.Info(g.logTag+"got srid from sp", zap.String("id", rawId))
	return
}

func (g *VegToolbox) parseWKT(wkt string, ref gdal.SpatialReference) (ret gdal.Geometry, err error) {
	ret, err = gdal.CreateFromWKT(wkt, ref)
	if err != nil {
		log.Error(g.logTag+"parse wkt failed", zap.Error(err))
		err = ErrInvalidWKT
	}
	return
}

// 转换WKT坐标系
func (g *VegToolbox) TransformWkt(wkt string, srid, tSrid int) (ret string, err error) {
	if tSrid == srid {
		ret = wkt
		return
	}
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	tRef, err := g.getSridRef(tSrid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if err = geo.TransformTo(tRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		return
	}
	ret, err = geo.ToWKT()
	return
}

// 获取WKT经纬度范围
func (g *VegToolbox) GetWktSpan(wkt string, srid int) (span [4]float64, err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	envelop := geo.Envelope()
	span[0] = envelop.MinX()
	span[1] = envelop.MaxX()
	span[2] = envelop.MinY()
	span[3] = envelop.MaxY()
	return
}

// 获取栅格有效范围的EPSG:4326面WKT（用于任务概要）
func (g *VegToolbox) RasterExtentWkt(tif string) (wkt string, err error) {
	sds, err := godal.Open(tif, godal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	bounds, err := sds.Bounds() // [MinX, MinY, MaxX, MaxY]
	if err != nil {
		log.Error(g.logTag+"get tif bounds failed", zap.Error(err))
		err = ErrWrongTif
		return
	}
	proj := sds.Projection()
	if proj == "" {
		err = ErrVoidSrid
		return
	}
	sp := gdal.CreateSpatialReference(proj)
	srid, err := g.getSrid(sp)
	sp.Destroy()
	if err != nil {
		return
	}
	return g.TransformWkt(PointsToWkt(bounds[0], bounds[2], bounds[1], bounds[3]), srid, UNIVERSAL_SRID)
}

func PointsToWkt(lon1, lon2, lat1, lat2 float64) string {
	return fmt.Sprintf("POLYGON((%[1]f %[3]f, %[1]f %[4]f, %[2]f %[4]f, %[2]f %[3]f, %[1]f %[3]f))", lon1, lon2, lat1, lat2)
}

func SpanToWkt(span [4]float64) string {
	return PointsToWkt(span[0], span[1], span[2], span[3])
}
