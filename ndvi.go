package veglib

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// 逐像元计算NDVI = (NIR - Red) / (NIR + Red)
// 纯函数，不做除零防护：NIR+Red为0的像元产生±Inf或NaN，由渲染端按无效值处理
func ComputeNdvi(red, nir BandGrid) (ndvi BandGrid, err error) {
	rr, rc := red.Dims()
	nr, nc := nir.Dims()
	if rr != nr || rc != nc {
		err = ErrShapeMismatch
		return
	}
	if rr == 0 || rc == 0 {
		err = ErrEmptyGrid
		return
	}
	ndvi = mat.NewDense(rr, rc, nil)
	for i := 0; i < rr; i++ {
		rRow := red.RawRowView(i)
		nRow := nir.RawRowView(i)
		oRow := ndvi.RawRowView(i)
		for j := 0; j < rc; j++ {
			oRow[j] = (nRow[j] - rRow[j]) / (nRow[j] + rRow[j])
		}
	}
	return
}

// 从tif的固定红/近红外波段计算NDVI
func (g *VegToolbox) NdviFromRaster(tif string) (ndvi BandGrid, err error) {
	grids, err := g.ParseBands(tif, BAND_RED, BAND_NIR)
	if err != nil {
		return
	}
	return ComputeNdvi(grids[0], grids[1])
}

// 格网统计，仅计入有限值
func GridStats(grid BandGrid) (s NdviStats) {
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	var sum float64
	r, _ := grid.Dims()
	for i := 0; i < r; i++ {
		for _, v := range grid.RawRowView(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				s.NonFinite++
				continue
			}
			s.Finite++
			sum += v
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
	}
	if s.Finite > 0 {
		s.Mean = sum / float64(s.Finite)
	} else {
		s.Min = math.NaN()
		s.Max = math.NaN()
		s.Mean = math.NaN()
	}
	return
}
