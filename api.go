package veglib

import "gonum.org/v1/gonum/mat"

// 单波段栅格，rows×cols浮点格网
type BandGrid = *mat.Dense

// 栅格元信息
type RasterInfo struct {
	Path   string
	Width  int
	Height int
	Bands  int
}

// NDVI格网统计（仅统计有限值）
type NdviStats struct {
	Min       float64
	Max       float64
	Mean      float64
	Finite    int
	NonFinite int
}

// 一次处理任务的全部参数
type Job struct {
	Input     string
	OutDir    string
	Threshold float64
	Colormap  string
}

// 任务概要
type Summary struct {
	Info      RasterInfo
	Stats     NdviStats
	ExtentWkt string
	Outputs   []string
}
