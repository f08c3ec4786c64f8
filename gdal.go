package veglib

import (
	"sync"

	godal "github.com/airbusgeo/godal"
	"github.com/lukeroth/gdal"
)

// Veg工具箱，持有坐标系缓存
type VegToolbox struct {
	refMap map[int]gdal.SpatialReference
	rLock  sync.Mutex
	logTag string
}

var registerOnce sync.Once

// 初始化Veg工具箱
func NewVegToolbox() *VegToolbox {
	registerOnce.Do(godal.RegisterAll)
	return &VegToolbox{
		refMap: map[int]gdal.SpatialReference{},
		logTag: "VegToolbox:",
	}
}
