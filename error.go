package veglib

import "errors"

var (
	ErrInvalidTif      = errors.New("gdal tif open err")
	ErrWrongTif        = errors.New("gdal tif is malformed")
	ErrTifReadFailed   = errors.New("gdal tif read err")
	ErrBandOutOfRange  = errors.New("gdal band index out of range")
	ErrShapeMismatch   = errors.New("band grids differ in shape")
	ErrEmptyGrid       = errors.New("band grid is empty")
	ErrVoidSrid        = errors.New("raster with void srid")
	ErrInvalidWKT      = errors.New("invalid WKT")
	ErrUnknownColormap = errors.New("unknown colormap")
	ErrUnsupportedExt  = errors.New("unsupported image ext")
)
