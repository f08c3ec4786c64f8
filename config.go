package veglib

const (
	// 源影像固定波段约定（1起始）：1~3为可显示三波段，3/4为红/近红外
	BAND_RED  = 3
	BAND_NIR  = 4
	MIN_BANDS = 4

	FILE_EXT_PNG  = ".png"
	FILE_EXT_JPG  = ".jpg"
	FILE_EXT_JPEG = ".jpeg"

	OUT_ORIGINAL    = "original_image.png"
	OUT_CHANNELS    = "color_channels.png"
	OUT_FALSE_COLOR = "false_color_image.png"
	OUT_NDVI        = "ndvi_visualization.png"
	OUT_THRESHOLD   = "ndvi_threshold.png"

	CMAP_RD_YL_GN = "RdYlGn"
	CMAP_BWR      = "bwr"
	CMAP_GRAY     = "gray"

	DEFAULT_THRESHOLD = 0.5
	DEFAULT_CMAP      = CMAP_RD_YL_GN

	// 阈值图的参考线位置（行坐标，原流程中为固定常量，与阈值无关）
	THRESHOLD_LINE_ROW = 0.5

	UNIVERSAL_SRID = 4326
)
