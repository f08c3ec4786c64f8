package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wgdzlh/veglib"
	"github.com/wgdzlh/veglib/log"
)

func main() {
	input := flag.String("input", "", "input multi-band raster (GeoTIFF)")
	outDir := flag.String("output-dir", ".", "directory for rendered images")
	threshold := flag.Float64("threshold", veglib.DEFAULT_THRESHOLD, "NDVI threshold in [-1,1], annotated on the threshold plot")
	cmap := flag.String("cmap", veglib.DEFAULT_CMAP, "colormap for the continuous NDVI plot")
	flag.Parse()
	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, os.ModePerm); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	g := veglib.NewVegToolbox()
	sum, err := g.Run(veglib.Job{
		Input:     *input,
		OutDir:    *outDir,
		Threshold: *threshold,
		Colormap:  *cmap,
	})
	sum.Print(os.Stdout)
	log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
