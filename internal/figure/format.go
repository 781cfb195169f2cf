package figure

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Formats lists the output formats NewCanvas accepts.
var Formats = []string{"png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf"}

// FormatFromPath returns the lower-cased extension of path without the dot,
// or "png" when path has none.
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}

// NewCanvas returns an empty canvas for opt.Format.
func NewCanvas(opt Options) (vg.CanvasWriterTo, error) {
	if opt.Width <= 0 || opt.Height <= 0 {
		return nil, fmt.Errorf("figure: invalid canvas size %v x %v", opt.Width, opt.Height)
	}

	format := strings.ToLower(opt.Format)
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		if opt.DPI <= 0 {
			return nil, fmt.Errorf("figure: invalid dpi %d", opt.DPI)
		}
		c := vgimg.NewWith(vgimg.UseWH(opt.Width, opt.Height), vgimg.UseDPI(opt.DPI))
		switch format {
		case "png":
			return vgimg.PngCanvas{Canvas: c}, nil
		case "jpg", "jpeg":
			return vgimg.JpegCanvas{Canvas: c}, nil
		default:
			return vgimg.TiffCanvas{Canvas: c}, nil
		}
	case "svg":
		return vgsvg.New(opt.Width, opt.Height), nil
	case "pdf":
		return vgpdf.New(opt.Width, opt.Height), nil
	default:
		return nil, fmt.Errorf("figure: unsupported format %q (want one of %s)", opt.Format, strings.Join(Formats, ", "))
	}
}
