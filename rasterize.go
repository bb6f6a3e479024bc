package glyphforge

import (
	"bytes"
	"image"
	"image/png"
	"os/exec"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// DefaultSizes are the pixel sizes the theme ships PNGs at.
var DefaultSizes = []int{16, 22, 24, 32, 48, 64, 96, 128, 256}

// The external commands the rasterizer shells out to.
const (
	DefaultRasterCommand   = "rsvg-convert"
	DefaultOptimizeCommand = "optipng"
)

// Rasterizer turns a canonical SVG into fixed-size PNGs. The default
// mode pipes through the external raster converter; Builtin renders in
// process instead, which keeps the test suite and minimal environments
// independent of the converter binary. Fast rasterizes once at the
// largest requested size and downsamples the rest.
type Rasterizer struct {
	Command         string
	OptimizeCommand string
	Builtin         bool
	Fast            bool

	// Foreground replaces currentColor before rendering, since neither
	// converter inherits a CSS color for a standalone document.
	Foreground string
}

// Rasterize renders the SVG at exactly size x size pixels and returns
// the encoded PNG. It is a pure function of its inputs; nothing is
// retained between calls.
func (r *Rasterizer) Rasterize(svg []byte, size int, glyph string) ([]byte, error) {
	resolved := ResolveColor(svg, r.foreground())
	if r.Builtin {
		return r.render(resolved, size, glyph)
	}
	return r.convert(resolved, size, glyph)
}

// RasterizeAll renders the SVG at every requested size. In fast mode
// only the largest size goes through the renderer; the remaining sizes
// are downsampled from it.
func (r *Rasterizer) RasterizeAll(svg []byte, sizes []int, glyph string) (map[int][]byte, error) {
	out := make(map[int][]byte, len(sizes))
	if !r.Fast || len(sizes) < 2 {
		for _, s := range sizes {
			data, err := r.Rasterize(svg, s, glyph)
			if err != nil {
				return nil, err
			}
			out[s] = data
		}
		return out, nil
	}

	max := sizes[0]
	for _, s := range sizes[1:] {
		if s > max {
			max = s
		}
	}
	master, err := r.Rasterize(svg, max, glyph)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(master))
	if err != nil {
		return nil, err
	}
	for _, s := range sizes {
		if s == max {
			out[s] = master
			continue
		}
		scaled := imaging.Resize(img, s, s, imaging.Lanczos)
		var buf bytes.Buffer
		if err := png.Encode(&buf, scaled); err != nil {
			return nil, err
		}
		out[s] = buf.Bytes()
	}
	return out, nil
}

// convert pipes the SVG through the external raster converter.
func (r *Rasterizer) convert(svg []byte, size int, glyph string) ([]byte, error) {
	cmd := r.Command
	if cmd == "" {
		cmd = DefaultRasterCommand
	}
	args := []string{
		"-w", strconv.Itoa(size),
		"-h", strconv.Itoa(size),
	}

	var stdout, stderr bytes.Buffer
	c := exec.Command(cmd, args...)
	c.Stdin = bytes.NewReader(svg)
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return nil, &ExternalToolError{
			Tool: cmd, Args: args, Glyph: glyph, Size: size,
			Stderr: stderr.String(), Err: err,
		}
	}
	if stdout.Len() == 0 {
		return nil, &ExternalToolError{
			Tool: cmd, Args: args, Glyph: glyph, Size: size,
			Stderr: stderr.String(), Err: errNoOutput,
		}
	}
	return stdout.Bytes(), nil
}

// render rasterizes in process.
func (r *Rasterizer) render(svg []byte, size int, glyph string) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Optimize recompresses the PNG at path in place. The optimizer is
// lossless, so a build that skips it differs in bytes but not pixels.
func (r *Rasterizer) Optimize(path string) error {
	cmd := r.OptimizeCommand
	if cmd == "" {
		cmd = DefaultOptimizeCommand
	}
	args := []string{"-o7", "-quiet", path}

	var stderr bytes.Buffer
	c := exec.Command(cmd, args...)
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return &ExternalToolError{
			Tool: cmd, Args: args, Glyph: path,
			Stderr: stderr.String(), Err: err,
		}
	}
	return nil
}

func (r *Rasterizer) foreground() string {
	if r.Foreground == "" {
		return ForegroundLight
	}
	return r.Foreground
}
