package main

import (
	"context"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/uscgan/generator"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// generateImages runs the graph on the given image files, and writes the results as PNG files to outputDir.
func generateImages(ctx context.Context, g *generator.Graph, inputPaths []string, outputDir string, workers int) error {
	inputShape := g.InputShape()
	height, width, channels := inputShape.Dim(0), inputShape.Dim(1), inputShape.Dim(2)
	if channels != 1 && channels != 3 {
		return errors.Errorf("generate requires images with 1 (gray) or 3 (RGB) channels, graph input is %s", inputShape)
	}

	pixels := make([]float32, 0, len(inputPaths)*inputShape.Size())
	for _, path := range inputPaths {
		img, err := loadImage(path)
		if err != nil {
			return err
		}
		pixels = append(pixels, imageToPixels(scaleImage(img, width, height), channels)...)
	}
	batch, err := pixelsToTensor(pixels, inputShape.DType, len(inputPaths), height, width, channels)
	if err != nil {
		return err
	}

	slog.Info("generating images", "graph", g.Name(), "images", len(inputPaths), "workers", workers)
	output, err := g.EvaluateParallel(ctx, batch, workers)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %q", outputDir)
	}
	outputShape := g.OutputShape()
	exampleSize := outputShape.Size()
	flat := output.Float32s()
	for n, path := range inputPaths {
		img := pixelsToImage(flat[n*exampleSize:(n+1)*exampleSize], outputShape.Dim(0), outputShape.Dim(1), outputShape.Dim(2))
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outputPath := filepath.Join(outputDir, base+"_"+g.Name()+".png")
		if err := writePNG(outputPath, img); err != nil {
			return err
		}
		slog.Debug("wrote image", "path", outputPath)
	}
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image %q", path)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode image %q", path)
	}
	slog.Debug("loaded image", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}

// scaleImage scales img to exactly width x height.
func scaleImage(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// imageToPixels returns the pixel values in [0, 255], in (height, width, channels) order.
// With 1 channel the image is converted to gray.
func imageToPixels(img *image.RGBA, channels int) []float32 {
	bounds := img.Bounds()
	pixels := make([]float32, 0, bounds.Dx()*bounds.Dy()*channels)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if channels == 1 {
				gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
				pixels = append(pixels, float32(gray.Y))
				continue
			}
			c := img.RGBAAt(x, y)
			pixels = append(pixels, float32(c.R), float32(c.G), float32(c.B))
		}
	}
	return pixels
}

func pixelsToTensor(pixels []float32, dtype dtypes.DType, dimensions ...int) (*generator.Tensor, error) {
	switch dtype {
	case dtypes.Float32:
		return generator.FromFlatAndDimensions(pixels, dimensions...)
	case dtypes.Uint8:
		flat := make([]uint8, len(pixels))
		for i, v := range pixels {
			flat[i] = uint8(v)
		}
		return generator.FromFlatAndDimensions(flat, dimensions...)
	}
	return nil, errors.Errorf("generate requires a Uint8 or Float32 graph input, got %s", dtype)
}

// pixelsToImage converts generated values to an image, clamping them to [0, 255].
func pixelsToImage(pixels []float32, height, width, channels int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	toUint8 := func(v float32) uint8 {
		return uint8(math.Round(min(max(float64(v), 0), 255)))
	}
	for y := range height {
		for x := range width {
			p := pixels[(y*width+x)*channels : (y*width+x+1)*channels]
			c := color.RGBA{A: 255}
			c.R = toUint8(p[0])
			c.G, c.B = c.R, c.R
			if channels >= 3 {
				c.G, c.B = toUint8(p[1]), toUint8(p[2])
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", path)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to encode %q", path)
	}
	return errors.Wrapf(f.Close(), "failed to write %q", path)
}
