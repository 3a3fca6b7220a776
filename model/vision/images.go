/*
Package vision implements image stages of a transfer learning pipeline:
loading, resizing, pixel extraction and scoring by a frozen network
*/
package vision

import (
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
	"image"
	"image/color"
	"path/filepath"
)

/*
LoadImages decodes image files named by the Input column, relative paths
are resolved against Folder
*/
type LoadImages struct {
	Output string
	Folder string
	Input  string
}

func (e LoadImages) Name() string     { return "load-images(" + e.Input + ")" }
func (e LoadImages) Inputs() []string { return []string{e.Input} }

func (e LoadImages) Fit(*tables.Table) (model.Transformer, error) {
	return e, nil
}

func (e LoadImages) Path(s string) string {
	if filepath.IsAbs(s) || e.Folder == "" {
		return s
	}
	return filepath.Join(e.Folder, s)
}

func (e LoadImages) Transform(t *tables.Table) (*tables.Table, error) {
	if err := model.CheckSchema(e.Name(), t.Names(), e.Input); err != nil {
		return nil, err
	}
	return t.Map([]string{e.Output}, func(r fu.Struct) ([]interface{}, error) {
		s, ok := r.String(e.Input)
		if !ok {
			return nil, zorros.Errorf("column `%v` is not a string", e.Input)
		}
		img, err := imaging.Open(e.Path(s))
		if err != nil {
			return nil, zorros.Wrapf(err, "failed to load image %v: %v", s, err.Error())
		}
		return []interface{}{img}, nil
	})
}

func imageOf(r fu.Struct, name string) (image.Image, error) {
	v, _ := r.Value(name)
	img, ok := v.(image.Image)
	if !ok {
		return nil, zorros.Errorf("column `%v` is not an image", name)
	}
	return img, nil
}

/*
ResizeImages scales images to Width x Height with bilinear interpolation
*/
type ResizeImages struct {
	Output string
	Width  int
	Height int
	Input  string
}

func (e ResizeImages) Name() string     { return "resize-images(" + e.Input + ")" }
func (e ResizeImages) Inputs() []string { return []string{e.Input} }

func (e ResizeImages) Fit(*tables.Table) (model.Transformer, error) {
	return e, nil
}

func (e ResizeImages) Transform(t *tables.Table) (*tables.Table, error) {
	if err := model.CheckSchema(e.Name(), t.Names(), e.Input); err != nil {
		return nil, err
	}
	return t.Map([]string{e.Output}, func(r fu.Struct) ([]interface{}, error) {
		img, err := imageOf(r, e.Input)
		if err != nil {
			return nil, err
		}
		return []interface{}{resize.Resize(uint(e.Width), uint(e.Height), img, resize.Bilinear)}, nil
	})
}

/*
ExtractPixels converts an image into a float vector of RGB values.
Interleaved vector is RGBRGB..., otherwise all red values go first, then green and blue.
Every value is (channel - Offset) * Scale, channels are in 0..255.
*/
type ExtractPixels struct {
	Output     string
	Input      string
	Interleave bool
	Offset     float32
	Scale      float32 // 1 if zero
}

func (e ExtractPixels) Name() string     { return "extract-pixels(" + e.Input + ")" }
func (e ExtractPixels) Inputs() []string { return []string{e.Input} }

func (e ExtractPixels) Fit(*tables.Table) (model.Transformer, error) {
	return e, nil
}

func (e ExtractPixels) Transform(t *tables.Table) (*tables.Table, error) {
	if err := model.CheckSchema(e.Name(), t.Names(), e.Input); err != nil {
		return nil, err
	}
	return t.Map([]string{e.Output}, func(r fu.Struct) ([]interface{}, error) {
		img, err := imageOf(r, e.Input)
		if err != nil {
			return nil, err
		}
		return []interface{}{e.Pixels(img)}, nil
	})
}

/*
Pixels extracts the pixels vector from an image
*/
func (e ExtractPixels) Pixels(img image.Image) []float32 {
	scale := e.Scale
	if scale == 0 {
		scale = 1
	}
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	v := make([]float32, n*3)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rgb := [3]float32{float32(c.R), float32(c.G), float32(c.B)}
			for k, ch := range rgb {
				val := (ch - e.Offset) * scale
				if e.Interleave {
					v[i*3+k] = val
				} else {
					v[k*n+i] = val
				}
			}
			i++
		}
	}
	return v
}
