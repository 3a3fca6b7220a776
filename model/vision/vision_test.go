package vision

import (
	"bytes"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"gotest.tools/assert"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePng(t *testing.T, path string, c color.NRGBA, w, h int) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	assert.NilError(t, err)
	assert.NilError(t, png.Encode(f, img))
	assert.NilError(t, f.Close())
}

func imageFolder(t *testing.T) (string, *tables.Table) {
	dir := t.TempDir()
	writePng(t, filepath.Join(dir, "red.png"), color.NRGBA{200, 10, 10, 255}, 8, 6)
	writePng(t, filepath.Join(dir, "blue.png"), color.NRGBA{10, 10, 200, 255}, 5, 5)
	return dir, tables.MustNew([]string{"ImagePath", "Label"},
		[]interface{}{"red.png", "red"},
		[]interface{}{"blue.png", "blue"})
}

func Test_ImagePipeline(t *testing.T) {
	dir, tags := imageFolder(t)
	p := model.Pipeline{}.
		Append(LoadImages{Output: "input", Folder: dir, Input: "ImagePath"}).
		Append(ResizeImages{Output: "input", Width: 4, Height: 4, Input: "input"}).
		Append(ExtractPixels{Output: "pixels", Input: "input", Interleave: true, Offset: 10})
	f, err := p.Fit(tags)
	assert.NilError(t, err)
	q, err := f.Transform(tags)
	assert.NilError(t, err)
	px, ok := q.Row(0).Floats("pixels")
	assert.Assert(t, ok)
	assert.Equal(t, len(px), 4*4*3)
	assert.DeepEqual(t, px[:3], []float32{190, 0, 0})
	px, _ = q.Row(1).Floats("pixels")
	assert.DeepEqual(t, px[:3], []float32{0, 0, 190})
}

func Test_LoadMissingImage(t *testing.T) {
	dir, _ := imageFolder(t)
	_, err := LoadImages{Output: "input", Folder: dir, Input: "ImagePath"}.
		Transform(tables.MustNew([]string{"ImagePath"}, []interface{}{"none.png"}))
	assert.ErrorContains(t, err, "none.png")
}

func Test_PixelsPlanar(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 255})
	img.SetNRGBA(1, 0, color.NRGBA{4, 5, 6, 255})
	assert.DeepEqual(t, ExtractPixels{}.Pixels(img), []float32{1, 4, 2, 5, 3, 6})
	assert.DeepEqual(t, ExtractPixels{Interleave: true, Scale: 2}.Pixels(img), []float32{2, 4, 6, 8, 10, 12})
}

func Test_Projection(t *testing.T) {
	p := NewProjection(6, 3, 42)
	q := NewProjection(6, 3, 42)
	assert.Equal(t, p.Fingerprint(), q.Fingerprint())
	x := []float32{1, -2, 3, 0.5, 0, 1}
	a, err := p.Forward(x)
	assert.NilError(t, err)
	b, err := q.Forward(x)
	assert.NilError(t, err)
	assert.DeepEqual(t, a, b)
	for _, v := range a {
		assert.Assert(t, v >= 0)
	}
	_, err = p.Forward(x[:2])
	assert.ErrorContains(t, err, "expects 6 inputs")

	var buf bytes.Buffer
	_, err = p.WriteTo(&buf)
	assert.NilError(t, err)
	r, err := ReadProjection(&buf)
	assert.NilError(t, err)
	assert.Equal(t, r.Fingerprint(), p.Fingerprint())
	c, err := r.Forward(x)
	assert.NilError(t, err)
	assert.DeepEqual(t, a, c)
}

type countingNetwork struct {
	*Projection
	calls int
}

func (n *countingNetwork) Forward(x []float32) ([]float32, error) {
	n.calls++
	return n.Projection.Forward(x)
}

func Test_FeatureExtractorCache(t *testing.T) {
	dir, tags := imageFolder(t)
	net := &countingNetwork{Projection: NewProjection(2*2*3, 4, 1)}
	ticks := 0
	p := model.Pipeline{}.
		Append(LoadImages{Output: "input", Folder: dir, Input: "ImagePath"}).
		Append(ResizeImages{Output: "input", Width: 2, Height: 2, Input: "input"}).
		Append(FeatureExtractor{
			Pixels:  ExtractPixels{Input: "input", Interleave: true, Offset: 117},
			Network: net,
			Output:  "features",
			Cache:   NewDiskCache(filepath.Join(t.TempDir(), "cache"), 1024),
			Progress: func(total int) func() {
				assert.Equal(t, total, 2)
				return func() { ticks++ }
			},
		})
	f, err := p.Fit(tags)
	assert.NilError(t, err)
	q1, err := f.Transform(tags)
	assert.NilError(t, err)
	assert.Equal(t, net.calls, 2)
	q2, err := f.Transform(tags)
	assert.NilError(t, err)
	assert.Equal(t, net.calls, 2)
	assert.Equal(t, ticks, 4)
	for i := 0; i < 2; i++ {
		a, _ := q1.Row(i).Floats("features")
		b, _ := q2.Row(i).Floats("features")
		assert.Equal(t, len(a), 4)
		assert.DeepEqual(t, a, b)
	}
	assert.Assert(t, !q1.Has("pixels"))
}
