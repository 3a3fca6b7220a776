package vision

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"math"
)

/*
FeatureCache stores network outputs by a key of network and input
*/
type FeatureCache interface {
	Get(key string) ([]float32, bool)
	Put(key string, v []float32) error
}

/*
FeatureExtractor extracts pixels from an image and feeds them to a frozen network.
It is one black box stage, fitting does nothing and the output depends only on pixels.
*/
type FeatureExtractor struct {
	Pixels  ExtractPixels
	Network Network
	Output  string
	Cache   FeatureCache // optional

	// Progress is optional, it's called before transformation with count of rows
	// and returns a function called after every row
	Progress func(total int) func()
}

func (e FeatureExtractor) Name() string     { return "extract-features(" + e.Pixels.Input + ")" }
func (e FeatureExtractor) Inputs() []string { return []string{e.Pixels.Input} }

func (e FeatureExtractor) Fit(*tables.Table) (model.Transformer, error) {
	return e, nil
}

func (e FeatureExtractor) Transform(t *tables.Table) (*tables.Table, error) {
	if err := model.CheckSchema(e.Name(), t.Names(), e.Pixels.Input); err != nil {
		return nil, err
	}
	tick := func() {}
	if e.Progress != nil {
		tick = e.Progress(t.Len())
	}
	return t.Map([]string{e.Output}, func(r fu.Struct) ([]interface{}, error) {
		defer tick()
		img, err := imageOf(r, e.Pixels.Input)
		if err != nil {
			return nil, err
		}
		v, err := e.features(e.Pixels.Pixels(img))
		if err != nil {
			return nil, err
		}
		return []interface{}{v}, nil
	})
}

func (e FeatureExtractor) features(pixels []float32) ([]float32, error) {
	var key string
	if e.Cache != nil {
		key = cacheKey(e.Network.Fingerprint(), pixels)
		if v, ok := e.Cache.Get(key); ok {
			return v, nil
		}
	}
	v, err := e.Network.Forward(pixels)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	if e.Cache != nil {
		if err := e.Cache.Put(key, v); err != nil {
			zlog.Warning("failed to cache features: " + err.Error())
		}
	}
	return v, nil
}

func cacheKey(fingerprint string, pixels []float32) string {
	h := sha1.New()
	h.Write([]byte(fingerprint))
	b := make([]byte, 4)
	for _, x := range pixels {
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil))
}
