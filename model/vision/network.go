package vision

import (
	"crypto/sha1"
	"encoding/hex"
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
	"io"
	"math"
	"math/rand"
	"os"
)

/*
Network is a frozen pretrained network, its weights never change
*/
type Network interface {
	// Forward calculates network output for the input vector
	Forward([]float32) ([]float32, error)
	// Fingerprint identifies network weights
	Fingerprint() string
}

/*
Projection is a one layer network with ReLU activation: max(0, W*x)
*/
type Projection struct {
	weights     *mat.Dense
	fingerprint string
}

/*
NewProjection creates a projection network with random gaussian weights
scaled by 1/sqrt(inputs), the same seed gives the same network
*/
func NewProjection(inputs, outputs int, seed int64) *Projection {
	rnd := rand.New(rand.NewSource(seed))
	data := make([]float64, inputs*outputs)
	scale := 1 / math.Sqrt(float64(fu.Maxi(inputs, 1)))
	for i := range data {
		data[i] = rnd.NormFloat64() * scale
	}
	return newProjection(mat.NewDense(outputs, inputs, data))
}

func newProjection(w *mat.Dense) *Projection {
	h := sha1.New()
	_, _ = w.MarshalBinaryTo(h)
	return &Projection{w, hex.EncodeToString(h.Sum(nil))}
}

/*
ReadProjection reads network weights written by WriteTo
*/
func ReadProjection(rd io.Reader) (*Projection, error) {
	w := &mat.Dense{}
	if _, err := w.UnmarshalBinaryFrom(rd); err != nil {
		return nil, zorros.Wrapf(err, "failed to read network weights: %v", err.Error())
	}
	return newProjection(w), nil
}

/*
LoadProjection loads network weights from file, relative paths are resolved
into the models cache
*/
func LoadProjection(path string) (*Projection, error) {
	f, err := os.Open(fu.ModelPath(path))
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer f.Close()
	return ReadProjection(f)
}

func (p *Projection) WriteTo(w io.Writer) (int64, error) {
	n, err := p.weights.MarshalBinaryTo(w)
	return int64(n), err
}

func (p *Projection) Dims() (inputs, outputs int) {
	outputs, inputs = p.weights.Dims()
	return
}

func (p *Projection) Fingerprint() string {
	return p.fingerprint
}

func (p *Projection) Forward(x []float32) ([]float32, error) {
	inputs, outputs := p.Dims()
	if len(x) != inputs {
		return nil, zorros.Errorf("network expects %d inputs but got %d", inputs, len(x))
	}
	var y mat.VecDense
	y.MulVec(p.weights, mat.NewVecDense(inputs, fu.Float64s(x)))
	r := make([]float32, outputs)
	for i := range r {
		if v := y.AtVec(i); v > 0 {
			r[i] = float32(v)
		}
	}
	return r, nil
}
