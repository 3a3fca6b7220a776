package regress

import (
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
	"math"
	"math/rand"
)

/*
Sgd is least squares regression trained by stochastic gradient descent
*/
type Sgd struct {
	Columns
	LearningRate float64
	Epochs       int
	L2           float64
	Seed         int64
}

func (e Sgd) Name() string     { return "Sgd" }
func (e Sgd) Inputs() []string { return []string{e.Label, e.Features} }

func (e Sgd) Fit(t *tables.Table) (model.Transformer, error) {
	x, y, err := e.design(t)
	if err != nil {
		return nil, err
	}
	n, p := x.Dims()
	w := make([]float64, p)
	rnd := rand.New(rand.NewSource(e.Seed))
	lr := e.LearningRate
	if lr <= 0 {
		lr = 0.01
	}
	for epoch := 0; epoch < fu.Maxi(e.Epochs, 1); epoch++ {
		for _, i := range rnd.Perm(n) {
			row := x.RawRowView(i)
			g := mat.Dot(mat.NewVecDense(p, row), mat.NewVecDense(p, w)) - y[i]
			for j := range w {
				reg := 0.0
				if j > 0 {
					reg = e.L2 * w[j]
				}
				w[j] -= lr * (g*row[j] + reg)
			}
		}
		for _, v := range w {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, zorros.Errorf("sgd diverged at epoch %d, learning rate %v is too big", epoch, lr)
			}
		}
	}
	return &Linear{e.Features, e.score(), w}, nil
}

/*
Mean is the baseline predicting the mean label whatever features are
*/
type Mean struct {
	Columns
}

func (e Mean) Name() string     { return "Mean" }
func (e Mean) Inputs() []string { return []string{e.Label, e.Features} }

func (e Mean) Fit(t *tables.Table) (model.Transformer, error) {
	x, y, err := e.design(t)
	if err != nil {
		return nil, err
	}
	_, p := x.Dims()
	w := make([]float64, p)
	w[0] = fu.Mean(y)
	return &Linear{e.Features, e.score(), w}, nil
}
