/*
Package maxent implements multiclass maximum entropy classifier
(multinomial logistic regression) trained by L-BFGS
*/
package maxent

import (
	"fmt"
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"math"
)

const (
	DefaultPredicted  = "PredictedLabel"
	DefaultScore      = "Score"
	DefaultL2         = 1e-4
	DefaultIterations = 100
)

/*
Trainer is the estimator of maximum entropy classifier. Label column contains
class keys 0..K-1, Features column contains float vectors.
*/
type Trainer struct {
	Label      string
	Features   string
	Predicted  string  // DefaultPredicted if empty
	Score      string  // DefaultScore if empty
	L2         float64 // L2 regularization, DefaultL2 if zero
	Iterations int     // DefaultIterations if zero
	Verbose    func(string)
}

func (e Trainer) Name() string     { return "maxent(" + e.Label + ")" }
func (e Trainer) Inputs() []string { return []string{e.Label, e.Features} }

func (e Trainer) Fit(t *tables.Table) (model.Transformer, error) {
	if t.Len() == 0 {
		return nil, zorros.Errorf("there is no rows to train")
	}
	xs := make([][]float64, t.Len())
	ys := make([]int, t.Len())
	classes, width := 0, 0
	for i, r := range t.Rows() {
		k, ok := r.Int(e.Label)
		if !ok || k < 0 {
			return nil, zorros.Errorf("row %d: label `%v` is not a class key", i, e.Label)
		}
		x, ok := r.Floats(e.Features)
		if !ok {
			return nil, zorros.Errorf("row %d: `%v` is not a float vector", i, e.Features)
		}
		if i == 0 {
			width = len(x) + 1
		} else if len(x)+1 != width {
			return nil, zorros.Errorf("row %d: features have length %d, expected %d", i, len(x), width-1)
		}
		xs[i] = append([]float64{1}, fu.Float64s(x)...)
		ys[i] = k
		classes = fu.Maxi(classes, k+1)
	}
	l2 := e.L2
	if l2 == 0 {
		l2 = DefaultL2
	}
	o := objective{xs: xs, ys: ys, classes: classes, width: width, l2: l2}
	problem := optimize.Problem{Func: o.loss, Grad: o.grad}
	settings := &optimize.Settings{
		MajorIterations:   fu.Fnzi(e.Iterations, DefaultIterations),
		GradientThreshold: 1e-6,
	}
	result, err := optimize.Minimize(problem, make([]float64, classes*width), settings, &optimize.LBFGS{})
	if result == nil || math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		if err == nil {
			err = zorros.Errorf("optimization diverged")
		}
		return nil, zorros.Wrapf(err, "failed to train maximum entropy classifier: %v", err.Error())
	}
	if err != nil {
		zlog.Warning("maxent optimization stopped: " + err.Error())
	}
	if e.Verbose != nil {
		e.Verbose(fmt.Sprintf("maxent: %d classes, %d iterations, loss %.5f", classes, result.MajorIterations, result.F))
	}
	return &Model{
		Features:  e.Features,
		Predicted: fu.Fnzs(e.Predicted, DefaultPredicted),
		Score:     fu.Fnzs(e.Score, DefaultScore),
		Classes:   classes,
		Weights:   result.X,
	}, nil
}

type objective struct {
	xs      [][]float64
	ys      []int
	classes int
	width   int
	l2      float64
}

func softmax(w []float64, x []float64, classes int, p []float64) {
	width := len(x)
	for k := 0; k < classes; k++ {
		p[k] = floats.Dot(w[k*width:(k+1)*width], x)
	}
	mx := floats.Max(p[:classes])
	s := 0.0
	for k := 0; k < classes; k++ {
		p[k] = math.Exp(p[k] - mx)
		s += p[k]
	}
	for k := 0; k < classes; k++ {
		p[k] /= s
	}
}

func (o objective) penalty(w []float64) float64 {
	s := 0.0
	for k := 0; k < o.classes; k++ {
		for j := 1; j < o.width; j++ {
			v := w[k*o.width+j]
			s += v * v
		}
	}
	return o.l2 * s / 2
}

func (o objective) loss(w []float64) float64 {
	p := make([]float64, o.classes)
	s := 0.0
	for i, x := range o.xs {
		softmax(w, x, o.classes, p)
		s -= math.Log(math.Max(p[o.ys[i]], 1e-300))
	}
	return s/float64(len(o.xs)) + o.penalty(w)
}

func (o objective) grad(g, w []float64) {
	for i := range g {
		g[i] = 0
	}
	p := make([]float64, o.classes)
	n := float64(len(o.xs))
	for i, x := range o.xs {
		softmax(w, x, o.classes, p)
		p[o.ys[i]] -= 1
		for k := 0; k < o.classes; k++ {
			floats.AddScaled(g[k*o.width:(k+1)*o.width], p[k]/n, x)
		}
	}
	for k := 0; k < o.classes; k++ {
		for j := 1; j < o.width; j++ {
			g[k*o.width+j] += o.l2 * w[k*o.width+j]
		}
	}
}

/*
Model is a fitted maximum entropy classifier
*/
type Model struct {
	Features  string
	Predicted string
	Score     string
	Classes   int
	Weights   []float64 // Classes rows of bias followed by feature weights
}

/*
Predict returns the most probable class and probabilities of all classes
*/
func (m *Model) Predict(x []float32) (int, []float32) {
	p := make([]float64, m.Classes)
	softmax(m.Weights, append([]float64{1}, fu.Float64s(x)...), m.Classes, p)
	return floats.MaxIdx(p), fu.Float32s(p)
}

func (m *Model) Transform(t *tables.Table) (*tables.Table, error) {
	if err := model.CheckSchema("maxent", t.Names(), m.Features); err != nil {
		return nil, err
	}
	width := len(m.Weights) / m.Classes
	return t.Map([]string{m.Predicted, m.Score}, func(r fu.Struct) ([]interface{}, error) {
		x, ok := r.Floats(m.Features)
		if !ok || len(x)+1 != width {
			return nil, zorros.Errorf("`%v` is not a float vector of length %d", m.Features, width-1)
		}
		k, p := m.Predict(x)
		return []interface{}{k, p}, nil
	})
}
