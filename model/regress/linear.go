/*
Package regress implements simple regression trainers used as candidates of a model search
*/
package regress

import (
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultScore is the column name of predicted value
const DefaultScore = "Score"

/*
Columns names the columns used by a regression trainer
*/
type Columns struct {
	Label    string // float label
	Features string // float vector
	Score    string // prediction column, DefaultScore if empty
}

func (c Columns) score() string {
	if c.Score == "" {
		return DefaultScore
	}
	return c.Score
}

// design returns design matrix with bias in the first column and the label vector
func (c Columns) design(t *tables.Table) (*mat.Dense, []float64, error) {
	if t.Len() == 0 {
		return nil, nil, zorros.Errorf("there is no rows to train")
	}
	var width int
	var data []float64
	y := make([]float64, t.Len())
	for i, r := range t.Rows() {
		x, ok := r.Floats(c.Features)
		if !ok {
			return nil, nil, zorros.Errorf("row %d: `%v` is not a float vector", i, c.Features)
		}
		if i == 0 {
			width = len(x) + 1
			data = make([]float64, 0, width*t.Len())
		} else if len(x)+1 != width {
			return nil, nil, zorros.Errorf("row %d: features have length %d, expected %d", i, len(x), width-1)
		}
		if y[i], ok = r.Float(c.Label); !ok {
			return nil, nil, zorros.Errorf("row %d: label `%v` is not a number", i, c.Label)
		}
		data = append(data, 1)
		data = append(data, fu.Float64s(x)...)
	}
	return mat.NewDense(t.Len(), width, data), y, nil
}

/*
Linear is a fitted linear model, the first weight is the bias
*/
type Linear struct {
	Features string
	Score    string
	Weights  []float64
}

func (l *Linear) Predict(x []float32) float64 {
	return l.Weights[0] + floats.Dot(l.Weights[1:], fu.Float64s(x))
}

func (l *Linear) Transform(t *tables.Table) (*tables.Table, error) {
	if err := model.CheckSchema("linear", t.Names(), l.Features); err != nil {
		return nil, err
	}
	return t.Map([]string{l.Score}, func(r fu.Struct) ([]interface{}, error) {
		x, ok := r.Floats(l.Features)
		if !ok || len(x)+1 != len(l.Weights) {
			return nil, zorros.Errorf("`%v` is not a float vector of length %d", l.Features, len(l.Weights)-1)
		}
		return []interface{}{l.Predict(x)}, nil
	})
}

/*
Ols is ordinary least squares regression. It's solved by singular value decomposition
so rank deficient features (like one-hot groups next to the bias) give the minimum norm solution.
*/
type Ols struct {
	Columns
}

func (e Ols) Name() string     { return "Ols" }
func (e Ols) Inputs() []string { return []string{e.Label, e.Features} }

func (e Ols) Fit(t *tables.Table) (model.Transformer, error) {
	x, y, err := e.design(t)
	if err != nil {
		return nil, err
	}
	w, err := leastSquares(x, y)
	if err != nil {
		return nil, err
	}
	return &Linear{e.Features, e.score(), w}, nil
}

// singular values below rcond times the largest one are treated as zeros
const rcond = 1e-10

// leastSquares returns minimum norm w minimizing |xw - y|, w = V S⁺ Uᵀ y
func leastSquares(x *mat.Dense, y []float64) ([]float64, error) {
	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, zorros.Errorf("least squares: singular value decomposition failed")
	}
	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	var b mat.VecDense
	b.MulVec(u.T(), mat.NewVecDense(len(y), y))
	for i, x := range s {
		if x > rcond*s[0] {
			b.SetVec(i, b.AtVec(i)/x)
		} else {
			b.SetVec(i, 0)
		}
	}
	var w mat.VecDense
	w.MulVec(&v, &b)
	return w.RawVector().Data, nil
}

/*
Ridge is L2 regularized least squares regression, the bias is not regularized
*/
type Ridge struct {
	Columns
	Lambda float64
}

func (e Ridge) Name() string     { return "Ridge" }
func (e Ridge) Inputs() []string { return []string{e.Label, e.Features} }

func (e Ridge) Fit(t *tables.Table) (model.Transformer, error) {
	x, y, err := e.design(t)
	if err != nil {
		return nil, err
	}
	_, p := x.Dims()
	var a mat.Dense
	a.Mul(x.T(), x)
	for i := 1; i < p; i++ {
		a.Set(i, i, a.At(i, i)+e.Lambda)
	}
	var b, w mat.VecDense
	b.MulVec(x.T(), mat.NewVecDense(len(y), y))
	if err = w.SolveVec(&a, &b); err != nil {
		return nil, zorros.Wrapf(err, "ridge normal equations: %v", err.Error())
	}
	return &Linear{e.Features, e.score(), w.RawVector().Data}, nil
}
