package regress

import (
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/model/transforms"
	"go-ml.dev/pkg/automl/tables"
	"gotest.tools/assert"
	"math"
	"testing"
)

var columns = Columns{Label: "Label", Features: "Features"}

// y = 2 + 3*a - b
func linearData(collinear bool) *tables.Table {
	var rows [][]interface{}
	for i := 0; i < 20; i++ {
		a := float64(i) / 4
		b := float64((i * 7) % 5)
		if collinear {
			b = a
		}
		rows = append(rows, []interface{}{[]float32{float32(a), float32(b)}, 2 + 3*a - b})
	}
	return tables.MustNew([]string{"Features", "Label"}, rows...)
}

func fitScore(t *testing.T, e model.Estimator, data *tables.Table) *model.RegressionMetrics {
	f, err := e.Fit(data)
	assert.NilError(t, err)
	q, err := f.Transform(data)
	assert.NilError(t, err)
	m, err := model.RegressionOf(q, "Label", DefaultScore)
	assert.NilError(t, err)
	return m
}

func Test_Ols(t *testing.T) {
	m := fitScore(t, Ols{columns}, linearData(false))
	assert.Assert(t, m.MeanSquaredError.Float() < 1e-6)
	assert.Assert(t, math.Abs(m.RSquared.Float()-1) < 1e-6)
	f, err := Ols{columns}.Fit(linearData(false))
	assert.NilError(t, err)
	w := f.(*Linear).Weights
	assert.Assert(t, math.Abs(w[0]-2) < 1e-6)
	assert.Assert(t, math.Abs(w[1]-3) < 1e-6)
	assert.Assert(t, math.Abs(w[2]+1) < 1e-6)
}

func Test_Ridge(t *testing.T) {
	m := fitScore(t, Ridge{columns, 1e-3}, linearData(false))
	assert.Assert(t, m.RSquared.Float() > 0.999)
	// ridge survives collinear features
	m = fitScore(t, Ridge{columns, 1}, linearData(true))
	assert.Assert(t, m.RSquared.Float() > 0.99)
}

func Test_Sgd(t *testing.T) {
	m := fitScore(t, Sgd{Columns: columns, LearningRate: 0.01, Epochs: 200, Seed: 1}, linearData(false))
	assert.Assert(t, m.RSquared.Float() > 0.99)
	_, err := Sgd{Columns: columns, LearningRate: 10, Epochs: 50, Seed: 1}.Fit(linearData(false))
	assert.ErrorContains(t, err, "diverged")
}

func Test_Mean(t *testing.T) {
	m := fitScore(t, Mean{columns}, linearData(false))
	assert.Assert(t, math.Abs(m.RSquared.Float()) < 1e-9)
}

func Test_SchemaAndShape(t *testing.T) {
	f, err := Ols{columns}.Fit(linearData(false))
	assert.NilError(t, err)
	_, err = f.Transform(tables.MustNew([]string{"Other"}, []interface{}{1.0}))
	assert.ErrorContains(t, err, "missing column(s) Features")
	_, err = f.Transform(tables.MustNew([]string{"Features"}, []interface{}{[]float32{1}}))
	assert.ErrorContains(t, err, "length 2")
	_, err = Ols{columns}.Fit(tables.NewEmpty([]string{"Features", "Label"}))
	assert.ErrorContains(t, err, "no rows")
}

func Test_OlsCollinear(t *testing.T) {
	m := fitScore(t, Ols{columns}, linearData(true))
	assert.Assert(t, m.MeanSquaredError.Float() < 1e-9)
	f, err := Ols{columns}.Fit(linearData(true))
	assert.NilError(t, err)
	// y = 2 + 2a, minimum norm splits the slope between equal features
	w := f.(*Linear).Weights
	assert.Assert(t, math.Abs(w[0]-2) < 1e-6)
	assert.Assert(t, math.Abs(w[1]-1) < 1e-6)
	assert.Assert(t, math.Abs(w[2]-1) < 1e-6)
}

// every category is one-hot encoded, so the groups sum to the bias column
func Test_OlsOneHot(t *testing.T) {
	vendors := []string{"CMT", "VTS", "DDS"}
	fares := map[string]float64{"CMT": 0, "VTS": 5, "DDS": -3}
	var rows [][]interface{}
	for i := 0; i < 30; i++ {
		v := vendors[i%3]
		d := float64(i%7) + 0.5
		rows = append(rows, []interface{}{v, d, 1 + fares[v] + 2*d})
	}
	data := tables.MustNew([]string{"VendorId", "TripDistance", "Label"}, rows...)
	f, err := model.Pipeline{}.
		Append(transforms.OneHot{Output: "VendorIdEncoded", Input: "VendorId"}).
		Append(transforms.Concatenate("Features", "VendorIdEncoded", "TripDistance")).
		Append(Ols{columns}).
		Fit(data)
	assert.NilError(t, err)
	q, err := f.Transform(data)
	assert.NilError(t, err)
	m, err := model.RegressionOf(q, "Label", DefaultScore)
	assert.NilError(t, err)
	assert.Assert(t, m.MeanSquaredError.Float() < 1e-9)
	assert.Assert(t, math.Abs(m.RSquared.Float()-1) < 1e-9)
}
