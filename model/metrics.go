package model

import (
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/tables"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/stat"
	"math"
)

/*
Metric is a metric value which can be unavailable. Unavailable metric is not zero,
it's rendered as NaN
*/
type Metric struct {
	value float64
	ok    bool
}

// Unavailable is the metric which can't be calculated
var Unavailable = Metric{}

func Available(v float64) Metric {
	if math.IsNaN(v) {
		return Unavailable
	}
	return Metric{v, true}
}

func (m Metric) Ok() bool {
	return m.ok
}

/*
Float returns the metric value or NaN if it's unavailable
*/
func (m Metric) Float() float64 {
	if !m.ok {
		return fu.Nan
	}
	return m.value
}

/*
RegressionMetrics is a set of regression quality metrics
*/
type RegressionMetrics struct {
	LossFn               Metric
	RSquared             Metric
	MeanAbsoluteError    Metric
	MeanSquaredError     Metric
	RootMeanSquaredError Metric
}

/*
ClassificationMetrics is a set of multiclass classification quality metrics
*/
type ClassificationMetrics struct {
	LogLoss         Metric
	PerClassLogLoss []Metric // in class index order
}

// probabilities are clamped by epsilon before the log
const epsilon = 1e-15

/*
EvaluateRegression calculates regression metrics over all the rows.
Label and score are names of float values containing truth and prediction.
*/
func EvaluateRegression(rows []fu.Struct, label, score string) (*RegressionMetrics, error) {
	if len(rows) == 0 {
		return nil, xerrors.Errorf("regression metrics: %w", ErrEmptyBatch)
	}
	truth := make([]float64, len(rows))
	pred := make([]float64, len(rows))
	for i, r := range rows {
		var ok bool
		if truth[i], ok = r.Float(label); !ok {
			return nil, schemaError("regression metrics", i, label)
		}
		if pred[i], ok = r.Float(score); !ok {
			return nil, schemaError("regression metrics", i, score)
		}
	}
	mse := fu.Mse(truth, pred)
	m := &RegressionMetrics{
		LossFn:               Available(mse),
		MeanAbsoluteError:    Available(fu.Mae(truth, pred)),
		MeanSquaredError:     Available(mse),
		RootMeanSquaredError: Available(math.Sqrt(mse)),
		RSquared:             Unavailable,
	}
	if stat.Variance(truth, nil) > 0 {
		m.RSquared = Available(stat.RSquaredFrom(pred, truth, nil))
	}
	return m, nil
}

/*
EvaluateClassification calculates log-loss metrics over all the rows.
Label is the name of int class index, score is the name of per-class probability vector.
*/
func EvaluateClassification(rows []fu.Struct, label, score string) (*ClassificationMetrics, error) {
	if len(rows) == 0 {
		return nil, xerrors.Errorf("classification metrics: %w", ErrEmptyBatch)
	}
	classes := 0
	keys := make([]int, len(rows))
	probs := make([][]float32, len(rows))
	for i, r := range rows {
		var ok bool
		if keys[i], ok = r.Int(label); !ok || keys[i] < 0 {
			return nil, schemaError("classification metrics", i, label)
		}
		if probs[i], ok = r.Floats(score); !ok || keys[i] >= len(probs[i]) {
			return nil, schemaError("classification metrics", i, score)
		}
		classes = fu.Maxi(classes, len(probs[i]))
	}
	sum := make([]float64, classes)
	count := make([]int, classes)
	total := 0.0
	for i, k := range keys {
		p := math.Max(float64(probs[i][k]), epsilon)
		l := -math.Log(p)
		sum[k] += l
		count[k]++
		total += l
	}
	m := &ClassificationMetrics{
		LogLoss:         Available(total / float64(len(rows))),
		PerClassLogLoss: make([]Metric, classes),
	}
	for k := range sum {
		if count[k] > 0 {
			m.PerClassLogLoss[k] = Available(sum[k] / float64(count[k]))
		}
	}
	return m, nil
}

/*
RegressionOf evaluates regression metrics over the table rows
*/
func RegressionOf(t *tables.Table, label, score string) (*RegressionMetrics, error) {
	return EvaluateRegression(t.Rows(), label, score)
}

/*
ClassificationOf evaluates classification metrics over the table rows
*/
func ClassificationOf(t *tables.Table, label, score string) (*ClassificationMetrics, error) {
	return EvaluateClassification(t.Rows(), label, score)
}
