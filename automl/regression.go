package automl

import (
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/model/hyperopt"
	"go-ml.dev/pkg/automl/model/regress"
)

/*
RegressionCandidates returns the default set of regression trainers
*/
func RegressionCandidates(label, features string) []Candidate {
	cols := regress.Columns{Label: label, Features: features}
	return []Candidate{
		{
			Name: "Ols",
			New:  func(hyperopt.Params) model.Estimator { return regress.Ols{Columns: cols} },
		},
		{
			Name:     "Ridge",
			Variance: hyperopt.Variance{"Lambda": hyperopt.LogRange{1e-4, 10}},
			New: func(p hyperopt.Params) model.Estimator {
				return regress.Ridge{Columns: cols, Lambda: p.Get("Lambda", 1)}
			},
		},
		{
			Name: "Sgd",
			Variance: hyperopt.Variance{
				"LearningRate": hyperopt.Range{1e-4, 5e-3},
				"Epochs":       hyperopt.LogIntRange{5, 50},
				"L2":           hyperopt.List{0, 1e-6, 1e-4, 1e-2},
				"Seed":         hyperopt.IntRange{0, 1 << 20},
			},
			New: func(p hyperopt.Params) model.Estimator {
				return regress.Sgd{
					Columns:      cols,
					LearningRate: p.Get("LearningRate", 1e-3),
					Epochs:       p.Int("Epochs", 10),
					L2:           p.Get("L2", 0),
					Seed:         int64(p.Int("Seed", 0)),
				}
			},
		},
		{
			Name: "Mean",
			New:  func(hyperopt.Params) model.Estimator { return regress.Mean{Columns: cols} },
		},
	}
}
