package transforms

import (
	"github.com/montanaflynn/stats"
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
)

/*
NormalizeMeanVariance shifts float columns to zero mean and scales to unit variance,
constant columns are only shifted
*/
type NormalizeMeanVariance struct {
	Columns []string
}

func (e NormalizeMeanVariance) Name() string     { return "normalize-mean-variance" }
func (e NormalizeMeanVariance) Inputs() []string { return e.Columns }

func (e NormalizeMeanVariance) Fit(t *tables.Table) (model.Transformer, error) {
	n := &normalizer{columns: e.Columns, mean: make([]float64, len(e.Columns)), scale: make([]float64, len(e.Columns))}
	for i, c := range e.Columns {
		data := t.Col(c).Real()
		mean, err := stats.Mean(data)
		if err != nil {
			return nil, zorros.Wrapf(err, "column `%v`: %v", c, err.Error())
		}
		sd, err := stats.StandardDeviationPopulation(data)
		if err != nil {
			return nil, zorros.Wrapf(err, "column `%v`: %v", c, err.Error())
		}
		n.mean[i] = mean
		n.scale[i] = 1
		if sd > 0 {
			n.scale[i] = 1 / sd
		}
	}
	return n, nil
}

type normalizer struct {
	columns     []string
	mean, scale []float64
}

func (n *normalizer) Transform(t *tables.Table) (*tables.Table, error) {
	if err := model.CheckSchema("normalize-mean-variance", t.Names(), n.columns...); err != nil {
		return nil, err
	}
	return t.Map(n.columns, func(r fu.Struct) ([]interface{}, error) {
		x := make([]interface{}, len(n.columns))
		for i, c := range n.columns {
			v, ok := r.Float(c)
			if !ok {
				return nil, zorros.Errorf("column `%v` is not numeric", c)
			}
			x[i] = (v - n.mean[i]) * n.scale[i]
		}
		return x, nil
	})
}
