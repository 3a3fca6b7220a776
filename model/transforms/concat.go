package transforms

import (
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
)

/*
Concatenate joins scalar and vector columns into one float vector
*/
func Concatenate(output string, inputs ...string) model.Estimator {
	return model.Stationary{
		Label:   "concatenate(" + output + ")",
		Columns: inputs,
		Transformer: model.TransformerFunc(func(t *tables.Table) (*tables.Table, error) {
			if err := model.CheckSchema("concatenate", t.Names(), inputs...); err != nil {
				return nil, err
			}
			return t.Map([]string{output}, func(r fu.Struct) ([]interface{}, error) {
				parts := make([][]float32, len(inputs))
				for i, n := range inputs {
					if v, ok := r.Floats(n); ok {
						parts[i] = v
					} else if f, ok := r.Float(n); ok {
						parts[i] = []float32{float32(f)}
					} else {
						return nil, zorros.Errorf("column `%v` is not numeric", n)
					}
				}
				return []interface{}{fu.Flatnr(parts...)}, nil
			})
		}),
	}
}
