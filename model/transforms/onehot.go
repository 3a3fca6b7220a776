package transforms

import (
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
)

/*
OneHot encodes a categorical column into an indicator vector,
unknown categories are encoded as all zeros
*/
type OneHot struct {
	Output string // equal to Input if empty
	Input  string
}

func (e OneHot) Name() string     { return "one-hot(" + e.Input + ")" }
func (e OneHot) Inputs() []string { return []string{e.Input} }

func (e OneHot) Fit(t *tables.Table) (model.Transformer, error) {
	index := map[interface{}]int{}
	c := t.Col(e.Input)
	for i := 0; i < c.Len(); i++ {
		if _, ok := index[c.Interface(i)]; !ok {
			index[c.Interface(i)] = len(index)
		}
	}
	input := e.Input
	output := e.Output
	if output == "" {
		output = input
	}
	return model.TransformerFunc(func(t *tables.Table) (*tables.Table, error) {
		if err := model.CheckSchema("one-hot", t.Names(), input); err != nil {
			return nil, err
		}
		return t.Map([]string{output}, func(r fu.Struct) ([]interface{}, error) {
			v, _ := r.Value(input)
			x := make([]float32, len(index))
			if j, ok := index[v]; ok {
				x[j] = 1
			}
			return []interface{}{x}, nil
		})
	}), nil
}
