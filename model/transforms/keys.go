/*
Package transforms implements data conversion stages: mapping labels into keys
and back, one-hot encoding, normalization and concatenation of features
*/
package transforms

import (
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
)

/*
MissingKey is the key of a value never seen when the mapping was fitted
*/
const MissingKey = -1

/*
MapValueToKey maps values of the Input column into dense integer keys.
Keys are assigned in the order values occur in the fitting data.
*/
type MapValueToKey struct {
	Output string
	Input  string
}

func (e MapValueToKey) Name() string     { return "map-value-to-key(" + e.Input + ")" }
func (e MapValueToKey) Inputs() []string { return []string{e.Input} }

func (e MapValueToKey) Fit(t *tables.Table) (model.Transformer, error) {
	k := &KeyMap{Output: e.Output, Input: e.Input, index: map[interface{}]int{}}
	c := t.Col(e.Input)
	for i := 0; i < c.Len(); i++ {
		v := c.Interface(i)
		if _, ok := k.index[v]; !ok {
			k.index[v] = len(k.Values)
			k.Values = append(k.Values, v)
		}
	}
	return k, nil
}

/*
KeyMap is a fitted value to key mapping
*/
type KeyMap struct {
	Output string
	Input  string
	Values []interface{} // key is the index of value
	index  map[interface{}]int
}

func (k *KeyMap) Transform(t *tables.Table) (*tables.Table, error) {
	if err := model.CheckSchema("map-value-to-key", t.Names(), k.Input); err != nil {
		return nil, err
	}
	return t.Map([]string{k.Output}, func(r fu.Struct) ([]interface{}, error) {
		v, _ := r.Value(k.Input)
		if j, ok := k.index[v]; ok {
			return []interface{}{j}, nil
		}
		return []interface{}{MissingKey}, nil
	})
}

/*
MapKeyToValue maps keys of the Input column back to values. The mapping is
restored from the fitting data where Key column holds keys of the Value column.
*/
type MapKeyToValue struct {
	Output string
	Input  string
	Key    string
	Value  string
}

func (e MapKeyToValue) Name() string     { return "map-key-to-value(" + e.Input + ")" }
func (e MapKeyToValue) Inputs() []string { return []string{e.Input, e.Key, e.Value} }

func (e MapKeyToValue) Fit(t *tables.Table) (model.Transformer, error) {
	values := map[int]interface{}{}
	for i, r := range t.Rows() {
		k, ok := r.Int(e.Key)
		if !ok {
			return nil, zorros.Errorf("row %d: key column `%v` is not an integer", i, e.Key)
		}
		v, _ := r.Value(e.Value)
		if x, ok := values[k]; ok && x != v {
			return nil, zorros.Errorf("row %d: key %d maps to both `%v` and `%v`", i, k, x, v)
		}
		values[k] = v
	}
	input, output := e.Input, e.Output
	return model.TransformerFunc(func(t *tables.Table) (*tables.Table, error) {
		if err := model.CheckSchema("map-key-to-value", t.Names(), input); err != nil {
			return nil, err
		}
		return t.Map([]string{output}, func(r fu.Struct) ([]interface{}, error) {
			k, _ := r.Int(input)
			return []interface{}{values[k]}, nil
		})
	}), nil
}
