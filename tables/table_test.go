package tables

import (
	"go-ml.dev/pkg/automl/fu"
	"gotest.tools/assert"
	"testing"
)

var Iris = MustNew([]string{"Feature1", "Feature2", "Label"},
	[]interface{}{5.1, 3.5, "setosa"},
	[]interface{}{7.0, 3.2, "versicolor"},
	[]interface{}{6.3, 3.3, "virginica"},
	[]interface{}{4.9, 3.0, "setosa"},
)

func Test_Map(t *testing.T) {
	q, err := Iris.Map([]string{"Index", "Sum"}, func(r fu.Struct) ([]interface{}, error) {
		a, _ := r.Float("Feature1")
		b, _ := r.Float("Feature2")
		return []interface{}{len(r.Names), a + b}, nil
	})
	assert.NilError(t, err)
	assert.Equal(t, q.Len(), Iris.Len())
	assert.DeepEqual(t, q.Names(), []string{"Feature1", "Feature2", "Label", "Index", "Sum"})
	for i := 0; i < q.Len(); i++ {
		assert.Assert(t, q.Col("Feature1").Float(i) == Iris.Col("Feature1").Float(i))
		assert.Equal(t, q.Col("Sum").Float(i), Iris.Col("Feature1").Float(i)+Iris.Col("Feature2").Float(i))
	}
	assert.Assert(t, !Iris.Has("Sum"))
}

func Test_WithReplace(t *testing.T) {
	q, err := Iris.With("Label", []interface{}{"a", "b", "c", "d"})
	assert.NilError(t, err)
	assert.DeepEqual(t, q.Names(), Iris.Names())
	assert.Equal(t, q.Col("Label").String(2), "c")
	assert.Equal(t, Iris.Col("Label").String(2), "virginica")
	_, err = Iris.With("Label", []interface{}{"a"})
	assert.ErrorContains(t, err, "has 1 values")
}

func Test_ExceptHeadMissing(t *testing.T) {
	q := Iris.Except("Feature2").Head(2)
	assert.DeepEqual(t, q.Names(), []string{"Feature1", "Label"})
	assert.Equal(t, q.Len(), 2)
	assert.DeepEqual(t, Iris.Missing("Label", "Score", "Key"), []string{"Score", "Key"})
	assert.Assert(t, Iris.Col("Score") == nil)
}

func Test_FromStructs(t *testing.T) {
	q, err := FromStructs(Iris.Rows())
	assert.NilError(t, err)
	assert.DeepEqual(t, q.Col("Label").Strings(), Iris.Col("Label").Strings())
	rows := Iris.Rows()
	rows[1] = rows[1].With("Extra", 1)
	_, err = FromStructs(rows)
	assert.ErrorContains(t, err, "schema")
}

func Test_NewMismatch(t *testing.T) {
	_, err := New([]string{"A", "B"}, []interface{}{1})
	assert.ErrorContains(t, err, "row 0")
}

func Test_Filter(t *testing.T) {
	q := Iris.Filter(func(r fu.Struct) bool {
		s, _ := r.String("Label")
		return s == "setosa"
	})
	assert.Equal(t, q.Len(), 2)
	assert.Equal(t, q.Col("Feature1").Float(1), 4.9)
	assert.Equal(t, Iris.Len(), 4)
}

func Test_TableIsImmutable(t *testing.T) {
	rows := [][]interface{}{{1.0, "a"}}
	q := MustNew([]string{"X", "S"}, rows...)
	rows[0][0] = 2.0
	assert.Equal(t, q.Col("X").Float(0), 1.0)
	r := q.Row(0)
	r.Columns[0] = 3.0
	r.Names[1] = "T"
	assert.Equal(t, q.Col("X").Float(0), 1.0)
	assert.DeepEqual(t, q.Names(), []string{"X", "S"})
	q.Rows()[0].Columns[1] = "b"
	q.Head(1).Row(0).Columns[1] = "c"
	assert.Equal(t, q.Col("S").String(0), "a")
}
