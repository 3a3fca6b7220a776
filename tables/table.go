/*
Package tables implements an immutable in-memory dataset.
Every row is a fu.Struct and all rows of a table share the same schema.
*/
package tables

import (
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/zorros"
)

/*
Table is an immutable sequence of rows sharing the same column names
*/
type Table struct {
	names []string
	rows  [][]interface{}
}

/*
New creates a table from column names and rows of values, the rows are copied
*/
func New(names []string, rows ...[]interface{}) (*Table, error) {
	for i, r := range rows {
		if len(r) != len(names) {
			return nil, zorros.Errorf("row %d has %d values but table has %d columns", i, len(r), len(names))
		}
	}
	n := make([]string, len(names))
	copy(n, names)
	r := make([][]interface{}, len(rows))
	for i, x := range rows {
		r[i] = make([]interface{}, len(x))
		copy(r[i], x)
	}
	return &Table{n, r}, nil
}

/*
MustNew creates a table and panics on error
*/
func MustNew(names []string, rows ...[]interface{}) *Table {
	t, err := New(names, rows...)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return t
}

/*
FromStructs creates a table from rows, the first row defines the schema
*/
func FromStructs(rows []fu.Struct) (*Table, error) {
	if len(rows) == 0 {
		return &Table{}, nil
	}
	names := rows[0].Names
	r := make([][]interface{}, len(rows))
	for i, s := range rows {
		if len(s.Names) != len(names) {
			return nil, zorros.Errorf("row %d does not match table schema", i)
		}
		for j, n := range s.Names {
			if names[j] != n {
				return nil, zorros.Errorf("row %d does not match table schema: `%v` != `%v`", i, n, names[j])
			}
		}
		r[i] = s.Columns
	}
	return New(names, r...)
}

/*
NewEmpty creates an empty table with the specified columns
*/
func NewEmpty(names []string) *Table {
	return MustNew(names)
}

func (t *Table) Len() int {
	return len(t.rows)
}

/*
Names returns a copy of the column names
*/
func (t *Table) Names() []string {
	n := make([]string, len(t.names))
	copy(n, t.names)
	return n
}

func (t *Table) pos(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (t *Table) Has(name string) bool {
	return t.pos(name) >= 0
}

/*
Missing returns the names which are not columns of the table, in the order given
*/
func (t *Table) Missing(names ...string) []string {
	var r []string
	for _, n := range names {
		if !t.Has(n) {
			r = append(r, n)
		}
	}
	return r
}

/*
Row returns a copy of i-th row of the table
*/
func (t *Table) Row(i int) fu.Struct {
	r := make([]interface{}, len(t.rows[i]))
	copy(r, t.rows[i])
	return fu.Struct{Names: t.Names(), Columns: r}
}

/*
Rows returns all rows of the table
*/
func (t *Table) Rows() []fu.Struct {
	r := make([]fu.Struct, len(t.rows))
	for i := range t.rows {
		r[i] = t.Row(i)
	}
	return r
}

/*
Col returns column by name or nil if there is no such column
*/
func (t *Table) Col(name string) *Column {
	j := t.pos(name)
	if j < 0 {
		return nil
	}
	c := make([]interface{}, len(t.rows))
	for i, r := range t.rows {
		c[i] = r[j]
	}
	return &Column{c}
}

/*
With returns new table with the column replaced or appended
*/
func (t *Table) With(name string, values []interface{}) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, zorros.Errorf("column `%v` has %d values but table has %d rows", name, len(values), len(t.rows))
	}
	j := t.pos(name)
	names := t.names
	if j < 0 {
		names = append(t.Names(), name)
	}
	rows := make([][]interface{}, len(t.rows))
	for i, r := range t.rows {
		q := make([]interface{}, len(names))
		copy(q, r)
		if j < 0 {
			q[len(names)-1] = values[i]
		} else {
			q[j] = values[i]
		}
		rows[i] = q
	}
	return &Table{names, rows}, nil
}

/*
Except returns new table without the named columns
*/
func (t *Table) Except(names ...string) *Table {
	keep := make([]int, 0, len(t.names))
	n := make([]string, 0, len(t.names))
loop:
	for i, x := range t.names {
		for _, e := range names {
			if x == e {
				continue loop
			}
		}
		keep = append(keep, i)
		n = append(n, x)
	}
	rows := make([][]interface{}, len(t.rows))
	for i, r := range t.rows {
		q := make([]interface{}, len(keep))
		for k, j := range keep {
			q[k] = r[j]
		}
		rows[i] = q
	}
	return &Table{n, rows}
}

/*
Head returns new table with first n rows
*/
func (t *Table) Head(n int) *Table {
	return &Table{t.names, t.rows[:fu.Mini(n, len(t.rows))]}
}

/*
Map computes values of the named columns for every row and returns
a new table with these columns replaced or appended
*/
func (t *Table) Map(names []string, f func(fu.Struct) ([]interface{}, error)) (*Table, error) {
	vals := make([][]interface{}, len(names))
	for k := range names {
		vals[k] = make([]interface{}, len(t.rows))
	}
	for i := range t.rows {
		r, err := f(t.Row(i))
		if err != nil {
			return nil, err
		}
		if len(r) != len(names) {
			return nil, zorros.Errorf("mapper returned %d values for %d columns", len(r), len(names))
		}
		for k, v := range r {
			vals[k][i] = v
		}
	}
	q := t
	for k, n := range names {
		var err error
		if q, err = q.With(n, vals[k]); err != nil {
			return nil, err
		}
	}
	return q, nil
}

/*
Filter returns new table with rows satisfying the predicate
*/
func (t *Table) Filter(f func(fu.Struct) bool) *Table {
	rows := make([][]interface{}, 0, len(t.rows))
	for i, r := range t.rows {
		if f(t.Row(i)) {
			rows = append(rows, r)
		}
	}
	return &Table{t.names, rows}
}
