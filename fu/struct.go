package fu

import "math"

/*
Struct is a row of named values. Values are stored in the insertion order,
the order of names is significant and defines how a row is displayed.
Struct is immutable, all modifying methods return a copy.
*/
type Struct struct {
	Names   []string
	Columns []interface{}
}

/*
MakeStruct creates a row from names and values, panics if counts differ
*/
func MakeStruct(names []string, vals ...interface{}) Struct {
	if len(names) != len(vals) {
		panic("fu.MakeStruct: count of names and values is not equal")
	}
	return Struct{Names: names, Columns: vals}
}

/*
Pos returns position of the named value or -1 if there is no such name
*/
func (s Struct) Pos(name string) int {
	for i, n := range s.Names {
		if n == name {
			return i
		}
	}
	return -1
}

func (s Struct) Has(name string) bool {
	return s.Pos(name) >= 0
}

func (s Struct) Value(name string) (interface{}, bool) {
	if j := s.Pos(name); j >= 0 {
		return s.Columns[j], true
	}
	return nil, false
}

/*
Float returns the named value as a float64, the flag is false
if there is no such value or it's not a number
*/
func (s Struct) Float(name string) (float64, bool) {
	v, ok := s.Value(name)
	if !ok {
		return Nan, false
	}
	return ToFloat(v)
}

func (s Struct) Int(name string) (int, bool) {
	v, ok := s.Value(name)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case int32:
		return int(x), true
	case float64:
		if x == math.Trunc(x) {
			return int(x), true
		}
	case float32:
		if float64(x) == math.Trunc(float64(x)) {
			return int(x), true
		}
	}
	return 0, false
}

func (s Struct) String(name string) (string, bool) {
	v, ok := s.Value(name)
	if !ok {
		return "", false
	}
	x, ok := v.(string)
	return x, ok
}

func (s Struct) Floats(name string) ([]float32, bool) {
	v, ok := s.Value(name)
	if !ok {
		return nil, false
	}
	switch x := v.(type) {
	case []float32:
		return x, true
	case []float64:
		return Float32s(x), true
	}
	return nil, false
}

/*
With returns a copy of the row where the named value is replaced
or appended if there was no such name
*/
func (s Struct) With(name string, v interface{}) Struct {
	if j := s.Pos(name); j >= 0 {
		c := make([]interface{}, len(s.Columns))
		copy(c, s.Columns)
		c[j] = v
		return Struct{s.Names, c}
	}
	n := make([]string, len(s.Names), len(s.Names)+1)
	copy(n, s.Names)
	c := make([]interface{}, len(s.Columns), len(s.Columns)+1)
	copy(c, s.Columns)
	return Struct{append(n, name), append(c, v)}
}

/*
Except returns a copy of the row without the named values
*/
func (s Struct) Except(names ...string) Struct {
	n := make([]string, 0, len(s.Names))
	c := make([]interface{}, 0, len(s.Columns))
loop:
	for i, x := range s.Names {
		for _, e := range names {
			if e == x {
				continue loop
			}
		}
		n = append(n, x)
		c = append(c, s.Columns[i])
	}
	return Struct{n, c}
}

/*
ToFloat converts a scalar numeric value into float64
*/
func ToFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return Nan, false
}
