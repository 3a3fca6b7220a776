package tables

import (
	"go-ml.dev/pkg/automl/fu"
)

/*
Column is a copy of table column values
*/
type Column struct {
	values []interface{}
}

func (c *Column) Len() int {
	return len(c.values)
}

func (c *Column) Interface(i int) interface{} {
	return c.values[i]
}

/*
Float returns i-th value as a float64 or NaN if it's not a number
*/
func (c *Column) Float(i int) float64 {
	v, _ := fu.ToFloat(c.values[i])
	return v
}

/*
Real returns all values as float64 slice
*/
func (c *Column) Real() []float64 {
	r := make([]float64, len(c.values))
	for i := range c.values {
		r[i] = c.Float(i)
	}
	return r
}

func (c *Column) String(i int) string {
	s, _ := c.values[i].(string)
	return s
}

/*
Strings returns all values as strings, non string values are empty strings
*/
func (c *Column) Strings() []string {
	r := make([]string, len(c.values))
	for i := range c.values {
		r[i] = c.String(i)
	}
	return r
}

/*
Interfaces returns a copy of all values
*/
func (c *Column) Interfaces() []interface{} {
	r := make([]interface{}, len(c.values))
	copy(r, c.values)
	return r
}
