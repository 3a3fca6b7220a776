package model

import (
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
)

/*
Estimator is a pipeline stage which needs to be fitted to a data before
it can transform anything. The fit step of a stationary stage does nothing.
*/
type Estimator interface {
	// Name of the stage used in diagnostics
	Name() string
	// Inputs is the list of columns the stage requires
	Inputs() []string
	// Fit estimates stage parameters from a table
	Fit(*tables.Table) (Transformer, error)
}

/*
Transformer is a fitted stage
*/
type Transformer interface {
	// Transform returns a new table with stage outputs,
	// it never modifies the source table
	Transform(*tables.Table) (*tables.Table, error)
}

/*
TransformerFunc is a Transformer implemented by a function
*/
type TransformerFunc func(*tables.Table) (*tables.Table, error)

func (f TransformerFunc) Transform(t *tables.Table) (*tables.Table, error) {
	return f(t)
}

/*
Stationary is an estimator which does not need any data to be fitted
*/
type Stationary struct {
	Label   string
	Columns []string
	Transformer
}

func (s Stationary) Name() string     { return s.Label }
func (s Stationary) Inputs() []string { return s.Columns }

func (s Stationary) Fit(*tables.Table) (Transformer, error) {
	return s.Transformer, nil
}

/*
LuckyTransform transforms the table and panics on error
*/
func LuckyTransform(f Transformer, t *tables.Table) *tables.Table {
	q, err := f.Transform(t)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return q
}
