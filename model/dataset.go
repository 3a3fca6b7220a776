package model

import (
	"go-ml.dev/pkg/automl/tables"
)

/*
Dataset is an abstraction of a data to feed models searched by an experiment
*/
type Dataset struct {
	Source     *tables.Table // training rows
	Validation *tables.Table // optional, equal to Source if nil
	Label      string        // name of float field containing label to train
	Features   string        // name of float vector field containing features
}

/*
Valid returns the validation table
*/
func (ds Dataset) Valid() *tables.Table {
	if ds.Validation != nil {
		return ds.Validation
	}
	return ds.Source
}
