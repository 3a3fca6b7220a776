package model

import (
	"fmt"
	"golang.org/x/xerrors"
	"strings"
)

// ErrSchemaMismatch is reported when data lacks columns a stage or metric requires
var ErrSchemaMismatch = xerrors.New("schema mismatch")

// ErrEmptyBatch is reported when metrics are requested on zero rows
var ErrEmptyBatch = xerrors.New("empty batch")

/*
SchemaError names the stage and the columns it did not find
*/
type SchemaError struct {
	Stage   string
	Missing []string
	Row     int // -1 if it's not related to a particular row
}

func (e *SchemaError) Error() string {
	s := fmt.Sprintf("%v: missing column(s) %v", e.Stage, strings.Join(e.Missing, ", "))
	if e.Row >= 0 {
		s += fmt.Sprintf(" in row %d", e.Row)
	}
	return s
}

func (e *SchemaError) Is(err error) bool {
	return err == ErrSchemaMismatch
}

func schemaError(stage string, row int, missing ...string) error {
	return &SchemaError{Stage: stage, Missing: missing, Row: row}
}

/*
CheckSchema fails with SchemaError if any of the columns is not in names
*/
func CheckSchema(stage string, names []string, columns ...string) error {
	var missing []string
loop:
	for _, c := range columns {
		for _, n := range names {
			if n == c {
				continue loop
			}
		}
		missing = append(missing, c)
	}
	if len(missing) > 0 {
		return schemaError(stage, -1, missing...)
	}
	return nil
}
