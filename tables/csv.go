package tables

import (
	"encoding/csv"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/zorros"
	"io"
	"os"
	"strconv"
	"strings"
)

/*
Kind is a type of column value read from a text file
*/
type Kind int

const (
	String Kind = iota
	Float
	Int
)

/*
Field describes one column of a text file
*/
type Field struct {
	Name  string // column name in the table
	Index int    // zero based index of the field in the line
	Kind  Kind
}

/*
CSV describes the layout of a delimited text file
*/
type CSV struct {
	Comma  rune // ',' if zero
	Header bool // skip the first line
	Fields []Field
}

/*
TSV returns tab separated layout without a header
*/
func TSV(fields ...Field) CSV {
	return CSV{Comma: '\t', Fields: fields}
}

/*
ReadFile reads a table from delimited text file, xz compressed files
are detected by the .xz extension
*/
func (c CSV) ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer f.Close()
	var rd io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		if rd, err = xz.NewReader(f); err != nil {
			return nil, zorros.Wrapf(err, "failed to open xz stream %v: %v", path, err.Error())
		}
	}
	return c.Read(rd)
}

/*
Read reads a table from delimited text stream
*/
func (c CSV) Read(rd io.Reader) (*Table, error) {
	r := csv.NewReader(rd)
	if c.Comma != 0 {
		r.Comma = c.Comma
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = f.Name
	}
	var rows [][]interface{}
	for line := 0; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, zorros.Trace(err)
		}
		if line == 0 && c.Header {
			continue
		}
		row := make([]interface{}, len(c.Fields))
		for i, f := range c.Fields {
			if f.Index >= len(rec) {
				return nil, zorros.Errorf("line %d has no field %d (%v)", line+1, f.Index, f.Name)
			}
			s := strings.TrimSpace(rec[f.Index])
			switch f.Kind {
			case Float:
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, zorros.Errorf("line %d: field %v is not a number: `%v`", line+1, f.Name, s)
				}
				row[i] = v
			case Int:
				v, err := strconv.Atoi(s)
				if err != nil {
					return nil, zorros.Errorf("line %d: field %v is not an integer: `%v`", line+1, f.Name, s)
				}
				row[i] = v
			default:
				row[i] = s
			}
		}
		rows = append(rows, row)
	}
	return New(names, rows...)
}
