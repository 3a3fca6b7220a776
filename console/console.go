/*
Package console formats experiment output as fixed width text
*/
package console

import (
	"fmt"
	"github.com/muesli/termenv"
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/tables"
	"image"
	"io"
	"strings"
	"unicode/utf8"
)

// Width is the width of a framed row including both borders
const Width = 114

// Border encloses every framed row
const Border = "|"

/*
Format is the output configuration, it replaces any global console state
*/
type Format struct {
	Out    io.Writer
	Width  int           // Width if zero
	Border string        // Border if empty
	Header termenv.Style // decoration of section headers
	Color  bool          // apply Header decoration
}

/*
Plain returns format without colors, the output is byte-stable
*/
func Plain(w io.Writer) *Format {
	return &Format{Out: w, Width: Width, Border: Border}
}

/*
Colored returns format decorating headers with yellow when the terminal supports colors
*/
func Colored(w io.Writer) *Format {
	p := termenv.ColorProfile()
	return &Format{
		Out:    w,
		Width:  Width,
		Border: Border,
		Header: termenv.Style{}.Foreground(p.Color("11")),
		Color:  p != termenv.Ascii,
	}
}

func (f *Format) width() int {
	return fu.Fnzi(f.Width, Width)
}

func (f *Format) border() string {
	return fu.Fnzs(f.Border, Border)
}

/*
Line writes one unframed line
*/
func (f *Format) Line(s string) {
	fmt.Fprintln(f.Out, s)
}

/*
Frame pads the text with spaces to the interior width and encloses it by borders.
Longer text is cut, it's never wrapped, so all frames have the same width.
Width narrower than both borders leaves only the borders.
*/
func (f *Format) Frame(s string) string {
	b := f.border()
	interior := fu.Maxi(f.width()-2*utf8.RuneCountInString(b), 0)
	s = Fit(s, interior)
	return b + s + strings.Repeat(" ", interior-utf8.RuneCountInString(s)) + b
}

/*
Row writes framed text
*/
func (f *Format) Row(s string) {
	f.Line(f.Frame(s))
}

/*
Fit cuts the text to at most n runes and flattens line breaks into spaces
*/
func Fit(s string, n int) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	return string([]rune(s)[:n])
}

/*
WriteHeader writes an empty line, the lines and underline of '#' as long as the longest line
*/
func (f *Format) WriteHeader(lines ...string) {
	style := func(s string) string {
		if f.Color {
			return f.Header.Styled(s)
		}
		return s
	}
	f.Line(" ")
	n := 0
	for _, l := range lines {
		f.Line(style(l))
		n = fu.Maxi(n, utf8.RuneCountInString(l))
	}
	f.Line(style(strings.Repeat("#", n)))
}

func metric(m model.Metric) string {
	if !m.Ok() {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", m.Float())
}

/*
PrintRegressionMetrics writes a box with regression metrics of the named model
*/
func (f *Format) PrintRegressionMetrics(name string, m *model.RegressionMetrics) {
	f.Line("*************************************************")
	f.Line(fmt.Sprintf("*       Metrics for %v regression model      ", name))
	f.Line("*------------------------------------------------")
	f.Line(fmt.Sprintf("*       LossFn:        %v", metric(m.LossFn)))
	f.Line(fmt.Sprintf("*       R2 Score:      %v", metric(m.RSquared)))
	f.Line(fmt.Sprintf("*       Absolute loss: %v", metric(m.MeanAbsoluteError)))
	f.Line(fmt.Sprintf("*       Squared loss:  %v", metric(m.MeanSquaredError)))
	f.Line(fmt.Sprintf("*       RMS loss:      %v", metric(m.RootMeanSquaredError)))
	f.Line("*************************************************")
}

/*
PrintClassificationMetrics writes log-loss and per-class log-loss
*/
func (f *Format) PrintClassificationMetrics(m *model.ClassificationMetrics) {
	f.WriteHeader("=============== Classification metrics ===============")
	f.Line(fmt.Sprintf("LogLoss is: %v", m.LogLoss.Float()))
	s := make([]string, len(m.PerClassLogLoss))
	for i, x := range m.PerClassLogLoss {
		s[i] = fmt.Sprint(x.Float())
	}
	f.Line("PerClassLogLoss is: " + strings.Join(s, " , "))
}

/*
ShowDataView writes first n rows of the table as name:value pairs
*/
func (f *Format) ShowDataView(t *tables.Table, n int) {
	f.WriteHeader(fmt.Sprintf("Show data in DataView: Showing %d rows with the columns", n))
	for _, r := range t.Head(n).Rows() {
		var b strings.Builder
		b.WriteString("Row--> ")
		for i, name := range r.Names {
			fmt.Fprintf(&b, "| %v:%v", name, display(r.Columns[i]))
		}
		f.Line(b.String())
		f.Line("")
	}
}

// long vectors and images are shortened
func display(v interface{}) string {
	switch x := v.(type) {
	case image.Image:
		b := x.Bounds()
		return fmt.Sprintf("image %dx%d", b.Dx(), b.Dy())
	case []float32:
		if len(x) > 6 {
			return fmt.Sprintf("%v...(%d)", x[:6], len(x))
		}
	}
	return fmt.Sprint(v)
}
