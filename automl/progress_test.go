package automl

import (
	"bytes"
	"go-ml.dev/pkg/automl/console"
	"go-ml.dev/pkg/automl/model"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"strings"
	"testing"
	"time"
)

func metrics(r2, mae, mse, rmse float64) *model.RegressionMetrics {
	return &model.RegressionMetrics{
		LossFn:               model.Available(mse),
		RSquared:             model.Available(r2),
		MeanAbsoluteError:    model.Available(mae),
		MeanSquaredError:     model.Available(mse),
		RootMeanSquaredError: model.Available(rmse),
	}
}

var scenario = []Trial{
	Success{"FastTree", metrics(0.81, 1.23, 2.50, 1.58), 3200 * time.Millisecond},
	Failure{"LightGbm", xerrors.New("OOM")},
	Success{"Ols", metrics(0.77, 1.40, 2.9, 1.70), 1100 * time.Millisecond},
}

func report(trials ...Trial) (string, *Reporter) {
	var b bytes.Buffer
	r := NewReporter(console.Plain(&b))
	for _, t := range trials {
		r.Report(t)
	}
	return b.String(), r
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func Test_Scenario(t *testing.T) {
	out, r := report(scenario...)
	assert.DeepEqual(t, lines(out), []string{
		"|     Trainer                             RSquared Absolute-loss Squared-loss RMS-loss  Duration                 |",
		"|1    FastTree                              0.8100          1.23         2.50     1.58       3.2                 |",
		"|2    LightGbm                            Exception during iteration: OOM                                        |",
		"|3    Ols                                   0.7700          1.40         2.90     1.70       1.1                 |",
	})
	assert.Equal(t, r.Iteration(), 3)
}

func Test_HeaderOnceFirst(t *testing.T) {
	out, _ := report(
		Failure{"A", xerrors.New("x")},
		Failure{"B", xerrors.New("y")},
		Success{"C", metrics(1, 0, 0, 0), time.Second})
	l := lines(out)
	assert.Equal(t, len(l), 4)
	assert.Assert(t, strings.Contains(l[0], "Trainer"))
	for _, x := range l[1:] {
		assert.Assert(t, !strings.Contains(x, "Trainer"))
	}
	assert.Assert(t, strings.HasPrefix(l[1], "|1    A "))
	assert.Assert(t, strings.HasPrefix(l[3], "|3    C "))
}

func Test_AlignmentInvariant(t *testing.T) {
	long := strings.Repeat("VeryLongTrainerName", 5)
	out, _ := report(
		Success{long, &model.RegressionMetrics{}, time.Second},
		Success{"NoMetrics", nil, 0},
		Failure{long, xerrors.New("line one\nline two " + strings.Repeat("z", 200))},
		Success{"Huge", metrics(-1e30, 1e30, 1e30, 1e30), 1e6 * time.Second},
	)
	l := lines(out)
	assert.Equal(t, len(l), 5)
	for _, x := range l {
		assert.Equal(t, len(x), console.Width, x)
		assert.Assert(t, strings.HasPrefix(x, "|") && strings.HasSuffix(x, "|"))
	}
	assert.Assert(t, strings.Contains(l[1], "     NaN           NaN          NaN      NaN"))
	assert.Assert(t, strings.Contains(l[2], "     NaN           NaN          NaN      NaN       0.0"))
	assert.Assert(t, strings.Contains(l[3], "line one line two"))
	assert.Assert(t, strings.Contains(l[1], long[:35]+" "))
}

func Test_FailureWithoutCause(t *testing.T) {
	out, r := report(Failure{"Empty", nil}, Failure{"Blank", xerrors.New("")})
	l := lines(out)
	assert.Equal(t, r.Iteration(), 2)
	assert.Assert(t, strings.Contains(l[1], NoDiagnostic))
	assert.Assert(t, strings.Contains(l[2], NoDiagnostic))
}

func Test_Idempotent(t *testing.T) {
	a, _ := report(scenario...)
	b, _ := report(scenario...)
	assert.Equal(t, a, b)
}

func Test_Drain(t *testing.T) {
	c := make(chan Trial, len(scenario))
	for _, x := range scenario {
		c <- x
	}
	close(c)
	var b bytes.Buffer
	r := NewReporter(console.Plain(&b))
	r.Drain(c)
	a, _ := report(scenario...)
	assert.Equal(t, b.String(), a)
}

func Test_MalformedTrials(t *testing.T) {
	var nilSuccess *Success
	out, r := report(
		nil,
		&Success{"Ptr", metrics(0.81, 1.23, 2.50, 1.58), 3200 * time.Millisecond},
		&Failure{"PtrFailure", xerrors.New("OOM")},
		nilSuccess)
	l := lines(out)
	assert.Equal(t, r.Iteration(), 4)
	assert.Equal(t, len(l), 5)
	for _, x := range l {
		assert.Equal(t, len(x), console.Width, x)
	}
	assert.Assert(t, strings.HasPrefix(l[1], "|1    "+strings.Repeat(" ", 35)+" "+NoDiagnostic))
	assert.Assert(t, strings.HasPrefix(l[2], "|2    Ptr                                   0.8100          1.23         2.50     1.58       3.2"))
	assert.Assert(t, strings.HasPrefix(l[3], "|3    PtrFailure                          Exception during iteration: OOM"))
	assert.Assert(t, strings.Contains(l[4], NoDiagnostic))
}
