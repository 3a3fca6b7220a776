package automl

import (
	"fmt"
	"go-ml.dev/pkg/automl/console"
	"go-ml.dev/pkg/automl/model"
)

// width of the trainer column, longer names are cut
const trainerWidth = 35

// NoDiagnostic is rendered for failures without a cause
const NoDiagnostic = "<no diagnostic>"

/*
Reporter writes a fixed width row for every trial and the header before the first one.
It counts trials, not successes. Reporter is not safe for concurrent use.
*/
type Reporter struct {
	format    *console.Format
	iteration int
}

func NewReporter(f *console.Format) *Reporter {
	return &Reporter{format: f}
}

/*
Iteration returns count of reported trials
*/
func (r *Reporter) Iteration() int {
	return r.iteration
}

/*
Header returns the header row text
*/
func Header() string {
	return fmt.Sprintf("%-4s %-35s %8s %13s %12s %8s %9s",
		"", "Trainer", "RSquared", "Absolute-loss", "Squared-loss", "RMS-loss", "Duration")
}

/*
Row returns the text of the trial row, nil trial has empty trainer and no diagnostic
*/
func Row(iteration int, t Trial) string {
	t = normalized(t)
	if t == nil {
		return fmt.Sprintf("%-4d %-35s %v", iteration, "", NoDiagnostic)
	}
	name := console.Fit(t.TrainerName(), trainerWidth)
	switch x := t.(type) {
	case Success:
		m := x.Metrics
		if m == nil {
			m = &model.RegressionMetrics{}
		}
		return fmt.Sprintf("%-4d %-35s %8.4f %13.2f %12.2f %8.2f %9.1f",
			iteration, name,
			m.RSquared.Float(),
			m.MeanAbsoluteError.Float(),
			m.MeanSquaredError.Float(),
			m.RootMeanSquaredError.Float(),
			x.Elapsed.Seconds())
	case Failure:
		return fmt.Sprintf("%-4d %-35s Exception during iteration: %v", iteration, name, diagnostic(x.Cause))
	}
	return fmt.Sprintf("%-4d %-35s %v", iteration, name, NoDiagnostic)
}

func diagnostic(err error) string {
	if err == nil || err.Error() == "" {
		return NoDiagnostic
	}
	return err.Error()
}

/*
Report writes the trial row, the first call writes the header before it
*/
func (r *Reporter) Report(t Trial) {
	r.iteration++
	if r.iteration == 1 {
		r.format.Row(Header())
	}
	r.format.Row(Row(r.iteration, t))
}

/*
Drain reports trials from the channel until it's closed
*/
func (r *Reporter) Drain(c <-chan Trial) {
	for t := range c {
		r.Report(t)
	}
}
