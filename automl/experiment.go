package automl

import (
	"context"
	"fmt"
	"go-ml.dev/pkg/automl/fu"
	"go-ml.dev/pkg/automl/model"
	"go-ml.dev/pkg/automl/model/hyperopt"
	"go-ml.dev/pkg/automl/model/regress"
	"go-ml.dev/pkg/zorros"
	"math"
	"math/rand"
	"time"
)

/*
Candidate is a trainer the experiment can try with parameters sampled from Variance
*/
type Candidate struct {
	Name     string
	Variance hyperopt.Variance
	New      func(hyperopt.Params) model.Estimator
}

/*
Experiment is a search over candidate trainers. Every trial fits one candidate
on the source rows and evaluates it on the validation rows.
*/
type Experiment struct {
	Candidates   []Candidate
	MaxTrials    int           // maximum trials, 1 if zero
	MaxTime      time.Duration // time budget, unlimited if zero
	ScoreHistory int           // stop when there is no better score for so many trials, unlimited if zero
	Score        string        // prediction column, "Score" if empty
	Seed         int64
	Verbose      func(string)
}

/*
Report is the result of an experiment
*/
type Report struct {
	Trials  int                      // count of completed trials
	TheBest int                      // the best trial, counting from 1
	Trainer string                   // the best trainer
	Params  hyperopt.Params          // parameters of the best trainer
	Metrics *model.RegressionMetrics // validation metrics of the best trial
	Model   model.Transformer        // the best fitted model
	Score   float64                  // the best score
}

// trials are compared by R², unavailable R² is the worst
func score(m *model.RegressionMetrics) float64 {
	if !m.RSquared.Ok() {
		return math.Inf(-1)
	}
	return m.RSquared.Float()
}

func (e Experiment) verbose(s string) {
	if e.Verbose != nil {
		e.Verbose(s)
	}
}

/*
Run executes trials one by one and sends them to the channel, the channel is closed
when the experiment is done. Trial failures are sent as Failure and do not stop the search.
Cancellation is checked between trials, a completed trial is always sent.
The channel must be drained until it's closed.
*/
func (e Experiment) Run(ctx context.Context, ds model.Dataset, c chan<- Trial) (*Report, error) {
	defer close(c)
	if len(e.Candidates) == 0 {
		return nil, zorros.Errorf("there is no candidates to try")
	}
	if e.MaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.MaxTime)
		defer cancel()
	}
	rnd := rand.New(rand.NewSource(e.Seed))
	maxTrials := fu.Maxi(e.MaxTrials, 1)
	report := &Report{Score: math.Inf(-1)}
	for i := 0; i < maxTrials; i++ {
		select {
		case <-ctx.Done():
			e.verbose(fmt.Sprintf("experiment stopped after %d trials: %v", i, ctx.Err()))
			return report.done()
		default:
		}
		cand := e.Candidates[i%len(e.Candidates)]
		params := cand.Variance.Sample(rnd)
		t, f := e.trial(cand, params, ds)
		report.Trials++
		if s, ok := t.(Success); ok {
			sc := score(s.Metrics)
			if report.TheBest == 0 || sc > report.Score {
				report.TheBest = i + 1
				report.Trainer = cand.Name
				report.Params = params
				report.Metrics = s.Metrics
				report.Model = f
				report.Score = sc
			}
			e.verbose(fmt.Sprintf("[%3d] %v score: %.5f", i+1, cand.Name, sc))
		}
		c <- t
		if e.ScoreHistory > 0 && report.TheBest > 0 && i+1-report.TheBest >= e.ScoreHistory {
			e.verbose(fmt.Sprintf("no better score for %d trials, experiment stopped", e.ScoreHistory))
			break
		}
	}
	return report.done()
}

func (r *Report) done() (*Report, error) {
	if r.TheBest == 0 {
		return r, zorros.Errorf("no trial succeeded out of %d", r.Trials)
	}
	return r, nil
}

func (e Experiment) trial(cand Candidate, params hyperopt.Params, ds model.Dataset) (t Trial, f model.Transformer) {
	start := time.Now()
	defer func() {
		if x := recover(); x != nil {
			t, f = Failure{cand.Name, zorros.Errorf("panic: %v", x)}, nil
		}
	}()
	est := cand.New(params)
	f, err := est.Fit(ds.Source)
	if err != nil {
		return Failure{cand.Name, err}, nil
	}
	q, err := f.Transform(ds.Valid())
	if err != nil {
		return Failure{cand.Name, err}, nil
	}
	m, err := model.RegressionOf(q, ds.Label, fu.Fnzs(e.Score, regress.DefaultScore))
	if err != nil {
		return Failure{cand.Name, err}, nil
	}
	return Success{cand.Name, m, time.Since(start)}, f
}

/*
Execute runs the experiment and reports every trial to observers in order.
It returns when all the trials are reported.
*/
func (e Experiment) Execute(ctx context.Context, ds model.Dataset, observers ...Observer) (*Report, error) {
	c := make(chan Trial)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for t := range c {
			for _, o := range observers {
				o.Report(t)
			}
		}
	}()
	r, err := e.Run(ctx, ds, c)
	<-done
	return r, err
}
