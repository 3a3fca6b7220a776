/*
Package automl runs a search over candidate regression trainers and reports
every trial to observers as soon as it's completed
*/
package automl

import (
	"go-ml.dev/pkg/automl/model"
	"time"
)

/*
Trial is the outcome of one candidate evaluation, it's either Success or Failure
*/
type Trial interface {
	TrainerName() string
	trial()
}

/*
Success is a trial evaluated on the validation data
*/
type Success struct {
	Trainer string
	Metrics *model.RegressionMetrics
	Elapsed time.Duration
}

/*
Failure is a trial which could not be fitted or evaluated
*/
type Failure struct {
	Trainer string
	Cause   error
}

func (s Success) TrainerName() string { return s.Trainer }
func (f Failure) TrainerName() string { return f.Trainer }

func (Success) trial() {}
func (Failure) trial() {}

/*
Observer consumes trials in the order they are completed
*/
type Observer interface {
	Report(Trial)
}

/*
ObserverFunc is an Observer implemented by a function
*/
type ObserverFunc func(Trial)

func (f ObserverFunc) Report(t Trial) { f(t) }

// pointers to trials are handled as values, nil pointers as nil trials
func normalized(t Trial) Trial {
	switch x := t.(type) {
	case *Success:
		if x == nil {
			return nil
		}
		return *x
	case *Failure:
		if x == nil {
			return nil
		}
		return *x
	}
	return t
}
