package model

import (
	lru "github.com/hashicorp/golang-lru"
	"go-ml.dev/pkg/automl/tables"
	"go-ml.dev/pkg/zorros"
)

// how many transformed tables a fitted pipeline remembers at the checkpoint
const checkpointCacheSize = 4

/*
Pipeline is an ordered sequence of estimators fitted and applied one after another
*/
type Pipeline struct {
	stages     []Estimator
	checkpoint int // count of stages before the checkpoint, 0 if there is no checkpoint
}

/*
Append returns a new pipeline with the stage added to the end
*/
func (p Pipeline) Append(stage Estimator) Pipeline {
	s := make([]Estimator, len(p.stages), len(p.stages)+1)
	copy(s, p.stages)
	return Pipeline{append(s, stage), p.checkpoint}
}

/*
AppendCacheCheckpoint returns a new pipeline where data transformed by all the current
stages is materialized once and reused by the following access
*/
func (p Pipeline) AppendCacheCheckpoint() Pipeline {
	return Pipeline{p.stages, len(p.stages)}
}

func (p Pipeline) Len() int {
	return len(p.stages)
}

func (p Pipeline) Name() string {
	return "pipeline"
}

/*
Inputs of a pipeline are inputs of the first stage
*/
func (p Pipeline) Inputs() []string {
	if len(p.stages) == 0 {
		return nil
	}
	return p.stages[0].Inputs()
}

/*
Fit fits stages in order, every stage is fitted on the data transformed
by all the previously fitted stages
*/
func (p Pipeline) Fit(t *tables.Table) (Transformer, error) {
	return p.FitPipeline(t)
}

/*
FitPipeline is Fit returning the concrete fitted pipeline
*/
func (p Pipeline) FitPipeline(t *tables.Table) (*FittedPipeline, error) {
	f := &FittedPipeline{stages: make([]Transformer, len(p.stages)), checkpoint: p.checkpoint}
	if p.checkpoint > 0 {
		c, err := lru.New(checkpointCacheSize)
		if err != nil {
			return nil, zorros.Trace(err)
		}
		f.cache = c
	}
	q := t
	for i, s := range p.stages {
		if err := CheckSchema(s.Name(), q.Names(), s.Inputs()...); err != nil {
			return nil, err
		}
		x, err := s.Fit(q)
		if err != nil {
			return nil, zorros.Wrapf(err, "failed to fit %v: %v", s.Name(), err.Error())
		}
		f.stages[i] = x
		if i+1 < len(p.stages) {
			if q, err = x.Transform(q); err != nil {
				return nil, err
			}
			if i+1 == p.checkpoint {
				f.cache.Add(t, q)
			}
		}
	}
	return f, nil
}

/*
FittedPipeline is a sequence of fitted stages
*/
type FittedPipeline struct {
	stages     []Transformer
	checkpoint int
	cache      *lru.Cache
}

/*
Transform applies fitted stages in the same order they were fitted
*/
func (f *FittedPipeline) Transform(t *tables.Table) (q *tables.Table, err error) {
	start := 0
	q = t
	if f.cache != nil {
		if v, ok := f.cache.Get(t); ok {
			q = v.(*tables.Table)
			start = f.checkpoint
		}
	}
	for i := start; i < len(f.stages); i++ {
		if q, err = f.stages[i].Transform(q); err != nil {
			return
		}
		if f.cache != nil && i+1 == f.checkpoint {
			f.cache.Add(t, q)
		}
	}
	return
}
