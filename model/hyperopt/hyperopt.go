/*
Package hyperopt defines spaces of hyper-parameters and samples parameter sets from them.
It does not try to be smart, every sample is independent.
*/
package hyperopt

import (
	"math"
	"math/rand"
	"sort"
)

/*
Range is a open float range specified by min and max values (min,max)
*/
type Range [2]float64

/*
LogRange is a open float logarithmic range specified by min and max values (min,max)
*/
type LogRange [2]float64

/*
IntRange is a close integer range specified by min and max values [min,max]
*/
type IntRange [2]int

/*
LogIntRange is a close logarithmic integer range specified by min and max values [min,max]
*/
type LogIntRange [2]int

/*
List is a list of possible parameter values
*/
type List []float64

// type limitation interface
type distribution interface {
	sample(*rand.Rand) float64
}

func (r Range) sample(rnd *rand.Rand) float64 {
	return r[0] + rnd.Float64()*(r[1]-r[0])
}

func (r LogRange) sample(rnd *rand.Rand) float64 {
	lo, hi := math.Log(r[0]), math.Log(r[1])
	return math.Exp(lo + rnd.Float64()*(hi-lo))
}

func (r IntRange) sample(rnd *rand.Rand) float64 {
	return float64(r[0] + rnd.Intn(r[1]-r[0]+1))
}

func (r LogIntRange) sample(rnd *rand.Rand) float64 {
	lo, hi := math.Log(float64(r[0])), math.Log(float64(r[1])+1)
	v := math.Floor(math.Exp(lo + rnd.Float64()*(hi-lo)))
	return math.Max(float64(r[0]), math.Min(float64(r[1]), v))
}

func (l List) sample(rnd *rand.Rand) float64 {
	return l[rnd.Intn(len(l))]
}

/*
Variance is a space of hyper-parameters
*/
type Variance map[string]distribution

/*
Sample draws one set of parameters, names are visited in sorted order
so the same generator state always gives the same parameters
*/
func (v Variance) Sample(rnd *rand.Rand) Params {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	p := make(Params, len(v))
	for _, k := range names {
		p[k] = v[k].sample(rnd)
	}
	return p
}

/*
Params is a set of hyper-parameters used to generate new model
*/
type Params map[string]float64

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

/*
Int value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Int(name string, dflt int) int {
	if v, ok := p[name]; ok {
		return int(math.Round(v))
	}
	return dflt
}
