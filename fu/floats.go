package fu

import "math"

// Nan is the placeholder of a value that can't be calculated
var Nan = math.NaN()

func Mean(a []float64) float64 {
	if len(a) == 0 {
		return Nan
	}
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

func Mse(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

func Mae(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		c += math.Abs(x - b[i])
	}
	return c / float64(len(a))
}

/*
Flatnr concatenates vectors into one new vector
*/
func Flatnr(a ...[]float32) []float32 {
	n := 0
	for _, x := range a {
		n += len(x)
	}
	r := make([]float32, n)
	i := 0
	for _, x := range a {
		copy(r[i:i+len(x)], x)
		i += len(x)
	}
	return r
}

func Float64s(a []float32) []float64 {
	r := make([]float64, len(a))
	for i, x := range a {
		r[i] = float64(x)
	}
	return r
}

func Float32s(a []float64) []float32 {
	r := make([]float32, len(a))
	for i, x := range a {
		r[i] = float32(x)
	}
	return r
}
