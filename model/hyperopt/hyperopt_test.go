package hyperopt

import (
	"gotest.tools/assert"
	"math/rand"
	"testing"
)

var space = Variance{
	"LearningRate": LogRange{1e-3, 1},
	"Epochs":       IntRange{5, 10},
	"Trees":        LogIntRange{1, 100},
	"Lambda":       Range{0, 2},
	"Loss":         List{1, 2, 3},
}

func Test_SampleBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p := space.Sample(rnd)
		lr := p.Get("LearningRate", -1)
		assert.Assert(t, lr >= 1e-3 && lr <= 1)
		e := p.Int("Epochs", -1)
		assert.Assert(t, e >= 5 && e <= 10)
		n := p.Int("Trees", -1)
		assert.Assert(t, n >= 1 && n <= 100)
		l := p.Get("Lambda", -1)
		assert.Assert(t, l >= 0 && l <= 2)
		x := p.Get("Loss", -1)
		assert.Assert(t, x == 1 || x == 2 || x == 3)
	}
}

func Test_SampleDeterministic(t *testing.T) {
	a := space.Sample(rand.New(rand.NewSource(7)))
	b := space.Sample(rand.New(rand.NewSource(7)))
	assert.DeepEqual(t, a, b)
	assert.Equal(t, a.Get("None", 3), 3.0)
	assert.Equal(t, a.Int("None", 3), 3)
}
