package nnet

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformInit(t *testing.T) {
	init := UniformInit(rand.New(rand.NewSource(1)), -0.01, 0.01)

	w := init(10, 20)
	assert.Len(t, w, 200)
	for _, v := range w {
		assert.GreaterOrEqual(t, v, -0.01)
		assert.Less(t, v, 0.01)
	}
}

func TestXavierInit_Deterministic(t *testing.T) {
	a := XavierInit(rand.New(rand.NewSource(3)))(4, 4)
	b := XavierInit(rand.New(rand.NewSource(3)))(4, 4)
	assert.Equal(t, a, b)
}
