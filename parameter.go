package generator

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/uscgan/generator/types/shapes"
)

// Parameter is a learned tensor owned by exactly one graph: a convolution kernel or bias.
//
// Its values are set once, when the stage that owns it is created, and never change afterwards.
type Parameter struct {
	name  string
	shape shapes.Shape
	flat  []float32
}

// Name of the parameter, unique within its graph, e.g. "branch_1/conv_0/kernel".
func (p *Parameter) Name() string {
	return p.name
}

// Shape of the parameter. Kernels are shaped [kernelHeight, kernelWidth, inputChannels, filters],
// biases [filters].
func (p *Parameter) Shape() shapes.Shape {
	return p.shape
}

// Values returns a copy of the parameter values, in row-major order.
func (p *Parameter) Values() []float32 {
	return slices.Clone(p.flat)
}

// glorotUniform fills a kernel parameter with values drawn uniformly from [-limit, limit], with
// limit = sqrt(6 / (fanIn + fanOut)).
func glorotUniform(rng *rand.Rand, shape shapes.Shape) []float32 {
	receptiveField := shape.Dim(0) * shape.Dim(1)
	fanIn := receptiveField * shape.Dim(2)
	fanOut := receptiveField * shape.Dim(3)
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
	flat := make([]float32, shape.Size())
	for ii := range flat {
		flat[ii] = float32((2*rng.Float64() - 1) * limit)
	}
	return flat
}
