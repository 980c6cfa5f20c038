package generator

import (
	"fmt"
	"io"
	"slices"

	"github.com/pkg/errors"
	"github.com/uscgan/generator/types/shapes"
)

// Graph is an assembled, immutable generator computation graph, created by Builder.Build.
//
// It is safe for concurrent use: evaluation and lowering only read it.
type Graph struct {
	name string
	seed uint64

	input, output *Value

	// stages in topological order: each stage only consumes the input or outputs of earlier stages.
	stages []*Stage

	// parameters owned by the stages, in stage order.
	parameters []*Parameter
}

// Name of the graph.
func (g *Graph) Name() string {
	return g.name
}

// Seed used to initialize the graph parameters.
func (g *Graph) Seed() uint64 {
	return g.seed
}

// Input returns the graph input value.
func (g *Graph) Input() *Value {
	return g.input
}

// Output returns the graph output value.
func (g *Graph) Output() *Value {
	return g.output
}

// InputShape returns the per-example input shape (height, width, channels).
func (g *Graph) InputShape() shapes.Shape {
	return g.input.shape.Clone()
}

// OutputShape returns the per-example output shape (height, width, channels).
func (g *Graph) OutputShape() shapes.Shape {
	return g.output.shape.Clone()
}

// Stages returns the stages of the graph, in evaluation order.
func (g *Graph) Stages() []*Stage {
	return slices.Clone(g.stages)
}

// Parameters returns the learned parameters owned by the graph, in stage order.
func (g *Graph) Parameters() []*Parameter {
	return slices.Clone(g.parameters)
}

// NumParameterValues returns the total number of learned scalar values in the graph.
func (g *Graph) NumParameterValues() int {
	var total int
	for _, p := range g.parameters {
		total += p.shape.Size()
	}
	return total
}

// WithParameterValues returns a copy of the graph where the parameters named in values take the
// given values (e.g. trained weights), in row-major order. Other parameters are shared with g,
// which is left unchanged.
func (g *Graph) WithParameterValues(values map[string][]float32) (*Graph, error) {
	replaced := make(map[*Parameter]*Parameter, len(values))
	for name, flat := range values {
		idx := slices.IndexFunc(g.parameters, func(p *Parameter) bool { return p.name == name })
		if idx < 0 {
			return nil, errors.Errorf("graph %q has no parameter %q", g.name, name)
		}
		p := g.parameters[idx]
		if len(flat) != p.shape.Size() {
			return nil, errors.Errorf("parameter %q shaped %s needs %d values, got %d", name, p.shape, p.shape.Size(), len(flat))
		}
		replaced[p] = &Parameter{name: p.name, shape: p.shape, flat: slices.Clone(flat)}
	}
	swap := func(p *Parameter) *Parameter {
		if newP, found := replaced[p]; found {
			return newP
		}
		return p
	}

	newG := *g
	newG.stages = make([]*Stage, len(g.stages))
	for ii, stage := range g.stages {
		newStage := *stage
		if stage.config.Kernel != nil {
			newStage.config.Kernel = swap(stage.config.Kernel)
			newStage.config.Bias = swap(stage.config.Bias)
		}
		newG.stages[ii] = &newStage
	}
	newG.parameters = make([]*Parameter, len(g.parameters))
	for ii, p := range g.parameters {
		newG.parameters[ii] = swap(p)
	}
	return &newG, nil
}

// Write a human-readable description of the graph, one stage per line.
func (g *Graph) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	w("graph %s(%s: %s) -> %s {\n", NormalizeIdentifier(g.name), g.input, g.input.shape, g.output.shape)
	for _, stage := range g.stages {
		w("  %s\n", stage)
	}
	w("}\n")
	return err
}

// String implements fmt.Stringer.
func (g *Graph) String() string {
	return fmt.Sprintf("Graph(%q: %s -> %s, %d stages, %d parameter values)",
		g.name, g.input.shape, g.output.shape, len(g.stages), g.NumParameterValues())
}
