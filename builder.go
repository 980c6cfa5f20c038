package generator

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/pkg/errors"
	"github.com/uscgan/generator/internal/utils"
	"github.com/uscgan/generator/shapeinference"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
)

// Builder is used to construct a generator Graph.
// See details in New.
type Builder struct {
	name string

	input  *Value
	values []*Value
	stages []*Stage

	// scope is prefixed to the names of parameters created, see Builder.WithScope.
	scope []string

	// convCount counts Conv2D stages per scope, to name their parameters.
	convCount map[string]int

	seed uint64
	rng  *rand.Rand

	// built indicates Builder.Build was called, and the builder can no longer be changed.
	built bool
}

// New creates a new Builder object holding a generator graph in construction.
//
// First declare the input with Builder.Input, then add stages one by one with the stage functions
// (Convert, Upsample, Conv2D, ReduceSum, Concatenate, ResizeBicubic), and finally call Builder.Build
// with the output value to get the immutable Graph.
//
// Parameters are initialized from a PRNG seeded with 0, see WithSeed.
func New(name string) *Builder {
	b := &Builder{
		name:      name,
		convCount: make(map[string]int),
	}
	return b.WithSeed(0)
}

// WithSeed sets the seed used to initialize the parameters of the stages created afterwards.
// Building the same graph with the same seed yields the same parameter values.
func (b *Builder) WithSeed(seed uint64) *Builder {
	b.seed = seed
	b.rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	return b
}

// Name of the graph being built.
func (b *Builder) Name() string {
	return b.name
}

// Input declares the graph input, with its per-example shape (height, width, channels).
// Any numeric dtype is accepted; use Convert to normalize it to ComputeDType.
//
// A graph has exactly one input, so Input can only be called once.
func (b *Builder) Input(shape shapes.Shape) (*Value, error) {
	if b.built {
		return nil, errors.Errorf("Builder.Build already called for %q", b.name)
	}
	if b.input != nil {
		return nil, errors.Errorf("graph %q already has an input %s", b.name, b.input.shape)
	}
	if err := shapeinference.CheckImage(shape); err != nil {
		return nil, errors.WithMessagef(err, "invalid input for graph %q", b.name)
	}
	if !utils.IsNumeric(shape.DType) {
		return nil, errors.Errorf("graph %q input must be numeric, got %s", b.name, shape)
	}
	b.input = b.newValue(shape.Clone())
	return b.input, nil
}

// WithScope runs fn with name appended to the scope used to name parameters, e.g. the parameters
// of the first Conv2D created inside WithScope("branch_1", ...) are "branch_1/conv_0/kernel" and
// "branch_1/conv_0/bias".
//
// Scopes can be nested. The error returned by fn is returned.
func (b *Builder) WithScope(name string, fn func() error) error {
	b.scope = append(b.scope, name)
	defer func() { b.scope = b.scope[:len(b.scope)-1] }()
	return fn()
}

// newValue creates a new value with the given shape and assigns it the next available id.
func (b *Builder) newValue(shape shapes.Shape) *Value {
	v := &Value{
		builder: b,
		id:      len(b.values),
		shape:   shape,
	}
	b.values = append(b.values, v)
	return v
}

// checkOperands verifies the builder can still be changed and that all operands were created by it.
func (b *Builder) checkOperands(stageType types.StageType, operands ...*Value) error {
	if b.built {
		return errors.Errorf("cannot add stage %s after Builder.Build was called, in graph %q", stageType, b.name)
	}
	for i, operand := range operands {
		if operand == nil {
			return errors.Errorf("cannot add stage %s to graph %q, operand #%d is nil", stageType, b.name, i)
		}
		if operand.builder != b {
			return errors.Errorf("cannot add stage %s to graph %q, because operand #%d is from a different graph (%q)",
				stageType, b.name, i, operand.builder.name)
		}
	}
	return nil
}

// addStage adds a new stage to the graph, creating its output value.
func (b *Builder) addStage(stageType types.StageType, config StageConfig, outputShape shapes.Shape, inputs ...*Value) *Stage {
	stage := &Stage{
		stageType: stageType,
		inputs:    inputs,
		output:    b.newValue(outputShape),
		config:    config,
	}
	b.stages = append(b.stages, stage)
	return stage
}

// newConvParameters creates the kernel and bias parameters of a new Conv2D stage, in the current scope.
func (b *Builder) newConvParameters(kernelSize [2]int, inputChannels, filters int) (kernel, bias *Parameter) {
	scope := utils.ScopedName(b.scope...)
	convName := utils.ScopedName(scope, fmt.Sprintf("conv_%d", b.convCount[scope]))
	b.convCount[scope]++

	kernelShape := shapes.Make(ComputeDType, kernelSize[0], kernelSize[1], inputChannels, filters)
	kernel = &Parameter{
		name:  utils.ScopedName(convName, "kernel"),
		shape: kernelShape,
		flat:  glorotUniform(b.rng, kernelShape),
	}
	bias = &Parameter{
		name:  utils.ScopedName(convName, "bias"),
		shape: shapes.Make(ComputeDType, filters),
		flat:  make([]float32, filters),
	}
	return
}

// Build checks the validity of the graph and returns it, with the given value as its output.
//
// After Build the builder can no longer be changed. Stages not contributing to the output are
// dropped from the graph, and so are their parameters.
func (b *Builder) Build(output *Value) (*Graph, error) {
	if b.built {
		return nil, errors.Errorf("Builder.Build already called for %q", b.name)
	}
	if b.name == "" {
		return nil, errors.New("graph name must not be empty")
	}
	if b.input == nil {
		return nil, errors.Errorf("graph %q has no input, see Builder.Input", b.name)
	}
	if output == nil || output.builder != b {
		return nil, errors.Errorf("output of graph %q must be a value created by its builder", b.name)
	}
	if output == b.input {
		return nil, errors.Errorf("graph %q has no stages", b.name)
	}
	b.built = true

	// Keep only the stages the output depends on. Stages are appended in topological order, so a
	// single backwards pass is enough.
	needed := utils.SetWith(output.id)
	var stages []*Stage
	for _, stage := range slices.Backward(b.stages) {
		if !needed.Has(stage.output.id) {
			continue
		}
		stages = append(stages, stage)
		for _, input := range stage.inputs {
			needed.Insert(input.id)
		}
	}
	slices.Reverse(stages)
	if !needed.Has(b.input.id) {
		return nil, errors.Errorf("output %s of graph %q doesn't depend on its input", output, b.name)
	}

	var parameters []*Parameter
	for _, stage := range stages {
		parameters = append(parameters, stage.Parameters()...)
	}
	return &Graph{
		name:       b.name,
		seed:       b.seed,
		input:      b.input,
		output:     output,
		stages:     stages,
		parameters: parameters,
	}, nil
}
