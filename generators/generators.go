// Package generators is the generator architecture factory: it builds the generator graphs of the
// super-resolution / colorization GAN, one function per architecture (Strategy).
//
// Every strategy takes the same arguments and honours the same contract: the graph takes a batch of
// (H, W, C) images and returns a batch of (H_out, W_out, 3) non-negative images. All strategies start
// with the type-normalize and upsample stages, and end with a corner-aligned bicubic resize to the
// output size. They differ in their branches, convolution depth and kernel multiplicity, see Strategy.
//
// Each call returns a new graph, owning its own parameters.
package generators

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/uscgan/generator"
	"github.com/uscgan/generator/internal/utils"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
)

// Strategies returns all the strategies the factory can build.
func Strategies() []Strategy {
	return slices.Clone(StrategyValues())
}

// Construct builds the generator graph of the given strategy.
//
// inputShape is the per-example input shape (height, width, channels), outputSize is the
// (height, width) of the generated images, and resizeFactor the integer upsample factor applied
// before the convolutions.
//
// It returns a *ShapeError if inputShape is malformed, and a *ConfigError if resizeFactor < 1,
// outputSize has a non-positive dimension, the strategy is unknown or an option is invalid.
// Use errors.As to inspect them.
func Construct(strategy Strategy, inputShape []int, outputSize [2]int, resizeFactor int, opts ...Option) (*generator.Graph, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	shape, err := validate(strategy, inputShape, outputSize, resizeFactor, o)
	if err != nil {
		return nil, err
	}
	name := o.name
	if name == "" {
		name = strategy.String()
	}

	b := generator.New(name).WithSeed(o.seed)
	x, err := normalizeAndUpsample(b, shape, resizeFactor)
	if err != nil {
		return nil, errors.WithMessagef(err, "building %s generator", strategy)
	}
	if x, err = recipes[strategy](b, x); err != nil {
		return nil, errors.WithMessagef(err, "building %s generator", strategy)
	}
	if x, err = resize(x, outputSize); err != nil {
		return nil, errors.WithMessagef(err, "building %s generator", strategy)
	}
	g, err := b.Build(x)
	if err != nil {
		return nil, errors.WithMessagef(err, "building %s generator", strategy)
	}
	if err := g.OutputShape().Check(generator.ComputeDType, outputSize[0], outputSize[1], OutputChannels); err != nil {
		return nil, errors.WithMessagef(err, "%s generator output", strategy)
	}
	if err := checkNonNegative(g); err != nil {
		return nil, errors.WithMessagef(err, "%s generator output", strategy)
	}
	return g, nil
}

// checkNonNegative returns an error if a convolution of g can produce negative values.
func checkNonNegative(g *generator.Graph) error {
	for _, stage := range g.Stages() {
		if stage.Type() != types.StageConv2D {
			continue
		}
		if activation := stage.Config().Activation; !activation.NonNegative() {
			return errors.Errorf("stage %s uses activation %s, which can produce negative values", stage, activation)
		}
	}
	return nil
}

// validate the factory arguments, and returns the input shape.
func validate(strategy Strategy, inputShape []int, outputSize [2]int, resizeFactor int, o *options) (shapes.Shape, error) {
	shapeErr := func(reason string) (shapes.Shape, error) {
		return shapes.Invalid(), errors.WithStack(&ShapeError{Shape: slices.Clone(inputShape), Reason: reason})
	}
	configErr := func(field string, value any, reason string) (shapes.Shape, error) {
		return shapes.Invalid(), errors.WithStack(&ConfigError{Field: field, Value: value, Reason: reason})
	}
	if len(inputShape) != 3 {
		return shapeErr("expected 3 dimensions (height, width, channels)")
	}
	for _, dim := range inputShape {
		if dim <= 0 {
			return shapeErr("all dimensions must be positive")
		}
	}
	if _, found := recipes[strategy]; !found {
		return configErr("strategy", strategy, "unknown strategy")
	}
	if resizeFactor < 1 {
		return configErr("resize factor", resizeFactor, "must be >= 1")
	}
	if outputSize[0] <= 0 || outputSize[1] <= 0 {
		return configErr("output size", outputSize, "dimensions must be positive")
	}
	if !utils.IsNumeric(o.inputDType) {
		return configErr("input dtype", o.inputDType, "must be an integer or float dtype")
	}
	return shapes.Make(o.inputDType, inputShape...), nil
}

// Baseline builds the StrategyBaseline generator, see Construct.
func Baseline(inputShape []int, outputSize [2]int, resizeFactor int, opts ...Option) (*generator.Graph, error) {
	return Construct(StrategyBaseline, inputShape, outputSize, resizeFactor, opts...)
}

// ThreeBranch builds the StrategyThreeBranch generator, see Construct.
func ThreeBranch(inputShape []int, outputSize [2]int, resizeFactor int, opts ...Option) (*generator.Graph, error) {
	return Construct(StrategyThreeBranch, inputShape, outputSize, resizeFactor, opts...)
}

// ThreeBranchTwoLayer builds the StrategyThreeBranchTwoLayer generator, see Construct.
func ThreeBranchTwoLayer(inputShape []int, outputSize [2]int, resizeFactor int, opts ...Option) (*generator.Graph, error) {
	return Construct(StrategyThreeBranchTwoLayer, inputShape, outputSize, resizeFactor, opts...)
}

// ThreeBranchMultiKernel builds the StrategyThreeBranchMultiKernel generator, see Construct.
func ThreeBranchMultiKernel(inputShape []int, outputSize [2]int, resizeFactor int, opts ...Option) (*generator.Graph, error) {
	return Construct(StrategyThreeBranchMultiKernel, inputShape, outputSize, resizeFactor, opts...)
}

// TwoLayerBaseline builds the StrategyTwoLayerBaseline generator, see Construct.
func TwoLayerBaseline(inputShape []int, outputSize [2]int, resizeFactor int, opts ...Option) (*generator.Graph, error) {
	return Construct(StrategyTwoLayerBaseline, inputShape, outputSize, resizeFactor, opts...)
}

// TwoLayerMultiFilter builds the StrategyTwoLayerMultiFilter generator, see Construct.
func TwoLayerMultiFilter(inputShape []int, outputSize [2]int, resizeFactor int, opts ...Option) (*generator.Graph, error) {
	return Construct(StrategyTwoLayerMultiFilter, inputShape, outputSize, resizeFactor, opts...)
}
