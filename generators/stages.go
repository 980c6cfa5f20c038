package generators

import (
	"github.com/pkg/errors"
	"github.com/uscgan/generator"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
)

// NumColorBranches is the number of branches of the multi-branch strategies: one per output color.
const NumColorBranches = 3

// ColorBranchNames are the scopes of the parameters of each color branch, in output channel order.
var ColorBranchNames = [NumColorBranches]string{"red", "green", "blue"}

// OutputChannels of every generated image.
const OutputChannels = 3

// convSpec is one (kernel size, filter count) pair of a multi-kernel convolution.
type convSpec struct {
	kernelSize int
	filters    int
}

// multiKernelSizes are the square kernel sizes of the multi-kernel strategies.
var multiKernelSizes = []int{2, 3, 5, 7}

func multiKernelSpecs(filters int) []convSpec {
	specs := make([]convSpec, len(multiKernelSizes))
	for i, k := range multiKernelSizes {
		specs[i] = convSpec{kernelSize: k, filters: filters}
	}
	return specs
}

// normalizeAndUpsample declares the graph input, casts it to the compute dtype and upsamples it.
func normalizeAndUpsample(b *generator.Builder, inputShape shapes.Shape, factor int) (*generator.Value, error) {
	x, err := b.Input(inputShape)
	if err != nil {
		return nil, err
	}
	if x, err = generator.Convert(x); err != nil {
		return nil, err
	}
	return generator.Upsample(x, factor)
}

// conv is a SAME padded, softplus activated square convolution.
func conv(x *generator.Value, spec convSpec) (*generator.Value, error) {
	return generator.Conv2D(x, spec.filters, [2]int{spec.kernelSize, spec.kernelSize},
		types.PaddingSame, types.ActivationSoftplus)
}

// multiKernelConv applies one convolution per spec to the same input, and returns the feature
// values in the order of the specs.
func multiKernelConv(x *generator.Value, specs []convSpec) ([]*generator.Value, error) {
	features := make([]*generator.Value, len(specs))
	for i, spec := range specs {
		var err error
		features[i], err = conv(x, spec)
		if err != nil {
			return nil, errors.WithMessagef(err, "convolution with kernel %dx%d", spec.kernelSize, spec.kernelSize)
		}
	}
	return features, nil
}

// sumReduce collapses the channels with an unweighted sum.
func sumReduce(x *generator.Value) (*generator.Value, error) {
	return generator.ReduceSum(x)
}

// singleFilterReduce collapses the channels with a learned 1x1 convolution with one filter.
func singleFilterReduce(x *generator.Value) (*generator.Value, error) {
	return conv(x, convSpec{kernelSize: 1, filters: 1})
}

// concatThenReduce concatenates features along the channels, and reduces them with a learned 1x1
// convolution to the given number of channels.
func concatThenReduce(features []*generator.Value, channels int) (*generator.Value, error) {
	x, err := generator.Concatenate(features...)
	if err != nil {
		return nil, err
	}
	return conv(x, convSpec{kernelSize: 1, filters: channels})
}

// colorBranches runs branch once per output color, each in its own parameter scope, over the same
// input, and concatenates the single channel results in color order.
func colorBranches(b *generator.Builder, x *generator.Value, branch func(x *generator.Value) (*generator.Value, error)) (*generator.Value, error) {
	var outputs [NumColorBranches]*generator.Value
	for i, name := range ColorBranchNames {
		err := b.WithScope(name, func() error {
			var err error
			outputs[i], err = branch(x)
			return err
		})
		if err != nil {
			return nil, errors.WithMessagef(err, "%s branch", name)
		}
		if channels := outputs[i].Shape().Dim(-1); channels != 1 {
			return nil, errors.Errorf("%s branch must output a single channel, got %s", name, outputs[i].Shape())
		}
	}
	return combineBranches(outputs)
}

// combineBranches concatenates the branch outputs along the channels, preserving their order.
func combineBranches(branches [NumColorBranches]*generator.Value) (*generator.Value, error) {
	return generator.Concatenate(branches[:]...)
}

// resize is the terminal stage of every strategy.
func resize(x *generator.Value, outputSize [2]int) (*generator.Value, error) {
	return generator.ResizeBicubic(x, outputSize[0], outputSize[1])
}

// recipe builds the strategy specific stages between the upsample and the resize stages.
type recipe func(b *generator.Builder, x *generator.Value) (*generator.Value, error)

var recipes = map[Strategy]recipe{
	StrategyBaseline: func(_ *generator.Builder, x *generator.Value) (*generator.Value, error) {
		return conv(x, convSpec{kernelSize: 3, filters: OutputChannels})
	},

	StrategyThreeBranch: func(b *generator.Builder, x *generator.Value) (*generator.Value, error) {
		return colorBranches(b, x, func(x *generator.Value) (*generator.Value, error) {
			features, err := conv(x, convSpec{kernelSize: 3, filters: 8})
			if err != nil {
				return nil, err
			}
			return sumReduce(features)
		})
	},

	StrategyThreeBranchTwoLayer: func(b *generator.Builder, x *generator.Value) (*generator.Value, error) {
		return colorBranches(b, x, func(x *generator.Value) (*generator.Value, error) {
			features, err := conv(x, convSpec{kernelSize: 2, filters: 8})
			if err != nil {
				return nil, err
			}
			return singleFilterReduce(features)
		})
	},

	StrategyThreeBranchMultiKernel: func(b *generator.Builder, x *generator.Value) (*generator.Value, error) {
		return colorBranches(b, x, func(x *generator.Value) (*generator.Value, error) {
			features, err := multiKernelConv(x, multiKernelSpecs(8))
			if err != nil {
				return nil, err
			}
			return concatThenReduce(features, 1)
		})
	},

	StrategyTwoLayerBaseline: func(_ *generator.Builder, x *generator.Value) (*generator.Value, error) {
		features, err := conv(x, convSpec{kernelSize: 3, filters: 32})
		if err != nil {
			return nil, err
		}
		return conv(features, convSpec{kernelSize: 1, filters: OutputChannels})
	},

	StrategyTwoLayerMultiFilter: func(_ *generator.Builder, x *generator.Value) (*generator.Value, error) {
		features, err := multiKernelConv(x, multiKernelSpecs(4))
		if err != nil {
			return nil, err
		}
		return concatThenReduce(features, OutputChannels)
	},
}
