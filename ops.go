package generator

import (
	"github.com/pkg/errors"
	"github.com/uscgan/generator/shapeinference"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
)

// Convert x to ComputeDType: the type-normalize stage.
//
// Integer inputs are converted to their float value (so uint8 pixels remain in [0, 255]).
func Convert(x *Value) (*Value, error) {
	stageType := types.StageConvert
	if err := x.builderOf().checkOperands(stageType, x); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.Convert(x.shape, ComputeDType)
	if err != nil {
		return nil, err
	}
	return x.builder.addStage(stageType, StageConfig{DType: ComputeDType}, outputShape, x).output, nil
}

// Upsample x by the given integer factor with nearest-neighbor replication:
// (H, W, C) -> (H*factor, W*factor, C).
//
// A factor of 1 is a valid identity upsample.
func Upsample(x *Value, factor int) (*Value, error) {
	stageType := types.StageUpsample
	if err := x.builderOf().checkOperands(stageType, x); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.Upsample(x.shape, factor)
	if err != nil {
		return nil, err
	}
	return x.builder.addStage(stageType, StageConfig{Factor: factor}, outputShape, x).output, nil
}

// Conv2D adds a 2D convolution (stride 1, no dilation) of x with a new kernel of the given spatial
// size and number of filters, plus a bias, followed by the activation.
//
// The kernel and bias are new parameters owned by the graph: the kernel is initialized with
// Glorot-uniform values, the bias with zeros.
//
// With types.PaddingSame the spatial dimensions are preserved: (H, W, C) -> (H, W, filters).
func Conv2D(x *Value, filters int, kernelSize [2]int, padding types.Padding, activation types.Activation) (*Value, error) {
	stageType := types.StageConv2D
	b := x.builderOf()
	if err := b.checkOperands(stageType, x); err != nil {
		return nil, err
	}
	if !activation.IsAActivation() {
		return nil, errors.Errorf("Conv2D: invalid activation %s", activation)
	}
	outputShape, err := shapeinference.Conv2D(x.shape, kernelSize, filters, padding)
	if err != nil {
		return nil, err
	}
	kernel, bias := b.newConvParameters(kernelSize, x.shape.Dim(shapeinference.ChannelsAxis), filters)
	config := StageConfig{
		KernelSize: kernelSize,
		Filters:    filters,
		Padding:    padding,
		Activation: activation,
		Kernel:     kernel,
		Bias:       bias,
	}
	return b.addStage(stageType, config, outputShape, x).output, nil
}

// ReduceSum sums all the channels of x into a single one, without learned weights: (H, W, C) -> (H, W, 1).
func ReduceSum(x *Value) (*Value, error) {
	stageType := types.StageReduceSum
	if err := x.builderOf().checkOperands(stageType, x); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.ReduceSum(x.shape)
	if err != nil {
		return nil, err
	}
	return x.builder.addStage(stageType, StageConfig{}, outputShape, x).output, nil
}

// Concatenate operands along the channels axis, preserving their order: N values shaped (H, W, C_i)
// become one (H, W, sum(C_i)).
//
// If there is only one operand, it is returned and this is a no-op.
func Concatenate(operands ...*Value) (*Value, error) {
	stageType := types.StageConcatenate
	if len(operands) == 0 {
		return nil, errors.New("Concatenate requires at least one operand")
	}
	b := operands[0].builderOf()
	if err := b.checkOperands(stageType, operands...); err != nil {
		return nil, err
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	operandsShapes := make([]shapes.Shape, len(operands))
	for i, operand := range operands {
		operandsShapes[i] = operand.shape
	}
	outputShape, err := shapeinference.Concatenate(operandsShapes, shapeinference.ChannelsAxis)
	if err != nil {
		return nil, err
	}
	return b.addStage(stageType, StageConfig{}, outputShape, operands...).output, nil
}

// ResizeBicubic resizes x to exactly (height, width) with bicubic interpolation and corner-aligned
// sampling: the corner pixels of input and output map to the same positions, so resizing to the
// current size is the identity.
//
// Bicubic overshoot can make values negative: results are clamped to be >= 0.
func ResizeBicubic(x *Value, height, width int) (*Value, error) {
	stageType := types.StageResize
	if err := x.builderOf().checkOperands(stageType, x); err != nil {
		return nil, err
	}
	outputShape, err := shapeinference.Resize(x.shape, height, width)
	if err != nil {
		return nil, err
	}
	return x.builder.addStage(stageType, StageConfig{Height: height, Width: width}, outputShape, x).output, nil
}

// nilBuilder is used to report errors about nil values.
var nilBuilder = &Builder{name: "<nil>"}

// builderOf returns the builder of the value, or a placeholder whose checks report the nil operand.
func (v *Value) builderOf() *Builder {
	if v == nil {
		return nilBuilder
	}
	return v.builder
}
