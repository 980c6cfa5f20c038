// Package shapeinference calculates the shape resulting from each generator stage and validates its inputs.
//
// Stage shapes are per-example image shapes (height, width, channels): the batch axis is not part of
// the graph. Every function returns an error, and an invalid shape, if the inputs are not acceptable
// for the stage.
//
// The lowering helpers (BroadcastInDim, DotGeneral, Transpose) work on shapes of any rank, and are
// used when translating stages to StableHLO operations.
package shapeinference

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/uscgan/generator/internal/utils"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
)

const (
	// ImageRank is the rank of per-example image values: height, width and channels.
	ImageRank = 3

	HeightAxis   = 0
	WidthAxis    = 1
	ChannelsAxis = 2
)

// CheckImage returns an error if shape is not a valid per-example image shape.
func CheckImage(shape shapes.Shape) error {
	if !shape.Ok() {
		return errors.Errorf("invalid shape %s", shape)
	}
	if shape.Rank() != ImageRank {
		return errors.Errorf("image values must have rank %d (height, width, channels), got shape %s", ImageRank, shape)
	}
	for axis, dim := range shape.Dimensions {
		if dim <= 0 {
			return errors.Errorf("image dimensions must be positive, got dimension %d for axis %d of shape %s", dim, axis, shape)
		}
	}
	return nil
}

// Convert returns the shape of the type-normalize stage: the same dimensions with the given dtype.
func Convert(operand shapes.Shape, dtype dtypes.DType) (output shapes.Shape, err error) {
	if err = CheckImage(operand); err != nil {
		return shapes.Invalid(), errors.WithMessage(err, "Convert")
	}
	if !utils.IsNumeric(operand.DType) {
		return shapes.Invalid(), errors.Errorf("Convert requires a numeric (integer or float) operand, got %s", operand)
	}
	if !dtype.IsFloat() {
		return shapes.Invalid(), errors.Errorf("Convert target dtype must be a float, got %s", dtype)
	}
	output = operand.Clone()
	output.DType = dtype
	return output, nil
}

// Upsample returns the shape of a nearest-neighbor upsample by an integer factor:
// (H, W, C) -> (H*factor, W*factor, C).
func Upsample(operand shapes.Shape, factor int) (output shapes.Shape, err error) {
	if err = CheckImage(operand); err != nil {
		return shapes.Invalid(), errors.WithMessage(err, "Upsample")
	}
	if factor < 1 {
		return shapes.Invalid(), errors.Errorf("Upsample factor must be >= 1, got %d", factor)
	}
	output = operand.Clone()
	output.Dimensions[HeightAxis] *= factor
	output.Dimensions[WidthAxis] *= factor
	return output, nil
}

// Conv2D returns the output shape of a 2D convolution with stride 1 and no dilation, for a kernel
// of the given spatial size and number of filters (output channels).
//
// The kernel parameter has shape [kernelHeight, kernelWidth, inputChannels, filters].
func Conv2D(input shapes.Shape, kernelSize [2]int, filters int, padding types.Padding) (output shapes.Shape, err error) {
	// Convenient error returns.
	errorf := func(format string, args ...any) (shapes.Shape, error) {
		return shapes.Invalid(), errors.Errorf("Conv2D: "+format, args...)
	}
	if err = CheckImage(input); err != nil {
		return shapes.Invalid(), errors.WithMessage(err, "Conv2D")
	}
	if !input.DType.IsFloat() {
		return errorf("input must be a float, got %s -- use Convert first", input)
	}
	if filters < 1 {
		return errorf("number of filters must be >= 1, got %d", filters)
	}
	if !padding.IsAPadding() {
		return errorf("invalid padding %s", padding)
	}
	output = input.Clone()
	output.Dimensions[ChannelsAxis] = filters
	for spatialIdx, axis := range []int{HeightAxis, WidthAxis} {
		kernelDim := kernelSize[spatialIdx]
		if kernelDim < 1 {
			return errorf("kernel size must be >= 1 on every spatial axis, got %v", kernelSize)
		}
		lo, hi := padding.Split(kernelDim)
		paddedDim := input.Dimensions[axis] + lo + hi
		if kernelDim > paddedDim {
			return errorf("kernel dimension %d for axis %d is larger than padded input dimension %d (%s padding) for input shape %s",
				kernelDim, axis, paddedDim, padding, input)
		}
		output.Dimensions[axis] = paddedDim - kernelDim + 1
	}
	return output, nil
}

// ReduceSum returns the shape of the sum over the channels axis, kept as a single channel: (H, W, C) -> (H, W, 1).
func ReduceSum(operand shapes.Shape) (output shapes.Shape, err error) {
	if err = CheckImage(operand); err != nil {
		return shapes.Invalid(), errors.WithMessage(err, "ReduceSum")
	}
	if !operand.DType.IsFloat() {
		return shapes.Invalid(), errors.Errorf("ReduceSum requires a float operand, got %s", operand)
	}
	output = operand.Clone()
	output.Dimensions[ChannelsAxis] = 1
	return output, nil
}

// Concatenate calculates the output shape of a Concatenate operation.
// It takes a slice of input shapes and the axis along which to concatenate.
//
// All axes other than the concatenation axis must match, and so must the dtypes.
func Concatenate(inputs []shapes.Shape, axis int) (output shapes.Shape, err error) {
	if len(inputs) == 0 {
		return shapes.Invalid(), errors.Errorf("Concatenate requires at least one input shape")
	}

	// Initialize output dimensions with the first shape.
	firstShape := inputs[0]
	dtype := firstShape.DType
	rank := firstShape.Rank()
	output = firstShape.Clone()
	if dtype == dtypes.InvalidDType {
		return shapes.Invalid(), errors.Errorf("invalid shape %s for first input of Concatenate", firstShape)
	}
	if axis, err = AdjustAxisToRank(axis, rank); err != nil {
		return shapes.Invalid(), errors.WithMessagef(err, "invalid concatenation axis for shapes with rank %d", rank)
	}
	if len(inputs) == 1 {
		return firstShape, nil
	}

	// Validate further inputs and accumulate the concatenation axis size.
	for i := 1; i < len(inputs); i++ {
		currentShape := inputs[i]
		if currentShape.DType == dtypes.InvalidDType {
			return shapes.Invalid(), errors.Errorf("invalid shape %s for input #%d of Concatenate", currentShape, i)
		}
		if currentShape.DType != dtype {
			return shapes.Invalid(), errors.Errorf("mismatched DTypes for Concatenate: input #0 has %s, input #%d has %s",
				dtype, i, currentShape.DType)
		}
		if currentShape.Rank() != rank {
			return shapes.Invalid(), errors.Errorf("mismatched ranks for Concatenate: input #0 has rank %d, input #%d has rank %d",
				rank, i, currentShape.Rank())
		}
		for d := range rank {
			if d == axis {
				output.Dimensions[d] += currentShape.Dimensions[d]
			} else if currentShape.Dimensions[d] != output.Dimensions[d] {
				return shapes.Invalid(), errors.Errorf("mismatched dimensions for Concatenate at axis %d (non-concatenation axis): input #0 has %d, input #%d has %d",
					d, output.Dimensions[d], i, currentShape.Dimensions[d])
			}
		}
	}
	return output, nil
}

// Resize returns the shape of the bicubic resize to (height, width): (H, W, C) -> (height, width, C).
func Resize(operand shapes.Shape, height, width int) (output shapes.Shape, err error) {
	if err = CheckImage(operand); err != nil {
		return shapes.Invalid(), errors.WithMessage(err, "Resize")
	}
	if !operand.DType.IsFloat() {
		return shapes.Invalid(), errors.Errorf("Resize requires a float operand, got %s", operand)
	}
	if height <= 0 || width <= 0 {
		return shapes.Invalid(), errors.Errorf("Resize target size must be positive, got (%d, %d)", height, width)
	}
	output = operand.Clone()
	output.Dimensions[HeightAxis] = height
	output.Dimensions[WidthAxis] = width
	return output, nil
}

// AdjustAxisToRank returns a positive axis, adjusting negative numbers to the correct rank.
func AdjustAxisToRank(axis, rank int) (int, error) {
	if axis < -rank || axis >= rank {
		return -1, errors.Errorf("axis %d is out of range for the rank %d", axis, rank)
	}
	if axis < 0 {
		axis += rank
	}
	return axis, nil
}
