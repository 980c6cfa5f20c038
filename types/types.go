// Package types defines the enumerated capabilities of generator stages: the kind of each stage,
// its activation and its padding policy.
package types

import "math"

// StageType enumerates the structural units a generator graph is composed of.
type StageType int

//go:generate go tool enumer -type=StageType -trimprefix=Stage -output=gen_stagetype_enumer.go types.go

const (
	StageInvalid StageType = iota

	// StageConvert casts the input to a floating point dtype (type-normalize stage).
	StageConvert

	// StageUpsample replicates pixels in blocks of factor x factor (nearest-neighbor).
	StageUpsample

	// StageConv2D is a 2D convolution with bias followed by an activation.
	StageConv2D

	// StageReduceSum sums all channels into a single one, without learned weights.
	StageReduceSum

	// StageConcatenate concatenates values along the channels axis.
	StageConcatenate

	// StageResize is the corner-aligned bicubic resize to the exact target size.
	StageResize
)

// Activation is the elementwise nonlinearity applied after a convolution.
type Activation int

//go:generate go tool enumer -type=Activation -trimprefix=Activation -transform=snake -output=gen_activation_enumer.go types.go

const (
	// ActivationLinear is the identity, no nonlinearity.
	ActivationLinear Activation = iota

	// ActivationSoftplus is log(1+exp(x)): smooth and always non-negative.
	ActivationSoftplus
)

// NonNegative returns whether the activation guarantees outputs >= 0.
func (a Activation) NonNegative() bool {
	return a == ActivationSoftplus
}

// Apply the activation to x.
func (a Activation) Apply(x float64) float64 {
	switch a {
	case ActivationSoftplus:
		// Stable form: max(x, 0) + log1p(exp(-|x|)).
		return math.Max(x, 0) + math.Log1p(math.Exp(-math.Abs(x)))
	default:
		return x
	}
}

// Padding policy of a convolution.
type Padding int

//go:generate go tool enumer -type=Padding -trimprefix=Padding -transform=snake -output=gen_padding_enumer.go types.go

const (
	// PaddingSame zero-pads the input so the spatial dimensions are preserved, whatever the kernel size.
	// Odd padding totals (even kernels) put the extra element on the trailing edge.
	PaddingSame Padding = iota

	// PaddingValid doesn't pad: the output shrinks by kernelSize-1 on each spatial axis.
	PaddingValid
)

// Split returns the padding added before (lo) and after (hi) an axis for the given kernel size.
func (p Padding) Split(kernelSize int) (lo, hi int) {
	if p != PaddingSame || kernelSize <= 1 {
		return 0, 0
	}
	total := kernelSize - 1
	lo = total / 2
	hi = total - lo
	return
}
