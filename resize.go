package generator

import "math"

// bicubicCoefficient is the "a" parameter of the Keys cubic convolution kernel.
const bicubicCoefficient = -0.75

// keysKernel returns the weight of the Keys cubic convolution kernel at distance x.
func keysKernel(x float64) float64 {
	const a = bicubicCoefficient
	x = math.Abs(x)
	switch {
	case x <= 1:
		return ((a+2)*x-(a+3))*x*x + 1
	case x < 2:
		return ((a*x-5*a)*x+8*a)*x - 4*a
	}
	return 0
}

// resizeWeights returns the interpolation matrix of a corner-aligned bicubic resize of one axis
// from inSize to outSize, shaped [outSize, inSize] in row-major order: out = weights · in.
//
// Output position o samples the input at o·(inSize-1)/(outSize-1), so the first and last elements
// of both axes are aligned. The 4 taps around the sample point are clamped to the valid range,
// which folds the weights of out-of-range taps into the edge elements.
func resizeWeights(inSize, outSize int) []float64 {
	weights := make([]float64, outSize*inSize)
	scale := float64(inSize) / float64(outSize)
	if outSize > 1 {
		scale = float64(inSize-1) / float64(outSize-1)
	}
	clamp := func(idx int) int {
		return max(0, min(idx, inSize-1))
	}
	for o := range outSize {
		in := float64(o) * scale
		inLoc := math.Floor(in)
		delta := in - inLoc
		base := int(inLoc)
		row := weights[o*inSize : (o+1)*inSize]
		row[clamp(base-1)] += keysKernel(1 + delta)
		row[clamp(base)] += keysKernel(delta)
		row[clamp(base+1)] += keysKernel(1 - delta)
		row[clamp(base+2)] += keysKernel(2 - delta)
	}
	return weights
}
