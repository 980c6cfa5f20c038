package generator

import (
	"github.com/pkg/errors"
	"github.com/uscgan/generator/shapeinference"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
	"gonum.org/v1/gonum/mat"
)

// Reference implementations of the stages, working on the flat values of one example, shaped
// (height, width, channels) in row-major order.

func upsampleKernel(x []float32, shape shapes.Shape, factor int) []float32 {
	height, width, channels := shape.Dim(0), shape.Dim(1), shape.Dim(2)
	outWidth := width * factor
	out := make([]float32, len(x)*factor*factor)
	for h := range height * factor {
		srcRow := x[(h/factor)*width*channels : (h/factor+1)*width*channels]
		dstRow := out[h*outWidth*channels : (h+1)*outWidth*channels]
		for w := range outWidth {
			copy(dstRow[w*channels:(w+1)*channels], srcRow[(w/factor)*channels:(w/factor+1)*channels])
		}
	}
	return out
}

// conv2DKernel converts the input patches to a matrix (one row per output position, "im2col") and
// multiplies it by the kernel reshaped to [kernelHeight*kernelWidth*inputChannels, filters].
func conv2DKernel(x []float32, inputShape, outputShape shapes.Shape, config StageConfig) []float32 {
	height, width, inChannels := inputShape.Dim(0), inputShape.Dim(1), inputShape.Dim(2)
	outHeight, outWidth, filters := outputShape.Dim(0), outputShape.Dim(1), outputShape.Dim(2)
	kh, kw := config.KernelSize[0], config.KernelSize[1]
	padTop, _ := config.Padding.Split(kh)
	padLeft, _ := config.Padding.Split(kw)

	patchSize := kh * kw * inChannels
	patches := mat.NewDense(outHeight*outWidth, patchSize, nil)
	for oh := range outHeight {
		for ow := range outWidth {
			row := patches.RawRowView(oh*outWidth + ow)
			for i := range kh {
				h := oh + i - padTop
				if h < 0 || h >= height {
					continue
				}
				for j := range kw {
					w := ow + j - padLeft
					if w < 0 || w >= width {
						continue
					}
					src := x[(h*width+w)*inChannels : (h*width+w+1)*inChannels]
					dst := row[(i*kw+j)*inChannels : (i*kw+j+1)*inChannels]
					for c, v := range src {
						dst[c] = float64(v)
					}
				}
			}
		}
	}

	kernel := mat.NewDense(patchSize, filters, toFloat64(config.Kernel.flat))
	var product mat.Dense
	product.Mul(patches, kernel)

	bias := config.Bias.flat
	out := make([]float32, outHeight*outWidth*filters)
	for pos := range outHeight * outWidth {
		row := product.RawRowView(pos)
		for f := range filters {
			out[pos*filters+f] = float32(config.Activation.Apply(row[f] + float64(bias[f])))
		}
	}
	return out
}

func reduceSumKernel(x []float32, shape shapes.Shape) []float32 {
	channels := shape.Dim(shapeinference.ChannelsAxis)
	out := make([]float32, len(x)/channels)
	for pos := range out {
		var sum float32
		for _, v := range x[pos*channels : (pos+1)*channels] {
			sum += v
		}
		out[pos] = sum
	}
	return out
}

func concatenateKernel(operands [][]float32, operandsShapes []shapes.Shape, outputShape shapes.Shape) []float32 {
	outChannels := outputShape.Dim(shapeinference.ChannelsAxis)
	numPositions := outputShape.Dim(0) * outputShape.Dim(1)
	out := make([]float32, numPositions*outChannels)
	var offset int
	for i, operand := range operands {
		channels := operandsShapes[i].Dim(shapeinference.ChannelsAxis)
		for pos := range numPositions {
			copy(out[pos*outChannels+offset:pos*outChannels+offset+channels], operand[pos*channels:(pos+1)*channels])
		}
		offset += channels
	}
	return out
}

// resizeKernel computes, for each channel, rowsWeights · X · colsWeightsᵀ, and clamps the result at 0.
func resizeKernel(x []float32, inputShape, outputShape shapes.Shape) []float32 {
	height, width, channels := inputShape.Dim(0), inputShape.Dim(1), inputShape.Dim(2)
	outHeight, outWidth := outputShape.Dim(0), outputShape.Dim(1)
	rowsWeights := mat.NewDense(outHeight, height, resizeWeights(height, outHeight))
	colsWeights := mat.NewDense(outWidth, width, resizeWeights(width, outWidth))

	out := make([]float32, outHeight*outWidth*channels)
	channel := mat.NewDense(height, width, nil)
	var tmp, result mat.Dense
	for c := range channels {
		for h := range height {
			for w := range width {
				channel.Set(h, w, float64(x[(h*width+w)*channels+c]))
			}
		}
		tmp.Reset()
		tmp.Mul(rowsWeights, channel)
		result.Reset()
		result.Mul(&tmp, colsWeights.T())
		for h := range outHeight {
			for w := range outWidth {
				out[(h*outWidth+w)*channels+c] = float32(max(result.At(h, w), 0))
			}
		}
	}
	return out
}

// evalStage runs the reference implementation of stage on the values of its inputs.
func evalStage(stage *Stage, inputs [][]float32) ([]float32, error) {
	input := inputs[0]
	inputShape := stage.inputs[0].shape
	outputShape := stage.output.shape
	switch stage.stageType {
	case types.StageConvert:
		return input, nil
	case types.StageUpsample:
		return upsampleKernel(input, inputShape, stage.config.Factor), nil
	case types.StageConv2D:
		return conv2DKernel(input, inputShape, outputShape, stage.config), nil
	case types.StageReduceSum:
		return reduceSumKernel(input, inputShape), nil
	case types.StageConcatenate:
		operandsShapes := make([]shapes.Shape, len(stage.inputs))
		for i, v := range stage.inputs {
			operandsShapes[i] = v.shape
		}
		return concatenateKernel(inputs, operandsShapes, outputShape), nil
	case types.StageResize:
		return resizeKernel(input, inputShape, outputShape), nil
	}
	return nil, errors.Errorf("stage type %s not supported by the evaluator", stage.stageType)
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
