package generator

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/uscgan/generator/internal/optypes"
	"github.com/uscgan/generator/internal/utils"
	"github.com/uscgan/generator/shapeinference"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
)

// IndentationStep used when writing the StableHLO program.
const IndentationStep = "  "

// InputName is the name of the image batch argument of the lowered "main" function.
const InputName = "input"

// StableHLO lowers the graph to a StableHLO program for the given batch size, ready to be compiled
// by a PJRT plugin.
//
// The "main" function takes the image batch shaped (batchSize, H, W, C) in the input dtype, followed
// by one argument per parameter, in the order of Graph.Parameters. It returns the output batch
// shaped (batchSize, H_out, W_out, C_out).
func (g *Graph) StableHLO(batchSize int) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.WriteStableHLO(&buf, batchSize); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteStableHLO writes the StableHLO program of the graph for the given batch size, see Graph.StableHLO.
func (g *Graph) WriteStableHLO(writer io.Writer, batchSize int) error {
	if batchSize < 1 {
		return errors.Errorf("graph %q: batch size must be >= 1 to lower to StableHLO, got %d", g.name, batchSize)
	}
	fn, err := g.lower(batchSize)
	if err != nil {
		return errors.WithMessagef(err, "lowering graph %q to StableHLO", g.name)
	}
	var werr error
	w := func(format string, args ...any) {
		if werr != nil {
			// No op if an error was encountered earlier
			return
		}
		_, werr = fmt.Fprintf(writer, format, args...)
	}
	w("module @%s {\n", NormalizeIdentifier(g.name))
	if werr == nil {
		werr = fn.Write(writer, IndentationStep)
	}
	w("\n}\n")
	return werr
}

// hloValue is a value of the lowered function: an argument or the output of a statement.
type hloValue struct {
	name  string
	shape shapes.Shape
}

// Write implements elementWriter.
func (v *hloValue) Write(writer io.Writer, _ string) error {
	_, err := fmt.Fprintf(writer, "%%%s", v.name)
	return err
}

type elementWriter interface {
	Write(writer io.Writer, indentation string) error
}

// attribute of a statement. Attributes are kept in a slice so they are written in a stable order.
type attribute struct {
	key   string
	value any
}

// hloStatement is one StableHLO operation of the lowered function.
type hloStatement struct {
	opType     optypes.OpType
	inputs     []*hloValue
	attributes []attribute
	output     *hloValue
}

// Write the statement in the StableHLO generic form, e.g.:
//
//	%5 = "stablehlo.add"(%3, %4) : (tensor<1x8x8x3xf32>, tensor<1x8x8x3xf32>) -> tensor<1x8x8x3xf32>
func (s *hloStatement) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}

	w("%s", indentation)
	if s.output != nil {
		we(s.output)
		w(" = ")
	}
	w("%q(", s.opType.ToStableHLO())
	for i, input := range s.inputs {
		if i > 0 {
			w(", ")
		}
		we(input)
	}
	w(")")

	if len(s.attributes) > 0 {
		w("{")
		for i, attr := range s.attributes {
			if i > 0 {
				w(", ")
			}
			w("%s = %s", attr.key, literalToStableHLO(attr.value))
		}
		w("}")
	}

	w(" : (")
	for i, input := range s.inputs {
		if i > 0 {
			w(", ")
		}
		w("%s", input.shape.ToStableHLO())
	}
	w(") -> ")
	if s.output == nil {
		w("()")
	} else {
		w("%s", s.output.shape.ToStableHLO())
	}
	return err
}

// hloFunction is the lowered "main" function.
type hloFunction struct {
	inputs     []*hloValue
	statements []*hloStatement
	output     *hloValue
	nextID     int
}

func (fn *hloFunction) newValue(shape shapes.Shape) *hloValue {
	v := &hloValue{name: fmt.Sprint(fn.nextID), shape: shape}
	fn.nextID++
	return v
}

// addOp adds a statement with the given output shape and returns its output value.
func (fn *hloFunction) addOp(opType optypes.OpType, outputShape shapes.Shape, inputs ...*hloValue) *hloStatement {
	stmt := &hloStatement{
		opType: opType,
		inputs: inputs,
		output: fn.newValue(outputShape),
	}
	fn.statements = append(fn.statements, stmt)
	return stmt
}

func (fn *hloFunction) constant(shape shapes.Shape, flat []float32) *hloValue {
	stmt := fn.addOp(optypes.Constant, shape)
	stmt.attributes = []attribute{{"value", newFloatDenseLiteral(shape, flat)}}
	return stmt.output
}

func (fn *hloFunction) splat(shape shapes.Shape, value float32) *hloValue {
	return fn.constant(shape, []float32{value})
}

func (fn *hloFunction) unary(opType optypes.OpType, x *hloValue) *hloValue {
	return fn.addOp(opType, x.shape, x).output
}

func (fn *hloFunction) binary(opType optypes.OpType, lhs, rhs *hloValue) *hloValue {
	return fn.addOp(opType, lhs.shape, lhs, rhs).output
}

func (fn *hloFunction) broadcastInDim(x *hloValue, target shapes.Shape, axesMapping []int) (*hloValue, error) {
	if err := shapeinference.BroadcastInDim(x.shape, target, axesMapping); err != nil {
		return nil, err
	}
	stmt := fn.addOp(optypes.BroadcastInDim, target, x)
	stmt.attributes = []attribute{{"broadcast_dimensions", intSliceToArrayI64StableHLO(axesMapping)}}
	return stmt.output, nil
}

func (fn *hloFunction) transpose(x *hloValue, permutation ...int) (*hloValue, error) {
	outputShape, err := shapeinference.Transpose(x.shape, permutation)
	if err != nil {
		return nil, err
	}
	stmt := fn.addOp(optypes.Transpose, outputShape, x)
	stmt.attributes = []attribute{{"permutation", intSliceToArrayI64StableHLO(permutation)}}
	return stmt.output, nil
}

// dotGeneral contracts the given axes of lhs and rhs, without batch axes.
func (fn *hloFunction) dotGeneral(lhs *hloValue, lhsContractingAxes []int, rhs *hloValue, rhsContractingAxes []int) (*hloValue, error) {
	outputShape, err := shapeinference.DotGeneral(lhs.shape, lhsContractingAxes, rhs.shape, rhsContractingAxes)
	if err != nil {
		return nil, err
	}
	stmt := fn.addOp(optypes.DotGeneral, outputShape, lhs, rhs)
	stmt.attributes = []attribute{
		{"dot_dimension_numbers", literalStrF(
			"#stablehlo.dot<lhs_batching_dimensions = [], rhs_batching_dimensions = [], "+
				"lhs_contracting_dimensions = %s, rhs_contracting_dimensions = %s>",
			intSliceToStableHLO(lhsContractingAxes), intSliceToStableHLO(rhsContractingAxes))},
		{"precision_config", literalStr("[#stablehlo<precision DEFAULT>, #stablehlo<precision DEFAULT>]")},
	}
	return stmt.output, nil
}

// Write the function as the "main" function of the module.
func (fn *hloFunction) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter, indentation string) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}
	nextIndent := indentation + IndentationStep

	w("%sfunc.func @main(", indentation)
	for i, input := range fn.inputs {
		if i > 0 {
			w(", ")
		}
		we(input, nextIndent)
		w(": %s", input.shape.ToStableHLO())
	}
	w(") -> %s {\n", fn.output.shape.ToStableHLO())
	for _, stmt := range fn.statements {
		we(stmt, nextIndent)
		w("\n")
	}
	we(&hloStatement{opType: optypes.FuncReturn, inputs: []*hloValue{fn.output}}, nextIndent)
	w("\n%s}", indentation)
	return err
}

// lower translates every stage of the graph to StableHLO statements.
func (g *Graph) lower(batchSize int) (*hloFunction, error) {
	fn := &hloFunction{}
	values := make(map[int]*hloValue, len(g.stages)+1)
	names := utils.MakeSet[string]()

	addInput := func(name string, shape shapes.Shape) (*hloValue, error) {
		name = NormalizeIdentifier(name)
		if names.Has(name) {
			return nil, errors.Errorf("duplicate argument name %q", name)
		}
		names.Insert(name)
		v := &hloValue{name: name, shape: shape}
		fn.inputs = append(fn.inputs, v)
		return v, nil
	}
	input, err := addInput(InputName, g.input.shape.WithBatch(batchSize))
	if err != nil {
		return nil, err
	}
	values[g.input.id] = input
	parameters := make(map[*Parameter]*hloValue, len(g.parameters))
	for _, p := range g.parameters {
		if parameters[p], err = addInput(p.name, p.shape); err != nil {
			return nil, err
		}
	}

	for _, stage := range g.stages {
		inputs := make([]*hloValue, len(stage.inputs))
		for i, v := range stage.inputs {
			inputs[i] = values[v.id]
		}
		outputShape := stage.output.shape.WithBatch(batchSize)
		var output *hloValue
		switch stage.stageType {
		case types.StageConvert:
			output = fn.addOp(optypes.Convert, outputShape, inputs[0]).output
		case types.StageUpsample:
			output, err = fn.lowerUpsample(inputs[0], stage.config.Factor, outputShape)
		case types.StageConv2D:
			config := stage.config
			output, err = fn.lowerConv2D(inputs[0], parameters[config.Kernel], parameters[config.Bias], config, outputShape)
		case types.StageReduceSum:
			output, err = fn.lowerReduceSum(inputs[0])
		case types.StageConcatenate:
			stmt := fn.addOp(optypes.Concatenate, outputShape, inputs...)
			stmt.attributes = []attribute{{"dimension", int64(shapeinference.ChannelsAxis + 1)}}
			output = stmt.output
		case types.StageResize:
			output, err = fn.lowerResize(inputs[0], outputShape)
		default:
			err = errors.Errorf("stage type %s not supported", stage.stageType)
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "lowering stage %s", stage)
		}
		if !output.shape.Equal(outputShape) {
			return nil, errors.Errorf("lowering stage %s produced shape %s, expected %s", stage, output.shape, outputShape)
		}
		values[stage.output.id] = output
	}
	fn.output = values[g.output.id]
	return fn, nil
}

// lowerUpsample replicates each pixel with a broadcast to (N, H, F, W, F, C), and merges the
// replicated axes with a reshape.
func (fn *hloFunction) lowerUpsample(x *hloValue, factor int, outputShape shapes.Shape) (*hloValue, error) {
	if factor == 1 {
		return x, nil
	}
	dims := x.shape.Dimensions
	broadcastShape := shapes.Make(x.shape.DType, dims[0], dims[1], factor, dims[2], factor, dims[3])
	broadcast, err := fn.broadcastInDim(x, broadcastShape, []int{0, 1, 3, 5})
	if err != nil {
		return nil, err
	}
	return fn.addOp(optypes.Reshape, outputShape, broadcast).output, nil
}

func (fn *hloFunction) lowerConv2D(x, kernel, bias *hloValue, config StageConfig, outputShape shapes.Shape) (*hloValue, error) {
	if kernel == nil || bias == nil {
		return nil, errors.New("Conv2D parameters not declared")
	}
	padHeightLo, padHeightHi := config.Padding.Split(config.KernelSize[0])
	padWidthLo, padWidthHi := config.Padding.Split(config.KernelSize[1])
	paddings := newIntDenseLiteral(shapes.Make(dtypes.Int64, 2, 2), []int{padHeightLo, padHeightHi, padWidthLo, padWidthHi})

	stmt := fn.addOp(optypes.Convolution, outputShape, x, kernel)
	stmt.attributes = []attribute{
		{"window_strides", intSliceToArrayI64StableHLO([]int{1, 1})},
		{"padding", paddings},
		{"lhs_dilation", intSliceToArrayI64StableHLO([]int{1, 1})},
		{"rhs_dilation", intSliceToArrayI64StableHLO([]int{1, 1})},
		{"window_reversal", boolSliceToArrayI1StableHLO([]bool{false, false})},
		{"dimension_numbers", literalStr("#stablehlo.conv<[b, 0, 1, f]x[0, 1, i, o]->[b, 0, 1, f]>")},
		{"feature_group_count", int64(1)},
		{"batch_group_count", int64(1)},
		{"precision_config", literalStr("[#stablehlo<precision DEFAULT>, #stablehlo<precision DEFAULT>]")},
	}
	broadcastBias, err := fn.broadcastInDim(bias, outputShape, []int{3})
	if err != nil {
		return nil, err
	}
	output := fn.binary(optypes.Add, stmt.output, broadcastBias)
	return fn.lowerActivation(output, config.Activation)
}

// lowerActivation uses the numerically stable softplus(x) = max(x, 0) + log1p(exp(-|x|)).
func (fn *hloFunction) lowerActivation(x *hloValue, activation types.Activation) (*hloValue, error) {
	switch activation {
	case types.ActivationLinear:
		return x, nil
	case types.ActivationSoftplus:
		positive := fn.binary(optypes.Maximum, x, fn.splat(x.shape, 0))
		negAbs := fn.unary(optypes.Negate, fn.unary(optypes.Abs, x))
		log1pExp := fn.unary(optypes.LogPlusOne, fn.unary(optypes.Exponential, negAbs))
		return fn.binary(optypes.Add, positive, log1pExp), nil
	}
	return nil, errors.Errorf("activation %s not supported", activation)
}

// lowerReduceSum contracts the channels with a vector of ones: (N, H, W, C) x (C, 1) -> (N, H, W, 1).
func (fn *hloFunction) lowerReduceSum(x *hloValue) (*hloValue, error) {
	channels := x.shape.Dim(-1)
	ones := make([]float32, channels)
	for i := range ones {
		ones[i] = 1
	}
	onesValue := fn.constant(shapes.Make(x.shape.DType, channels, 1), ones)
	return fn.dotGeneral(x, []int{3}, onesValue, []int{0})
}

// lowerResize applies the interpolation matrices of each spatial axis with dot_general, which
// moves the interpolated axes to the end, and transposes back to (N, H_out, W_out, C).
// Results are clamped at 0.
func (fn *hloFunction) lowerResize(x *hloValue, outputShape shapes.Shape) (*hloValue, error) {
	dtype := x.shape.DType
	height, width := x.shape.Dim(1), x.shape.Dim(2)
	outHeight, outWidth := outputShape.Dim(1), outputShape.Dim(2)
	colsWeights := fn.constant(shapes.Make(dtype, outWidth, width), convertNumbers(resizeWeights(width, outWidth)))
	rowsWeights := fn.constant(shapes.Make(dtype, outHeight, height), convertNumbers(resizeWeights(height, outHeight)))

	// (N, H, W, C) x (W_out, W) -> (N, H, C, W_out)
	resized, err := fn.dotGeneral(x, []int{2}, colsWeights, []int{1})
	if err != nil {
		return nil, err
	}
	// (N, H, C, W_out) x (H_out, H) -> (N, C, W_out, H_out)
	resized, err = fn.dotGeneral(resized, []int{1}, rowsWeights, []int{1})
	if err != nil {
		return nil, err
	}
	resized, err = fn.transpose(resized, 0, 3, 2, 1)
	if err != nil {
		return nil, err
	}
	return fn.binary(optypes.Maximum, resized, fn.splat(resized.shape, 0)), nil
}
