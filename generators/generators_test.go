package generators

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/google/go-cmp/cmp"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uscgan/generator"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
)

func stageTypes(g *generator.Graph) []string {
	var names []string
	for _, stage := range g.Stages() {
		names = append(names, stage.Type().String())
	}
	return names
}

func randomBatch(batchSize, height, width, channels int) *generator.Tensor {
	flat := make([]uint8, batchSize*height*width*channels)
	for i := range flat {
		flat[i] = uint8((i*37 + 11) % 256)
	}
	return must.M1(generator.FromFlatAndDimensions(flat, batchSize, height, width, channels))
}

func TestStrategies(t *testing.T) {
	require.Len(t, Strategies(), 6)
	for _, strategy := range Strategies() {
		parsed, err := StrategyString(strategy.String())
		require.NoError(t, err)
		assert.Equal(t, strategy, parsed)
		assert.NotEqual(t, "unknown", strategy.Description())
	}
	assert.Equal(t, "three_branch_multi_kernel", StrategyThreeBranchMultiKernel.String())
	assert.Equal(t, 3, StrategyThreeBranchTwoLayer.Branches())
	assert.Equal(t, 1, StrategyTwoLayerMultiFilter.Branches())
}

func TestConstruct_OutputContract(t *testing.T) {
	ctx := context.Background()
	for _, strategy := range Strategies() {
		for _, tc := range []struct {
			inputShape []int
			outputSize [2]int
			factor     int
		}{
			{[]int{4, 5, 3}, [2]int{7, 9}, 2},
			{[]int{3, 3, 1}, [2]int{3, 3}, 1},
			{[]int{2, 6, 4}, [2]int{13, 5}, 3},
		} {
			name := fmt.Sprintf("%s/%v->%v/x%d", strategy, tc.inputShape, tc.outputSize, tc.factor)
			t.Run(name, func(t *testing.T) {
				g, err := Construct(strategy, tc.inputShape, tc.outputSize, tc.factor, WithInputDType(dtypes.Uint8))
				require.NoError(t, err)
				assert.NoError(t, g.OutputShape().Check(dtypes.Float32, tc.outputSize[0], tc.outputSize[1], 3))

				const batchSize = 2
				batch := randomBatch(batchSize, tc.inputShape[0], tc.inputShape[1], tc.inputShape[2])
				output, err := g.Evaluate(ctx, batch)
				require.NoError(t, err)
				require.NoError(t, output.Shape().Check(dtypes.Float32, batchSize, tc.outputSize[0], tc.outputSize[1], 3))
				for i, v := range output.Float32s() {
					if v < 0 {
						t.Fatalf("output #%d is negative: %g", i, v)
					}
				}
			})
		}
	}
}

func TestConstruct_StageSequences(t *testing.T) {
	branch := func(stages ...string) []string { return stages }
	repeat := func(n int, stages []string) []string {
		var all []string
		for range n {
			all = append(all, stages...)
		}
		return all
	}
	concat := func(parts ...[]string) []string {
		var all []string
		for _, p := range parts {
			all = append(all, p...)
		}
		return all
	}
	head := []string{"Convert", "Upsample"}
	tail := []string{"Resize"}
	want := map[Strategy][]string{
		StrategyBaseline:    concat(head, branch("Conv2D"), tail),
		StrategyThreeBranch: concat(head, repeat(3, branch("Conv2D", "ReduceSum")), branch("Concatenate"), tail),
		StrategyThreeBranchTwoLayer: concat(head,
			repeat(3, branch("Conv2D", "Conv2D")), branch("Concatenate"), tail),
		StrategyThreeBranchMultiKernel: concat(head,
			repeat(3, branch("Conv2D", "Conv2D", "Conv2D", "Conv2D", "Concatenate", "Conv2D")), branch("Concatenate"), tail),
		StrategyTwoLayerBaseline:    concat(head, branch("Conv2D", "Conv2D"), tail),
		StrategyTwoLayerMultiFilter: concat(head, branch("Conv2D", "Conv2D", "Conv2D", "Conv2D", "Concatenate", "Conv2D"), tail),
	}
	for _, strategy := range Strategies() {
		g := must.M1(Construct(strategy, []int{8, 8, 3}, [2]int{16, 16}, 2))
		if diff := cmp.Diff(want[strategy], stageTypes(g)); diff != "" {
			t.Errorf("%s stages mismatch (-want +got):\n%s", strategy, diff)
		}
	}
}

func TestBaseline_Example(t *testing.T) {
	g, err := Baseline([]int{8, 8, 3}, [2]int{32, 32}, 4)
	require.NoError(t, err)
	stages := g.Stages()
	require.Len(t, stages, 4)
	assert.Equal(t, types.StageUpsample, stages[1].Type())
	assert.NoError(t, stages[1].Output().Shape().Check(dtypes.Float32, 32, 32, 3))

	assert.Equal(t, types.StageConv2D, stages[2].Type())
	assert.Equal(t, types.PaddingSame, stages[2].Config().Padding)
	assert.Equal(t, types.ActivationSoftplus, stages[2].Config().Activation)
	assert.NoError(t, stages[2].Output().Shape().Check(dtypes.Float32, 32, 32, 3))

	assert.Equal(t, types.StageResize, stages[3].Type())
	assert.True(t, stages[3].Inputs()[0].Shape().EqualDimensions(stages[3].Output().Shape()))
	assert.Equal(t, 3*3*3*3+3, g.NumParameterValues())
}

func TestUpsampleIdentity(t *testing.T) {
	g := must.M1(TwoLayerBaseline([]int{5, 7, 3}, [2]int{5, 7}, 1))
	stages := g.Stages()
	assert.True(t, stages[0].Output().Shape().Equal(stages[1].Output().Shape()))
}

func TestTwoLayerMultiFilter_Parameters(t *testing.T) {
	g := must.M1(TwoLayerMultiFilter([]int{6, 6, 3}, [2]int{12, 12}, 2))
	// 4 filters for each of the 2x2, 3x3, 5x5 and 7x7 kernels, then 16 -> 3 channels.
	want := (4+9+25+49)*3*4 + 4*4 + 16*3 + 3
	assert.Equal(t, want, g.NumParameterValues())
}

// TestBranchOrder checks that channel k of the output is produced by the k-th color branch.
func TestBranchOrder(t *testing.T) {
	for _, strategy := range []Strategy{StrategyThreeBranch, StrategyThreeBranchTwoLayer, StrategyThreeBranchMultiKernel} {
		g := must.M1(Construct(strategy, []int{4, 4, 3}, [2]int{8, 8}, 2))
		stages := g.Stages()
		combine := stages[len(stages)-2]
		require.Equal(t, types.StageConcatenate, combine.Type())
		require.Len(t, combine.Inputs(), NumColorBranches)

		producers := make(map[int]*generator.Stage)
		for _, stage := range stages {
			producers[stage.Output().ID()] = stage
		}
		for k, branchOutput := range combine.Inputs() {
			// Walk back from the branch output to its last convolution.
			stage := producers[branchOutput.ID()]
			for stage.Type() != types.StageConv2D {
				stage = producers[stage.Inputs()[0].ID()]
			}
			kernelName := stage.Config().Kernel.Name()
			assert.True(t, strings.HasPrefix(kernelName, ColorBranchNames[k]+"/"),
				"%s: channel %d produced by %q", strategy, k, kernelName)
		}
	}
}

// TestBranchOrder_Values silences all color branches but one, and checks only the matching output
// channel is non-zero.
func TestBranchOrder_Values(t *testing.T) {
	ctx := context.Background()
	const height, width = 6, 5
	batch := randomBatch(1, 3, 3, 2)
	for _, strategy := range []Strategy{StrategyThreeBranch, StrategyThreeBranchTwoLayer, StrategyThreeBranchMultiKernel} {
		g := must.M1(Construct(strategy, []int{3, 3, 2}, [2]int{height, width}, 2, WithInputDType(dtypes.Uint8)))
		for k, active := range ColorBranchNames {
			// Zero kernels everywhere: active branch convolutions output softplus(1) > 0, the
			// others softplus(-1000) == 0.
			values := make(map[string][]float32)
			for _, p := range g.Parameters() {
				flat := make([]float32, p.Shape().Size())
				if p.Shape().Rank() == 1 {
					bias := float32(-1000)
					if strings.HasPrefix(p.Name(), active+"/") {
						bias = 1
					}
					for i := range flat {
						flat[i] = bias
					}
				}
				values[p.Name()] = flat
			}
			silenced := must.M1(g.WithParameterValues(values))
			output := must.M1(silenced.Evaluate(ctx, batch))
			for y := range height {
				for x := range width {
					for c := range OutputChannels {
						v := output.At(0, y, x, c)
						if c == k {
							assert.Greater(t, v, 0.0, "%s: branch %s, channel %d at (%d, %d)", strategy, active, c, y, x)
						} else {
							assert.Equal(t, 0.0, v, "%s: branch %s, channel %d at (%d, %d)", strategy, active, c, y, x)
						}
					}
				}
			}
		}
	}
}

func TestCheckNonNegative(t *testing.T) {
	for _, strategy := range Strategies() {
		g := must.M1(Construct(strategy, []int{4, 4, 3}, [2]int{8, 8}, 2))
		assert.NoError(t, checkNonNegative(g), "strategy %s", strategy)
	}

	b := generator.New("linear")
	x := must.M1(b.Input(shapes.Image(dtypes.Float32, 4, 4, 3)))
	x = must.M1(generator.Conv2D(x, 3, [2]int{3, 3}, types.PaddingSame, types.ActivationLinear))
	g := must.M1(b.Build(must.M1(generator.ResizeBicubic(x, 8, 8))))
	err := checkNonNegative(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linear")
}

func TestConstruct_Deterministic(t *testing.T) {
	g1 := must.M1(ThreeBranchTwoLayer([]int{4, 4, 3}, [2]int{6, 6}, 2, WithSeed(11)))
	g2 := must.M1(ThreeBranchTwoLayer([]int{4, 4, 3}, [2]int{6, 6}, 2, WithSeed(11)))
	g3 := must.M1(ThreeBranchTwoLayer([]int{4, 4, 3}, [2]int{6, 6}, 2, WithSeed(12)))
	p1, p2, p3 := g1.Parameters(), g2.Parameters(), g3.Parameters()
	require.Len(t, p2, len(p1))
	for i := range p1 {
		assert.Equal(t, p1[i].Values(), p2[i].Values())
		assert.NotSame(t, p1[i], p2[i])
	}
	assert.NotEqual(t, p1[0].Values(), p3[0].Values())
	assert.Equal(t, "three_branch_two_layer", g1.Name())
	assert.Equal(t, "custom", must.M1(Baseline([]int{4, 4, 3}, [2]int{6, 6}, 2, WithName("custom"))).Name())
}

func TestConstruct_Errors(t *testing.T) {
	requireConfigError := func(t *testing.T, err error, field string) {
		require.Error(t, err)
		var configErr *ConfigError
		require.True(t, errors.As(err, &configErr), "expected *ConfigError, got %T: %v", err, err)
		assert.Equal(t, field, configErr.Field)
	}
	requireShapeError := func(t *testing.T, err error) {
		require.Error(t, err)
		var shapeErr *ShapeError
		require.True(t, errors.As(err, &shapeErr), "expected *ShapeError, got %T: %v", err, err)
	}

	for _, strategy := range Strategies() {
		_, err := Construct(strategy, []int{8, 8, 3}, [2]int{32, 32}, 0)
		requireConfigError(t, err, "resize factor")

		_, err = Construct(strategy, []int{8, 8, 3}, [2]int{0, 10}, 4)
		requireConfigError(t, err, "output size")

		_, err = Construct(strategy, []int{10, 10}, [2]int{32, 32}, 4)
		requireShapeError(t, err)

		_, err = Construct(strategy, []int{10, 10, 0}, [2]int{32, 32}, 4)
		requireShapeError(t, err)
	}

	_, err := Construct(Strategy(42), []int{8, 8, 3}, [2]int{32, 32}, 4)
	requireConfigError(t, err, "strategy")

	_, err = Baseline([]int{8, 8, 3}, [2]int{32, 32}, 4, WithInputDType(dtypes.Bool))
	requireConfigError(t, err, "input dtype")
}

func TestStableHLO_AllStrategies(t *testing.T) {
	for _, strategy := range Strategies() {
		g := must.M1(Construct(strategy, []int{4, 4, 3}, [2]int{9, 7}, 2, WithInputDType(dtypes.Uint8)))
		program := string(must.M1(g.StableHLO(3)))
		assert.Contains(t, program, "func.func @main(%input: tensor<3x4x4x3xui8>")
		assert.Contains(t, program, ") -> tensor<3x9x7x3xf32> {")
		assert.Contains(t, program, `"func.return"(`)
	}
}
