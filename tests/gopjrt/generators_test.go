package gopjrt

import (
	"context"
	"fmt"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/pjrt"
	"github.com/stretchr/testify/require"
	"github.com/uscgan/generator"
	"github.com/uscgan/generator/generators"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
)

func TestGenerators(t *testing.T) {
	for pluginName, client := range pjrtClientsIterator(t) {
		t.Run(pluginName, func(t *testing.T) {
			testGenerators(t, client)
		})
	}
}

func testGenerators(t *testing.T, client *pjrt.Client) {
	ctx := context.Background()
	const batchSize = 2
	inputShape := []int{4, 5, 3}
	flat := make([]uint8, batchSize*4*5*3)
	for i := range flat {
		flat[i] = uint8((i*53 + 7) % 256)
	}
	batch := must1(generator.FromFlatAndDimensions(flat, batchSize, 4, 5, 3))

	for _, strategy := range generators.Strategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			g := must1(generators.Construct(strategy, inputShape, [2]int{11, 7}, 2,
				generators.WithInputDType(dtypes.Uint8), generators.WithSeed(1)))
			want := must1(g.Evaluate(ctx, batch))
			got, dims := executeGraph(t, client, g, batch)
			require.Equal(t, want.Shape().Dimensions, dims)
			requireClose(t, want.Float32s(), got, 1e-3)
			for i, v := range got {
				require.GreaterOrEqualf(t, v, float32(0), "output #%d", i)
			}
		})
	}
}

func TestStages(t *testing.T) {
	for pluginName, client := range pjrtClientsIterator(t) {
		t.Run(pluginName, func(t *testing.T) {
			testStages(t, client)
		})
	}
}

func testStages(t *testing.T, client *pjrt.Client) {
	ctx := context.Background()
	input := make([]float32, 3*4*2)
	for i := range input {
		input[i] = float32(i%5) - 1.5
	}
	batch := must1(generator.FromFlatAndDimensions(input, 1, 3, 4, 2))

	build := func(name string, fn func(x *generator.Value) (*generator.Value, error)) *generator.Graph {
		b := generator.New(name).WithSeed(3)
		x := must1(b.Input(shapes.Image(dtypes.Float32, 3, 4, 2)))
		x = must1(generator.Convert(x))
		return must1(b.Build(must1(fn(x))))
	}
	graphs := []*generator.Graph{
		build("upsample", func(x *generator.Value) (*generator.Value, error) {
			return generator.Upsample(x, 3)
		}),
		build("reduce_sum", generator.ReduceSum),
		build("conv_even", func(x *generator.Value) (*generator.Value, error) {
			return generator.Conv2D(x, 5, [2]int{2, 4}, types.PaddingSame, types.ActivationSoftplus)
		}),
		build("conv_valid_linear", func(x *generator.Value) (*generator.Value, error) {
			return generator.Conv2D(x, 2, [2]int{3, 3}, types.PaddingValid, types.ActivationLinear)
		}),
		build("concatenate", func(x *generator.Value) (*generator.Value, error) {
			sum, err := generator.ReduceSum(x)
			if err != nil {
				return nil, err
			}
			return generator.Concatenate(sum, x, sum)
		}),
		build("resize", func(x *generator.Value) (*generator.Value, error) {
			return generator.ResizeBicubic(x, 7, 2)
		}),
	}
	for _, g := range graphs {
		t.Run(g.Name(), func(t *testing.T) {
			want := must1(g.Evaluate(ctx, batch))
			got, dims := executeGraph(t, client, g, batch)
			require.Equal(t, want.Shape().Dimensions, dims, fmt.Sprintf("graph %s", g))
			requireClose(t, want.Float32s(), got, 1e-4)
		})
	}
}
