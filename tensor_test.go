package generator

import (
	"context"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uscgan/generator/types/shapes"
	"github.com/x448/float16"
)

func TestTensor(t *testing.T) {
	tensor := must.M1(FromFlatAndDimensions([]uint8{1, 2, 3, 4, 5, 6}, 1, 1, 2, 3))
	assert.NoError(t, tensor.Shape().Check(dtypes.Uint8, 1, 1, 2, 3))
	assert.Equal(t, 6.0, tensor.At(0, 0, 1, 2))
	assert.Nil(t, tensor.Float32s())
	assert.Panics(t, func() { tensor.At(0, 0, 2, 0) })

	_, err := FromFlatAndDimensions([]uint8{1, 2, 3}, 1, 2, 2, 1)
	require.Error(t, err)
	_, err = FromFlatAndDimensions(7, 1)
	require.Error(t, err)

	tensor = must.M1(FromValue([][][][]float32{{{{1}, {2}}, {{3}, {4}}}}))
	assert.NoError(t, tensor.Shape().Check(dtypes.Float32, 1, 2, 2, 1))
	assert.Equal(t, []float32{1, 2, 3, 4}, tensor.Float32s())
	assert.Equal(t, 3.0, tensor.At(0, 1, 0, 0))
}

func TestFromValue_GoIntegers(t *testing.T) {
	tensor := must.M1(FromValue([][][][]int{{{{1}, {2}}, {{3}, {4}}}}))
	assert.NoError(t, tensor.Shape().Check(dtypes.Int64, 1, 2, 2, 1))
	assert.Equal(t, []int64{1, 2, 3, 4}, tensor.Flat())

	tensor = must.M1(FromValue([][][][]int32{{{{7, 8}}}}))
	assert.NoError(t, tensor.Shape().Check(dtypes.Int32, 1, 1, 1, 2))
	assert.Equal(t, []int32{7, 8}, tensor.Flat())

	_, err := FromValue([][][][]uint{{{{7, 8}}}})
	require.Error(t, err)

	b := New("int_input")
	x := must.M1(b.Input(shapes.Image(dtypes.Int64, 2, 2, 1)))
	g := must.M1(b.Build(must.M1(Upsample(must.M1(Convert(x)), 2))))
	got := must.M1(g.Evaluate(context.Background(), must.M1(FromValue([][][][]int{{{{1}, {2}}, {{3}, {4}}}}))))
	assert.NoError(t, got.Shape().Check(dtypes.Float32, 1, 4, 4, 1))
	assert.Equal(t, []float32{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}, got.Float32s())
}

func TestConvertFlat(t *testing.T) {
	want := []float32{1, -2, 3.5}
	for _, flat := range []any{
		[]float32{1, -2, 3.5},
		[]float64{1, -2, 3.5},
		[]float16.Float16{float16.Fromfloat32(1), float16.Fromfloat32(-2), float16.Fromfloat32(3.5)},
		[]bfloat16.BFloat16{bfloat16.FromFloat32(1), bfloat16.FromFloat32(-2), bfloat16.FromFloat32(3.5)},
	} {
		got, err := convertFlat(flat)
		require.NoError(t, err)
		assert.Equal(t, want, got, "converting %T", flat)
	}

	got, err := convertFlat([]int16{-1, 0, 255})
	require.NoError(t, err)
	assert.Equal(t, []float32{-1, 0, 255}, got)

	got, err = convertFlat([]uint8{0, 255})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 255}, got)

	_, err = convertFlat([]bool{true})
	require.Error(t, err)
}
