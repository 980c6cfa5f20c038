package shapes

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	invalidShape := Invalid()
	assert.False(t, invalidShape.Ok())

	shape0 := Make(dtypes.Float64)
	assert.True(t, shape0.Ok())
	assert.True(t, shape0.IsScalar())
	assert.Equal(t, 0, shape0.Rank())
	assert.Equal(t, 1, shape0.Size())

	shape1 := Image(dtypes.Float32, 4, 3, 2)
	assert.False(t, shape1.IsScalar())
	assert.Equal(t, 3, shape1.Rank())
	assert.Equal(t, 4*3*2, shape1.Size())
	assert.Equal(t, "(Float32)[4 3 2]", shape1.String())

	batched := shape1.WithBatch(5)
	assert.Equal(t, []int{5, 4, 3, 2}, batched.Dimensions)
	assert.Equal(t, []int{4, 3, 2}, shape1.Dimensions, "WithBatch must not change the original shape")
	assert.True(t, shape1.Equal(shape1.Clone()))
	assert.False(t, shape1.Equal(Make(dtypes.Float64, 4, 3, 2)))
	assert.True(t, shape1.EqualDimensions(Make(dtypes.Float64, 4, 3, 2)))
}

func TestDim(t *testing.T) {
	shape := Make(dtypes.Float32, 4, 3, 2)
	assert.Equal(t, 4, shape.Dim(0))
	assert.Equal(t, 2, shape.Dim(2))
	assert.Equal(t, 2, shape.Dim(-1))
	assert.Equal(t, 4, shape.Dim(-3))
	assert.Panics(t, func() { _ = shape.Dim(3) })
	assert.Panics(t, func() { _ = shape.Dim(-4) })
}

func TestToStableHLO(t *testing.T) {
	assert.Equal(t, "tensor<1x10xf32>", Make(dtypes.Float32, 1, 10).ToStableHLO())
	assert.Equal(t, "tensor<i32>", Make(dtypes.Int32).ToStableHLO())
	assert.Equal(t, "tensor<2x8x8x3xui8>", Image(dtypes.Uint8, 8, 8, 3).WithBatch(2).ToStableHLO())
}

func TestFromAnyValue(t *testing.T) {
	shape, err := FromAnyValue([]int32{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, shape.Check(dtypes.Int32, 3))

	shape, err = FromAnyValue([][][]uint8{{{1, 2, 3}, {3, 4, 7}}})
	require.NoError(t, err)
	require.NoError(t, shape.Check(dtypes.Uint8, 1, 2, 3))

	// Irregular shape is not accepted:
	shape, err = FromAnyValue([][]float32{{1, 2, 3}, {4, 5}})
	require.Errorf(t, err, "irregular shape should have returned an error, instead got shape %s", shape)
}

func TestFlattenAnyValue(t *testing.T) {
	shape, flat, err := FlattenAnyValue([][][]float32{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}})
	require.NoError(t, err)
	require.NoError(t, shape.Check(dtypes.Float32, 2, 2, 2))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, flat)

	shape, flat, err = FlattenAnyValue([][]int{{1, 2, 3}})
	require.NoError(t, err)
	require.NoError(t, shape.Check(dtypes.Int64, 1, 3))
	assert.Equal(t, []int64{1, 2, 3}, flat)
}
