package shapeinference

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uscgan/generator/types"
	"github.com/uscgan/generator/types/shapes"
)

// Aliases
var (
	U8  = dtypes.Uint8
	I32 = dtypes.Int32
	F32 = dtypes.Float32
	C64 = dtypes.Complex64

	S = shapes.Make
)

// must1 panics if there is an error.
func must1[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

func TestCheckImage(t *testing.T) {
	require.NoError(t, CheckImage(S(F32, 8, 8, 3)))
	require.Error(t, CheckImage(S(F32, 10, 10)))
	require.Error(t, CheckImage(S(F32, 10, 10, 0)))
	require.Error(t, CheckImage(shapes.Invalid()))
}

func TestConvert(t *testing.T) {
	output := must1(Convert(S(U8, 8, 6, 3), F32))
	assert.True(t, output.Equal(S(F32, 8, 6, 3)))

	_, err := Convert(S(C64, 8, 6, 3), F32)
	require.Error(t, err)
	_, err = Convert(S(U8, 8, 6, 3), I32)
	require.Error(t, err)
}

func TestUpsample(t *testing.T) {
	assert.True(t, must1(Upsample(S(F32, 8, 6, 3), 4)).Equal(S(F32, 32, 24, 3)))
	assert.True(t, must1(Upsample(S(F32, 8, 6, 3), 1)).Equal(S(F32, 8, 6, 3)))
	_, err := Upsample(S(F32, 8, 6, 3), 0)
	require.Error(t, err)
}

func TestConv2D(t *testing.T) {
	type testCase struct {
		name          string
		input         shapes.Shape
		kernel        [2]int
		filters       int
		padding       types.Padding
		expectedError string
		output        shapes.Shape
	}
	testCases := []testCase{
		{name: "same 3x3", input: S(F32, 32, 32, 3), kernel: [2]int{3, 3}, filters: 3, output: S(F32, 32, 32, 3)},
		{name: "same even kernel", input: S(F32, 32, 24, 3), kernel: [2]int{2, 2}, filters: 8, output: S(F32, 32, 24, 8)},
		{name: "same 7x7 on small input", input: S(F32, 2, 2, 3), kernel: [2]int{7, 7}, filters: 4, output: S(F32, 2, 2, 4)},
		{name: "pointwise", input: S(F32, 5, 5, 32), kernel: [2]int{1, 1}, filters: 1, output: S(F32, 5, 5, 1)},
		{name: "valid", input: S(F32, 32, 32, 3), kernel: [2]int{3, 3}, filters: 32, padding: types.PaddingValid, output: S(F32, 30, 30, 32)},
		{name: "valid too large", input: S(F32, 2, 2, 3), kernel: [2]int{3, 3}, filters: 1, padding: types.PaddingValid,
			expectedError: "is larger than padded input dimension"},
		{name: "integer input", input: S(U8, 4, 4, 3), kernel: [2]int{3, 3}, filters: 1, expectedError: "use Convert first"},
		{name: "no filters", input: S(F32, 4, 4, 3), kernel: [2]int{3, 3}, filters: 0, expectedError: "number of filters"},
		{name: "zero kernel", input: S(F32, 4, 4, 3), kernel: [2]int{0, 3}, filters: 1, expectedError: "kernel size must be >= 1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := Conv2D(tc.input, tc.kernel, tc.filters, tc.padding)
			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Truef(t, output.Equal(tc.output), "got %s, want %s", output, tc.output)
		})
	}
}

func TestReduceSum(t *testing.T) {
	assert.True(t, must1(ReduceSum(S(F32, 7, 5, 8))).Equal(S(F32, 7, 5, 1)))
}

func TestConcatenate(t *testing.T) {
	branch := S(F32, 32, 32, 1)
	output := must1(Concatenate([]shapes.Shape{branch, branch, branch}, -1))
	assert.True(t, output.Equal(S(F32, 32, 32, 3)))

	output = must1(Concatenate([]shapes.Shape{S(F32, 4, 4, 8), S(F32, 4, 4, 8), S(F32, 4, 4, 8), S(F32, 4, 4, 8)}, ChannelsAxis))
	assert.True(t, output.Equal(S(F32, 4, 4, 32)))

	_, err := Concatenate([]shapes.Shape{S(F32, 4, 4, 1), S(F32, 4, 5, 1)}, ChannelsAxis)
	require.Error(t, err)
	_, err = Concatenate([]shapes.Shape{S(F32, 4, 4, 1), S(I32, 4, 4, 1)}, ChannelsAxis)
	require.Error(t, err)
	_, err = Concatenate(nil, ChannelsAxis)
	require.Error(t, err)
}

func TestResize(t *testing.T) {
	assert.True(t, must1(Resize(S(F32, 32, 32, 3), 32, 32)).Equal(S(F32, 32, 32, 3)))
	assert.True(t, must1(Resize(S(F32, 32, 32, 3), 45, 17)).Equal(S(F32, 45, 17, 3)))
	_, err := Resize(S(F32, 32, 32, 3), 0, 10)
	require.Error(t, err)
}

func TestLoweringShapes(t *testing.T) {
	output := must1(Transpose(S(F32, 2, 3, 4, 5), []int{0, 3, 2, 1}))
	assert.Equal(t, []int{2, 5, 4, 3}, output.Dimensions)
	_, err := Transpose(S(F32, 2, 3), []int{0, 0})
	require.Error(t, err)

	require.NoError(t, BroadcastInDim(S(F32, 2, 4, 4, 3), S(F32, 2, 4, 2, 4, 2, 3), []int{0, 1, 3, 5}))
	require.Error(t, BroadcastInDim(S(F32, 2, 4), S(F32, 2, 5), []int{0, 1}))

	output = must1(DotGeneral(S(F32, 2, 8, 8, 3), []int{2}, S(F32, 16, 8), []int{1}))
	assert.Equal(t, []int{2, 8, 3, 16}, output.Dimensions)
	_, err = DotGeneral(S(F32, 2, 8, 8, 3), []int{2}, S(F32, 16, 7), []int{1})
	require.Error(t, err)
}
