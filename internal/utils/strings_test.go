package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "log_plus_one", ToSnakeCase("LogPlusOne"))
	assert.Equal(t, "dot_general", ToSnakeCase("DotGeneral"))
	assert.Equal(t, "broadcast_in_dim", ToSnakeCase("BroadcastInDim"))
	assert.Equal(t, "abs", ToSnakeCase("Abs"))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.0", FormatFloat(1))
	assert.Equal(t, "0.0", FormatFloat(0))
	assert.Equal(t, "-0.5", FormatFloat(-0.5))
	assert.Equal(t, "1.0e-05", FormatFloat(1e-5))
	assert.Equal(t, "0x7F800000", FormatFloat(float32(math.Inf(1))))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "_3branch_gen", NormalizeIdentifier("3branch-gen"))
	assert.Equal(t, "branch_1/conv_0", ScopedName("", "branch_1", "conv_0"))
}
