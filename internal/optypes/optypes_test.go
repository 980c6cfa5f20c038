package optypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpType_ToStableHLO(t *testing.T) {
	assert.Equal(t, "func.return", FuncReturn.ToStableHLO())
	assert.Equal(t, "stablehlo.log_plus_one", LogPlusOne.ToStableHLO())
	assert.Equal(t, "stablehlo.broadcast_in_dim", BroadcastInDim.ToStableHLO())
	assert.Equal(t, "stablehlo.dot_general", DotGeneral.ToStableHLO())
	assert.Equal(t, "stablehlo.convolution", Convolution.ToStableHLO())
}

func TestOpType_String(t *testing.T) {
	op, err := OpTypeString("dotgeneral")
	assert.NoError(t, err)
	assert.Equal(t, DotGeneral, op)
	assert.True(t, Maximum.IsAOpType())
	assert.Equal(t, "OpType(99)", OpType(99).String())
}
