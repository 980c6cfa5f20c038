// Package optypes defines OpType and lists the StableHLO operations the generator graphs are lowered to.
package optypes

import (
	"fmt"

	"github.com/uscgan/generator/internal/utils"
)

// OpType is an enum of the StableHLO operations emitted when lowering a generator graph.
type OpType int

//go:generate go tool enumer -type=OpType optypes.go

const (
	Invalid OpType = iota
	FuncReturn
	Constant

	Abs
	Add
	BroadcastInDim
	Concatenate
	Convert
	Convolution
	DotGeneral
	Exponential
	LogPlusOne
	Maximum
	Negate
	Reshape
	Transpose

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)

var (
	// stableHLOMappings maps OpType to the corresponding StableHLO name, when the default
	// "snake case" doesn't work.
	stableHLOMappings = map[OpType]string{
		FuncReturn: "func.return",
	}
)

// ToStableHLO returns the StableHLO name of the operation.
func (op OpType) ToStableHLO() string {
	name, ok := stableHLOMappings[op]
	if !ok {
		name = fmt.Sprintf("stablehlo.%s", utils.ToSnakeCase(op.String()))
	}
	return name
}
