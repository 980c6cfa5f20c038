// Package shapes defines Shape, the data type and dimensions of the values flowing through a generator graph.
//
// Graph values are per-example image shapes (height, width, channels): the batch axis is unconstrained
// while building the graph, and only prepended (see Shape.WithBatch) when evaluating or lowering it.
package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/uscgan/generator/internal/utils"
)

// Shape of a value: its DType and its Dimensions (one per axis).
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a Shape structure filled with the values given.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	return Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
}

// Image returns the per-example shape of an image with the given height, width and channels.
func Image(dtype dtypes.DType, height, width, channels int) Shape {
	return Make(dtype, height, width, channels)
}

// Invalid returns an invalid shape.
func Invalid() Shape {
	return Shape{DType: dtypes.InvalidDType}
}

// Ok returns whether this is a valid Shape.
func (s Shape) Ok() bool {
	return s.DType != dtypes.InvalidDType
}

// Rank of the shape, that is, the number of axes.
func (s Shape) Rank() int {
	return len(s.Dimensions)
}

// IsScalar returns whether the shape has no axes.
func (s Shape) IsScalar() bool {
	return s.Ok() && s.Rank() == 0
}

// Size returns the number of elements of the shape.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		size *= dim
	}
	return size
}

// Dim returns the dimension of the given axis. Negative axes count from the end, so Dim(-1) is the last axis.
//
// It panics if the axis is out of range.
func (s Shape) Dim(axis int) int {
	adjusted := axis
	if adjusted < 0 {
		adjusted += s.Rank()
	}
	if adjusted < 0 || adjusted >= s.Rank() {
		panic(errors.Errorf("Shape.Dim(%d) out of range for shape %s", axis, s))
	}
	return s.Dimensions[adjusted]
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dimensions: slices.Clone(s.Dimensions)}
}

// Equal compares two shapes for equality: dtype and dimensions are compared.
func (s Shape) Equal(s2 Shape) bool {
	return s.DType == s2.DType && slices.Equal(s.Dimensions, s2.Dimensions)
}

// EqualDimensions compares two shapes for equality of dimensions only, ignoring the dtype.
func (s Shape) EqualDimensions(s2 Shape) bool {
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// WithBatch returns a new shape with a leading batch axis of the given size.
func (s Shape) WithBatch(batchSize int) Shape {
	dims := make([]int, 0, s.Rank()+1)
	dims = append(dims, batchSize)
	dims = append(dims, s.Dimensions...)
	return Shape{DType: s.DType, Dimensions: dims}
}

// Check that the shape has the given dtype and dimensions, and returns an error otherwise.
func (s Shape) Check(dtype dtypes.DType, dimensions ...int) error {
	if s.DType != dtype {
		return errors.Errorf("shape %s has dtype %s, expected %s", s, s.DType, dtype)
	}
	if !slices.Equal(s.Dimensions, dimensions) {
		return errors.Errorf("shape %s has dimensions %v, expected %v", s, s.Dimensions, dimensions)
	}
	return nil
}

// String implements fmt.Stringer, e.g.: "(Float32)[32 32 3]".
func (s Shape) String() string {
	if !s.Ok() {
		return "(Invalid)"
	}
	if s.IsScalar() {
		return fmt.Sprintf("(%s)", s.DType)
	}
	return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
}

// ToStableHLO returns the StableHLO tensor type of the shape, e.g.: "tensor<1x32x32x3xf32>".
func (s Shape) ToStableHLO() string {
	var sb strings.Builder
	sb.WriteString("tensor<")
	for _, dim := range s.Dimensions {
		fmt.Fprintf(&sb, "%dx", dim)
	}
	sb.WriteString(utils.DTypeToStableHLO(s.DType))
	sb.WriteString(">")
	return sb.String()
}
