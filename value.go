package generator

import (
	"fmt"

	"github.com/uscgan/generator/types/shapes"
)

// Value represents an intermediary result in a generator graph: the graph input or the output
// of one of its stages.
//
// Values are immutable, and they are owned by the Builder (and later the Graph) that created them.
type Value struct {
	builder *Builder
	id      int
	shape   shapes.Shape
}

// Shape returns the per-example shape of the value.
func (v *Value) Shape() shapes.Shape {
	return v.shape
}

// ID of the value, unique within its graph. The graph input has ID 0.
func (v *Value) ID() int {
	return v.id
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("%%%d", v.id)
}
