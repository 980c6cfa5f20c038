package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uscgan/generator/internal/utils"
	"github.com/uscgan/generator/types/shapes"
)

// literalStr is an attribute value written verbatim to the StableHLO program.
type literalStr string

// ToStableHLO implements hasToStableHLO.
func (s literalStr) ToStableHLO() string {
	return string(s)
}

func literalStrF(format string, args ...any) literalStr {
	return literalStr(fmt.Sprintf(format, args...))
}

type hasToStableHLO interface {
	ToStableHLO() string
}

// literalToStableHLO converts a literal value used in attributes to its StableHLO representation.
func literalToStableHLO(attr any) string {
	switch v := attr.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case int64:
		return fmt.Sprintf("%d : i64", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case hasToStableHLO:
		return v.ToStableHLO()
	default:
		return fmt.Sprintf("Unknown literal type: %T %#v", v, v)
	}
}

// intSliceToArrayI64StableHLO renders a list of ints as a StableHLO array attribute, e.g. "array<i64: 0, 1, 3>".
func intSliceToArrayI64StableHLO(values []int) literalStr {
	if len(values) == 0 {
		return "array<i64>"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return literalStr("array<i64: " + strings.Join(parts, ", ") + ">")
}

// boolSliceToArrayI1StableHLO renders a list of booleans as a StableHLO array attribute, e.g. "array<i1: false, false>".
func boolSliceToArrayI1StableHLO(values []bool) literalStr {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatBool(v)
	}
	return literalStr("array<i1: " + strings.Join(parts, ", ") + ">")
}

// intSliceToStableHLO renders a list of ints in brackets, e.g. "[1, 2]".
func intSliceToStableHLO(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// denseLiteral renders a tensor value in StableHLO "dense" form, e.g. "dense<[[1.0, 2.0]]> : tensor<1x2xf32>".
// A single value is rendered as a splat, filling the whole shape.
type denseLiteral struct {
	shape  shapes.Shape
	format func(idx int) string
	size   int
}

func newFloatDenseLiteral(shape shapes.Shape, flat []float32) denseLiteral {
	return denseLiteral{
		shape:  shape,
		format: func(idx int) string { return utils.FormatFloat(flat[idx]) },
		size:   len(flat),
	}
}

func newIntDenseLiteral(shape shapes.Shape, flat []int) denseLiteral {
	return denseLiteral{
		shape:  shape,
		format: func(idx int) string { return strconv.Itoa(flat[idx]) },
		size:   len(flat),
	}
}

// ToStableHLO implements hasToStableHLO.
func (l denseLiteral) ToStableHLO() string {
	var sb strings.Builder
	sb.WriteString("dense<")
	if l.size == 1 {
		sb.WriteString(l.format(0))
	} else {
		var idx int
		var writeAxis func(axis int)
		writeAxis = func(axis int) {
			if axis == l.shape.Rank() {
				sb.WriteString(l.format(idx))
				idx++
				return
			}
			sb.WriteString("[")
			for i := range l.shape.Dimensions[axis] {
				if i > 0 {
					sb.WriteString(", ")
				}
				writeAxis(axis + 1)
			}
			sb.WriteString("]")
		}
		writeAxis(0)
	}
	sb.WriteString("> : ")
	sb.WriteString(l.shape.ToStableHLO())
	return sb.String()
}
