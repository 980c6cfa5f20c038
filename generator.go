// Package generator builds the computation graphs of the generator half of an image
// super-resolution / colorization GAN.
//
// A Graph is assembled once with a Builder, one stage at a time, and is immutable afterwards:
//
//   - Convert (type-normalize): casts the input image to Float32.
//   - Upsample: nearest-neighbor magnification by an integer factor.
//   - Conv2D: convolution with its own kernel and bias parameters, followed by an activation.
//   - ReduceSum: collapses all channels into one, without weights.
//   - Concatenate: joins values along the channels axis.
//   - ResizeBicubic: corner-aligned bicubic resize to the exact target size.
//
// Every stage runs shape inference when it is added, so a built Graph always knows the shape of
// each of its values. Values are per-example images (height, width, channels), the batch axis is
// only given at evaluation (Graph.Evaluate) or lowering (Graph.StableHLO) time.
//
// Besides the pure Go reference evaluator, a graph can be rendered as a StableHLO program, to be
// JIT-compiled and executed by PJRT (github.com/gomlx/gopjrt/pjrt).
//
// The recipes of the concrete generator architectures are in the subpackage generators.
package generator

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/uscgan/generator/internal/utils"
)

// ComputeDType is the floating point dtype all stages after Convert compute with.
const ComputeDType = dtypes.Float32

// NormalizeIdentifier converts a name (graph name, parameter name) to a valid StableHLO
// identifier: only letters, digits, and underscores are allowed.
//
// Invalid characters are replaced with underscores.
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	return utils.NormalizeIdentifier(name)
}
