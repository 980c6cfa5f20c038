package generator

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/uscgan/generator/types"
)

// Stage is one structural unit of a generator graph: an operator with its fixed configuration,
// the values it consumes and the value it produces.
//
// Stages are immutable once created.
type Stage struct {
	stageType types.StageType
	inputs    []*Value
	output    *Value
	config    StageConfig
}

// StageConfig holds the parameters of a stage fixed at construction time.
// Only the fields relevant to the stage type are set.
type StageConfig struct {
	// DType is the target dtype of a Convert stage.
	DType dtypes.DType

	// Factor of an Upsample stage.
	Factor int

	// KernelSize, Filters, Padding and Activation of a Conv2D stage.
	KernelSize [2]int
	Filters    int
	Padding    types.Padding
	Activation types.Activation

	// Kernel and Bias are the learned parameters of a Conv2D stage.
	Kernel, Bias *Parameter

	// Height and Width are the target size of a Resize stage.
	Height, Width int
}

// Type of the stage.
func (s *Stage) Type() types.StageType {
	return s.stageType
}

// Inputs returns the values consumed by the stage, in order.
func (s *Stage) Inputs() []*Value {
	return slices.Clone(s.inputs)
}

// Output returns the value produced by the stage.
func (s *Stage) Output() *Value {
	return s.output
}

// Config returns the configuration of the stage.
func (s *Stage) Config() StageConfig {
	return s.config
}

// Parameters returns the learned parameters owned by the stage, if any.
func (s *Stage) Parameters() []*Parameter {
	if s.config.Kernel == nil {
		return nil
	}
	return []*Parameter{s.config.Kernel, s.config.Bias}
}

// attributes returns the stage configuration rendered as "key=value" pairs, for debugging.
func (s *Stage) attributes() []string {
	c := s.config
	switch s.stageType {
	case types.StageConvert:
		return []string{fmt.Sprintf("dtype=%s", c.DType)}
	case types.StageUpsample:
		return []string{fmt.Sprintf("factor=%d", c.Factor)}
	case types.StageConv2D:
		return []string{
			fmt.Sprintf("filters=%d", c.Filters),
			fmt.Sprintf("kernel=%dx%d", c.KernelSize[0], c.KernelSize[1]),
			fmt.Sprintf("padding=%s", c.Padding),
			fmt.Sprintf("activation=%s", c.Activation),
		}
	case types.StageResize:
		return []string{fmt.Sprintf("size=%dx%d", c.Height, c.Width), "method=bicubic", "align_corners=true"}
	}
	return nil
}

// Write writes a one-line description of the stage to the given writer, e.g.:
//
//	%3 = Conv2D(%2){filters=3, kernel=3x3, padding=same, activation=softplus} : (Float32)[32 32 3]
func (s *Stage) Write(writer io.Writer) error {
	inputs := make([]string, len(s.inputs))
	for i, input := range s.inputs {
		inputs[i] = input.String()
	}
	var attrs string
	if a := s.attributes(); len(a) > 0 {
		attrs = "{" + strings.Join(a, ", ") + "}"
	}
	_, err := fmt.Fprintf(writer, "%s = %s(%s)%s : %s", s.output, s.stageType, strings.Join(inputs, ", "), attrs, s.output.shape)
	return err
}

// String implements fmt.Stringer.
func (s *Stage) String() string {
	var sb strings.Builder
	_ = s.Write(&sb)
	return sb.String()
}
