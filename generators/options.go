package generators

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/uscgan/generator"
)

// Option configures the graph built by the factory.
type Option func(*options)

type options struct {
	seed       uint64
	inputDType dtypes.DType
	name       string
}

func defaultOptions() *options {
	return &options{inputDType: generator.ComputeDType}
}

// WithSeed sets the seed used to initialize the graph parameters. The default is 0.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = uint64(seed)
	}
}

// WithInputDType sets the dtype of the input images, e.g. dtypes.Uint8 for raw pixels.
// The default is Float32.
func WithInputDType(dtype dtypes.DType) Option {
	return func(o *options) {
		o.inputDType = dtype
	}
}

// WithName sets the name of the graph. The default is the name of the strategy.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}
