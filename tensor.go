package generator

import (
	"reflect"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/pkg/errors"
	"github.com/uscgan/generator/types/shapes"
	"github.com/x448/float16"
)

// Tensor holds a batch of images shaped (batch, height, width, channels), stored as a flat Go
// slice in row-major order.
type Tensor struct {
	shape shapes.Shape
	flat  any
}

// FromFlatAndDimensions creates a Tensor from a flat slice with the raw values (e.g. []uint8 or
// []float32) and the dimensions of its shape. The slice is used as is, not copied.
func FromFlatAndDimensions(flat any, dimensions ...int) (*Tensor, error) {
	flatV := reflect.ValueOf(flat)
	if flatV.Kind() != reflect.Slice {
		return nil, errors.Errorf("FromFlatAndDimensions expects a slice of a basic data type, got %T", flat)
	}
	dtype := dtypes.FromGoType(flatV.Type().Elem())
	if dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("unsupported flat values type %T -- expected a slice of a basic data type", flat)
	}
	shape := shapes.Make(dtype, dimensions...)
	if shape.Size() != flatV.Len() {
		return nil, errors.Errorf("flat values size %d doesn't match shape size %d (%s)", flatV.Len(), shape.Size(), shape)
	}
	return &Tensor{shape: shape, flat: flat}, nil
}

// FromValue creates a Tensor from a multi-level slice, e.g. [][][][]uint8 indexed [batch][height][width][channel].
func FromValue(value any) (*Tensor, error) {
	shape, flat, err := shapes.FlattenAnyValue(value)
	if err != nil {
		return nil, err
	}
	return &Tensor{shape: shape, flat: flat}, nil
}

// Shape of the tensor, including the batch axis.
func (t *Tensor) Shape() shapes.Shape {
	return t.shape
}

// Flat returns the flat slice with the tensor values, in row-major order.
// It is not a copy and must not be changed.
func (t *Tensor) Flat() any {
	return t.flat
}

// Float32s returns the flat values of a Float32 tensor, or nil for other dtypes.
func (t *Tensor) Float32s() []float32 {
	flat, _ := t.flat.([]float32)
	return flat
}

// At returns the value at the given indices converted to float64. It panics if the indices are out of range.
func (t *Tensor) At(indices ...int) float64 {
	if len(indices) != t.shape.Rank() {
		panic(errors.Errorf("Tensor.At requires %d indices for shape %s, got %v", t.shape.Rank(), t.shape, indices))
	}
	var flatIdx int
	for axis, idx := range indices {
		dim := t.shape.Dimensions[axis]
		if idx < 0 || idx >= dim {
			panic(errors.Errorf("Tensor.At index %d out of range for axis %d of shape %s", idx, axis, t.shape))
		}
		flatIdx = flatIdx*dim + idx
	}
	return float64(toFloat32(reflect.ValueOf(t.flat).Index(flatIdx).Interface()))
}

// example returns the flat values of the n-th element of the batch.
func (t *Tensor) example(n int) any {
	exampleSize := t.shape.Size() / t.shape.Dim(0)
	return reflect.ValueOf(t.flat).Slice(n*exampleSize, (n+1)*exampleSize).Interface()
}

// toFloat32 converts a scalar of any supported numeric type to float32.
func toFloat32(v any) float32 {
	switch x := v.(type) {
	case float32:
		return x
	case float64:
		return float32(x)
	case float16.Float16:
		return x.Float32()
	case bfloat16.BFloat16:
		return x.Float32()
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float32(rv.Int())
	case rv.CanUint():
		return float32(rv.Uint())
	case rv.CanFloat():
		return float32(rv.Float())
	}
	return 0
}

// convertFlat converts a flat slice of any supported numeric type to a new []float32.
func convertFlat(flat any) ([]float32, error) {
	switch values := flat.(type) {
	case []float32:
		return append([]float32(nil), values...), nil
	case []uint8:
		return convertNumbers(values), nil
	case []int32:
		return convertNumbers(values), nil
	case []int64:
		return convertNumbers(values), nil
	case []float64:
		return convertNumbers(values), nil
	case []float16.Float16:
		out := make([]float32, len(values))
		for i, v := range values {
			out[i] = v.Float32()
		}
		return out, nil
	case []bfloat16.BFloat16:
		out := make([]float32, len(values))
		for i, v := range values {
			out[i] = v.Float32()
		}
		return out, nil
	}
	rv := reflect.ValueOf(flat)
	if rv.Kind() != reflect.Slice {
		return nil, errors.Errorf("cannot convert %T to float32 values", flat)
	}
	elem := rv.Type().Elem()
	switch elem.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return nil, errors.Errorf("cannot convert %T to float32 values", flat)
	}
	out := make([]float32, rv.Len())
	for i := range out {
		out[i] = toFloat32(rv.Index(i).Interface())
	}
	return out, nil
}

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~float32 | ~float64
}

func convertNumbers[T number](values []T) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}
