package shapes

import (
	"fmt"
	"reflect"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// FromAnyValue attempts to convert a Go "any" value to its expected shape.
// Accepted values are scalars of the supported dtypes and (multiple levels of) slices of them.
//
// Example:
//
//	shape := shapes.FromAnyValue([][][][]uint8{{{{0, 0, 0}}}}) // Returns shape (Uint8)[1 1 1 3]
func FromAnyValue(v any) (shape Shape, err error) {
	err = shapeForAnyValueRecursive(&shape, reflect.ValueOf(v), reflect.TypeOf(v))
	return
}

func shapeForAnyValueRecursive(shape *Shape, v reflect.Value, t reflect.Type) error {
	if t == nil {
		return errors.New("cannot find the shape of a nil value")
	}
	if t.Kind() != reflect.Slice {
		shape.DType = dtypes.FromGoType(t)
		if shape.DType == dtypes.InvalidDType {
			return errors.Errorf("cannot convert type %q to a valid shape (maybe type not supported yet?)", t)
		}
		return nil
	}

	// Slice: recurse into its element type (again slices or a supported scalar).
	t = t.Elem()
	shape.Dimensions = append(shape.Dimensions, v.Len())
	shapePrefix := shape.Clone()
	if v.Len() == 0 {
		return errors.Errorf("value with empty slice not valid for shape conversion: %T: %v -- it wouldn't be possible to figure out the inner dimensions", v.Interface(), v)
	}
	if err := shapeForAnyValueRecursive(shape, v.Index(0), t); err != nil {
		return err
	}

	// Other elements must have the same shape as the first one.
	for ii := 1; ii < v.Len(); ii++ {
		shapeTest := shapePrefix.Clone()
		if err := shapeForAnyValueRecursive(&shapeTest, v.Index(ii), t); err != nil {
			return err
		}
		if !shape.Equal(shapeTest) {
			return fmt.Errorf("sub-slices have irregular shapes, found shapes %q, and %q", shape, shapeTest)
		}
	}
	return nil
}

// FlattenAnyValue returns the shape of v (see FromAnyValue) and its values as a flat slice of the
// corresponding Go type (e.g. []float32 for a [][]float32), in row-major order.
func FlattenAnyValue(v any) (shape Shape, flat any, err error) {
	shape, err = FromAnyValue(v)
	if err != nil {
		return
	}
	goType := shape.DType.GoType()
	flatV := reflect.MakeSlice(reflect.SliceOf(goType), 0, shape.Size())
	var flatten func(reflect.Value)
	flatten = func(value reflect.Value) {
		if value.Kind() != reflect.Slice {
			// int and uint map to Int64 and Uint64.
			flatV = reflect.Append(flatV, value.Convert(goType))
			return
		}
		for ii := range value.Len() {
			flatten(value.Index(ii))
		}
	}
	flatten(reflect.ValueOf(v))
	flat = flatV.Interface()
	return
}
