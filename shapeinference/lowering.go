package shapeinference

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/uscgan/generator/internal/utils"
	"github.com/uscgan/generator/types/shapes"
)

// Transpose all axes of the operand.
// There must be one value in permutation for each axis in the operand.
// The output will have: output.Dimensions[ii] = operand.Dimensions[permutation[ii]].
func Transpose(operand shapes.Shape, permutation []int) (output shapes.Shape, err error) {
	rank := operand.Rank()
	if len(permutation) != rank {
		err = errors.Errorf("Transpose() requires all axes permutation to be defined, operand has shape %s, but %d permutation were given",
			operand, len(permutation))
		return
	}

	// Check permutation axes are within range and unique.
	axesSet := slices.Clone(permutation)
	slices.Sort(axesSet)
	for ii, srcAxis := range axesSet {
		if srcAxis < 0 || srcAxis >= rank {
			err = errors.Errorf("invalid permutation axis %d given to Transpose(%s), it must be within the range of its rank",
				srcAxis, operand)
			return
		}
		if ii > 0 && srcAxis == axesSet[ii-1] {
			err = errors.Errorf("invalid permutation given to Transpose(%s, %v), there cannot be any repeated axis, each must appear exactly once",
				operand, permutation)
			return
		}
	}

	output = operand.Clone()
	for axis := range output.Dimensions {
		output.Dimensions[axis] = operand.Dimensions[permutation[axis]]
	}
	return
}

// BroadcastInDim verifies that the arguments are valid.
// The output shape is already known, so nothing is returned.
func BroadcastInDim(operand, targetShape shapes.Shape, axesMapping []int) error {
	if operand.DType != targetShape.DType {
		return errors.Errorf("BroadcastInDim() requires the operand and the target shape to have the same data type, got operand=%s and targetShape=%s",
			operand, targetShape)
	}
	targetRank := targetShape.Rank()
	if targetRank < operand.Rank() {
		return errors.Errorf("BroadcastInDim() cannot be used to shrink the rank of the operand, got operand=%s and targetShape=%s",
			operand, targetShape)
	}
	if len(axesMapping) != operand.Rank() {
		return errors.Errorf("BroadcastInDim() requires all operand's axes mappings to be defined, operand has shape %s, but %d axes were given",
			operand, len(axesMapping))
	}
	usedAxis := utils.MakeSet[int](len(axesMapping))
	for operandAxis, targetAxis := range axesMapping {
		if targetAxis < 0 || targetAxis >= targetRank {
			return errors.Errorf("BroadcastInDim() axes mapping of operand axis %d to target axis %d is out of range for target shape %s",
				operandAxis, targetAxis, targetShape)
		}
		if usedAxis.Has(targetAxis) {
			return errors.Errorf("BroadcastInDim() requires all target axes to be unique, got duplicate axis %d", targetAxis)
		}
		usedAxis.Insert(targetAxis)
		operandDim := operand.Dimensions[operandAxis]
		targetDim := targetShape.Dimensions[targetAxis]
		if operandDim != 1 && operandDim != targetDim {
			return errors.Errorf("BroadcastInDim() requires all operand axes to be broadcast to be of dimension 1, but got operand.Dimensions[%d]=%d and targetShape.Dimensions[%d]=%d",
				operandAxis, operandDim, targetAxis, targetDim)
		}
	}
	return nil
}

// DotGeneral returns the shape of a dot_general without batch axes: the output dimensions are the
// non-contracting (cross) dimensions of lhs followed by the cross dimensions of rhs.
func DotGeneral(lhs shapes.Shape, lhsContractingAxes []int, rhs shapes.Shape, rhsContractingAxes []int) (output shapes.Shape, err error) {
	if lhs.DType != rhs.DType {
		err = errors.Errorf("DotGeneral lhs (left-hand-side) and rhs operands don't match data types: %s and %s", lhs.DType, rhs.DType)
		return
	}
	if len(lhsContractingAxes) != len(rhsContractingAxes) {
		err = errors.Errorf("DotGeneral number of contracting axes for lhs (%d) doesn't match rhs (%d)",
			len(lhsContractingAxes), len(rhsContractingAxes))
		return
	}
	lhsContracting := utils.MakeSet[int](len(lhsContractingAxes))
	rhsContracting := utils.MakeSet[int](len(rhsContractingAxes))
	for ii, lhsAxis := range lhsContractingAxes {
		rhsAxis := rhsContractingAxes[ii]
		if lhsAxis < 0 || lhsAxis >= lhs.Rank() || rhsAxis < 0 || rhsAxis >= rhs.Rank() {
			err = errors.Errorf("DotGeneral contracting axes lhs=%d, rhs=%d out of range for shapes %s and %s", lhsAxis, rhsAxis, lhs, rhs)
			return
		}
		if lhs.Dimensions[lhsAxis] != rhs.Dimensions[rhsAxis] {
			err = errors.Errorf("DotGeneral contracting dimensions don't match: lhs[%d]=%d != rhs[%d]=%d",
				lhsAxis, lhs.Dimensions[lhsAxis], rhsAxis, rhs.Dimensions[rhsAxis])
			return
		}
		lhsContracting.Insert(lhsAxis)
		rhsContracting.Insert(rhsAxis)
	}
	dims := make([]int, 0, lhs.Rank()+rhs.Rank()-2*len(lhsContractingAxes))
	for axis, dim := range lhs.Dimensions {
		if !lhsContracting.Has(axis) {
			dims = append(dims, dim)
		}
	}
	for axis, dim := range rhs.Dimensions {
		if !rhsContracting.Has(axis) {
			dims = append(dims, dim)
		}
	}
	output = shapes.Make(lhs.DType, dims...)
	return
}
