package generators

// Strategy enumerates the generator architectures the factory can build.
type Strategy int

//go:generate go tool enumer -type=Strategy -trimprefix=Strategy -transform=snake -output=gen_strategy_enumer.go strategy.go

const (
	// StrategyBaseline is a single 3x3 convolution straight to 3 channels.
	StrategyBaseline Strategy = iota

	// StrategyThreeBranch has one branch per output color: a 3x3 convolution with 8 filters
	// followed by a sum over its channels.
	StrategyThreeBranch

	// StrategyThreeBranchTwoLayer has one branch per output color: a 2x2 convolution with 8 filters
	// followed by a single-filter 1x1 convolution.
	StrategyThreeBranchTwoLayer

	// StrategyThreeBranchMultiKernel has one branch per output color: 2x2, 3x3, 5x5 and 7x7
	// convolutions with 8 filters each, concatenated and reduced by a single-filter 1x1 convolution.
	StrategyThreeBranchMultiKernel

	// StrategyTwoLayerBaseline is a 3x3 convolution with 32 filters followed by a 1x1 convolution
	// to 3 channels.
	StrategyTwoLayerBaseline

	// StrategyTwoLayerMultiFilter is 2x2, 3x3, 5x5 and 7x7 convolutions with 4 filters each,
	// concatenated and reduced by a 1x1 convolution to 3 channels.
	StrategyTwoLayerMultiFilter
)

// Branches returns the number of branches of the strategy.
func (s Strategy) Branches() int {
	switch s {
	case StrategyThreeBranch, StrategyThreeBranchTwoLayer, StrategyThreeBranchMultiKernel:
		return NumColorBranches
	}
	return 1
}

// Description returns a one-line summary of the strategy recipe.
func (s Strategy) Description() string {
	switch s {
	case StrategyBaseline:
		return "Conv2D(3, 3x3)"
	case StrategyThreeBranch:
		return "3 x [Conv2D(8, 3x3) -> ReduceSum] -> Concatenate"
	case StrategyThreeBranchTwoLayer:
		return "3 x [Conv2D(8, 2x2) -> Conv2D(1, 1x1)] -> Concatenate"
	case StrategyThreeBranchMultiKernel:
		return "3 x [Conv2D(8, {2x2, 3x3, 5x5, 7x7}) -> Concatenate -> Conv2D(1, 1x1)] -> Concatenate"
	case StrategyTwoLayerBaseline:
		return "Conv2D(32, 3x3) -> Conv2D(3, 1x1)"
	case StrategyTwoLayerMultiFilter:
		return "Conv2D(4, {2x2, 3x3, 5x5, 7x7}) -> Concatenate -> Conv2D(3, 1x1)"
	}
	return "unknown"
}
