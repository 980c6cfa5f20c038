package generator

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/uscgan/generator/types/shapes"
	"golang.org/x/sync/errgroup"
)

// Evaluate runs the graph on a batch of images with the pure Go reference evaluator.
//
// The batch must be shaped (N, H, W, C), where (H, W, C) and the dtype match Graph.InputShape.
// The result is a Float32 tensor shaped (N, H_out, W_out, C_out).
//
// Examples of the batch are evaluated in parallel, using up to GOMAXPROCS goroutines,
// see EvaluateParallel.
func (g *Graph) Evaluate(ctx context.Context, batch *Tensor) (*Tensor, error) {
	return g.EvaluateParallel(ctx, batch, runtime.GOMAXPROCS(0))
}

// EvaluateParallel is like Evaluate, but it limits to workers the number of examples evaluated
// concurrently. If workers <= 0 there is no limit.
//
// The context is checked between stages: if it is cancelled the evaluation stops and ctx.Err() is returned.
func (g *Graph) EvaluateParallel(ctx context.Context, batch *Tensor, workers int) (*Tensor, error) {
	if err := g.checkBatch(batch); err != nil {
		return nil, err
	}
	batchSize := batch.shape.Dim(0)
	outputShape := g.output.shape.WithBatch(batchSize)
	outputShape.DType = ComputeDType
	exampleSize := g.output.shape.Size()
	flat := make([]float32, outputShape.Size())

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for n := range batchSize {
		eg.Go(func() error {
			result, err := g.evaluateExample(ctx, batch.example(n))
			if err != nil {
				return errors.WithMessagef(err, "evaluating example #%d of graph %q", n, g.name)
			}
			copy(flat[n*exampleSize:(n+1)*exampleSize], result)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &Tensor{shape: outputShape, flat: flat}, nil
}

// checkBatch returns an error if batch is not a valid input for the graph.
func (g *Graph) checkBatch(batch *Tensor) error {
	if batch == nil {
		return errors.Errorf("graph %q: nil input batch", g.name)
	}
	inputShape := g.input.shape
	shape := batch.shape
	if shape.Rank() != inputShape.Rank()+1 {
		return errors.Errorf("graph %q: input batch must have rank %d (batch, height, width, channels), got %s",
			g.name, inputShape.Rank()+1, shape)
	}
	if shape.DType != inputShape.DType {
		return errors.Errorf("graph %q: input batch dtype must be %s, got %s", g.name, inputShape.DType, shape.DType)
	}
	if shape.Dim(0) < 1 {
		return errors.Errorf("graph %q: input batch is empty, got shape %s", g.name, shape)
	}
	exampleShape := shapes.Make(shape.DType, shape.Dimensions[1:]...)
	if !exampleShape.EqualDimensions(inputShape) {
		return errors.Errorf("graph %q: input batch examples must be shaped %s, got batch shape %s", g.name, inputShape, shape)
	}
	return nil
}

// evaluateExample runs all stages on one example, given its flat values in the input dtype.
func (g *Graph) evaluateExample(ctx context.Context, flat any) ([]float32, error) {
	input, err := convertFlat(flat)
	if err != nil {
		return nil, err
	}
	values := map[int][]float32{g.input.id: input}
	for _, stage := range g.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		inputs := make([][]float32, len(stage.inputs))
		for i, v := range stage.inputs {
			inputs[i] = values[v.id]
		}
		output, err := evalStage(stage, inputs)
		if err != nil {
			return nil, err
		}
		values[stage.output.id] = output
	}
	return values[g.output.id], nil
}
