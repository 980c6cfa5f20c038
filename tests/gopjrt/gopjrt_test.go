// Package gopjrt executes the StableHLO programs of generator graphs on PJRT plugins, and compares
// the results with the reference evaluator.
package gopjrt

import (
	"flag"
	"fmt"
	"iter"
	"math"
	"strings"
	"testing"

	"github.com/gomlx/gopjrt/pjrt"
	"github.com/stretchr/testify/require"
	"github.com/uscgan/generator"
	"github.com/uscgan/generator/internal/envconfig"
)

var flagPluginNames = flag.String("plugins", defaultPlugins(), "List (|-separated) of PJRT plugin names or full paths. E.g. \"cpu|cuda\"")

// defaultPlugins is taken from GANGEN_PLUGIN, or "cpu".
func defaultPlugins() string {
	if plugins := envconfig.Plugin(); plugins != "" {
		return plugins
	}
	return "cpu"
}

func must1[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

// withLines prefix each line of text with a "%04d: " of the line number.
func withLines(text []byte) string {
	var result strings.Builder
	lines := strings.Split(string(text), "\n")
	for i, line := range lines {
		fmt.Fprintf(&result, "%04d: %s\n", i+1, line)
	}
	return result.String()
}

func getPluginNames() []string {
	names := strings.Split(*flagPluginNames, "|")
	var to int
	for _, name := range names {
		if name != "" {
			names[to] = name
			to++
		}
	}
	if to == 0 {
		panic("no XLA plugin names defined with -plugins")
	}
	return names[:to]
}

// pjrtClientsIterator yields one client per plugin. Plugins that can't be loaded are skipped.
func pjrtClientsIterator(t *testing.T) iter.Seq2[string, *pjrt.Client] {
	return func(yield func(string, *pjrt.Client) bool) {
		for _, pluginName := range getPluginNames() {
			plugin, err := pjrt.GetPlugin(pluginName)
			if err != nil {
				t.Logf("skipping PJRT plugin %q: %v", pluginName, err)
				continue
			}
			client, err := plugin.NewClient(nil)
			require.NoError(t, err, "failed to create client for plugin %q", pluginName)
			done := !yield(pluginName, client)
			require.NoError(t, client.Destroy())
			if done {
				return
			}
		}
	}
}

// compileAndExecute program with PJRT. All inputs are donated.
func compileAndExecute(t *testing.T, client *pjrt.Client, program []byte, inputs ...*pjrt.Buffer) []*pjrt.Buffer {
	loadedExec, err := client.Compile().WithStableHLO(program).Done()
	require.NoErrorf(t, err, "failed to compile program: \n%s", withLines(program))
	defer func() {
		err := loadedExec.Destroy()
		if err != nil {
			t.Errorf("failed to destroy loaded exec: %+v", err)
		}
	}()
	outputBuffers, err := loadedExec.Execute(inputs...).DonateAll().Done()
	require.NoErrorf(t, err, "failed to execute program: \n%s", withLines(program))
	return outputBuffers
}

// executeGraph lowers g for the batch size of the input, and executes it on the client with the
// graph parameters.
func executeGraph(t *testing.T, client *pjrt.Client, g *generator.Graph, batch *generator.Tensor) (flat []float32, dims []int) {
	program := must1(g.StableHLO(batch.Shape().Dim(0)))
	inputs := []*pjrt.Buffer{
		must1(client.BufferFromHost().FromFlatDataWithDimensions(batch.Flat(), batch.Shape().Dimensions).Done()),
	}
	for _, p := range g.Parameters() {
		inputs = append(inputs, must1(client.BufferFromHost().FromFlatDataWithDimensions(p.Values(), p.Shape().Dimensions).Done()))
	}
	outputs := compileAndExecute(t, client, program, inputs...)
	require.Len(t, outputs, 1)
	defer func() {
		if err := outputs[0].Destroy(); err != nil {
			t.Errorf("failed to destroy buffer: %+v", err)
		}
	}()
	gotFlat, gotDims, err := outputs[0].ToFlatDataAndDimensions()
	require.NoError(t, err)
	flat, ok := gotFlat.([]float32)
	require.Truef(t, ok, "expected []float32 output, got %T", gotFlat)
	return flat, gotDims
}

// requireClose checks that got and want match within a relative tolerance.
func requireClose(t *testing.T, want, got []float32, tolerance float64) {
	require.Len(t, got, len(want))
	for i := range want {
		diff := math.Abs(float64(got[i]) - float64(want[i]))
		if diff > tolerance*max(1, math.Abs(float64(want[i]))) {
			require.Failf(t, "values don't match", "element #%d: want %g, got %g", i, want[i], got[i])
		}
	}
}
