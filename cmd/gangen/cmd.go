package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/uscgan/generator"
	"github.com/uscgan/generator/generators"
	"github.com/uscgan/generator/internal/envconfig"
)

func newRootCmd() *cobra.Command {
	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:           "gangen",
		Short:         "Generator architectures of the super-resolution GAN",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.AddCommand(
		newStrategiesCmd(),
		newDescribeCmd(),
		newExportCmd(),
		newGenerateCmd(),
		newEnvCmd(),
	)
	return rootCmd
}

// graphFlags are the flags shared by the commands that build a graph.
type graphFlags struct {
	strategy   string
	inputShape string
	outputSize string
	factor     int
	seed       uint64
	dtype      string
}

func (f *graphFlags) register(cmd *cobra.Command) {
	defaultStrategy := envconfig.Strategy()
	if defaultStrategy == "" {
		defaultStrategy = generators.StrategyBaseline.String()
	}
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", defaultStrategy, "Generator strategy, see \"gangen strategies\" (env GANGEN_STRATEGY)")
	cmd.Flags().StringVarP(&f.inputShape, "input", "i", "8x8x3", "Input image shape, as HEIGHTxWIDTHxCHANNELS")
	cmd.Flags().StringVarP(&f.outputSize, "output", "o", "32x32", "Output image size, as HEIGHTxWIDTH")
	cmd.Flags().IntVarP(&f.factor, "factor", "f", 4, "Integer upsample factor applied before the convolutions")
	cmd.Flags().Uint64Var(&f.seed, "seed", envconfig.Seed(), "Seed used to initialize the parameters (env GANGEN_SEED)")
	cmd.Flags().StringVar(&f.dtype, "dtype", "Uint8", "DType of the input images, e.g. Uint8 or Float32")
}

// build the graph configured by the flags.
func (f *graphFlags) build() (*generator.Graph, error) {
	strategy, err := generators.StrategyString(f.strategy)
	if err != nil {
		return nil, errors.Errorf("unknown strategy %q, valid values are %s", f.strategy, strings.Join(generators.StrategyStrings(), ", "))
	}
	inputShape, err := parseDims(f.inputShape, 3)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid --input")
	}
	outputDims, err := parseDims(f.outputSize, 2)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid --output")
	}
	dtype, err := parseDType(f.dtype)
	if err != nil {
		return nil, err
	}
	slog.Debug("building generator", "strategy", strategy, "input", inputShape, "output", outputDims,
		"factor", f.factor, "seed", f.seed, "dtype", dtype)
	return generators.Construct(strategy, inputShape, [2]int{outputDims[0], outputDims[1]}, f.factor,
		generators.WithSeed(int64(f.seed)), generators.WithInputDType(dtype))
}

// parseDims parses dimensions like "8x8x3". If rank > 0, exactly rank dimensions are required.
func parseDims(s string, rank int) ([]int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if rank > 0 && len(parts) != rank {
		return nil, errors.Errorf("expected %d dimensions separated by \"x\", got %q", rank, s)
	}
	dims := make([]int, len(parts))
	for i, part := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid dimension %q in %q", part, s)
		}
		dims[i] = dim
	}
	return dims, nil
}

// inputDTypes are the dtypes accepted by --dtype.
var inputDTypes = []dtypes.DType{
	dtypes.Uint8, dtypes.Uint16, dtypes.Int8, dtypes.Int16, dtypes.Int32, dtypes.Int64,
	dtypes.Float16, dtypes.BFloat16, dtypes.Float32, dtypes.Float64,
}

func parseDType(s string) (dtypes.DType, error) {
	names := make([]string, len(inputDTypes))
	for i, dtype := range inputDTypes {
		if strings.EqualFold(dtype.String(), s) {
			return dtype, nil
		}
		names[i] = dtype.String()
	}
	return dtypes.InvalidDType, errors.Errorf("invalid --dtype %q, valid values are %s", s, strings.Join(names, ", "))
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the generator strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := newTable(cmd.OutOrStdout(), "NAME", "BRANCHES", "RECIPE")
			for _, strategy := range generators.Strategies() {
				table.Append([]string{strategy.String(), strconv.Itoa(strategy.Branches()), strategy.Description()})
			}
			table.Render()
			return nil
		},
	}
}

func newDescribeCmd() *cobra.Command {
	var flags graphFlags
	var showParameters bool
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Build a generator graph and print its stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := flags.build()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := g.Write(w); err != nil {
				return err
			}
			fmt.Fprintf(w, "\n%d stages, %d parameters, %d parameter values\n",
				len(g.Stages()), len(g.Parameters()), g.NumParameterValues())
			if showParameters {
				fmt.Fprintln(w)
				table := newTable(w, "PARAMETER", "SHAPE")
				for _, p := range g.Parameters() {
					table.Append([]string{p.Name(), p.Shape().String()})
				}
				table.Render()
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&showParameters, "parameters", "p", false, "Also list the parameters")
	return cmd
}

func newExportCmd() *cobra.Command {
	var flags graphFlags
	var batchSize int
	var outputPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a generator graph as a StableHLO program",
		Long: "Export a generator graph as a StableHLO program. The \"main\" function takes the image batch " +
			"followed by the parameters, in the order listed by \"gangen describe --parameters\".",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := flags.build()
			if err != nil {
				return err
			}
			if outputPath == "" || outputPath == "-" {
				return g.WriteStableHLO(cmd.OutOrStdout(), batchSize)
			}
			program, err := g.StableHLO(batchSize)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, program, 0o644); err != nil {
				return errors.Wrapf(err, "failed to write program to %q", outputPath)
			}
			slog.Info("exported StableHLO program", "graph", g.Name(), "path", outputPath, "bytes", len(program))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&batchSize, "batch", "b", 1, "Batch size of the exported program")
	cmd.Flags().StringVar(&outputPath, "out", "", "Output file, default is stdout")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var flags graphFlags
	var workers int
	cmd := &cobra.Command{
		Use:   "generate INPUT_IMAGE... OUTPUT_DIR",
		Short: "Run a generator graph on images with the reference evaluator",
		Long: "Run a generator graph on images with the reference evaluator. Input images (PNG, JPEG, GIF, BMP, " +
			"TIFF or WebP) are scaled to the --input size, and the generated images are written as PNG files " +
			"to OUTPUT_DIR. The parameters are not trained: this is mostly useful to inspect the architectures.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := flags.build()
			if err != nil {
				return err
			}
			return generateImages(cmd.Context(), g, args[:len(args)-1], args[len(args)-1], workers)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "w", envconfig.Workers(), "Maximum number of images evaluated concurrently (env GANGEN_WORKERS)")
	return cmd
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show the environment configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := newTable(cmd.OutOrStdout(), "VARIABLE", "VALUE", "DESCRIPTION")
			vars := envconfig.AsMap()
			for _, name := range []string{"GANGEN_DEBUG", "GANGEN_SEED", "GANGEN_STRATEGY", "GANGEN_WORKERS", "GANGEN_PLUGIN"} {
				v := vars[name]
				table.Append([]string{v.Name, fmt.Sprintf("%v", v.Value), v.Description})
			}
			table.Render()
			return nil
		},
	}
}
