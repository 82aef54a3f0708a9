package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gopower/adapters/export"
	"gopower/domain/design"
	"gopower/domain/power"
	"gopower/internal/config"
	"gopower/internal/sensitivity"
	"gopower/ports"
)

var engine = power.NewEngine()

func main() {
	rootCmd := &cobra.Command{
		Use:   "gopower",
		Short: "Power analysis for experimental and quasi-experimental designs",
		Long: `gopower computes minimum detectable effect sizes, statistical power,
and minimum required sample sizes for 21 research designs, following the
PowerUp! formula tables (Dong & Maynard, 2013).

Parameters are given as name=value pairs, e.g.:

  gopower mdes cra2_2r rho2=0.15 n=100 J=40`,
	}

	rootCmd.AddCommand(
		newDesignsCmd(),
		newDescribeCmd(),
		newCalcCmd("mdes", power.ModeEffectSize, "Compute the minimum detectable effect size"),
		newCalcCmd("power", power.ModePower, "Compute statistical power for a target effect size"),
		newCalcCmd("samplesize", power.ModeSampleSize, "Compute the minimum required sample size"),
		newSweepCmd(),
		newExportCmd(),
		newDesignEffectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDesignsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "designs",
		Short: "List all supported designs by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, cat := range design.Categories() {
				fmt.Printf("%s\n", cat)
				for _, spec := range design.ByCategory(cat) {
					fmt.Printf("  %-14s %-5s %s\n", spec.ID, spec.Model, spec.Name)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <design>",
		Short: "Show a design's parameters and defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := design.Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (Model %s)\n%s\n\n", spec.Name, spec.Model, spec.FullName)
			fmt.Printf("Sample-size mode solves for: %s\n\nParameters:\n", spec.SampleSizeFor)
			for _, name := range spec.ParamOrder {
				meta, ok := design.Meta(name)
				if !ok {
					continue
				}
				line := fmt.Sprintf("  %-14s %s", name, meta.Label)
				if meta.HasDefault {
					line += fmt.Sprintf(" (default %g)", meta.Default)
				}
				fmt.Println(line)
				if meta.Comment != "" {
					fmt.Printf("  %-14s   %s\n", "", meta.Comment)
				}
			}
			return nil
		},
	}
}

func newCalcCmd(use string, mode power.Mode, short string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use + " <design> [name=value...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			result, err := engine.Calculate(mode, args[0], params)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(result)
			}
			printResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full result as JSON")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var (
		modeName string
		param    string
		from, to float64
		steps    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "sweep <design> [name=value...]",
		Short: "Sweep one parameter and tabulate the resulting curve",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			mode, err := power.ParseMode(modeName)
			if err != nil {
				return err
			}

			sweeper := sensitivity.NewSweeper(engine, config.SensitivityConfig{
				MaxConcurrent: 8,
				MaxPoints:     1000,
			})
			curve, err := sweeper.Run(context.Background(), sensitivity.Request{
				Design: args[0],
				Mode:   mode,
				Param:  param,
				From:   from,
				To:     to,
				Steps:  steps,
				Base:   base,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(curve)
			}

			fmt.Printf("%s sweep of %s for %s\n\n", curve.Mode, curve.Param, curve.Design)
			fmt.Printf("%12s  %12s\n", curve.Param, "value")
			for _, pt := range curve.Points {
				fmt.Printf("%12.4f  %12.6f\n", pt.X, pt.Value)
			}
			fmt.Printf("\nmin %.6f  max %.6f  mean %.6f  median %.6f\n",
				curve.Summary.Min, curve.Summary.Max, curve.Summary.Mean, curve.Summary.Median)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "effect_size", "Quantity to compute at each point")
	cmd.Flags().StringVar(&param, "param", "", "Parameter to sweep")
	cmd.Flags().Float64Var(&from, "from", 0, "Sweep start")
	cmd.Flags().Float64Var(&to, "to", 0, "Sweep end")
	cmd.Flags().IntVar(&steps, "steps", 10, "Number of sweep points")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the curve as JSON")
	_ = cmd.MarkFlagRequired("param")

	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		modeName string
		format   string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "export <design> [name=value...]",
		Short: "Run a calculation and write it as CSV, JSON, Excel, LaTeX, markdown, HTML, or a methods paragraph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			mode, err := power.ParseMode(modeName)
			if err != nil {
				return err
			}
			result, err := engine.Calculate(mode, args[0], params)
			if err != nil {
				return err
			}

			svc := export.NewService("gopower")
			out, err := svc.Render(result, ports.ExportFormat(format))
			if err != nil {
				return err
			}

			path := outPath
			if path == "" {
				path = out.Filename
			}
			if err := os.WriteFile(path, out.Data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d bytes)\n", path, len(out.Data))
			return nil
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "effect_size", "Quantity to compute")
	cmd.Flags().StringVar(&format, "format", "csv", "Export format")
	cmd.Flags().StringVar(&outPath, "out", "", "Output path (default: generated filename)")

	return cmd
}

func newDesignEffectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "design-effect <rho_ts>",
		Short: "Estimate the regression-discontinuity design effect from the treatment-score correlation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rho, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid rho_ts %q: %w", args[0], err)
			}
			if rho < 0 || rho > 1 {
				return fmt.Errorf("rho_ts must be in [0, 1]")
			}
			// At rho_ts = 1 the estimate is +Inf; print the limit as-is.
			fmt.Fprintf(cmd.OutOrStdout(), "design_effect = %.4f\n", design.EstimateDesignEffect(rho))
			return nil
		},
	}
}

// parseParams turns name=value arguments into a parameter set.
func parseParams(args []string) (design.Params, error) {
	params := design.Params{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=value, got %q", arg)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", name, value)
		}
		params[name] = v
	}
	return params, nil
}

func printResult(result *power.Result) {
	switch result.Mode {
	case power.ModeEffectSize:
		fmt.Printf("MDES = %.6f\n", result.Value)
		if result.WithComparison != nil {
			fmt.Printf("MDES (with comparison) = %.6f\n", *result.WithComparison)
		}
	case power.ModePower:
		fmt.Printf("power = %.6f\n", result.Value)
	case power.ModeSampleSize:
		fmt.Printf("minimum sample size = %d\n", int(result.Value))
	}
	fmt.Printf("M = %.4f  T1 = %.4f  T2 = %.4f  df = %d\n",
		result.Multiplier.M, result.Multiplier.T1, result.Multiplier.T2, result.Multiplier.DF)

	names := make([]string, 0, len(result.Params))
	for name := range result.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%g", name, result.Params[name]))
	}
	if len(parts) > 0 {
		fmt.Printf("inputs: %s\n", strings.Join(parts, " "))
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
