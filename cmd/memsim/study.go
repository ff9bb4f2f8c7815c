package main

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/memsim/internal/metrics"
	"github.com/san-kum/memsim/internal/sim"
	"github.com/san-kum/memsim/internal/sweep"
	"github.com/san-kum/memsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	axes     []string
	metric   string
	minimize bool
	workers  int
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "simulate a preset over a parameter grid",
		Long: "Simulate every point of the cartesian grid spanned by --axis flags.\n" +
			"Axes are name=lo:hi:n or name=v1,v2,... where name is signal.vp, signal.vn,\n" +
			"signal.frequency, x0, window.p, window.j or a model parameter.",
		Args: cobra.ExactArgs(1),
		RunE: runSweep,
	}
	cmd.Flags().StringArrayVar(&axes, "axis", nil, "grid axis (repeatable)")
	cmd.Flags().StringVar(&metric, "metric", "hysteresis_area", "metric to rank by: "+strings.Join(metrics.Names(), ", "))
	cmd.Flags().BoolVar(&minimize, "minimize", false, "pick the smallest metric value")
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "parallel simulations")
	addConfigFlags(cmd)
	return cmd
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [preset] [integrators...]",
		Short: "compare integrators on a preset against dopri5",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addConfigFlags(cmd)
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(axes) == 0 {
		return fmt.Errorf("sweep needs at least one --axis")
	}
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	var grid []sweep.Axis
	for _, s := range axes {
		a, err := sweep.ParseAxis(s)
		if err != nil {
			return err
		}
		grid = append(grid, a)
	}
	g := sweep.NewGrid(grid...)

	logger.Info("starting sweep", "preset", args[0], "points", g.Size(), "workers", workers)
	start := time.Now()
	points, err := sweep.Run(cmd.Context(), sim.NewEnsemble(newSimulator(), workers), cfg.SimConfig(), g)
	if err != nil {
		return err
	}
	logger.Info("sweep complete", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	var header []string
	for _, a := range g.Axes() {
		header = append(header, strings.ToUpper(a.Name))
	}
	header = append(header, strings.ToUpper(metric), "STEPS")
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, p := range points {
		var row []string
		for _, a := range g.Axes() {
			row = append(row, fmt.Sprintf("%g", p.Values[a.Name]))
		}
		row = append(row, viz.FormatValue(p.Metrics[metric]), fmt.Sprint(p.Stats["steps"]))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	best, ok := sweep.Best(points, metric, minimize)
	if !ok {
		return fmt.Errorf("no point produced metric %q", metric)
	}
	fmt.Printf("\nbest %s = %s at %s\n", metric, viz.FormatValue(best.Metrics[metric]), formatValues(best.Values))
	return nil
}

func formatValues(values map[string]float64) string {
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%g", k, values[k])
	}
	return strings.Join(parts, " ")
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	s := newSimulator()
	names := args[1:]
	if len(names) == 0 {
		names = s.Registry().Integrators()
	}

	base := cfg.SimConfig()
	base.Integrator = sim.DefaultIntegrator
	ref, err := s.Simulate(base)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators: %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL X\tMAX |ΔX|\tSTEPS\tEVALS\tTIME")
	for _, name := range names {
		c := base.Clone()
		c.Integrator = name
		start := time.Now()
		res, err := s.Simulate(c)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%.6f\t%s\t%d\t%d\t%s\n",
			name,
			res.State[res.Len()-1],
			viz.FormatValue(maxAbsDiff(res.State, ref.State)),
			res.Stats.Steps,
			res.Stats.Evaluations,
			elapsed.Round(time.Microsecond),
		)
	}
	return w.Flush()
}

func maxAbsDiff(a, b []float64) float64 {
	var d float64
	for i := range min(len(a), len(b)) {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}
