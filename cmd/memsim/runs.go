package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/memsim/internal/analysis"
	"github.com/san-kum/memsim/internal/export"
	"github.com/san-kum/memsim/internal/storage"
	"github.com/san-kum/memsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	plotWidth   int
	plotHeight  int
	exportFmt   string
	exportOut   string
	spectrumMax float64
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	return cmd
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse a saved run interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := loadRun(args[0])
			if err != nil {
				return err
			}
			return viz.RunViewer(runTitle(run), run.Result)
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "power spectrum of the current trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	cmd.Flags().Float64Var(&spectrumMax, "fmax", 0, "highest frequency to plot (default 20x the drive frequency)")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run (json, csv, svg, html, png)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	cmd.Flags().StringVar(&exportFmt, "format", "json", "output format")
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			return st.Delete(args[0])
		},
	}
}

func loadRun(id string) (*storage.Run, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.Load(id)
}

func runTitle(run *storage.Run) string {
	if run.Preset != "" {
		return run.Preset
	}
	return run.Model
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tPRESET\tTIME\tPOINTS\tINTEG\tAREA")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Preset,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Points,
			run.Integrator,
			viz.FormatValue(run.Metrics["hysteresis_area"]),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}
	res := run.Result
	if res.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", run.ID)
	fmt.Printf("model: %s\n", run.Model)
	fmt.Printf("samples: %d\n\n", res.Len())

	fmt.Println(viz.Curve(res.Voltage, res.Current, plotWidth/2, plotHeight*2))
	fmt.Println("I-V loop")
	fmt.Println()
	for _, s := range []struct {
		data    []float64
		caption string
	}{
		{res.Voltage, "voltage (V)"},
		{res.Current, "current (A)"},
		{res.State, "state x"},
	} {
		fmt.Println(viz.TimePlot(s.data, s.caption, plotWidth, plotHeight))
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}
	res := run.Result
	if res.Len() < 2 {
		return fmt.Errorf("no data")
	}

	dt := res.Time[1] - res.Time[0]
	spec := analysis.NewSpectrum(res.Current, dt)
	f0 := run.Config.SignalParams.Frequency

	fmax := spectrumMax
	if fmax <= 0 {
		fmax = 20 * f0
	}
	n := len(spec.Power)
	for i, f := range spec.Freqs {
		if fmax > 0 && f > fmax {
			n = i
			break
		}
	}
	n = max(n, 2)

	fmt.Printf("frequency analysis: %s\n", run.ID)
	fmt.Printf("model: %s\n\n", run.Model)
	fmt.Println(viz.TimePlot(spec.Power[:n], "power spectrum (current)", 80, 15))
	fmt.Println()

	peak := spec.Peak()
	fmt.Printf("dominant frequency: %.3f hz\n", peak)
	if peak > 0 {
		fmt.Printf("period: %.4g s\n", 1/peak)
	}
	if f0 > 0 {
		fmt.Printf("drive frequency: %.3f hz\n", f0)
		fmt.Printf("odd harmonic ratio: %.4g\n", spec.HarmonicRatio(f0))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}
	doc := export.Document{
		Title:  runTitle(run),
		Model:  run.Model,
		Preset: run.Preset,
		Config: run.Config,
		Result: run.Result,
	}

	if exportOut == "" {
		f, err := export.ParseFormat(exportFmt)
		if err != nil {
			return err
		}
		return export.Write(os.Stdout, f, doc)
	}
	if cmd.Flags().Changed("format") {
		f, err := export.ParseFormat(exportFmt)
		if err != nil {
			return err
		}
		file, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		if err := export.Write(file, f, doc); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}
	return export.WriteFile(exportOut, doc)
}
