package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/memsim/internal/config"
	"github.com/san-kum/memsim/internal/dynamo"
	"github.com/san-kum/memsim/internal/export"
	"github.com/san-kum/memsim/internal/storage"
	"github.com/san-kum/memsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	preset      string
	configFile  string
	writeConfig string
	save        bool
	outFile     string

	model      string
	signalType string
	vp, vn     float64
	frequency  float64
	x0         float64
	tMax       float64
	numPoints  int
	windowType string
	windowP    float64
	windowJ    float64
	integrator string
	absTol     float64
	relTol     float64
	maxSteps   int
	params     []string
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		Long: "Run a simulation from a preset, a yaml config file or flags.\n" +
			"Flags override the config file, which overrides the preset.",
		Args: cobra.NoArgs,
		RunE: runSimulation,
	}
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "preset name (default hp_sine when no config is given)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&writeConfig, "write-config", "", "write the resolved config to this yaml file")
	f.BoolVar(&save, "save", false, "store the run in the data directory")
	f.StringVar(&outFile, "out", "", "export the result to a file (format from extension)")
	addConfigFlags(cmd)
	return cmd
}

// addConfigFlags registers the per-field overrides shared by run, sweep and
// compare.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&model, "model", "", "model id")
	f.StringVar(&signalType, "signal", "", "signal type: sine or triangle")
	f.Float64Var(&vp, "vp", 0, "positive amplitude (V)")
	f.Float64Var(&vn, "vn", 0, "negative amplitude (V)")
	f.Float64Var(&frequency, "freq", 0, "signal frequency (Hz)")
	f.Float64Var(&x0, "x0", 0, "initial state")
	f.Float64Var(&tMax, "tmax", 0, "simulated time (s)")
	f.IntVar(&numPoints, "points", 0, "output samples")
	f.StringVar(&windowType, "window", "", "window function: none, joglekar, biolek, anusudha")
	f.Float64Var(&windowP, "p", 0, "window exponent p")
	f.Float64Var(&windowJ, "j", 0, "window scale j")
	f.StringVar(&integrator, "integrator", "", "integrator: dopri5, rk4, euler")
	f.Float64Var(&absTol, "abstol", 0, "absolute tolerance")
	f.Float64Var(&relTol, "reltol", 0, "relative tolerance")
	f.IntVar(&maxSteps, "max-steps", 0, "step limit")
	f.StringArrayVar(&params, "param", nil, "model parameter override name=value (repeatable)")
}

// resolveConfig builds the run config from the named preset, the config file
// and the changed flags, in increasing precedence.
func resolveConfig(cmd *cobra.Command, presetName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", presetName, strings.Join(config.ListPresets(), ", "))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("model") && model != cfg.Model {
		cfg.Model = model
		cfg.Params = nil
	}
	if f.Changed("signal") {
		cfg.Signal.Type = signalType
	}
	if f.Changed("vp") {
		cfg.Signal.Vp = vp
	}
	if f.Changed("vn") {
		cfg.Signal.Vn = vn
	}
	if f.Changed("freq") {
		cfg.Signal.Frequency = frequency
	}
	if f.Changed("x0") {
		cfg.X0 = x0
	}
	if f.Changed("tmax") {
		cfg.TMax = tMax
	}
	if f.Changed("points") {
		cfg.NumPoints = numPoints
	}
	if f.Changed("window") {
		cfg.Window.Type = windowType
	}
	if f.Changed("p") {
		cfg.Window.P = windowP
	}
	if f.Changed("j") {
		cfg.Window.J = windowJ
	}
	if f.Changed("integrator") {
		cfg.Solver.Integrator = integrator
	}
	if f.Changed("abstol") {
		cfg.Solver.AbsTol = absTol
	}
	if f.Changed("reltol") {
		cfg.Solver.RelTol = relTol
	}
	if f.Changed("max-steps") {
		cfg.Solver.MaxSteps = maxSteps
	}

	if m, ok := newSimulator().Registry().Model(cfg.Model); ok {
		cfg.ApplyDefaults(m.Parameters())
	}
	for _, kv := range params {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --param %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", kv, err)
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		cfg.Params[name] = v
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, preset)
	if err != nil {
		return err
	}
	if writeConfig != "" {
		if err := config.Save(writeConfig, cfg); err != nil {
			return err
		}
	}

	res, err := newSimulator().Simulate(cfg.SimConfig())
	if err != nil {
		return err
	}

	title := cfg.Name
	if title == "" {
		title = cfg.Model
	}
	fmt.Print(viz.Summary(title, res))
	fmt.Println()
	fmt.Print(viz.Curve(res.Voltage, res.Current, 40, 12))

	if outFile != "" {
		doc := export.Document{Title: title, Model: cfg.Model, Preset: presetLabel(), Config: cfg.SimConfig(), Result: res}
		if err := export.WriteFile(outFile, doc); err != nil {
			return err
		}
		fmt.Printf("exported: %s\n", outFile)
	}

	if save {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.Save(storage.Metadata{Preset: presetLabel(), Config: cfg.SimConfig()}, res)
		if err != nil {
			return err
		}
		fmt.Printf("saved run: %s\n", id)
	}
	return nil
}

// presetLabel names the preset a run started from, if any.
func presetLabel() string {
	if preset == "" && configFile == "" {
		return "hp_sine"
	}
	return preset
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODEL\tSIGNAL\tWINDOW\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				win := p.Window.Type
				if win == "" {
					win = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s %gHz\t%s\t%s\n", name, p.Model, p.Signal.Type, p.Signal.Frequency, win, p.Description)
			}
			return w.Flush()
		},
	}
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "list device models and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, m := range newSimulator().Registry().Models() {
				fmt.Fprintf(w, "%s\t%s\n", m.ID(), m.Name())
				fmt.Fprintln(w, "  PARAM\tSYMBOL\tDEFAULT\tRANGE\tUNIT\tDESCRIPTION")
				for _, p := range m.Parameters() {
					fmt.Fprintf(w, "  %s\t%s\t%g\t[%g, %g]\t%s\t%s\n",
						p.Name, p.Symbol, p.Default, p.Min, p.Max, unit(p), p.Description)
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
}

func unit(p dynamo.ParameterInfo) string {
	if p.Unit == "" {
		return "-"
	}
	return p.Unit
}
