package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendlab/internal/config"
	"github.com/san-kum/pendlab/internal/dynamo"
	"github.com/san-kum/pendlab/internal/integrators"
	"github.com/san-kum/pendlab/internal/metrics"
	"github.com/san-kum/pendlab/internal/sim"
	"github.com/san-kum/pendlab/internal/storage"
	"github.com/san-kum/pendlab/internal/trail"
	"github.com/san-kum/pendlab/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	thetaA     float64
	omegaA     float64
	thetaB     float64
	omegaB     float64
	lengthA    float64
	massA      float64
	lengthB    float64
	massB      float64
	gravity    float64
	body       string
	trailCap   int
	integrator string
	configFile string
	preset     string
	runs       int
	perturb    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pendlab",
		Short: "double pendulum simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and persist the results",
		RunE:  runSimulation,
	}
	addPendulumFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addPendulumFlags(liveCmd)
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot state histories of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot (θA vs ωA)",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark integration throughput",
		RunE:  benchRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators by energy drift",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addPendulumFlags(compareCmd)
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")

	divergeCmd := &cobra.Command{
		Use:   "diverge",
		Short: "run perturbed copies to expose chaotic divergence",
		RunE:  divergeRun,
	}
	addPendulumFlags(divergeCmd)
	divergeCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	divergeCmd.Flags().IntVar(&runs, "runs", 2, "number of perturbed runs")
	divergeCmd.Flags().Float64Var(&perturb, "perturb", 0.001, "initial angle offset between runs")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, phaseCmd, exportCSVCmd, exportJSONCmd, presetsCmd, benchCmd, compareCmd, divergeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPendulumFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&thetaA, "theta-a", config.DefaultThetaA, "initial angle of link A")
	cmd.Flags().Float64Var(&omegaA, "omega-a", 0.0, "initial angular velocity of link A")
	cmd.Flags().Float64Var(&thetaB, "theta-b", config.DefaultThetaB, "initial angle of link B")
	cmd.Flags().Float64Var(&omegaB, "omega-b", 0.0, "initial angular velocity of link B")
	cmd.Flags().Float64Var(&lengthA, "length-a", 1.0, "length of link A (m)")
	cmd.Flags().Float64Var(&massA, "mass-a", 1.0, "mass of link A (kg)")
	cmd.Flags().Float64Var(&lengthB, "length-b", 1.0, "length of link B (m)")
	cmd.Flags().Float64Var(&massB, "mass-b", 1.0, "mass of link B (kg)")
	cmd.Flags().Float64Var(&gravity, "g", config.DefaultGravity, "gravitational acceleration")
	cmd.Flags().StringVar(&body, "body", "", "use a named surface gravity (earth, moon, jupiter, ...)")
	cmd.Flags().IntVar(&trailCap, "trail", config.DefaultTrailSize, "trail capacity")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
}

// buildConfig merges preset < config file < CLI flags, then validates.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagSet := func(name string) bool { return cmd.Flags().Changed(name) }
	if flagSet("dt") {
		cfg.Dt = dt
	}
	if flagSet("time") {
		cfg.Duration = duration
	}
	if flagSet("integrator") {
		cfg.Integrator = integrator
	}
	if flagSet("g") {
		cfg.Gravity = gravity
	}
	if flagSet("body") {
		cfg.Gravity = config.Gravity(body)
	}
	if flagSet("trail") {
		cfg.TrailSize = trailCap
	}
	if flagSet("theta-a") {
		cfg.LinkA.Theta = thetaA
	}
	if flagSet("omega-a") {
		cfg.LinkA.Omega = omegaA
	}
	if flagSet("theta-b") {
		cfg.LinkB.Theta = thetaB
	}
	if flagSet("omega-b") {
		cfg.LinkB.Omega = omegaB
	}
	if flagSet("length-a") {
		cfg.LinkA.Length = lengthA
	}
	if flagSet("mass-a") {
		cfg.LinkA.Mass = massA
	}
	if flagSet("length-b") {
		cfg.LinkB.Length = lengthB
	}
	if flagSet("mass-b") {
		cfg.LinkB.Mass = massB
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) (*sim.Simulator, dynamo.State, error) {
	dyn := cfg.Build()

	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}

	s := sim.New(dyn, integ)
	s.AddMetric(metrics.NewEnergyDrift(dyn))
	s.AddMetric(metrics.NewTotalEnergy(dyn))
	s.AddMetric(metrics.NewExcursion())
	s.AttachTrail(trail.NewRing(cfg.TrailSize))

	return s, dynamo.State(cfg.InitState()), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, x0, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	fmt.Println("running double pendulum simulation...")
	start := time.Now()

	result, err := s.Run(context.Background(), x0, dynamo.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Dt, cfg.Duration, cfg.Integrator, result, s.Trail())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("energy drift: %.2e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Build(), integ, cfg.Dt, cfg.TrailSize)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	savedRuns, err := st.List()
	if err != nil {
		return err
	}

	if len(savedRuns) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tINTEG\tDRIFT")

	for _, run := range savedRuns {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\t%.2e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Drift,
		)
	}

	return w.Flush()
}

var stateCaptions = []string{
	"theta_a (angle of link A)",
	"theta_b (angle of link B)",
	"omega_a (angular velocity of link A)",
	"omega_b (angular velocity of link B)",
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	for varIdx := 0; varIdx < len(states[0]) && varIdx < len(stateCaptions); varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][varIdx]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(stateCaptions[varIdx]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 || len(states[0]) < 4 {
		return fmt.Errorf("no phase data")
	}

	fmt.Printf("phase space plot: %s (θA vs ωA)\n\n", runID)

	xData := make([]float64, len(states))
	yData := make([]float64, len(states))
	for i := range states {
		xData[i] = states[i][0]
		yData[i] = states[i][2]
	}

	fmt.Println(scatterASCII(xData, yData, 70, 20))
	fmt.Println("\nLegend: . = early, o = middle, ● = late")
	return nil
}

// scatterASCII plots a trajectory as a density-coded character grid.
func scatterASCII(xData, yData []float64, width, height int) string {
	xMin, xMax := xData[0], xData[0]
	yMin, yMax := yData[0], yData[0]
	for i := range xData {
		xMin = math.Min(xMin, xData[i])
		xMax = math.Max(xMax, xData[i])
		yMin = math.Min(yMin, yData[i])
		yMax = math.Max(yMax, yData[i])
	}

	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := height - 1 - int(float64(height-1)*(yData[i]-yMin)/yRange)
		if px < 0 || px >= width || py < 0 || py >= height {
			continue
		}
		switch {
		case i < len(xData)/3:
			canvas[py][px] = '.'
		case i < 2*len(xData)/3:
			canvas[py][px] = 'o'
		default:
			canvas[py][px] = '●'
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %.2f ┌%s┐\n", yMax, strings.Repeat("─", width)))
	for i := range canvas {
		sb.WriteString("       │" + string(canvas[i]) + "│\n")
	}
	sb.WriteString(fmt.Sprintf("  %.2f └%s┘\n", yMin, strings.Repeat("─", width)))
	sb.WriteString(fmt.Sprintf("       %.2f%s%.2f", xMin, strings.Repeat(" ", width-12), xMax))
	return sb.String()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "theta_a", "theta_b", "omega_a", "omega_b"}); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	points, err := st.LoadTrail(runID)
	if err != nil {
		points = nil // older runs have no trail file
	}

	return storage.ExportJSON(os.Stdout, meta, states, times, points)
}

func benchRun(cmd *cobra.Command, args []string) error {
	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 0.1}

	fmt.Println("benchmarking double pendulum")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, stepSize := range dts {
			cfg := config.DefaultConfig()
			cfg.Dt = stepSize
			cfg.Duration = dur

			s, x0, err := newSimulator(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := s.Run(context.Background(), x0, dynamo.Config{Dt: stepSize, Duration: dur, ValidateState: true})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n", dur, stepSize, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators (dt=%.4f, duration=%.1fs)\n\n", cfg.Dt, cfg.Duration)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "final_theta_a", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 56))

	for _, intName := range args {
		integ, err := integrators.ByName(intName)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		dyn := cfg.Build()
		s := sim.New(dyn, integ)

		start := time.Now()
		result, err := s.Run(context.Background(), dynamo.State(cfg.InitState()), dynamo.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		finalThetaA := result.States[len(result.States)-1][0]
		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n", intName, finalThetaA, result.EnergyDrift, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func divergeRun(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(func() (dynamo.System, dynamo.Integrator) {
		integ, err := integrators.ByName(cfg.Integrator)
		if err != nil {
			integ = integrators.NewRK4()
		}
		return cfg.Build(), integ
	}, runs, perturb)

	results, err := ens.Run(context.Background(), dynamo.State(cfg.InitState()), dynamo.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
	if err != nil {
		return err
	}

	if len(results) < 2 {
		return fmt.Errorf("need at least 2 runs to measure divergence")
	}

	base := results[0]
	other := results[len(results)-1]
	n := len(base.States)
	if len(other.States) < n {
		n = len(other.States)
	}

	sep := make([]float64, n)
	for i := 0; i < n; i++ {
		sep[i] = base.States[i].Sub(other.States[i]).Norm()
	}

	fmt.Printf("state separation between run 0 and run %d (perturb=%.4g rad)\n\n", len(results)-1, perturb)
	graph := asciigraph.Plot(sep,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("||Δstate|| vs step"),
	)
	fmt.Println(graph)
	fmt.Printf("\nfinal separation: %.6f\n", sep[n-1])

	return nil
}
